package store

import (
	"context"
	"slices"
	"sync"
	"time"
)

// MemoryStore is the default when no database is configured.
type MemoryStore struct {
	mu       sync.Mutex
	attempts []Attempt
	closed   bool
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (m *MemoryStore) RecordAttempt(ctx context.Context, a Attempt) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	a.ID = uint(len(m.attempts) + 1)
	if a.CreatedAt.IsZero() {
		a.CreatedAt = m.now()
	}
	m.attempts = append(m.attempts, a)
	return nil
}

func (m *MemoryStore) ListAttempts(ctx context.Context, sessionCode string, limit int) ([]Attempt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}

	var out []Attempt
	for _, a := range slices.Backward(m.attempts) {
		if a.SessionCode != sessionCode {
			continue
		}
		out = append(out, a)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
