// Package store keeps an append-only log of submitted answers.
//
// Game state is never read back from the log; it exists so educators can see
// how learners progress.
package store

import (
	"context"
	"errors"
	"time"
)

var ErrClosed = errors.New("store closed")

type Attempt struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SessionCode string    `gorm:"index;size:16;not null" json:"session_code"`
	Level       int       `gorm:"not null" json:"level"`
	Correct     int       `gorm:"not null" json:"correct"`
	Total       int       `gorm:"not null" json:"total"`
	Solved      bool      `gorm:"not null" json:"solved"`
	Points      int       `gorm:"not null" json:"points"`
	CreatedAt   time.Time `json:"created_at"`
}

type Store interface {
	RecordAttempt(ctx context.Context, a Attempt) error
	// ListAttempts returns a session's newest attempts first.
	ListAttempts(ctx context.Context, sessionCode string, limit int) ([]Attempt, error)
	Close() error
}
