package store

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type GormStore struct {
	db *gorm.DB
}

// OpenPostgres connects to dsn and migrates the attempts table.
func OpenPostgres(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewGormStore(db)
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Attempt{}); err != nil {
		return nil, fmt.Errorf("migrate attempts: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) RecordAttempt(ctx context.Context, a Attempt) error {
	if err := s.db.WithContext(ctx).Create(&a).Error; err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

func (s *GormStore) ListAttempts(ctx context.Context, sessionCode string, limit int) ([]Attempt, error) {
	q := s.db.WithContext(ctx).
		Where("session_code = ?", sessionCode).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []Attempt
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return out, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
