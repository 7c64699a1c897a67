package repository

import (
	"context"

	domainRepo "github.com/minimart/pos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository backed by the
// sequence_counters table
func NewSequenceRepository(db *gorm.DB) domainRepo.SequenceRepository {
	return &sequenceRepository{db: db}
}

// Next atomically increments the named counter and returns the new value.
// The upsert is a single statement, so concurrent callers never observe the
// same value: the database serializes the conflicting increments.
func (r *sequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequence_counters (name, value, updated_at)
		VALUES (?, 1, NOW())
		ON CONFLICT (name) DO UPDATE
		SET value = sequence_counters.value + 1, updated_at = NOW()
		RETURNING value`, name).Scan(&value).Error
	return value, err
}

// Peek returns the value Next would hand out, without consuming it
func (r *sequenceRepository) Peek(ctx context.Context, name string) (int64, error) {
	var value int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(MAX(value), 0) FROM sequence_counters WHERE name = ?`, name).
		Scan(&value).Error
	return value + 1, err
}
