package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/prepstack/interview-coach/internal/models"
)

// AttemptRepository defines data operations for the practice history.
// The store is append-only; there is no update or delete.
type AttemptRepository interface {
	Append(ctx context.Context, attempt *models.Attempt) error
	MostRecent(ctx context.Context, limit int) ([]models.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

// NewAttemptRepository instantiates the repository.
func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Append(ctx context.Context, attempt *models.Attempt) error {
	return r.db.WithContext(ctx).Create(attempt).Error
}

// MostRecent returns up to limit attempts, oldest first.
func (r *attemptRepository) MostRecent(ctx context.Context, limit int) ([]models.Attempt, error) {
	if limit <= 0 {
		limit = 10
	}

	var attempts []models.Attempt
	err := r.db.WithContext(ctx).
		Model(&models.Attempt{}).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&attempts).Error
	if err != nil {
		return nil, err
	}

	// Reverse into oldest-first order for display.
	for i, j := 0, len(attempts)-1; i < j; i, j = i+1, j-1 {
		attempts[i], attempts[j] = attempts[j], attempts[i]
	}

	return attempts, nil
}
