package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"exercise-tracker/internal/model"
)

// ExerciseFilter narrows a user's log. Nil bounds are open; both bounds are inclusive.
// A Limit of zero means no cap.
type ExerciseFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

type ExerciseRepository struct {
	db *gorm.DB
}

func NewExerciseRepository(db *gorm.DB) *ExerciseRepository {
	return &ExerciseRepository{db: db}
}

func (r *ExerciseRepository) Create(ctx context.Context, exercise *model.Exercise) error {
	if err := r.db.WithContext(ctx).Create(exercise).Error; err != nil {
		return fmt.Errorf("create exercise failed: %w", err)
	}
	return nil
}

// FindIdentical returns a stored record matching user, description, duration and date, or nil.
func (r *ExerciseRepository) FindIdentical(ctx context.Context, exercise model.Exercise) (*model.Exercise, error) {
	var found model.Exercise
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND description = ? AND duration_minutes = ? AND date = ?",
			exercise.UserID, exercise.Description, exercise.DurationMinutes, exercise.Date).
		Order("created_at ASC").
		Take(&found).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find identical exercise failed: %w", err)
	}
	return &found, nil
}

func (r *ExerciseRepository) ListByUser(ctx context.Context, userID string, filter ExerciseFilter) ([]model.Exercise, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.From != nil {
		q = q.Where("date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("date <= ?", *filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}

	var exercises []model.Exercise
	if err := q.Order("created_at ASC").Find(&exercises).Error; err != nil {
		return nil, fmt.Errorf("list exercises failed: %w", err)
	}
	return exercises, nil
}
