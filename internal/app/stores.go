package app

import (
	"context"

	"exercise-tracker/internal/model"
	"exercise-tracker/internal/repository"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type ExerciseStore interface {
	Create(ctx context.Context, exercise *model.Exercise) error
	FindIdentical(ctx context.Context, exercise model.Exercise) (*model.Exercise, error)
	ListByUser(ctx context.Context, userID string, filter repository.ExerciseFilter) ([]model.Exercise, error)
}

// LogCache stores shaped logs per user. Variant identifies the query parameters.
// Entries are keyed by the generation read before the store query, so a fill that
// raced with Invalidate lands on a generation nobody reads.
type LogCache interface {
	Generation(ctx context.Context, userID string) (int64, error)
	GetLog(ctx context.Context, userID string, gen int64, variant string) (*Log, bool, error)
	SetLog(ctx context.Context, userID string, gen int64, variant string, log Log) error
	Invalidate(ctx context.Context, userID string) error
}

type EventPublisher interface {
	PublishRecorded(ctx context.Context, event model.ExerciseRecorded) error
}
