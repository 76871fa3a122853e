package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"exercise-tracker/internal/model"
	"exercise-tracker/internal/observability"
	"exercise-tracker/internal/pkg/clock"
)

type ExerciseService struct {
	userRepo     UserStore
	exerciseRepo ExerciseStore
	clock        clock.Clock
	logCache     LogCache
	publisher    EventPublisher
	dedupe       bool
}

type RecordInput struct {
	UserID      string
	Description string
	Duration    string
	Date        string
}

type ExerciseResult struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes"`
	Date            string `json:"date"`
}

// NewExerciseService builds the recorder. logCache and publisher may be nil.
// With dedupe set, an identical existing record is returned instead of inserting another.
func NewExerciseService(
	userRepo UserStore,
	exerciseRepo ExerciseStore,
	clk clock.Clock,
	logCache LogCache,
	publisher EventPublisher,
	dedupe bool,
) *ExerciseService {
	return &ExerciseService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		clock:        clk,
		logCache:     logCache,
		publisher:    publisher,
		dedupe:       dedupe,
	}
}

// Record stores one exercise for an existing user. The boolean reports whether a new
// record was inserted; it is false when dedupe returned an identical existing record.
func (s *ExerciseService) Record(ctx context.Context, input RecordInput) (*ExerciseResult, bool, error) {
	user, err := lookupUser(ctx, s.userRepo, input.UserID)
	if err != nil {
		s.countOutcome(err)
		return nil, false, err
	}

	exercise, err := s.buildExercise(user.ID, input)
	if err != nil {
		s.countOutcome(err)
		return nil, false, err
	}

	if s.dedupe {
		existing, err := s.exerciseRepo.FindIdentical(ctx, exercise)
		if err != nil {
			s.countOutcome(err)
			return nil, false, err
		}
		if existing != nil {
			observability.ExercisesRecorded.WithLabelValues("duplicate").Inc()
			return toExerciseResult(user, *existing), false, nil
		}
	}

	if err := s.exerciseRepo.Create(ctx, &exercise); err != nil {
		s.countOutcome(err)
		return nil, false, err
	}
	observability.ExercisesRecorded.WithLabelValues("created").Inc()

	result := toExerciseResult(user, exercise)
	s.afterRecord(ctx, user, exercise, result)
	return result, true, nil
}

func (s *ExerciseService) buildExercise(userID string, input RecordInput) (model.Exercise, error) {
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return model.Exercise{}, invalidField("description", "is required")
	}
	if utf8.RuneCountInString(description) > model.MaxDescriptionLength {
		return model.Exercise{}, invalidField("description", fmt.Sprintf("must be at most %d characters", model.MaxDescriptionLength))
	}

	rawDuration := strings.TrimSpace(input.Duration)
	if rawDuration == "" {
		return model.Exercise{}, invalidField("durationMinutes", "is required")
	}
	duration, err := strconv.Atoi(rawDuration)
	if err != nil {
		return model.Exercise{}, invalidField("durationMinutes", "must be a whole number of minutes")
	}
	if duration <= 0 {
		return model.Exercise{}, invalidField("durationMinutes", "must be greater than zero")
	}

	date := clock.Today(s.clock)
	if raw := strings.TrimSpace(input.Date); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return model.Exercise{}, invalidField("date", "must be a date in YYYY-MM-DD format")
		}
		date = parsed
	}

	return model.Exercise{
		UserID:          userID,
		Description:     description,
		DurationMinutes: duration,
		Date:            date,
	}, nil
}

func (s *ExerciseService) afterRecord(ctx context.Context, user *model.User, exercise model.Exercise, result *ExerciseResult) {
	if s.logCache != nil {
		if err := s.logCache.Invalidate(ctx, user.ID); err != nil {
			log.Printf("invalidate log cache for user %s failed: %v", user.ID, err)
		}
	}
	if s.publisher != nil {
		event := model.ExerciseRecorded{
			ExerciseID:      exercise.ID,
			UserID:          user.ID,
			Username:        user.Username,
			Description:     result.Description,
			DurationMinutes: result.DurationMinutes,
			Date:            result.Date,
			RecordedAt:      s.clock.NowUtc(),
		}
		if err := s.publisher.PublishRecorded(ctx, event); err != nil {
			log.Printf("publish exercise recorded event %s failed: %v", exercise.ID, err)
		}
	}
}

func (s *ExerciseService) countOutcome(err error) {
	outcome := "error"
	switch {
	case isValidation(err):
		outcome = "invalid"
	case errors.Is(err, ErrUserNotFound):
		outcome = "not_found"
	}
	observability.ExercisesRecorded.WithLabelValues(outcome).Inc()
}

func toExerciseResult(user *model.User, exercise model.Exercise) *ExerciseResult {
	return &ExerciseResult{
		ID:              user.ID,
		Username:        user.Username,
		Description:     exercise.Description,
		DurationMinutes: exercise.DurationMinutes,
		Date:            FormatDate(exercise.Date),
	}
}

// lookupUser resolves id to a user. Any uuid spelling is queried in its canonical
// hyphenated form; malformed ids are reported as not found without a query.
func lookupUser(ctx context.Context, userRepo UserStore, id string) (*model.User, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := userRepo.GetByID(ctx, parsed.String())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
