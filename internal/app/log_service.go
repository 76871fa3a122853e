package app

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"exercise-tracker/internal/observability"
	"exercise-tracker/internal/repository"
)

type LogService struct {
	userRepo     UserStore
	exerciseRepo ExerciseStore
	logCache     LogCache
}

// LogParams carries the raw from, to and limit query parameters.
type LogParams struct {
	From  string
	To    string
	Limit string
}

// LogQuery is the parsed form of LogParams. Nil bounds are open and a zero Limit means no cap.
type LogQuery struct {
	From  *time.Time
	To    *time.Time
	Limit int
}

type LogEntry struct {
	Description     string `json:"description"`
	DurationMinutes int    `json:"durationMinutes"`
	Date            string `json:"date"`
}

type Log struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	ID       string     `json:"id"`
	Log      []LogEntry `json:"log"`
}

// NewLogService builds the log query engine. logCache may be nil.
func NewLogService(userRepo UserStore, exerciseRepo ExerciseStore, logCache LogCache) *LogService {
	return &LogService{
		userRepo:     userRepo,
		exerciseRepo: exerciseRepo,
		logCache:     logCache,
	}
}

// ParseLogQuery validates the raw parameters. Empty values are treated as absent.
func ParseLogQuery(params LogParams) (LogQuery, error) {
	var q LogQuery

	if raw := strings.TrimSpace(params.From); raw != "" {
		from, err := parseDate(raw)
		if err != nil {
			return LogQuery{}, invalidField("from", "must be a date in YYYY-MM-DD format")
		}
		q.From = &from
	}

	if raw := strings.TrimSpace(params.To); raw != "" {
		to, err := parseDate(raw)
		if err != nil {
			return LogQuery{}, invalidField("to", "must be a date in YYYY-MM-DD format")
		}
		q.To = &to
	}

	if raw := strings.TrimSpace(params.Limit); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return LogQuery{}, invalidField("limit", "must be a positive integer")
		}
		q.Limit = limit
	}

	return q, nil
}

func (q LogQuery) filter() repository.ExerciseFilter {
	return repository.ExerciseFilter{From: q.From, To: q.To, Limit: q.Limit}
}

// variant is a stable cache key fragment for the query.
func (q LogQuery) variant() string {
	var from, to string
	if q.From != nil {
		from = q.From.Format(InputDateLayout)
	}
	if q.To != nil {
		to = q.To.Format(InputDateLayout)
	}
	return fmt.Sprintf("from=%s:to=%s:limit=%d", from, to, q.Limit)
}

// Query resolves the user first, so an unknown user wins over malformed parameters.
func (s *LogService) Query(ctx context.Context, userID string, params LogParams) (*Log, error) {
	user, err := lookupUser(ctx, s.userRepo, userID)
	if err != nil {
		return nil, err
	}

	q, err := ParseLogQuery(params)
	if err != nil {
		return nil, err
	}

	variant := q.variant()
	gen, cacheable := s.cacheGeneration(ctx, user.ID)
	if cacheable {
		cached, ok, err := s.logCache.GetLog(ctx, user.ID, gen, variant)
		switch {
		case err != nil:
			observability.LogQueries.WithLabelValues("error").Inc()
			log.Printf("read log cache for user %s failed: %v", user.ID, err)
		case ok:
			observability.LogQueries.WithLabelValues("hit").Inc()
			return cached, nil
		default:
			observability.LogQueries.WithLabelValues("miss").Inc()
		}
	}

	exercises, err := s.exerciseRepo.ListByUser(ctx, user.ID, q.filter())
	if err != nil {
		return nil, err
	}

	entries := make([]LogEntry, 0, len(exercises))
	for _, e := range exercises {
		entries = append(entries, LogEntry{
			Description:     e.Description,
			DurationMinutes: e.DurationMinutes,
			Date:            FormatDate(e.Date),
		})
	}

	result := Log{
		Username: user.Username,
		Count:    len(entries),
		ID:       user.ID,
		Log:      entries,
	}

	if cacheable {
		if err := s.logCache.SetLog(ctx, user.ID, gen, variant, result); err != nil {
			log.Printf("write log cache for user %s failed: %v", user.ID, err)
		}
	}
	return &result, nil
}

// cacheGeneration reads the generation the result must be stored under. It must run
// before the store query; false means the cache is skipped for this query.
func (s *LogService) cacheGeneration(ctx context.Context, userID string) (int64, bool) {
	if s.logCache == nil {
		observability.LogQueries.WithLabelValues("disabled").Inc()
		return 0, false
	}
	gen, err := s.logCache.Generation(ctx, userID)
	if err != nil {
		observability.LogQueries.WithLabelValues("error").Inc()
		log.Printf("read log cache generation for user %s failed: %v", userID, err)
		return 0, false
	}
	return gen, true
}
