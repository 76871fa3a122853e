package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"exercise-tracker/internal/model"
	"exercise-tracker/internal/pkg/clock"
	"exercise-tracker/internal/platform/database/databasetest"
	"exercise-tracker/internal/repository"
)

var errStoreDown = errors.New("store unavailable")

type testEnv struct {
	users     *repository.UserRepository
	exercises *repository.ExerciseRepository
	clock     *clock.StubClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := databasetest.Open(t)
	return &testEnv{
		users:     repository.NewUserRepository(db),
		exercises: repository.NewExerciseRepository(db),
		clock:     clock.NewStubClock(time.Date(2024, time.March, 9, 17, 45, 0, 0, time.UTC)),
	}
}

func (e *testEnv) mustUser(t *testing.T, username string) *model.User {
	t.Helper()
	user, _, err := NewUserService(e.users).RegisterOrFetch(context.Background(), username)
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return user
}

type failingUserStore struct{}

func (failingUserStore) Create(ctx context.Context, user *model.User) error { return errStoreDown }
func (failingUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return nil, errStoreDown
}
func (failingUserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	return nil, errStoreDown
}
func (failingUserStore) List(ctx context.Context) ([]model.User, error) { return nil, errStoreDown }

type failingExerciseStore struct{}

func (failingExerciseStore) Create(ctx context.Context, exercise *model.Exercise) error {
	return errStoreDown
}
func (failingExerciseStore) FindIdentical(ctx context.Context, exercise model.Exercise) (*model.Exercise, error) {
	return nil, errStoreDown
}
func (failingExerciseStore) ListByUser(ctx context.Context, userID string, filter repository.ExerciseFilter) ([]model.Exercise, error) {
	return nil, errStoreDown
}

type memoryLogCache struct {
	mu          sync.Mutex
	generations map[string]int64
	entries     map[string]Log
	invalidated []string
}

func newMemoryLogCache() *memoryLogCache {
	return &memoryLogCache{generations: map[string]int64{}, entries: map[string]Log{}}
}

func memoryLogKey(userID string, gen int64, variant string) string {
	return fmt.Sprintf("%s|%d|%s", userID, gen, variant)
}

func (c *memoryLogCache) Generation(ctx context.Context, userID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[userID], nil
}

func (c *memoryLogCache) GetLog(ctx context.Context, userID string, gen int64, variant string) (*Log, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[memoryLogKey(userID, gen, variant)]
	if !ok {
		return nil, false, nil
	}
	return &entry, true, nil
}

func (c *memoryLogCache) SetLog(ctx context.Context, userID string, gen int64, variant string, log Log) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[memoryLogKey(userID, gen, variant)] = log
	return nil
}

func (c *memoryLogCache) Invalidate(ctx context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, userID)
	c.generations[userID]++
	return nil
}

// interleavingExerciseStore runs after once, right after the first ListByUser read.
type interleavingExerciseStore struct {
	ExerciseStore
	after func()
}

func (s *interleavingExerciseStore) ListByUser(ctx context.Context, userID string, filter repository.ExerciseFilter) ([]model.Exercise, error) {
	exercises, err := s.ExerciseStore.ListByUser(ctx, userID, filter)
	if s.after != nil {
		after := s.after
		s.after = nil
		after()
	}
	return exercises, err
}

type recordingPublisher struct {
	events []model.ExerciseRecorded
	err    error
}

func (p *recordingPublisher) PublishRecorded(ctx context.Context, event model.ExerciseRecorded) error {
	p.events = append(p.events, event)
	return p.err
}
