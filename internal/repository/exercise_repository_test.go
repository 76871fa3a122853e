package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exercise-tracker/internal/model"
	"exercise-tracker/internal/platform/database/databasetest"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func seedExercises(t *testing.T, repo *ExerciseRepository, userID string, dates ...time.Time) {
	t.Helper()
	for i, date := range dates {
		err := repo.Create(context.Background(), &model.Exercise{
			UserID:          userID,
			Description:     "session",
			DurationMinutes: 10 + i,
			Date:            date,
		})
		require.NoError(t, err)
	}
}

func TestExerciseRepositoryListByUserFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewExerciseRepository(databasetest.Open(t))

	seedExercises(t, repo, "user-1",
		day(2019, time.December, 31),
		day(2020, time.January, 1),
		day(2020, time.January, 15),
		day(2020, time.January, 31),
		day(2020, time.February, 1),
	)
	seedExercises(t, repo, "user-2", day(2020, time.January, 10))

	all, err := repo.ListByUser(ctx, "user-1", ExerciseFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)

	from := day(2020, time.January, 1)
	to := day(2020, time.January, 31)
	ranged, err := repo.ListByUser(ctx, "user-1", ExerciseFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, ranged, 3)
	for _, e := range ranged {
		assert.False(t, e.Date.Before(from), "date %s before lower bound", e.Date)
		assert.False(t, e.Date.After(to), "date %s after upper bound", e.Date)
		assert.Equal(t, "user-1", e.UserID)
	}

	lowerOnly, err := repo.ListByUser(ctx, "user-1", ExerciseFilter{From: &to})
	require.NoError(t, err)
	assert.Len(t, lowerOnly, 2)

	upperOnly, err := repo.ListByUser(ctx, "user-1", ExerciseFilter{To: &from})
	require.NoError(t, err)
	assert.Len(t, upperOnly, 2)

	capped, err := repo.ListByUser(ctx, "user-1", ExerciseFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, capped, 2)
}

func TestExerciseRepositoryCreateAssignsID(t *testing.T) {
	repo := NewExerciseRepository(databasetest.Open(t))

	exercise := &model.Exercise{UserID: "user-1", Description: "run", DurationMinutes: 30, Date: day(2020, time.March, 3)}
	require.NoError(t, repo.Create(context.Background(), exercise))
	assert.Len(t, exercise.ID, 36)
}

func TestExerciseRepositoryFindIdentical(t *testing.T) {
	ctx := context.Background()
	repo := NewExerciseRepository(databasetest.Open(t))

	original := model.Exercise{UserID: "user-1", Description: "swim", DurationMinutes: 45, Date: day(2021, time.May, 4)}
	stored := original
	require.NoError(t, repo.Create(ctx, &stored))

	found, err := repo.FindIdentical(ctx, original)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, stored.ID, found.ID)

	different := original
	different.DurationMinutes = 46
	found, err = repo.FindIdentical(ctx, different)
	require.NoError(t, err)
	assert.Nil(t, found)
}
