package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exercise-tracker/internal/model"
)

func TestRegisterOrFetchIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users)
	ctx := context.Background()

	first, created, err := svc.RegisterOrFetch(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "alice", first.Username)
	assert.NotEmpty(t, first.ID)

	second, created, err := svc.RegisterOrFetch(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
}

func TestRegisterOrFetchTrimsUsername(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users)

	user, _, err := svc.RegisterOrFetch(context.Background(), "  bob ")
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
}

func TestRegisterOrFetchRejectsEmptyUsername(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users)
	ctx := context.Background()

	for _, username := range []string{"", "   "} {
		user, created, err := svc.RegisterOrFetch(ctx, username)
		require.ErrorIs(t, err, ErrInvalidUsername)
		assert.Nil(t, user)
		assert.False(t, created)
	}

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestRegisterOrFetchRejectsOverlongUsername(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users)
	ctx := context.Background()

	_, _, err := svc.RegisterOrFetch(ctx, strings.Repeat("x", model.MaxUsernameLength+1))
	require.ErrorIs(t, err, ErrInvalidUsername)

	user, created, err := svc.RegisterOrFetch(ctx, strings.Repeat("x", model.MaxUsernameLength))
	require.NoError(t, err)
	assert.True(t, created)
	assert.Len(t, user.Username, model.MaxUsernameLength)
}

func TestListUsersIncludesEachUserOnce(t *testing.T) {
	env := newTestEnv(t)
	svc := NewUserService(env.users)
	ctx := context.Background()

	alice, _, err := svc.RegisterOrFetch(ctx, "alice")
	require.NoError(t, err)
	_, _, err = svc.RegisterOrFetch(ctx, "alice")
	require.NoError(t, err)
	bob, _, err := svc.RegisterOrFetch(ctx, "bob")
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	ids := map[string]string{}
	for _, u := range users {
		ids[u.ID] = u.Username
	}
	assert.Equal(t, map[string]string{alice.ID: "alice", bob.ID: "bob"}, ids)
}

func TestRegisterOrFetchSurfacesStoreErrors(t *testing.T) {
	svc := NewUserService(failingUserStore{})

	_, _, err := svc.RegisterOrFetch(context.Background(), "alice")
	require.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, ErrValidation)
}
