package app

import (
	"context"
	"strings"
	"unicode/utf8"

	"exercise-tracker/internal/model"
	"exercise-tracker/internal/observability"
)

type UserService struct {
	userRepo UserStore
}

func NewUserService(userRepo UserStore) *UserService {
	return &UserService{userRepo: userRepo}
}

// RegisterOrFetch returns the user registered under username, creating it when absent.
// Blank usernames and usernames longer than the column allows are rejected.
// The boolean reports whether a new user was created.
func (s *UserService) RegisterOrFetch(ctx context.Context, username string) (*model.User, bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || utf8.RuneCountInString(username) > model.MaxUsernameLength {
		return nil, false, ErrInvalidUsername
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	// no uniqueness constraint: concurrent registrations may both land here
	user := &model.User{Username: username}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, false, err
	}
	observability.UsersRegistered.Inc()
	return user, true, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}
