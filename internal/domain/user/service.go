package user

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	maxUsernameLength = 50
	maxEmailLength    = 100
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateUser(ctx context.Context, username, email string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: username and email are required", ErrInvalidUser)
	}
	if !utf8.ValidString(username) || !utf8.ValidString(email) {
		return nil, fmt.Errorf("%w: username and email must be valid UTF-8", ErrInvalidUser)
	}
	if utf8.RuneCountInString(username) > maxUsernameLength {
		return nil, fmt.Errorf("%w: username must be at most %d characters", ErrInvalidUser, maxUsernameLength)
	}
	if utf8.RuneCountInString(email) > maxEmailLength || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email is invalid", ErrInvalidUser)
	}

	taken, err := s.repo.IsEmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	taken, err = s.repo.IsUsernameTaken(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	user := User{
		Username: username,
		Email:    email,
	}
	if err := s.repo.CreateUser(ctx, &user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, ErrUserNotFound
	}
	return s.repo.GetUserByID(ctx, id)
}

// Identify resolves the caller for a request. The user id is not a credential.
func (s *Service) Identify(ctx context.Context, id int64) (Identity, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return Identity{}, err
	}
	return user.Identity(), nil
}
