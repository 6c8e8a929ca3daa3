package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bookstore-service/internal/domain"
	"github.com/spec-kit/bookstore-service/internal/repository"
	apperrors "github.com/spec-kit/bookstore-service/pkg/util"
)

// UserService serves profile reads and updates for the current account.
type UserService struct {
	users repository.UserRepository
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetMe returns the current user's record.
func (s *UserService) GetMe(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUserNotFound(map[string]any{"userId": userID})
		}
		return nil, err
	}
	return user, nil
}

// UpdateMe changes the current user's display name.
func (s *UserService) UpdateMe(ctx context.Context, userID int64, name string) (*domain.User, error) {
	if name == "" {
		return nil, apperrors.NewValidationError("name required", nil)
	}

	user, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.Name = name
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
