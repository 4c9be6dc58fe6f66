package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/session-booking/internal/domain"
	"github.com/spec-kit/session-booking/internal/repository"
	"github.com/spec-kit/session-booking/pkg/util"
)

// UserService exposes user lookup and self-service account deletion.
type UserService struct {
	users repository.UserRepository
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// GetByID fetches a user record.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewUserNotFound(id)
		}
		return nil, util.NewInternalError(err)
	}
	return user, nil
}

// Delete removes an account. Only the account owner may delete it; the
// check compares the authenticated caller's email with the target's.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id string) error {
	target, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if actor == nil || actor.Email != target.Email {
		return util.NewUnauthorized("you can only delete your own account")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewUserNotFound(id)
		}
		return util.NewInternalError(err)
	}
	return nil
}
