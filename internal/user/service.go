package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/config"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrForbidden    = errors.New("forbidden")
)

type UserService interface {
	Get(ctx context.Context, caller Principal, id uuid.UUID) (*User, error)
	List(ctx context.Context, caller Principal, role Role, emailContains string) ([]*User, error)
}

type userService struct {
	repo UserRepository
}

func NewService(repo UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Get(ctx context.Context, caller Principal, id uuid.UUID) (*User, error) {
	log := config.WithContext(ctx)

	if caller.Role != RoleAdmin {
		log.WithField("caller_id", caller.ID).Warn("Non-admin attempted to read user directory")
		return nil, ErrForbidden
	}

	u, err := s.repo.FindByID(id)
	if err != nil {
		log.WithError(err).Error("Failed to find user")
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *userService) List(ctx context.Context, caller Principal, role Role, emailContains string) ([]*User, error) {
	log := config.WithContext(ctx)

	if caller.Role != RoleAdmin {
		log.WithField("caller_id", caller.ID).Warn("Non-admin attempted to list users")
		return nil, ErrForbidden
	}
	if role != "" && !role.IsValid() {
		return nil, ErrInvalidPrincipal
	}

	users, err := s.repo.List(role, emailContains)
	if err != nil {
		log.WithError(err).Error("Failed to list users")
		return nil, err
	}
	return users, nil
}
