package services

import (
	"context"
	"errors"
	"fmt"

	"manufacturer/auth"
	"manufacturer/models"
	"manufacturer/store"
)

type UserService struct {
	users  store.UserStore
	tokens *auth.Manager
}

func NewUserService(users store.UserStore, tokens *auth.Manager) *UserService {
	return &UserService{users: users, tokens: tokens}
}

// RequireAdmin gates admin-only operations. An absent user is an explicit
// failure, never treated as a plain non-admin.
func (s *UserService) RequireAdmin(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrUnknownPrincipal, email)
	}
	if err != nil {
		return fmt.Errorf("lookup principal: %w", err)
	}
	if user.Role != models.RoleAdmin {
		return ErrInsufficientRole
	}
	return nil
}

// IsAdmin answers the public capability probe. Unknown emails read as
// non-admin here; only mutating routes distinguish absent principals.
func (s *UserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup user: %w", err)
	}
	return user.Role == models.RoleAdmin, nil
}

// Promote elevates the target to admin. Promoting an admin again is a
// no-op success.
func (s *UserService) Promote(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if err := s.users.SetRole(ctx, email, models.RoleAdmin); err != nil {
		return fmt.Errorf("promote user: %w", err)
	}
	return nil
}

// Upsert stores the profile for the given email, creating the user on
// first sign-in, and issues a fresh one-hour token.
func (s *UserService) Upsert(ctx context.Context, email string, profile models.UserProfile) (*models.User, string, error) {
	if email == "" {
		return nil, "", fmt.Errorf("%w: email is required", ErrValidation)
	}

	user, err := s.users.Upsert(ctx, email, profile)
	if err != nil {
		return nil, "", fmt.Errorf("upsert user: %w", err)
	}

	token, err := s.tokens.Issue(email)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}
