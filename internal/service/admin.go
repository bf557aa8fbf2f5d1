package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/hjhuang/identity-service/internal/apperrors"
	"github.com/hjhuang/identity-service/internal/models"
	"github.com/hjhuang/identity-service/internal/password"
	"github.com/hjhuang/identity-service/internal/token"
)

// CreateUserInput is the admin account-creation payload. Password and Role
// are optional; an account created without a password stores a null hash and
// cannot log in until a password is set.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput is a partial account update. Nil fields are left untouched.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
	Role     *string
}

// AdminService is role-gated CRUD over accounts. Every operation takes the
// authenticated caller's claims and checks the privileged role before acting.
type AdminService struct {
	store  UserStore
	hasher *password.Hasher
	log    *logrus.Logger
}

// NewAdminService initializes a new admin service.
func NewAdminService(store UserStore, hasher *password.Hasher, log *logrus.Logger) *AdminService {
	return &AdminService{store: store, hasher: hasher, log: log}
}

// Authorize checks that the caller currently holds the admin role. The token
// carries no role claim, so the caller's row is re-read; a demotion takes
// effect on the next request rather than at token expiry. A caller whose row
// no longer exists is forbidden, not unauthenticated, since the token itself
// verified.
func (s *AdminService) Authorize(ctx context.Context, claims *token.Claims) error {
	caller, err := s.store.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return fmt.Errorf("authorize: %w", err)
	}
	if caller.Role == nil || *caller.Role != models.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

// ListUsers returns all accounts, without password hashes.
func (s *AdminService) ListUsers(ctx context.Context, claims *token.Claims) ([]models.Account, error) {
	if err := s.Authorize(ctx, claims); err != nil {
		return nil, err
	}
	return s.store.ListUsers(ctx)
}

// CreateUser creates an account on behalf of an admin, hashing the password
// when one is supplied.
func (s *AdminService) CreateUser(ctx context.Context, claims *token.Claims, input CreateUserInput) (*models.Account, error) {
	if err := s.Authorize(ctx, claims); err != nil {
		return nil, err
	}

	user := &models.Account{
		Username: input.Username,
		Email:    input.Email,
	}
	if input.Password != "" {
		digest, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = &digest
	}
	if input.Role != "" {
		role := input.Role
		user.Role = &role
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Infof("User %s created by admin %s", user.Username, claims.Username)
	return user, nil
}

// UpdateUser applies a partial update, re-hashing the password when present.
func (s *AdminService) UpdateUser(ctx context.Context, claims *token.Claims, id int64, input UpdateUserInput) (*models.Account, error) {
	if err := s.Authorize(ctx, claims); err != nil {
		return nil, err
	}

	params := models.UpdateParams{
		Username: input.Username,
		Email:    input.Email,
		Role:     input.Role,
	}
	if input.Password != nil {
		digest, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		params.PasswordHash = &digest
	}

	user, err := s.store.UpdateUser(ctx, id, params)
	if err != nil {
		return nil, err
	}

	s.log.Infof("User %d updated by admin %s", id, claims.Username)
	return user, nil
}

// DeleteUser removes an account; a missing id reports false, not an error.
func (s *AdminService) DeleteUser(ctx context.Context, claims *token.Claims, id int64) (bool, error) {
	if err := s.Authorize(ctx, claims); err != nil {
		return false, err
	}

	deleted, err := s.store.DeleteUser(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Infof("User %d deleted by admin %s", id, claims.Username)
	}
	return deleted, nil
}
