package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hjhuang/identity-service/internal/apperrors"
	"github.com/hjhuang/identity-service/internal/models"
	"github.com/hjhuang/identity-service/internal/password"
	"github.com/hjhuang/identity-service/internal/token"
)

// AuthService handles registration and login. It is transport-agnostic; the
// handler is responsible for moving the issued token into a cookie.
type AuthService struct {
	store    UserStore
	hasher   *password.Hasher
	codec    *token.Codec
	notifier Notifier
	tokenTTL time.Duration
	log      *logrus.Logger
}

// NewAuthService initializes a new auth service. notifier may be nil.
func NewAuthService(store UserStore, hasher *password.Hasher, codec *token.Codec, notifier Notifier, tokenTTL time.Duration, log *logrus.Logger) *AuthService {
	return &AuthService{
		store:    store,
		hasher:   hasher,
		codec:    codec,
		notifier: notifier,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// Register creates a new account with a hashed password and the default role.
// A taken username or email yields apperrors.ErrDuplicateCredential with no
// write; the insert still relies on the store's unique constraints, so a
// concurrent registration of the same credential also surfaces as a duplicate.
func (s *AuthService) Register(ctx context.Context, username, email, plainPassword string) (*models.Account, error) {
	_, err := s.store.FindByUsernameOrEmail(ctx, username, email)
	if err == nil {
		return nil, apperrors.ErrDuplicateCredential
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("register lookup: %w", err)
	}

	digest, err := s.hasher.Hash(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := models.RoleUser
	user := &models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: &digest,
		Role:         &role,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		go func(to, name string) {
			if err := s.notifier.SendWelcome(to, name); err != nil {
				s.log.Warnf("Failed to send welcome notice to %s: %v", to, err)
			}
		}(user.Email, user.Username)
	}

	s.log.Infof("User registered: %s", user.Username)
	return user, nil
}

// Login verifies credentials and issues a session token. The identifier is
// matched against both the username and email columns. Unknown accounts and
// wrong passwords both return apperrors.ErrInvalidCredentials so the response
// does not reveal which accounts exist.
func (s *AuthService) Login(ctx context.Context, identifier, plainPassword string) (*models.Account, string, error) {
	user, err := s.store.FindByUsernameOrEmail(ctx, identifier, identifier)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("login lookup: %w", err)
	}

	// Accounts created by an admin without a password cannot log in.
	if user.PasswordHash == nil || !s.hasher.Verify(plainPassword, *user.PasswordHash) {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	tok, err := s.codec.Issue(user.ID, user.Username, user.Email, s.tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Username)
	return user, tok, nil
}

// TokenTTL returns the configured session lifetime.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}
