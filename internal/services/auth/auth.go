// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package auth implements registration, login and password management.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"codeberg.org/oliverandrich/donatetracker/internal/models"
	"codeberg.org/oliverandrich/donatetracker/internal/repository"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 6

// dummyHash is used for constant-time login to prevent timing attacks.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy-password-for-timing"), bcrypt.DefaultCost)

// Service orchestrates the credential store and the account directory.
type Service struct {
	repo *repository.Repository
}

// NewService creates a new auth service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new donor account. The unique index on the email
// column is the authoritative duplicate check; a violation surfaces as
// ErrDuplicateEmail. The plaintext password is bcrypt-hashed and never
// stored.
func (s *Service) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	return s.createUser(ctx, email, password, fullName, false)
}

func (s *Service) createUser(ctx context.Context, email, password, fullName string, isAdmin bool) (*models.User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, email, string(passwordHash), fullName, isAdmin)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("register_success", "user_id", user.ID, "email", email)
	return user, nil
}

// Login verifies the credentials and returns the matching user.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Constant-time: always perform a bcrypt comparison
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			slog.Warn("login_failed", "email", email, "reason", "user_not_found")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		slog.Warn("login_failed", "email", email, "reason", "invalid_password")
		return nil, ErrInvalidCredentials
	}

	slog.Info("login_success", "user_id", user.ID, "email", email)
	return user, nil
}

// ChangePassword verifies the current password and stores a new hash.
// The caller revokes sessions afterwards via the session manager.
func (s *Service) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.repo.UpdateUserPassword(ctx, userID, string(passwordHash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	slog.Info("password_changed", "user_id", userID)
	return nil
}

// EnsureAdmin makes sure the bootstrap admin account exists. Idempotent:
// an existing account is left untouched, re-running startup never
// creates duplicates.
func (s *Service) EnsureAdmin(ctx context.Context, email, password string) error {
	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	if _, err := s.createUser(ctx, email, password, "System Administrator", true); err != nil {
		// A concurrent bootstrap may have won the race; that is fine.
		if errors.Is(err, ErrDuplicateEmail) {
			return nil
		}
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	slog.Info("admin_bootstrap", "email", email)
	return nil
}
