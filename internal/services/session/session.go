// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package session issues, resolves and revokes opaque session tokens.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"codeberg.org/oliverandrich/donatetracker/internal/models"
	"codeberg.org/oliverandrich/donatetracker/internal/repository"
)

// TokenLength is the number of random bytes per session token.
const TokenLength = 32

// ErrNoSession is returned when a token does not resolve to a valid
// session: unknown token, expired session, or dangling user reference.
var ErrNoSession = errors.New("no valid session")

// Manager implements the session lifecycle on top of the repository.
type Manager struct {
	repo *repository.Repository
	ttl  time.Duration
}

// NewManager creates a session manager with the given session lifetime.
func NewManager(repo *repository.Repository, ttl time.Duration) *Manager {
	return &Manager{repo: repo, ttl: ttl}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue generates a fresh token and persists a session record expiring
// after the configured lifetime.
func (m *Manager) Issue(ctx context.Context, userID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(m.ttl),
	}
	if err := m.repo.CreateSession(ctx, session); err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}

	return token, nil
}

// Resolve returns the user owning a non-expired session with the given
// token. Any miss yields ErrNoSession; the token is compared by exact
// opaque value only.
func (m *Manager) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	session, err := m.repo.GetSessionByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	if !session.ExpiresAt.After(time.Now().UTC()) {
		return nil, ErrNoSession
	}

	user, err := m.repo.GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	return user, nil
}

// RevokeAll deletes every session owned by the user.
func (m *Manager) RevokeAll(ctx context.Context, userID int64) error {
	return m.repo.DeleteSessionsForUser(ctx, userID)
}

// PruneExpired deletes expired session rows and returns how many were
// removed.
func (m *Manager) PruneExpired(ctx context.Context) (int64, error) {
	return m.repo.DeleteExpiredSessions(ctx, time.Now().UTC())
}

func generateToken() (string, error) {
	b := make([]byte, TokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
