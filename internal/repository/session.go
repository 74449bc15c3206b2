// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/donatetracker/internal/models"
)

// CreateSession persists a session record.
func (r *Repository) CreateSession(ctx context.Context, session *models.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, token, expires_at) VALUES (?, ?, ?, ?)`,
		session.ID, session.UserID, session.Token, session.ExpiresAt)
	return err
}

// GetSessionByToken retrieves a session by its exact opaque token value.
// Expiry is checked by the caller; tokens are never decoded or
// interpreted here.
func (r *Repository) GetSessionByToken(ctx context.Context, token string) (*models.Session, error) {
	var session models.Session
	if err := r.db.GetContext(ctx, &session, `SELECT * FROM sessions WHERE token = ?`, token); err != nil {
		return nil, wrapError(err)
	}
	return &session, nil
}

// DeleteSessionsForUser deletes every session owned by the user. Called
// after a password change to force re-authentication.
func (r *Repository) DeleteSessionsForUser(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID)
	return err
}

// DeleteExpiredSessions removes sessions whose expiry lies before now.
// Housekeeping only; Resolve rejects expired sessions regardless.
func (r *Repository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CountSessionsForUser returns the number of session rows for a user.
func (r *Repository) CountSessionsForUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM sessions WHERE user_id = ?`, userID)
	return count, err
}
