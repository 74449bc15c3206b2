// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/donatetracker/internal/models"
)

// CreateUser inserts a new user. Returns ErrDuplicateEmail when the email
// is already taken.
func (r *Repository) CreateUser(ctx context.Context, email, passwordHash, fullName string, isAdmin bool) (*models.User, error) {
	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().UTC(),
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, full_name, is_admin, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.Email, user.PasswordHash, user.FullName, user.IsAdmin, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	user.ID, err = res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user by their ID.
func (r *Repository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by their email address. The lookup is
// exact and case-sensitive, matching how emails are stored.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.GetContext(ctx, &user, `SELECT * FROM users WHERE email = ?`, email); err != nil {
		return nil, wrapError(err)
	}
	return &user, nil
}

// ListDonors returns all non-admin users ordered by creation date
// (newest first). Used for admin-facing pickers.
func (r *Repository) ListDonors(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.db.SelectContext(ctx, &users,
		`SELECT * FROM users WHERE is_admin = 0 ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserPassword overwrites a user's password hash. Session
// revocation is the caller's responsibility.
func (r *Repository) UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, id)
	return err
}
