// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package testutil provides test helpers and fixtures.
package testutil

import (
	"context"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/vinovest/sqlx"
	"golang.org/x/crypto/bcrypt"

	"codeberg.org/oliverandrich/donatetracker/internal/database"
	"codeberg.org/oliverandrich/donatetracker/internal/models"
	"codeberg.org/oliverandrich/donatetracker/internal/repository"
)

// NewTestDB creates an in-memory SQLite database for tests.
// Returns both the database connection and the repository for convenience.
func NewTestDB(t *testing.T) (*sqlx.DB, *repository.Repository) {
	t.Helper()
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	repo := repository.New(db)
	return db, repo
}

// HashPassword hashes a password with a low cost for fast tests.
func HashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

// NewTestUser creates a donor account in the database.
func NewTestUser(t *testing.T, repo *repository.Repository, email, password string) *models.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), email, HashPassword(t, password), "Test User", false)
	require.NoError(t, err)
	return user
}

// NewTestAdmin creates an admin account in the database.
func NewTestAdmin(t *testing.T, repo *repository.Repository, email, password string) *models.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), email, HashPassword(t, password), "Test Admin", true)
	require.NoError(t, err)
	return user
}

// NewTestDonation creates a donation record. userID may be nil for an
// unlinked donation.
func NewTestDonation(t *testing.T, repo *repository.Repository, userID *int64, email string, amount float64) *models.Donation {
	t.Helper()
	now := time.Now().UTC()
	donation := &models.Donation{
		UserID:    userID,
		DonorName: "Test Donor",
		Email:     email,
		Amount:    amount,
		Status:    models.StatusReceived,
		Purpose:   "Testing",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.CreateDonation(context.Background(), donation))
	return donation
}

// NewEchoContext creates an Echo context for handler tests.
func NewEchoContext(e *echo.Echo, method, path string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

// NewFormContext creates an Echo context carrying an urlencoded form
// body, as the browser form posts do.
func NewFormContext(e *echo.Echo, method, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}
