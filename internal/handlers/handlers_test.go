// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/oliverandrich/donatetracker/internal/blobstore"
	"codeberg.org/oliverandrich/donatetracker/internal/handlers"
	"codeberg.org/oliverandrich/donatetracker/internal/repository"
	"codeberg.org/oliverandrich/donatetracker/internal/services/auth"
	"codeberg.org/oliverandrich/donatetracker/internal/services/donation"
	"codeberg.org/oliverandrich/donatetracker/internal/services/reconcile"
	"codeberg.org/oliverandrich/donatetracker/internal/services/session"
	"codeberg.org/oliverandrich/donatetracker/internal/templates"
	"codeberg.org/oliverandrich/donatetracker/internal/testutil"
)

const testCookieName = "token"

// env wires handlers against an in-memory database and a temporary
// uploads directory.
type env struct {
	e        *echo.Echo
	h        *handlers.Handlers
	repo     *repository.Repository
	sessions *session.Manager
	blobs    *blobstore.Local
}

func newTestEnv(t *testing.T) *env {
	t.Helper()

	_, repo := testutil.NewTestDB(t)

	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	e := echo.New()
	e.Renderer = renderer

	sessions := session.NewManager(repo, time.Hour)

	blobs, err := blobstore.NewLocal(t.TempDir())
	require.NoError(t, err)

	h := handlers.New(handlers.Config{
		Repo:         repo,
		Auth:         auth.NewService(repo),
		Sessions:     sessions,
		Donations:    donation.NewService(repo),
		Reconcile:    reconcile.NewService(repo),
		Blobs:        blobs,
		CookieName:   testCookieName,
		CookieMaxAge: 604800,
	})

	return &env{e: e, h: h, repo: repo, sessions: sessions, blobs: blobs}
}

// authCookie returns the session cookie set on the response, or nil.
func authCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == testCookieName {
			return cookie
		}
	}
	return nil
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	c, rec := testutil.NewEchoContext(env.e, http.MethodGet, "/health", nil)

	require.NoError(t, env.h.Health(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestHome(t *testing.T) {
	env := newTestEnv(t)
	c, rec := testutil.NewEchoContext(env.e, http.MethodGet, "/", nil)

	require.NoError(t, env.h.Home(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Donation Tracker")
}
