// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/oliverandrich/donatetracker/internal/blobstore"
	"codeberg.org/oliverandrich/donatetracker/internal/config"
	"codeberg.org/oliverandrich/donatetracker/internal/handlers"
	"codeberg.org/oliverandrich/donatetracker/internal/repository"
	"codeberg.org/oliverandrich/donatetracker/internal/services/auth"
	"codeberg.org/oliverandrich/donatetracker/internal/services/donation"
	"codeberg.org/oliverandrich/donatetracker/internal/services/reconcile"
	"codeberg.org/oliverandrich/donatetracker/internal/services/session"
	"codeberg.org/oliverandrich/donatetracker/internal/templates"
	"codeberg.org/oliverandrich/donatetracker/internal/testutil"
)

// newTestApp builds a fully routed echo app over an in-memory database.
func newTestApp(t *testing.T) (*echo.Echo, *repository.Repository) {
	t.Helper()

	_, repo := testutil.NewTestDB(t)

	cfg := &config.Config{
		Server:  config.ServerConfig{MaxBodySize: 8},
		Session: config.SessionConfig{CookieName: "token", MaxAge: 604800},
	}

	sessions := session.NewManager(repo, time.Duration(cfg.Session.MaxAge)*time.Second)

	blobs, err := blobstore.NewLocal(t.TempDir())
	require.NoError(t, err)

	e := echo.New()
	e.HideBanner = true

	renderer, err := templates.NewRenderer()
	require.NoError(t, err)
	e.Renderer = renderer

	setupMiddleware(e, cfg, sessions)
	setupRoutes(e, handlers.New(handlers.Config{
		Repo:         repo,
		Auth:         auth.NewService(repo),
		Sessions:     sessions,
		Donations:    donation.NewService(repo),
		Reconcile:    reconcile.NewService(repo),
		Blobs:        blobs,
		CookieName:   cfg.Session.CookieName,
		CookieMaxAge: cfg.Session.MaxAge,
	}), blobs)

	return e, repo
}

func get(e *echo.Echo, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postForm(e *echo.Echo, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == "token" && cookie.Value != "" {
			return cookie
		}
	}
	return nil
}

func TestRoutes_PublicPagesWithoutAuth(t *testing.T) {
	e, _ := newTestApp(t)

	for _, path := range []string{"/", "/login", "/register", "/public", "/health"} {
		rec := get(e, path)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}
}

func TestRoutes_AuthGates(t *testing.T) {
	e, _ := newTestApp(t)

	for _, path := range []string{"/dashboard", "/change_password", "/admin/dashboard", "/admin/add_donation"} {
		rec := get(e, path)
		assert.Equal(t, http.StatusSeeOther, rec.Code, "path %s", path)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation), "path %s", path)
	}
}

func TestRoutes_DonorCannotReachAdmin(t *testing.T) {
	e, repo := newTestApp(t)
	testutil.NewTestUser(t, repo, "donor@x.com", "secret")

	rec := postForm(e, "/login", url.Values{
		"email":    {"donor@x.com"},
		"password": {"secret"},
	})
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)

	rec = get(e, "/admin/dashboard", cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestRoutes_RegisterLoginDashboardFlow(t *testing.T) {
	e, repo := newTestApp(t)

	// A donation recorded before the donor registers
	testutil.NewTestDonation(t, repo, nil, "jane@x.com", 75)

	rec := postForm(e, "/register", url.Values{
		"email":     {"jane@x.com"},
		"password":  {"secret1"},
		"full_name": {"Jane Doe"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?registered=true&linked=1", rec.Header().Get(echo.HeaderLocation))

	// The redirect target announces the linked donation
	rec = get(e, rec.Header().Get(echo.HeaderLocation))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "1 existing donation(s) have been linked")

	rec = postForm(e, "/login", url.Values{
		"email":    {"jane@x.com"},
		"password": {"secret1"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)

	// The linked donation shows up on the donor dashboard
	rec = get(e, "/dashboard", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "75.00")
}

func TestRoutes_AdminDonationLifecycle(t *testing.T) {
	e, repo := newTestApp(t)
	testutil.NewTestAdmin(t, repo, "admin@x.com", "secret")

	rec := postForm(e, "/login", url.Values{
		"email":    {"admin@x.com"},
		"password": {"secret"},
	})
	cookie := sessionCookie(rec)
	require.NotNil(t, cookie)

	// Admins land on the admin dashboard
	rec = get(e, "/dashboard", cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/dashboard", rec.Header().Get(echo.HeaderLocation))

	rec = postForm(e, "/admin/add_donation", url.Values{
		"donor_name": {"Jane Doe"},
		"email":      {"jane@x.com"},
		"amount":     {"120"},
		"purpose":    {"Building fund"},
	}, cookie)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = get(e, "/admin/dashboard", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "jane@x.com")
	assert.Contains(t, rec.Body.String(), "120.00")

	// The public page shows the donation anonymized
	rec = get(e, "/public")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), handlers.AnonymousDonorName)
	assert.NotContains(t, rec.Body.String(), "Jane Doe")
}
