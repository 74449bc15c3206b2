// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package handlers contains the HTTP handlers.
package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/oliverandrich/donatetracker/internal/blobstore"
	"codeberg.org/oliverandrich/donatetracker/internal/repository"
	"codeberg.org/oliverandrich/donatetracker/internal/services/auth"
	"codeberg.org/oliverandrich/donatetracker/internal/services/donation"
	"codeberg.org/oliverandrich/donatetracker/internal/services/notify"
	"codeberg.org/oliverandrich/donatetracker/internal/services/reconcile"
	"codeberg.org/oliverandrich/donatetracker/internal/services/session"
)

// retryMessage is shown for transient datastore failures.
const retryMessage = "Something went wrong. Please try again later."

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct { //nolint:govet // fieldalignment not critical
	repo      *repository.Repository
	auth      *auth.Service
	sessions  *session.Manager
	donations *donation.Service
	reconcile *reconcile.Service
	blobs     blobstore.Store
	notifier  *notify.Notifier // nil when notifications are disabled

	cookieName   string
	cookieMaxAge int // seconds
}

// Config bundles the handler dependencies.
type Config struct { //nolint:govet // fieldalignment not critical
	Repo         *repository.Repository
	Auth         *auth.Service
	Sessions     *session.Manager
	Donations    *donation.Service
	Reconcile    *reconcile.Service
	Blobs        blobstore.Store
	Notifier     *notify.Notifier
	CookieName   string
	CookieMaxAge int
}

// New creates a new Handlers instance.
func New(cfg Config) *Handlers {
	return &Handlers{
		repo:         cfg.Repo,
		auth:         cfg.Auth,
		sessions:     cfg.Sessions,
		donations:    cfg.Donations,
		reconcile:    cfg.Reconcile,
		blobs:        cfg.Blobs,
		notifier:     cfg.Notifier,
		cookieName:   cfg.CookieName,
		cookieMaxAge: cfg.CookieMaxAge,
	}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Home renders the landing page.
func (h *Handlers) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", nil)
}
