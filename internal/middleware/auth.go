// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package middleware provides authentication middleware for Echo.
package middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/oliverandrich/donatetracker/internal/models"
	"codeberg.org/oliverandrich/donatetracker/internal/services/session"
)

// userContextKey is the Echo context key the resolved user is stored
// under.
const userContextKey = "user"

// LoadUser resolves the authentication cookie through the session
// manager and stores the user in the request context. Missing or invalid
// tokens simply leave the context without a user.
func LoadUser(cookieName string, sessions *session.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			user, err := sessions.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, session.ErrNoSession) {
					slog.Error("session_resolve_failed", "error", err)
				}
				return next(c)
			}

			SetUser(c, user)
			return next(c)
		}
	}
}

// SetUser stores the authenticated user in the request context.
func SetUser(c echo.Context, user *models.User) {
	c.Set(userContextKey, user)
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

// RequireAuth redirects unauthenticated requests to the login page.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if UserFromContext(c) == nil {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return next(c)
	}
}

// RequireAdmin redirects requests without an admin session to the login
// page. Non-admin sessions get the same redirect as missing ones.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := UserFromContext(c)
		if user == nil || !user.IsAdmin {
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return next(c)
	}
}
