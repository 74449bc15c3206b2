// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/oliverandrich/donatetracker/internal/middleware"
	"codeberg.org/oliverandrich/donatetracker/internal/services/auth"
)

// LoginPage renders the login form. Query parameters set by earlier
// redirects are turned into success messages.
func (h *Handlers) LoginPage(c echo.Context) error {
	var success string
	switch {
	case c.QueryParam("registered") != "":
		var linked int
		fmt.Sscanf(c.QueryParam("linked"), "%d", &linked) //nolint:errcheck // zero on parse failure is fine
		if linked > 0 {
			success = fmt.Sprintf("Account created successfully! %d existing donation(s) have been linked to your account.", linked)
		} else {
			success = "Account created successfully! You can now login."
		}
	case c.QueryParam("password_changed") != "":
		success = "Password changed successfully! Please login with your new password."
	}

	return c.Render(http.StatusOK, "login.html", map[string]any{
		"Success": success,
	})
}

// Login authenticates the user and issues a session cookie.
func (h *Handlers) Login(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	if email == "" || password == "" {
		return c.Render(http.StatusOK, "login.html", map[string]any{
			"Error": "Email and password are required",
			"Email": email,
		})
	}

	user, err := h.auth.Login(c.Request().Context(), email, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return c.Render(http.StatusOK, "login.html", map[string]any{
				"Error": "Invalid credentials",
				"Email": email,
			})
		}
		slog.Error("login_error", "error", err)
		return c.Render(http.StatusOK, "login.html", map[string]any{
			"Error": retryMessage,
			"Email": email,
		})
	}

	token, err := h.sessions.Issue(c.Request().Context(), user.ID)
	if err != nil {
		slog.Error("session_issue_failed", "user_id", user.ID, "error", err)
		return c.Render(http.StatusOK, "login.html", map[string]any{
			"Error": "Login failed. Please try again.",
			"Email": email,
		})
	}

	h.setAuthCookie(c, token)
	return c.Redirect(http.StatusSeeOther, "/dashboard")
}

// RegisterPage renders the registration form.
func (h *Handlers) RegisterPage(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", map[string]any{})
}

// Register creates a donor account and links any existing donations
// recorded under the same email.
func (h *Handlers) Register(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	fullName := c.FormValue("full_name")

	renderError := func(msg string) error {
		return c.Render(http.StatusOK, "register.html", map[string]any{
			"Error":    msg,
			"Email":    email,
			"FullName": fullName,
		})
	}

	if email == "" || password == "" || fullName == "" {
		return renderError("All fields are required")
	}
	if len(password) < auth.MinPasswordLength {
		return renderError(fmt.Sprintf("Password must be at least %d characters long", auth.MinPasswordLength))
	}

	user, err := h.auth.Register(c.Request().Context(), email, password, fullName)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateEmail) {
			return renderError("Email already registered")
		}
		slog.Error("register_error", "error", err)
		return renderError("Registration failed. Please try again.")
	}

	// Auto-link existing donations; a failed linking pass must not fail
	// the registration.
	linked, err := h.reconcile.LinkOnRegistration(c.Request().Context(), email, user.ID)
	if err != nil {
		slog.Error("link_on_registration_failed", "user_id", user.ID, "error", err)
	}

	return c.Redirect(http.StatusSeeOther, fmt.Sprintf("/login?registered=true&linked=%d", linked))
}

// ChangePasswordPage renders the password change form.
func (h *Handlers) ChangePasswordPage(c echo.Context) error {
	return c.Render(http.StatusOK, "change_password.html", map[string]any{})
}

// ChangePassword updates the password and revokes every session of the
// account, forcing re-authentication.
func (h *Handlers) ChangePassword(c echo.Context) error {
	user := middleware.UserFromContext(c)

	currentPassword := c.FormValue("current_password")
	newPassword := c.FormValue("new_password")
	confirmPassword := c.FormValue("confirm_password")

	renderError := func(msg string) error {
		return c.Render(http.StatusOK, "change_password.html", map[string]any{
			"Error": msg,
		})
	}

	if newPassword != confirmPassword {
		return renderError("New passwords do not match")
	}
	if len(newPassword) < auth.MinPasswordLength {
		return renderError(fmt.Sprintf("New password must be at least %d characters long", auth.MinPasswordLength))
	}

	if err := h.auth.ChangePassword(c.Request().Context(), user.ID, currentPassword, newPassword); err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return renderError("Current password is incorrect")
		}
		slog.Error("change_password_error", "user_id", user.ID, "error", err)
		return renderError("Password change failed. Please try again.")
	}

	if err := h.sessions.RevokeAll(c.Request().Context(), user.ID); err != nil {
		slog.Error("session_revoke_failed", "user_id", user.ID, "error", err)
	}

	h.clearAuthCookie(c)
	return c.Redirect(http.StatusSeeOther, "/login?password_changed=true")
}

// Logout clears the authentication cookie. The server-side session is
// left to expire naturally.
func (h *Handlers) Logout(c echo.Context) error {
	h.clearAuthCookie(c)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handlers) setAuthCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   h.cookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
