// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"codeberg.org/oliverandrich/donatetracker/internal/middleware"
)

// Dashboard shows a donor their own donations. Admins are redirected to
// the admin dashboard.
func (h *Handlers) Dashboard(c echo.Context) error {
	user := middleware.UserFromContext(c)
	if user.IsAdmin {
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}

	donations, err := h.donations.ListForAccount(c.Request().Context(), user.ID)
	if err != nil {
		slog.Error("dashboard_error", "user_id", user.ID, "error", err)
		return c.String(http.StatusInternalServerError, retryMessage)
	}

	return c.Render(http.StatusOK, "dashboard.html", map[string]any{
		"User":      user,
		"Donations": donations,
	})
}
