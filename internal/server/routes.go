// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"github.com/labstack/echo/v4"

	"codeberg.org/oliverandrich/donatetracker/internal/blobstore"
	"codeberg.org/oliverandrich/donatetracker/internal/handlers"
	appmw "codeberg.org/oliverandrich/donatetracker/internal/middleware"
)

func setupRoutes(e *echo.Echo, h *handlers.Handlers, blobs blobstore.Store) {
	// Static assets
	e.Static("/static", "static")

	// Receipts are served statically with the local backend. The S3
	// backend serves from the bucket.
	if local, ok := blobs.(*blobstore.Local); ok {
		e.Static("/uploads", local.Dir())
	}

	// Public routes
	e.GET("/health", h.Health)
	e.GET("/", h.Home)
	e.GET("/login", h.LoginPage)
	e.POST("/login", h.Login)
	e.GET("/register", h.RegisterPage)
	e.POST("/register", h.Register)
	e.GET("/public", h.Public)
	e.GET("/logout", h.Logout)

	// Donor routes
	e.GET("/dashboard", h.Dashboard, appmw.RequireAuth)
	e.GET("/change_password", h.ChangePasswordPage, appmw.RequireAuth)
	e.POST("/change_password", h.ChangePassword, appmw.RequireAuth)

	// Admin routes
	admin := e.Group("/admin", appmw.RequireAdmin)
	admin.GET("/dashboard", h.AdminDashboard)
	admin.GET("/add_donation", h.AddDonationPage)
	admin.POST("/add_donation", h.AddDonation)
	admin.POST("/update_donation/:id", h.UpdateDonation)
	admin.POST("/link_donations", h.LinkDonations)
}
