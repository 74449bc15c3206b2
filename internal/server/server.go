// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package server wires the application together and runs the HTTP
// server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"

	"codeberg.org/oliverandrich/donatetracker/internal/blobstore"
	"codeberg.org/oliverandrich/donatetracker/internal/config"
	"codeberg.org/oliverandrich/donatetracker/internal/database"
	"codeberg.org/oliverandrich/donatetracker/internal/handlers"
	"codeberg.org/oliverandrich/donatetracker/internal/repository"
	"codeberg.org/oliverandrich/donatetracker/internal/services/auth"
	"codeberg.org/oliverandrich/donatetracker/internal/services/donation"
	"codeberg.org/oliverandrich/donatetracker/internal/services/notify"
	"codeberg.org/oliverandrich/donatetracker/internal/services/reconcile"
	"codeberg.org/oliverandrich/donatetracker/internal/services/session"
	"codeberg.org/oliverandrich/donatetracker/internal/templates"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"database", cfg.Database.DSN,
		"uploads_backend", cfg.Uploads.Backend,
	)

	// Database (migrations run inside Open)
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	repo := repository.New(db)

	// Services
	authService := auth.NewService(repo)
	sessionManager := session.NewManager(repo, time.Duration(cfg.Session.MaxAge)*time.Second)
	donationService := donation.NewService(repo)
	reconcileService := reconcile.NewService(repo)

	var notifier *notify.Notifier
	if cfg.SMTP.Host != "" {
		notifier, err = notify.NewNotifier(cfg.SMTP)
		if err != nil {
			return fmt.Errorf("failed to configure notifications: %w", err)
		}
		slog.Info("donor notifications enabled", "smtp_host", cfg.SMTP.Host)
	}

	// Receipt storage
	blobs, err := newBlobStore(ctx, cfg.Uploads)
	if err != nil {
		return fmt.Errorf("failed to set up receipt storage: %w", err)
	}

	// Bootstrap: the admin account must exist before the server accepts
	// requests. Idempotent across restarts.
	if err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return fmt.Errorf("failed to ensure admin account: %w", err)
	}

	// Startup housekeeping
	if pruned, err := sessionManager.PruneExpired(ctx); err != nil {
		slog.Error("session_prune_failed", "error", err)
	} else if pruned > 0 {
		slog.Info("sessions_pruned", "count", pruned)
	}

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	renderer, err := templates.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to set up templates: %w", err)
	}
	e.Renderer = renderer

	setupMiddleware(e, cfg, sessionManager)

	h := handlers.New(handlers.Config{
		Repo:         repo,
		Auth:         authService,
		Sessions:     sessionManager,
		Donations:    donationService,
		Reconcile:    reconcileService,
		Blobs:        blobs,
		Notifier:     notifier,
		CookieName:   cfg.Session.CookieName,
		CookieMaxAge: cfg.Session.MaxAge,
	})
	setupRoutes(e, h, blobs)

	return startWithGracefulShutdown(e, cfg)
}

func newBlobStore(ctx context.Context, cfg config.UploadsConfig) (blobstore.Store, error) {
	switch cfg.Backend {
	case "", "local":
		return blobstore.NewLocal(cfg.Dir)
	case "s3":
		return blobstore.NewS3(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown uploads backend %q", cfg.Backend)
	}
}

func startWithGracefulShutdown(e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("server running", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
