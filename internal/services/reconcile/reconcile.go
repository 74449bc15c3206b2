// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package reconcile links unlinked donations to user accounts by
// matching donor emails.
package reconcile

import (
	"context"
	"errors"
	"log/slog"

	"codeberg.org/oliverandrich/donatetracker/internal/repository"
)

// Service is the reconciliation engine. Matching is exact, case-sensitive
// string equality between a donation's donor email and a user's email;
// only unlinked donations are ever touched.
type Service struct {
	repo *repository.Repository
}

// NewService creates a new reconciliation service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// LinkOnRegistration attributes all unlinked donations carrying the new
// account's email to that account. Returns how many were linked; the
// count flows into the post-registration success message. Per-donation
// failures are logged and skipped.
func (s *Service) LinkOnRegistration(ctx context.Context, email string, userID int64) (int, error) {
	donations, err := s.repo.ListUnlinkedDonationsByEmail(ctx, email)
	if err != nil {
		return 0, err
	}

	linked := 0
	for i := range donations {
		if err := s.repo.SetDonationOwner(ctx, donations[i].ID, userID); err != nil {
			slog.Error("link_failed", "donation_id", donations[i].ID, "user_id", userID, "error", err)
			continue
		}
		linked++
	}

	if linked > 0 {
		slog.Info("donations_linked", "user_id", userID, "email", email, "count", linked)
	}
	return linked, nil
}

// SweepAll walks every unlinked donation and links those whose donor
// email belongs to a registered account. Idempotent: linked donations
// leave the unlinked set, so a second run links nothing. Best-effort:
// one failing donation does not stop the sweep.
func (s *Service) SweepAll(ctx context.Context) (int, error) {
	donations, err := s.repo.ListUnlinkedDonations(ctx)
	if err != nil {
		return 0, err
	}

	linked := 0
	for i := range donations {
		d := &donations[i]

		user, err := s.repo.GetUserByEmail(ctx, d.Email)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				slog.Error("sweep_lookup_failed", "donation_id", d.ID, "error", err)
			}
			continue
		}

		if err := s.repo.SetDonationOwner(ctx, d.ID, user.ID); err != nil {
			slog.Error("link_failed", "donation_id", d.ID, "user_id", user.ID, "error", err)
			continue
		}
		linked++
	}

	if linked > 0 {
		slog.Info("sweep_complete", "count", linked)
	}
	return linked, nil
}
