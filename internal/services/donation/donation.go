// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package donation implements the donation ledger.
package donation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"codeberg.org/oliverandrich/donatetracker/internal/models"
	"codeberg.org/oliverandrich/donatetracker/internal/repository"
)

// ErrNegativeAmount is returned when a donation amount is negative.
var ErrNegativeAmount = errors.New("amount must be non-negative")

// Service implements the donation ledger on top of the repository.
type Service struct {
	repo *repository.Repository
}

// NewService creates a new donation service.
func NewService(repo *repository.Repository) *Service {
	return &Service{repo: repo}
}

// RecordParams holds the fields of a new donation record.
type RecordParams struct { //nolint:govet // fieldalignment not critical
	UserID          *int64 // nil = unlinked
	DonorName       string
	Email           string
	Amount          float64
	Purpose         string
	Status          string
	UsageDetails    string
	ReceiptFilename string
}

// Record persists a new donation. Status defaults to "received"; the
// amount must be non-negative. Purpose and usage details accept
// arbitrary text.
func (s *Service) Record(ctx context.Context, params RecordParams) (*models.Donation, error) {
	if params.Amount < 0 {
		return nil, ErrNegativeAmount
	}
	if params.Status == "" {
		params.Status = models.StatusReceived
	}

	now := time.Now().UTC()
	donation := &models.Donation{
		UserID:          params.UserID,
		DonorName:       params.DonorName,
		Email:           params.Email,
		Amount:          params.Amount,
		Status:          params.Status,
		Purpose:         params.Purpose,
		UsageDetails:    params.UsageDetails,
		ReceiptFilename: params.ReceiptFilename,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.CreateDonation(ctx, donation); err != nil {
		return nil, fmt.Errorf("failed to create donation: %w", err)
	}

	slog.Info("donation_recorded", "donation_id", donation.ID, "amount", donation.Amount, "linked", donation.Linked())
	return donation, nil
}

// UpdateStatusAndUsage sets status and usage details of a donation.
// Updating a nonexistent ID is a silent no-op.
func (s *Service) UpdateStatusAndUsage(ctx context.Context, id int64, status, usageDetails string) error {
	if err := s.repo.UpdateDonationStatus(ctx, id, status, usageDetails); err != nil {
		return fmt.Errorf("failed to update donation: %w", err)
	}
	return nil
}

// ListForAccount returns the donations linked to a user, newest first.
func (s *Service) ListForAccount(ctx context.Context, userID int64) ([]models.Donation, error) {
	return s.repo.ListDonationsForUser(ctx, userID)
}

// ListAll returns every donation, newest first.
func (s *Service) ListAll(ctx context.Context) ([]models.Donation, error) {
	return s.repo.ListAllDonations(ctx)
}

// ListUnlinked returns donations not attributed to any user.
func (s *Service) ListUnlinked(ctx context.Context) ([]models.Donation, error) {
	return s.repo.ListUnlinkedDonations(ctx)
}

// Stats are the aggregate figures shown on the admin dashboard. They are
// derived from the current donation list on every request; nothing is
// cached.
type Stats struct {
	TotalCount    int     `json:"total_count"`
	TotalAmount   float64 `json:"total_amount"`
	UsedCount     int     `json:"used_count"`
	UnlinkedCount int     `json:"unlinked_count"`
}

// ComputeStats derives the dashboard statistics from a donation list.
func ComputeStats(donations []models.Donation) Stats {
	var stats Stats
	stats.TotalCount = len(donations)
	for i := range donations {
		d := &donations[i]
		stats.TotalAmount += d.Amount
		if d.Status == models.StatusUsed {
			stats.UsedCount++
		}
		if !d.Linked() {
			stats.UnlinkedCount++
		}
	}
	return stats
}
