// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/donatetracker/internal/models"
)

// CreateDonation inserts a new donation record and assigns its ID.
func (r *Repository) CreateDonation(ctx context.Context, donation *models.Donation) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO donations (user_id, donor_name, email, amount, status, purpose, usage_details, receipt_filename, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		donation.UserID, donation.DonorName, donation.Email, donation.Amount,
		donation.Status, donation.Purpose, donation.UsageDetails, donation.ReceiptFilename,
		donation.CreatedAt, donation.UpdatedAt)
	if err != nil {
		return err
	}

	donation.ID, err = res.LastInsertId()
	return err
}

// GetDonationByID retrieves a donation by its ID.
func (r *Repository) GetDonationByID(ctx context.Context, id int64) (*models.Donation, error) {
	var donation models.Donation
	if err := r.db.GetContext(ctx, &donation, `SELECT * FROM donations WHERE id = ?`, id); err != nil {
		return nil, wrapError(err)
	}
	return &donation, nil
}

// UpdateDonationStatus sets status and usage details and touches
// updated_at. A missing ID is a silent no-op, mirroring the best-effort
// update contract of the admin dashboard.
func (r *Repository) UpdateDonationStatus(ctx context.Context, id int64, status, usageDetails string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE donations SET status = ?, usage_details = ?, updated_at = ? WHERE id = ?`,
		status, usageDetails, time.Now().UTC(), id)
	return err
}

// ListDonationsForUser returns all donations linked to the user, newest
// first.
func (r *Repository) ListDonationsForUser(ctx context.Context, userID int64) ([]models.Donation, error) {
	var donations []models.Donation
	err := r.db.SelectContext(ctx, &donations,
		`SELECT * FROM donations WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return donations, nil
}

// ListAllDonations returns every donation, newest first.
func (r *Repository) ListAllDonations(ctx context.Context) ([]models.Donation, error) {
	var donations []models.Donation
	err := r.db.SelectContext(ctx, &donations,
		`SELECT * FROM donations ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return donations, nil
}

// ListUnlinkedDonations returns donations without an owning user.
func (r *Repository) ListUnlinkedDonations(ctx context.Context) ([]models.Donation, error) {
	var donations []models.Donation
	err := r.db.SelectContext(ctx, &donations,
		`SELECT * FROM donations WHERE user_id IS NULL ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	return donations, nil
}

// ListUnlinkedDonationsByEmail returns unlinked donations with the given
// donor email (exact, case-sensitive match).
func (r *Repository) ListUnlinkedDonationsByEmail(ctx context.Context, email string) ([]models.Donation, error) {
	var donations []models.Donation
	err := r.db.SelectContext(ctx, &donations,
		`SELECT * FROM donations WHERE user_id IS NULL AND email = ? ORDER BY created_at DESC, id DESC`, email)
	if err != nil {
		return nil, err
	}
	return donations, nil
}

// SetDonationOwner links a donation to a user. Used exclusively by the
// reconciliation engine.
func (r *Repository) SetDonationOwner(ctx context.Context, donationID, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE donations SET user_id = ?, updated_at = ? WHERE id = ?`,
		userID, time.Now().UTC(), donationID)
	return err
}
