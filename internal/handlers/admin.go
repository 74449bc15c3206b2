// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"codeberg.org/oliverandrich/donatetracker/internal/blobstore"
	"codeberg.org/oliverandrich/donatetracker/internal/repository"
	"codeberg.org/oliverandrich/donatetracker/internal/services/donation"
)

// AdminDashboard shows all donations, the donor directory and the
// derived statistics. Statistics are recomputed from the full listing on
// every request.
func (h *Handlers) AdminDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	donations, err := h.donations.ListAll(ctx)
	if err != nil {
		slog.Error("admin_dashboard_error", "error", err)
		return c.String(http.StatusInternalServerError, retryMessage)
	}

	donors, err := h.repo.ListDonors(ctx)
	if err != nil {
		slog.Error("admin_dashboard_error", "error", err)
		return c.String(http.StatusInternalServerError, retryMessage)
	}

	return c.Render(http.StatusOK, "admin_dashboard.html", map[string]any{
		"Donations": donations,
		"Donors":    donors,
		"Stats":     donation.ComputeStats(donations),
	})
}

// AddDonationPage renders the donation entry form.
func (h *Handlers) AddDonationPage(c echo.Context) error {
	return c.Render(http.StatusOK, "admin_add_donation.html", map[string]any{})
}

// AddDonation records a new donation. The receipt, when present, is
// stored before the donation row is written: an interrupted upload
// leaves no donation record behind. A donor account with a matching
// email pre-links the donation.
func (h *Handlers) AddDonation(c echo.Context) error {
	ctx := c.Request().Context()

	donorName := c.FormValue("donor_name")
	email := c.FormValue("email")
	amountRaw := c.FormValue("amount")
	purpose := c.FormValue("purpose")
	status := c.FormValue("status")
	usageDetails := c.FormValue("usage_details")

	renderError := func(msg string) error {
		return c.Render(http.StatusOK, "admin_add_donation.html", map[string]any{
			"Error":        msg,
			"DonorName":    donorName,
			"Email":        email,
			"Amount":       amountRaw,
			"Purpose":      purpose,
			"UsageDetails": usageDetails,
		})
	}

	if donorName == "" || email == "" || amountRaw == "" || purpose == "" {
		return renderError("Donor name, email, amount and purpose are required")
	}

	amount, err := strconv.ParseFloat(amountRaw, 64)
	if err != nil || amount < 0 {
		return renderError("Amount must be a non-negative number")
	}

	// Store the receipt first; no donation row exists until the upload
	// has succeeded.
	receiptRef := ""
	if file, err := c.FormFile("receipt"); err == nil && file.Filename != "" {
		src, err := file.Open()
		if err != nil {
			slog.Error("receipt_open_failed", "error", err)
			return renderError("Receipt upload failed. Please try again.")
		}
		defer src.Close()

		receiptRef, err = h.blobs.Save(ctx, blobstore.Filename(time.Now(), file.Filename), src)
		if err != nil {
			slog.Error("receipt_store_failed", "error", err)
			return renderError("Receipt upload failed. Please try again.")
		}
	}

	// Pre-link when a donor account with this email already exists.
	var ownerID *int64
	donor, err := h.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		ownerID = &donor.ID
	case !errors.Is(err, repository.ErrNotFound):
		slog.Error("donor_lookup_failed", "email", email, "error", err)
		return renderError(retryMessage)
	}

	recorded, err := h.donations.Record(ctx, donation.RecordParams{
		UserID:          ownerID,
		DonorName:       donorName,
		Email:           email,
		Amount:          amount,
		Purpose:         purpose,
		Status:          status,
		UsageDetails:    usageDetails,
		ReceiptFilename: receiptRef,
	})
	if err != nil {
		if errors.Is(err, donation.ErrNegativeAmount) {
			return renderError("Amount must be a non-negative number")
		}
		slog.Error("donation_record_failed", "error", err)
		return renderError(retryMessage)
	}

	// Notification is best-effort and never fails the request.
	if err := h.notifier.DonationRecorded(recorded); err != nil {
		slog.Error("donor_notification_failed", "donation_id", recorded.ID, "error", err)
	}

	return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

// UpdateDonation sets status and usage details of a donation. Updates of
// unknown IDs are a silent no-op.
func (h *Handlers) UpdateDonation(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
	}

	status := c.FormValue("status")
	usageDetails := c.FormValue("usage_details")

	if err := h.donations.UpdateStatusAndUsage(c.Request().Context(), id, status, usageDetails); err != nil {
		slog.Error("donation_update_failed", "donation_id", id, "error", err)
	}

	return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}

// LinkDonations triggers a full reconciliation sweep.
func (h *Handlers) LinkDonations(c echo.Context) error {
	linked, err := h.reconcile.SweepAll(c.Request().Context())
	if err != nil {
		slog.Error("sweep_failed", "error", err)
	} else if linked > 0 {
		slog.Info("admin_sweep", "linked", linked)
	}

	return c.Redirect(http.StatusSeeOther, "/admin/dashboard")
}
