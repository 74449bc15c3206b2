// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// AnonymousDonorName replaces donor names on the public listing.
const AnonymousDonorName = "Anonymous Donor"

// PublicDonation is the anonymized view of a donation. It carries no
// donor identity and no account linkage.
type PublicDonation struct { //nolint:govet // fieldalignment not critical
	DonorName    string    `json:"donor_name"`
	Amount       float64   `json:"amount"`
	Purpose      string    `json:"purpose"`
	Status       string    `json:"status"`
	UsageDetails string    `json:"usage_details"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public renders the anonymized public donation listing.
func (h *Handlers) Public(c echo.Context) error {
	donations, err := h.donations.ListAll(c.Request().Context())
	if err != nil {
		slog.Error("public_listing_error", "error", err)
		return c.String(http.StatusInternalServerError, retryMessage)
	}

	anonymized := make([]PublicDonation, 0, len(donations))
	for i := range donations {
		d := &donations[i]
		anonymized = append(anonymized, PublicDonation{
			DonorName:    AnonymousDonorName,
			Amount:       d.Amount,
			Purpose:      d.Purpose,
			Status:       d.Status,
			UsageDetails: d.UsageDetails,
			CreatedAt:    d.CreatedAt,
		})
	}

	return c.Render(http.StatusOK, "public.html", map[string]any{
		"Donations": anonymized,
	})
}
