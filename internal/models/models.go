// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package models defines the persisted record types.
package models

import (
	"time"
)

// User is a registered donor or administrator identity.
type User struct { //nolint:govet // fieldalignment not critical for models
	ID           int64     `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Session is a server-issued proof of authentication, bound to one user
// and time-limited. The token is opaque and never interpreted.
type Session struct { //nolint:govet // fieldalignment not critical for models
	ID        string    `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Token     string    `db:"token" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expires_at"`
}

// Donation statuses. Transitions are not constrained; administrators
// set the status directly.
const (
	StatusReceived  = "received"
	StatusAllocated = "allocated"
	StatusUsed      = "used"
)

// Donation is a recorded contribution, optionally attributed to a user.
// UserID is nil while the donation is unlinked; the donor email is always
// present so the reconciliation engine can attribute it later.
type Donation struct { //nolint:govet // fieldalignment not critical for models
	ID              int64     `db:"id" json:"id"`
	UserID          *int64    `db:"user_id" json:"user_id,omitempty"`
	DonorName       string    `db:"donor_name" json:"donor_name"`
	Email           string    `db:"email" json:"email"`
	Amount          float64   `db:"amount" json:"amount"`
	Status          string    `db:"status" json:"status"`
	Purpose         string    `db:"purpose" json:"purpose"`
	UsageDetails    string    `db:"usage_details" json:"usage_details"`
	ReceiptFilename string    `db:"receipt_filename" json:"receipt_filename,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Linked reports whether the donation is attributed to a user account.
func (d *Donation) Linked() bool {
	return d.UserID != nil
}
