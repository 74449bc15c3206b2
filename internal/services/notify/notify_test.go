// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package notify_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeberg.org/oliverandrich/donatetracker/internal/config"
	"codeberg.org/oliverandrich/donatetracker/internal/models"
	"codeberg.org/oliverandrich/donatetracker/internal/services/notify"
)

func TestNewNotifier(t *testing.T) {
	notifier, err := notify.NewNotifier(config.SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "donations@example.com",
	})

	require.NoError(t, err)
	assert.NotNil(t, notifier)
}

func TestNewNotifier_MissingHost(t *testing.T) {
	_, err := notify.NewNotifier(config.SMTPConfig{From: "donations@example.com"})

	assert.Error(t, err)
}

func TestNewNotifier_MissingFrom(t *testing.T) {
	_, err := notify.NewNotifier(config.SMTPConfig{Host: "smtp.example.com"})

	assert.Error(t, err)
}

func TestDonationRecorded_NilNotifier(t *testing.T) {
	var notifier *notify.Notifier

	err := notifier.DonationRecorded(&models.Donation{
		DonorName: "Jane Doe",
		Email:     "jane@x.com",
		Amount:    10,
	})

	assert.NoError(t, err)
}
