// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package notify sends optional donor notification mails via SMTP.
package notify

import (
	"fmt"

	"github.com/wneessen/go-mail"

	"codeberg.org/oliverandrich/donatetracker/internal/config"
	"codeberg.org/oliverandrich/donatetracker/internal/models"
)

// Notifier sends donation confirmations to donors. A nil *Notifier is
// valid and sends nothing, so callers never have to guard the disabled
// case.
type Notifier struct {
	cfg config.SMTPConfig
}

// NewNotifier creates a notifier from the SMTP configuration. Returns an
// error when the configuration is incomplete.
func NewNotifier(cfg config.SMTPConfig) (*Notifier, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}
	return &Notifier{cfg: cfg}, nil
}

// DonationRecorded mails the donor a plain-text confirmation for a newly
// recorded donation.
func (n *Notifier) DonationRecorded(donation *models.Donation) error {
	if n == nil {
		return nil
	}

	subject := "Thank you for your donation"
	body := fmt.Sprintf(
		"Dear %s,\n\nwe have recorded your donation of %.2f for %q.\n"+
			"You can follow how it is put to use at any time on our public donations page.\n\n"+
			"Thank you for your support!\n",
		donation.DonorName, donation.Amount, donation.Purpose)

	return n.send(donation.Email, subject, body)
}

func (n *Notifier) send(to, subject, body string) error {
	msg := mail.NewMsg()

	if n.cfg.FromName != "" {
		if err := msg.FromFormat(n.cfg.FromName, n.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(n.cfg.From); err != nil {
			return fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("setting to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
	}

	if n.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// Implicit TLS (SSL) for port 465, STARTTLS for others
		if n.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if n.cfg.Username != "" && n.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}

	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating SMTP client: %w", err)
	}

	return client.DialAndSend(msg)
}
