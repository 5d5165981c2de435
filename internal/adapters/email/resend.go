// Package email sends transactional email through Resend.
package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/orgdash/internal/core/ports/gateways"
	"github.com/resend/resend-go/v2"
)

// ErrDisabled is returned by Send when the mailer is switched off.
var ErrDisabled = errors.New("email sending is disabled")

// ResendMailer implements gateways.Mailer.
type ResendMailer struct {
	client  *resend.Client
	from    string
	enabled bool
}

// NewResendMailer returns a mailer that is enabled only when enabled is true and apiKey is set.
func NewResendMailer(enabled bool, apiKey, from string) *ResendMailer {
	m := &ResendMailer{from: from, enabled: enabled && apiKey != ""}
	if m.enabled {
		m.client = resend.NewClient(apiKey)
	}
	return m
}

var _ gateways.Mailer = (*ResendMailer)(nil)

func (m *ResendMailer) Enabled() bool {
	return m != nil && m.enabled
}

func (m *ResendMailer) Send(ctx context.Context, email gateways.Email) error {
	if !m.Enabled() {
		return ErrDisabled
	}
	req := &resend.SendEmailRequest{
		From:    m.from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		ReplyTo: email.ReplyTo,
	}
	if _, err := m.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}
