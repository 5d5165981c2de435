package services

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/SscSPs/orgdash/internal/core/domain"
	"github.com/SscSPs/orgdash/internal/core/ports/gateways"
	portssvc "github.com/SscSPs/orgdash/internal/core/ports/services"
)

// NotificationSettings are the addresses and links used when composing emails.
type NotificationSettings struct {
	// BaseURL is the public URL of this API, used for the activation link.
	BaseURL string
	// FrontendBaseURL is the public URL of the web app, used for invitation links.
	FrontendBaseURL string
	// ContactEmail receives contact form submissions.
	ContactEmail string
}

type notificationService struct {
	BaseService
	mailer   gateways.Mailer
	settings NotificationSettings
}

// NewNotificationService creates a notification service sending through mailer.
func NewNotificationService(mailer gateways.Mailer, settings NotificationSettings) portssvc.NotificationSvc {
	return &notificationService{mailer: mailer, settings: settings}
}

var _ portssvc.NotificationSvc = (*notificationService)(nil)

func (s *notificationService) IsEnabled() bool {
	return s.mailer != nil && s.mailer.Enabled()
}

func (s *notificationService) SendActivationEmail(ctx context.Context, email, token string) bool {
	if !s.IsEnabled() {
		return false
	}

	activationURL := s.settings.BaseURL + "/api/v1/auth/activate?token=" + url.QueryEscape(token)
	html, err := renderEmail(activationTmpl, activationEmailData{URL: activationURL})
	if err != nil {
		s.LogError(ctx, err, "Failed to render activation email")
		return false
	}

	return s.send(ctx, gateways.Email{
		To:      []string{email},
		Subject: "Activate your account",
		HTML:    html,
	}, "activation")
}

func (s *notificationService) SendInvitationEmail(ctx context.Context, email, organisationName string, role domain.Role, inviteID string, inviterName *string) bool {
	if !s.IsEnabled() {
		return false
	}

	data := invitationEmailData{
		URL:              s.settings.FrontendBaseURL + "/sign-up?inviteId=" + url.QueryEscape(inviteID),
		OrganisationName: organisationName,
		Role:             string(role),
	}
	if inviterName != nil {
		data.InviterName = *inviterName
	}
	html, err := renderEmail(invitationTmpl, data)
	if err != nil {
		s.LogError(ctx, err, "Failed to render invitation email")
		return false
	}

	return s.send(ctx, gateways.Email{
		To:      []string{email},
		Subject: "You've been invited to join " + organisationName,
		HTML:    html,
	}, "invitation")
}

func (s *notificationService) SendContactEmail(ctx context.Context, name, email, subject, message string) error {
	if !s.IsEnabled() {
		return ErrEmailDisabled
	}

	html, err := renderEmail(contactTmpl, contactEmailData{Name: name, Email: email, Subject: subject, Message: message})
	if err != nil {
		s.LogError(ctx, err, "Failed to render contact email")
		return err
	}

	err = s.mailer.Send(ctx, gateways.Email{
		To:      []string{s.settings.ContactEmail},
		ReplyTo: email,
		Subject: "Contact Form: " + subject,
		HTML:    html,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to send contact email")
		return err
	}
	return nil
}

func (s *notificationService) send(ctx context.Context, email gateways.Email, kind string) bool {
	if err := s.mailer.Send(ctx, email); err != nil {
		s.LogError(ctx, err, "Failed to send email", slog.String("kind", kind))
		return false
	}
	s.LogInfo(ctx, "Email sent", slog.String("kind", kind))
	return true
}
