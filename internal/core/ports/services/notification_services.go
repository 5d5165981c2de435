package services

import (
	"context"

	"github.com/SscSPs/orgdash/internal/core/domain"
)

// NotificationSvc sends the transactional emails of the application.
// The bool-returning senders never fail the calling workflow.
type NotificationSvc interface {
	IsEnabled() bool
	SendActivationEmail(ctx context.Context, email, token string) bool
	SendInvitationEmail(ctx context.Context, email, organisationName string, role domain.Role, inviteID string, inviterName *string) bool
	SendContactEmail(ctx context.Context, name, email, subject, message string) error
}
