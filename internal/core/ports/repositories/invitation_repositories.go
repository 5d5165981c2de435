package repositories

import (
	"context"

	"github.com/SscSPs/orgdash/internal/core/domain"
)

// InvitationReader defines read operations for invitations
type InvitationReader interface {
	// FindPendingInvitationForEmail returns the invitation matching (id, email, status=pending).
	// When forUpdate is true the row is locked for the surrounding transaction.
	FindPendingInvitationForEmail(ctx context.Context, invitationID, email string, forUpdate bool) (*domain.Invitation, error)

	// FindPendingInvitationInOrganisation returns the pending invitation with id in organisationID.
	FindPendingInvitationInOrganisation(ctx context.Context, invitationID, organisationID string) (*domain.Invitation, error)

	// HasPendingInvitation reports whether a pending invitation exists for (organisation, email).
	HasPendingInvitation(ctx context.Context, organisationID, email string) (bool, error)

	// ListPendingInvitations returns the organisation's pending invitations.
	ListPendingInvitations(ctx context.Context, organisationID string) ([]domain.Invitation, error)
}

// InvitationWriter defines write operations for invitations
type InvitationWriter interface {
	SaveInvitation(ctx context.Context, invitation domain.Invitation) error

	// MarkInvitationAccepted moves a pending invitation to accepted.
	// It returns false when the invitation was no longer pending.
	MarkInvitationAccepted(ctx context.Context, invitationID string) (bool, error)

	DeleteInvitation(ctx context.Context, invitationID string) error
}

// InvitationRepositoryFacade combines all invitation-related repository interfaces
type InvitationRepositoryFacade interface {
	InvitationReader
	InvitationWriter
}
