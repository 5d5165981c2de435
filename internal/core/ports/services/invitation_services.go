package services

import (
	"context"

	"github.com/SscSPs/orgdash/internal/core/domain"
)

// Placement is the organisation and role a new account was placed into.
type Placement struct {
	OrganisationID string
	Role           domain.Role
	// FromInvitation is true when the placement came from an accepted invitation.
	FromInvitation bool
}

// InviteResult reports a created invitation and whether its email went out.
type InviteResult struct {
	Invitation *domain.Invitation
	EmailSent  bool
	Message    string
}

// InvitationReconcilerSvc places users into organisations according to pending invitations.
type InvitationReconcilerSvc interface {
	// ReconcileOnSignUp resolves the organisation for a user being created. It must run
	// inside the sign-up transaction. A supplied but unmatched invitation is an error.
	ReconcileOnSignUp(ctx context.Context, user *domain.User, inviteID string) (*Placement, error)

	// ReconcileOnSignIn accepts a matching invitation for an existing user. Unmatched
	// invitations and existing memberships are silently ignored.
	ReconcileOnSignIn(ctx context.Context, user *domain.User, inviteID string) error

	// AcceptInvitation is the explicit accept path for a signed-in user.
	AcceptInvitation(ctx context.Context, userID, inviteID string) error
}

// InvitationManagerSvc defines owner actions on invitations.
type InvitationManagerSvc interface {
	InviteMember(ctx context.Context, inviterID, email string, role domain.Role) (*InviteResult, error)
	CancelInvitation(ctx context.Context, userID, invitationID string) error
}

// InvitationSvcFacade combines all invitation-related service interfaces
type InvitationSvcFacade interface {
	InvitationReconcilerSvc
	InvitationManagerSvc
}
