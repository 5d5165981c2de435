package services

import (
	"context"

	"github.com/SscSPs/orgdash/internal/core/domain"
)

// OrganisationReaderSvc defines read operations for the caller's organisation.
type OrganisationReaderSvc interface {
	// GetOrganisationForUser returns the user's organisation with members and pending invitations.
	GetOrganisationForUser(ctx context.Context, userID string) (*domain.OrganisationWithMembers, error)

	// GetUserOrganisationRole returns the user's role, or nil without a membership.
	GetUserOrganisationRole(ctx context.Context, userID string) (*domain.Role, error)

	// GetMembershipForUser returns the user's first membership.
	GetMembershipForUser(ctx context.Context, userID string) (*domain.OrganisationMember, error)
}

// OrganisationWriterSvc defines owner actions on the organisation.
type OrganisationWriterSvc interface {
	UpdateOrganisationName(ctx context.Context, userID, name string) (*domain.Organisation, error)
	RemoveOrganisationMember(ctx context.Context, userID, memberID string) error
}

// OrganisationAuthorizerSvc checks organisation-scoped permissions.
type OrganisationAuthorizerSvc interface {
	// AuthorizeUserAction returns the caller's membership if their role satisfies requiredRole.
	AuthorizeUserAction(ctx context.Context, userID string, requiredRole domain.Role) (*domain.OrganisationMember, error)
}

// OrganisationSvcFacade combines all organisation-related service interfaces
type OrganisationSvcFacade interface {
	OrganisationReaderSvc
	OrganisationWriterSvc
	OrganisationAuthorizerSvc
}
