package repositories

import (
	"context"

	"github.com/SscSPs/orgdash/internal/core/domain"
)

// MembershipReader defines read operations for organisation memberships
type MembershipReader interface {
	// FindFirstMembershipByUserID returns the user's earliest membership.
	// A user is expected to belong to one organisation; this is the single first-match lookup.
	FindFirstMembershipByUserID(ctx context.Context, userID string) (*domain.OrganisationMember, error)

	// FindMembership returns the membership of userID in organisationID.
	FindMembership(ctx context.Context, userID, organisationID string) (*domain.OrganisationMember, error)

	// IsEmailMemberOfOrganisation reports whether an active user with email belongs to the organisation.
	IsEmailMemberOfOrganisation(ctx context.Context, email, organisationID string) (bool, error)

	// ListMembersByOrganisationID returns memberships joined with user details.
	ListMembersByOrganisationID(ctx context.Context, organisationID string) ([]domain.OrganisationMemberDetail, error)
}

// MembershipWriter defines write operations for organisation memberships
type MembershipWriter interface {
	// AddMember inserts a membership. It returns false when the (user, organisation) pair already exists.
	AddMember(ctx context.Context, member domain.OrganisationMember) (bool, error)

	// DeleteMember deletes a membership by id, scoped to organisationID.
	DeleteMember(ctx context.Context, memberID, organisationID string) error

	// DeleteMembershipByUser deletes the user's membership in organisationID.
	DeleteMembershipByUser(ctx context.Context, userID, organisationID string) error
}

// MembershipRepositoryFacade combines all membership-related repository interfaces
type MembershipRepositoryFacade interface {
	MembershipReader
	MembershipWriter
}
