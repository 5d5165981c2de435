package repositories

import (
	"context"

	"github.com/SscSPs/orgdash/internal/core/domain"
)

// OrganisationReader defines read operations for organisation data
type OrganisationReader interface {
	FindOrganisationByID(ctx context.Context, organisationID string) (*domain.Organisation, error)
	FindOrganisationByStripeCustomerID(ctx context.Context, customerID string) (*domain.Organisation, error)
}

// OrganisationWriter defines write operations for organisation data
type OrganisationWriter interface {
	SaveOrganisation(ctx context.Context, organisation domain.Organisation) error
	UpdateOrganisationName(ctx context.Context, organisationID string, name string) error
	SetStripeCustomerID(ctx context.Context, organisationID string, customerID string) error
	UpdateOrganisationSubscription(ctx context.Context, organisationID string, update domain.SubscriptionUpdate) error
}

// OrganisationRepositoryFacade combines all organisation-related repository interfaces
type OrganisationRepositoryFacade interface {
	OrganisationReader
	OrganisationWriter
}
