package pgsql

import (
	"context"

	"github.com/SscSPs/orgdash/internal/apperrors"
	"github.com/SscSPs/orgdash/internal/core/domain"
	portsrepo "github.com/SscSPs/orgdash/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrganisationRepository struct {
	BaseRepository
}

func newPgxOrganisationRepository(pool *pgxpool.Pool) portsrepo.OrganisationRepositoryFacade {
	return &PgxOrganisationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OrganisationRepositoryFacade = (*PgxOrganisationRepository)(nil)

const selectOrganisationQuery = `
	SELECT organisation_id, name, stripe_customer_id, stripe_subscription_id, stripe_product_id,
		plan_name, subscription_status, created_at, updated_at
	FROM organisations
`

func (r *PgxOrganisationRepository) getOrganisation(ctx context.Context, filter string, args ...any) (*domain.Organisation, error) {
	rows, err := r.db(ctx).Query(ctx, selectOrganisationQuery+filter, args...)
	if err != nil {
		return nil, mapError(err, "query organisation")
	}
	org, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Organisation])
	if err != nil {
		return nil, mapError(err, "collect organisation")
	}
	return &org, nil
}

func (r *PgxOrganisationRepository) FindOrganisationByID(ctx context.Context, organisationID string) (*domain.Organisation, error) {
	return r.getOrganisation(ctx, `WHERE organisation_id = $1`, organisationID)
}

func (r *PgxOrganisationRepository) FindOrganisationByStripeCustomerID(ctx context.Context, customerID string) (*domain.Organisation, error) {
	return r.getOrganisation(ctx, `WHERE stripe_customer_id = $1`, customerID)
}

func (r *PgxOrganisationRepository) SaveOrganisation(ctx context.Context, organisation domain.Organisation) error {
	query := `
		INSERT INTO organisations (organisation_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		organisation.OrganisationID,
		organisation.Name,
		organisation.CreatedAt,
		organisation.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "save organisation")
	}
	return nil
}

func (r *PgxOrganisationRepository) execOne(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.db(ctx).Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, op)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrganisationRepository) UpdateOrganisationName(ctx context.Context, organisationID string, name string) error {
	return r.execOne(ctx, "rename organisation", `
		UPDATE organisations SET name = $2, updated_at = NOW() WHERE organisation_id = $1;
	`, organisationID, name)
}

func (r *PgxOrganisationRepository) SetStripeCustomerID(ctx context.Context, organisationID string, customerID string) error {
	return r.execOne(ctx, "set stripe customer", `
		UPDATE organisations SET stripe_customer_id = $2, updated_at = NOW() WHERE organisation_id = $1;
	`, organisationID, customerID)
}

func (r *PgxOrganisationRepository) UpdateOrganisationSubscription(ctx context.Context, organisationID string, update domain.SubscriptionUpdate) error {
	return r.execOne(ctx, "update subscription", `
		UPDATE organisations
		SET stripe_subscription_id = $2, stripe_product_id = $3, plan_name = $4,
			subscription_status = $5, updated_at = NOW()
		WHERE organisation_id = $1;
	`,
		organisationID,
		update.StripeSubscriptionID,
		update.StripeProductID,
		update.PlanName,
		update.SubscriptionStatus,
	)
}
