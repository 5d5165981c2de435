package pgsql

import (
	"context"

	"github.com/SscSPs/orgdash/internal/core/domain"
	portsrepo "github.com/SscSPs/orgdash/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInvitationRepository struct {
	BaseRepository
}

func newPgxInvitationRepository(pool *pgxpool.Pool) portsrepo.InvitationRepositoryFacade {
	return &PgxInvitationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.InvitationRepositoryFacade = (*PgxInvitationRepository)(nil)

const selectInvitationQuery = `
	SELECT invitation_id, organisation_id, email, role, invited_by, invited_at, status
	FROM invitations
`

func (r *PgxInvitationRepository) listInvitations(ctx context.Context, filter string, args ...any) ([]domain.Invitation, error) {
	rows, err := r.db(ctx).Query(ctx, selectInvitationQuery+filter, args...)
	if err != nil {
		return nil, mapError(err, "query invitations")
	}
	invitations, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Invitation])
	if err != nil {
		return nil, mapError(err, "collect invitations")
	}
	return invitations, nil
}

func (r *PgxInvitationRepository) getInvitation(ctx context.Context, filter string, args ...any) (*domain.Invitation, error) {
	rows, err := r.db(ctx).Query(ctx, selectInvitationQuery+filter, args...)
	if err != nil {
		return nil, mapError(err, "query invitation")
	}
	invitation, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.Invitation])
	if err != nil {
		return nil, mapError(err, "collect invitation")
	}
	return &invitation, nil
}

func (r *PgxInvitationRepository) FindPendingInvitationForEmail(ctx context.Context, invitationID, email string, forUpdate bool) (*domain.Invitation, error) {
	filter := `WHERE invitation_id = $1 AND lower(email) = lower($2) AND status = 'pending'`
	if forUpdate {
		filter += ` FOR UPDATE`
	}
	return r.getInvitation(ctx, filter, invitationID, email)
}

func (r *PgxInvitationRepository) FindPendingInvitationInOrganisation(ctx context.Context, invitationID, organisationID string) (*domain.Invitation, error) {
	return r.getInvitation(ctx,
		`WHERE invitation_id = $1 AND organisation_id = $2 AND status = 'pending' FOR UPDATE`,
		invitationID, organisationID)
}

func (r *PgxInvitationRepository) HasPendingInvitation(ctx context.Context, organisationID, email string) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM invitations
			WHERE organisation_id = $1 AND lower(email) = lower($2) AND status = 'pending'
		)
	`, organisationID, email).Scan(&exists)
	if err != nil {
		return false, mapError(err, "check pending invitation")
	}
	return exists, nil
}

func (r *PgxInvitationRepository) ListPendingInvitations(ctx context.Context, organisationID string) ([]domain.Invitation, error) {
	return r.listInvitations(ctx, `WHERE organisation_id = $1 AND status = 'pending' ORDER BY invited_at`, organisationID)
}

// SaveInvitation surfaces the pending-invitation unique index as apperrors.ErrDuplicate.
func (r *PgxInvitationRepository) SaveInvitation(ctx context.Context, invitation domain.Invitation) error {
	query := `
		INSERT INTO invitations (invitation_id, organisation_id, email, role, invited_by, invited_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		invitation.InvitationID,
		invitation.OrganisationID,
		invitation.Email,
		invitation.Role,
		invitation.InvitedBy,
		invitation.InvitedAt,
		invitation.Status,
	)
	if err != nil {
		return mapError(err, "save invitation")
	}
	return nil
}

func (r *PgxInvitationRepository) MarkInvitationAccepted(ctx context.Context, invitationID string) (bool, error) {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE invitations SET status = 'accepted' WHERE invitation_id = $1 AND status = 'pending'`,
		invitationID)
	if err != nil {
		return false, mapError(err, "accept invitation")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxInvitationRepository) DeleteInvitation(ctx context.Context, invitationID string) error {
	_, err := r.db(ctx).Exec(ctx, `DELETE FROM invitations WHERE invitation_id = $1`, invitationID)
	if err != nil {
		return mapError(err, "delete invitation")
	}
	return nil
}
