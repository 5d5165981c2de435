package pgsql

import (
	"context"

	"github.com/SscSPs/orgdash/internal/apperrors"
	"github.com/SscSPs/orgdash/internal/core/domain"
	portsrepo "github.com/SscSPs/orgdash/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxMembershipRepository struct {
	BaseRepository
}

func newPgxMembershipRepository(pool *pgxpool.Pool) portsrepo.MembershipRepositoryFacade {
	return &PgxMembershipRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MembershipRepositoryFacade = (*PgxMembershipRepository)(nil)

const selectMembershipQuery = `
	SELECT member_id, user_id, organisation_id, role, joined_at
	FROM organisation_members
`

func (r *PgxMembershipRepository) getMembership(ctx context.Context, filter string, args ...any) (*domain.OrganisationMember, error) {
	rows, err := r.db(ctx).Query(ctx, selectMembershipQuery+filter, args...)
	if err != nil {
		return nil, mapError(err, "query membership")
	}
	member, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.OrganisationMember])
	if err != nil {
		return nil, mapError(err, "collect membership")
	}
	return &member, nil
}

func (r *PgxMembershipRepository) FindFirstMembershipByUserID(ctx context.Context, userID string) (*domain.OrganisationMember, error) {
	return r.getMembership(ctx, `WHERE user_id = $1 ORDER BY joined_at, member_id LIMIT 1`, userID)
}

func (r *PgxMembershipRepository) FindMembership(ctx context.Context, userID, organisationID string) (*domain.OrganisationMember, error) {
	return r.getMembership(ctx, `WHERE user_id = $1 AND organisation_id = $2`, userID, organisationID)
}

func (r *PgxMembershipRepository) IsEmailMemberOfOrganisation(ctx context.Context, email, organisationID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM organisation_members m
			JOIN users u ON u.user_id = m.user_id
			WHERE m.organisation_id = $2 AND lower(u.email) = lower($1) AND u.deleted_at IS NULL
		)
	`
	var exists bool
	if err := r.db(ctx).QueryRow(ctx, query, email, organisationID).Scan(&exists); err != nil {
		return false, mapError(err, "check membership by email")
	}
	return exists, nil
}

func (r *PgxMembershipRepository) ListMembersByOrganisationID(ctx context.Context, organisationID string) ([]domain.OrganisationMemberDetail, error) {
	query := `
		SELECT m.member_id, m.user_id, m.organisation_id, m.role, m.joined_at,
			u.name AS user_name, u.email AS user_email
		FROM organisation_members m
		JOIN users u ON u.user_id = m.user_id
		WHERE m.organisation_id = $1
		ORDER BY m.joined_at, m.member_id
	`
	rows, err := r.db(ctx).Query(ctx, query, organisationID)
	if err != nil {
		return nil, mapError(err, "list members")
	}
	members, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.OrganisationMemberDetail])
	if err != nil {
		return nil, mapError(err, "collect members")
	}
	return members, nil
}

// AddMember relies on UNIQUE (user_id, organisation_id); a concurrent duplicate inserts nothing.
func (r *PgxMembershipRepository) AddMember(ctx context.Context, member domain.OrganisationMember) (bool, error) {
	query := `
		INSERT INTO organisation_members (member_id, user_id, organisation_id, role, joined_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, organisation_id) DO NOTHING;
	`
	tag, err := r.db(ctx).Exec(ctx, query,
		member.MemberID,
		member.UserID,
		member.OrganisationID,
		member.Role,
		member.JoinedAt,
	)
	if err != nil {
		return false, mapError(err, "add member")
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxMembershipRepository) DeleteMember(ctx context.Context, memberID, organisationID string) error {
	tag, err := r.db(ctx).Exec(ctx,
		`DELETE FROM organisation_members WHERE member_id = $1 AND organisation_id = $2`,
		memberID, organisationID)
	if err != nil {
		return mapError(err, "delete member")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxMembershipRepository) DeleteMembershipByUser(ctx context.Context, userID, organisationID string) error {
	_, err := r.db(ctx).Exec(ctx,
		`DELETE FROM organisation_members WHERE user_id = $1 AND organisation_id = $2`,
		userID, organisationID)
	if err != nil {
		return mapError(err, "delete membership")
	}
	return nil
}
