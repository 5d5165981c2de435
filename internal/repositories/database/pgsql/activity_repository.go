package pgsql

import (
	"context"

	"github.com/SscSPs/orgdash/internal/core/domain"
	portsrepo "github.com/SscSPs/orgdash/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxActivityRepository struct {
	BaseRepository
}

func newPgxActivityRepository(pool *pgxpool.Pool) portsrepo.ActivityRepository {
	return &PgxActivityRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ActivityRepository = (*PgxActivityRepository)(nil)

func (r *PgxActivityRepository) SaveActivity(ctx context.Context, activity domain.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (activity_id, organisation_id, user_id, action, ip_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		activity.ActivityID,
		activity.OrganisationID,
		activity.UserID,
		activity.Action,
		activity.IPAddress,
		activity.CreatedAt,
	)
	if err != nil {
		return mapError(err, "save activity")
	}
	return nil
}

func (r *PgxActivityRepository) ListActivityByUserID(ctx context.Context, userID string, limit int) ([]domain.ActivityLogEntry, error) {
	query := `
		SELECT a.activity_id, a.action, a.created_at, a.ip_address, u.name AS user_name
		FROM activity_logs a
		LEFT JOIN users u ON u.user_id = a.user_id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2
	`
	rows, err := r.db(ctx).Query(ctx, query, userID, limit)
	if err != nil {
		return nil, mapError(err, "list activity")
	}
	entries, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.ActivityLogEntry])
	if err != nil {
		return nil, mapError(err, "collect activity")
	}
	return entries, nil
}
