package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/orgdash/internal/apperrors"
	"github.com/SscSPs/orgdash/internal/core/domain"
	portsrepo "github.com/SscSPs/orgdash/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

const selectUserQuery = `
	SELECT user_id, name, email, password_hash, role, is_confirmed, created_at, updated_at, deleted_at
	FROM users
`

// getUser runs selectUserQuery with the given filter and returns the single match.
func (r *PgxUserRepository) getUser(ctx context.Context, filter string, args ...any) (*domain.User, error) {
	rows, err := r.db(ctx).Query(ctx, selectUserQuery+filter, args...)
	if err != nil {
		return nil, mapError(err, "query user")
	}
	user, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[domain.User])
	if err != nil {
		return nil, mapError(err, "collect user")
	}
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getUser(ctx, `WHERE user_id = $1 AND deleted_at IS NULL`, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, `WHERE lower(email) = lower($1) AND deleted_at IS NULL`, email)
}

func (r *PgxUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`, email,
	).Scan(&exists)
	if err != nil {
		return false, mapError(err, "check email")
	}
	return exists, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (user_id, name, email, password_hash, role, is_confirmed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.IsConfirmed,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return mapError(err, "save user")
	}
	return nil
}

// execOne runs an update that must touch exactly one active row.
func (r *PgxUserRepository) execOne(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.db(ctx).Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, op)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) UpdateUserProfile(ctx context.Context, userID string, name string, email string) error {
	return r.execOne(ctx, "update user profile", `
		UPDATE users SET name = $2, email = $3, updated_at = NOW()
		WHERE user_id = $1 AND deleted_at IS NULL;
	`, userID, name, email)
}

func (r *PgxUserRepository) UpdatePasswordHash(ctx context.Context, userID string, passwordHash string) error {
	return r.execOne(ctx, "update password", `
		UPDATE users SET password_hash = $2, updated_at = NOW()
		WHERE user_id = $1 AND deleted_at IS NULL;
	`, userID, passwordHash)
}

func (r *PgxUserRepository) MarkUserConfirmed(ctx context.Context, userID string) error {
	return r.execOne(ctx, "confirm user", `
		UPDATE users SET is_confirmed = TRUE, updated_at = NOW()
		WHERE user_id = $1 AND deleted_at IS NULL;
	`, userID)
}

func (r *PgxUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedEmail string, deletedAt time.Time) error {
	return r.execOne(ctx, "delete user", `
		UPDATE users
		SET deleted_at = $3, updated_at = $3, email = $2
		WHERE user_id = $1 AND deleted_at IS NULL;
	`, userID, deletedEmail, deletedAt)
}
