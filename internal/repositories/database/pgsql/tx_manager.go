package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/orgdash/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTxManager runs units of work in a pgx transaction stored in the context.
type PgxTxManager struct {
	BaseRepository
}

func newPgxTxManager(pool *pgxpool.Pool) *PgxTxManager {
	return &PgxTxManager{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionManager = (*PgxTxManager)(nil)

// WithinTx joins the transaction already in ctx, if any.
func (m *PgxTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = m.Rollback(ctx, tx) }()

	if err := fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}
