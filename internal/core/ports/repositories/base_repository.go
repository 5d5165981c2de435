package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside a database transaction.
// Repositories called with the ctx passed to fn participate in that transaction.
type TransactionManager interface {
	// WithinTx begins a transaction, runs fn and commits if fn returns nil.
	// Any error from fn rolls the transaction back and is returned unchanged.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
