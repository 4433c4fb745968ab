package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// BeginSerializable starts a transaction at SERIALIZABLE isolation.
	BeginSerializable(ctx context.Context) (pgx.Tx, error)

	// Commit commits a transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a transaction
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// TxUnit is implemented by write units backed by a pgx transaction, so that
// collaborators can stage their own rows in the same commit.
type TxUnit interface {
	Tx() pgx.Tx
}
