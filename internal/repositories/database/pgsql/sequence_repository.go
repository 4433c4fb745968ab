package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
)

// PgxSequenceRepository implements portsrepo.SequenceRepositoryFacade using pgx.
type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) *PgxSequenceRepository {
	return &PgxSequenceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SequenceRepositoryFacade = (*PgxSequenceRepository)(nil)

// FindSequence reads the owner's counter without locking it.
func (r *PgxSequenceRepository) FindSequence(ctx context.Context, ownerID string) (*domain.SequenceCounter, error) {
	query := `SELECT owner_id, current_sequence, last_updated FROM journal_sequences WHERE owner_id = $1`
	var c domain.SequenceCounter
	err := r.Pool.QueryRow(ctx, query, ownerID).Scan(&c.OwnerID, &c.CurrentSequence, &c.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sequence counter", err)
	}
	return &c, nil
}

// IncrementSequence adds delta to the owner's counter in a SERIALIZABLE
// transaction. Serialization failures surface as ErrTransactionConflict.
func (r *PgxSequenceRepository) IncrementSequence(ctx context.Context, ownerID string, delta int64) (next int64, err error) {
	tx, err := r.BeginSerializable(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	query := `INSERT INTO journal_sequences (owner_id, current_sequence, last_updated)
		VALUES ($1, $2, NOW())
		ON CONFLICT (owner_id) DO UPDATE
		SET current_sequence = journal_sequences.current_sequence + EXCLUDED.current_sequence,
		    last_updated = NOW()
		RETURNING current_sequence`
	if err = tx.QueryRow(ctx, query, ownerID, delta).Scan(&next); err != nil {
		if isSerializationFailure(err) {
			return 0, apperrors.NewAppError(409, "sequence increment lost a serialization race", errors.Join(apperrors.ErrTransactionConflict, err))
		}
		return 0, apperrors.NewAppError(500, "failed to increment sequence counter", err)
	}

	if err = r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return next, nil
}
