package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// SequenceReader reads per-owner counters.
type SequenceReader interface {
	// FindSequence returns apperrors.ErrNotFound when the owner has no counter yet.
	FindSequence(ctx context.Context, ownerID string) (*domain.SequenceCounter, error)
}

// SequenceWriter advances per-owner counters.
type SequenceWriter interface {
	// IncrementSequence adds delta to the owner's counter (creating it at 0 first)
	// in one serializable transaction and returns the new value. A lost race is
	// reported as apperrors.ErrTransactionConflict.
	IncrementSequence(ctx context.Context, ownerID string, delta int64) (int64, error)
}

// SequenceRepositoryFacade combines all sequence repository interfaces
type SequenceRepositoryFacade interface {
	SequenceReader
	SequenceWriter
}
