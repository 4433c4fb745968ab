package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entries.
// Every method is scoped to one owner.
type JournalEntryReader interface {
	// FindEntryByID returns apperrors.ErrNotFound when the entry does not exist for the owner.
	FindEntryByID(ctx context.Context, ownerID, entryID string) (*domain.JournalEntry, error)

	// FindEntriesBySource returns up to limit entries for a source document, in sequence order.
	// With activeOnly, reversed originals and reversal entries are excluded before the limit applies.
	FindEntriesBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID string, activeOnly bool, limit int) ([]domain.JournalEntry, error)

	// FindEntriesByTransactionID returns up to limit entries sharing a business transaction id, in sequence order.
	// activeOnly behaves as for FindEntriesBySource.
	FindEntriesByTransactionID(ctx context.Context, ownerID, transactionID string, activeOnly bool, limit int) ([]domain.JournalEntry, error)

	// ListEntries retrieves a page of entries using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, ownerID string, filter domain.JournalEntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// CountEntries counts entries, optionally restricted to one status.
	CountEntries(ctx context.Context, ownerID string, status *domain.JournalStatus) (int64, error)

	// CountEntriesBySource counts entries for a source document.
	CountEntriesBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID string) (int64, error)
}

// JournalWriteUnit stages mutations inside one atomic unit. Nothing staged is
// visible to readers until the unit commits.
type JournalWriteUnit interface {
	// InsertEntry stages a new entry. A duplicate (owner, sequence number) fails the unit.
	InsertEntry(ctx context.Context, entry domain.JournalEntry) error

	// MarkEntryReversed flips a POSTED entry to REVERSED and attaches the link.
	// It fails with apperrors.ErrConflict when the entry is no longer POSTED.
	MarkEntryReversed(ctx context.Context, ownerID, entryID string, link domain.ReversalLink) error
}

// JournalUnitOfWork runs fn inside one transaction: commit on nil, rollback otherwise.
type JournalUnitOfWork interface {
	WithinUnit(ctx context.Context, fn func(unit JournalWriteUnit) error) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalEntryReader
	JournalUnitOfWork
}
