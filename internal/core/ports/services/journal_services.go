package services

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
)

// PostingSvc is the only way journal entries come into existence.
type PostingSvc interface {
	// Post validates, numbers and persists one entry. Failures are reported in the result.
	Post(ctx context.Context, req domain.PostingRequest) domain.PostingResult

	// PostToBatch stages an entry inside a caller-owned unit using a number the
	// caller already reserved. Nothing is visible until the caller's unit commits.
	PostToBatch(ctx context.Context, unit portsrepo.JournalWriteUnit, req domain.PostingRequest, sequenceNumber int64) (*domain.EntryRef, error)

	// ReserveSequences reserves numbers for a later PostToBatch.
	ReserveSequences(ctx context.Context, ownerID string, count int) ([]int64, error)
}

// ReversalSvc corrects posted entries by mirror-image reversal.
type ReversalSvc interface {
	Reverse(ctx context.Context, req domain.ReversalRequest) domain.ReversalResult

	// ReverseBySource reverses every posted, non-reversal entry of a source document.
	// The error is only for a failed lookup; per-entry failures are in the results.
	ReverseBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID, reason string, reversalType domain.ReversalType, requestedBy string) ([]domain.ReversalResult, error)

	// ReverseByTransactionID is ReverseBySource keyed by business transaction id.
	ReverseByTransactionID(ctx context.Context, ownerID, transactionID, reason string, reversalType domain.ReversalType, requestedBy string) ([]domain.ReversalResult, error)
}

// JournalQuerySvc reads journal entries.
type JournalQuerySvc interface {
	GetEntry(ctx context.Context, ownerID, entryID string) (*domain.JournalEntry, error)
	GetEntriesBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID string, includeReversed bool) ([]domain.JournalEntry, error)
	GetEntriesByTransactionID(ctx context.Context, ownerID, transactionID string, includeReversed bool) ([]domain.JournalEntry, error)
	ListEntries(ctx context.Context, ownerID string, filter domain.JournalEntryFilter, pageSize int, nextToken *string) (*domain.JournalEntryPage, error)
	CountEntriesByStatus(ctx context.Context, ownerID string, status *domain.JournalStatus) (int64, error)
	CountEntriesBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID string) (int64, error)
}
