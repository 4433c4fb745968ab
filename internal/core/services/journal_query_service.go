package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
)

var ErrInvalidOrder = fmt.Errorf("%w: invalid sort order", apperrors.ErrValidation)

type journalQueryService struct {
	BaseService
	journals portsrepo.JournalEntryReader
}

// NewJournalQueryService creates the read side of the ledger.
func NewJournalQueryService(journals portsrepo.JournalEntryReader) portssvc.JournalQuerySvc {
	return &journalQueryService{
		BaseService: newBaseService(),
		journals:    journals,
	}
}

var _ portssvc.JournalQuerySvc = (*journalQueryService)(nil)

func (s *journalQueryService) GetEntry(ctx context.Context, ownerID, entryID string) (*domain.JournalEntry, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	if entryID == "" {
		return nil, ErrEntryIDRequired
	}
	entry, err := s.journals.FindEntryByID(ctx, ownerID, entryID)
	if err != nil {
		if !IsBusinessRejection(err) {
			s.LogError(ctx, err, "Failed to get journal entry", slog.String("owner_id", ownerID), slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

func (s *journalQueryService) GetEntriesBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID string, includeReversed bool) ([]domain.JournalEntry, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	if !sourceType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSourceType, sourceType)
	}
	if documentID == "" {
		return nil, apperrors.NewValidationError("document id is required")
	}

	entries, err := s.journals.FindEntriesBySource(ctx, ownerID, sourceType, documentID, !includeReversed, domain.LookupLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to get entries by source",
			slog.String("owner_id", ownerID),
			slog.String("source_type", string(sourceType)),
			slog.String("source_document_id", documentID))
		return nil, err
	}
	return filterReversed(entries, includeReversed), nil
}

func (s *journalQueryService) GetEntriesByTransactionID(ctx context.Context, ownerID, transactionID string, includeReversed bool) ([]domain.JournalEntry, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	if transactionID == "" {
		return nil, apperrors.NewValidationError("transaction id is required")
	}

	entries, err := s.journals.FindEntriesByTransactionID(ctx, ownerID, transactionID, !includeReversed, domain.LookupLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to get entries by transaction id",
			slog.String("owner_id", ownerID),
			slog.String("source_transaction_id", transactionID))
		return nil, err
	}
	return filterReversed(entries, includeReversed), nil
}

func (s *journalQueryService) ListEntries(ctx context.Context, ownerID string, filter domain.JournalEntryFilter, pageSize int, nextToken *string) (*domain.JournalEntryPage, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	if filter.Order == "" {
		filter.Order = domain.OrderDateDesc
	}
	if !filter.Order.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrder, filter.Order)
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid status %q", *filter.Status))
	}
	if filter.SourceType != nil && !filter.SourceType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSourceType, *filter.SourceType)
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateFrom.After(*filter.DateTo) {
		return nil, apperrors.NewValidationError("dateFrom must not be after dateTo")
	}
	if nextToken != nil && *nextToken == "" {
		nextToken = nil
	}

	entries, next, err := s.journals.ListEntries(ctx, ownerID, filter, domain.ClampPageSize(pageSize), nextToken)
	if err != nil {
		if !IsBusinessRejection(err) {
			s.LogError(ctx, err, "Failed to list journal entries", slog.String("owner_id", ownerID))
		}
		return nil, err
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return &domain.JournalEntryPage{Entries: entries, NextToken: next}, nil
}

func (s *journalQueryService) CountEntriesByStatus(ctx context.Context, ownerID string, status *domain.JournalStatus) (int64, error) {
	if ownerID == "" {
		return 0, ErrOwnerRequired
	}
	if status != nil && !status.IsValid() {
		return 0, apperrors.NewValidationError(fmt.Sprintf("invalid status %q", *status))
	}
	count, err := s.journals.CountEntries(ctx, ownerID, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to count journal entries", slog.String("owner_id", ownerID))
		return 0, err
	}
	return count, nil
}

func (s *journalQueryService) CountEntriesBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID string) (int64, error) {
	if ownerID == "" {
		return 0, ErrOwnerRequired
	}
	if !sourceType.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSourceType, sourceType)
	}
	count, err := s.journals.CountEntriesBySource(ctx, ownerID, sourceType, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count entries by source", slog.String("owner_id", ownerID))
		return 0, err
	}
	return count, nil
}

// filterReversed drops reversed originals and reversal entries unless asked to keep them.
func filterReversed(entries []domain.JournalEntry, includeReversed bool) []domain.JournalEntry {
	if includeReversed {
		if entries == nil {
			return []domain.JournalEntry{}
		}
		return entries
	}
	kept := make([]domain.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if e.Status == domain.Reversed || e.IsReversal() {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}
