package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
)

var (
	ErrAlreadyReversed       = fmt.Errorf("%w: entry is already reversed", apperrors.ErrValidation)
	ErrCannotReverseReversal = fmt.Errorf("%w: cannot reverse a reversal", apperrors.ErrValidation)
	ErrInvalidReversalType   = fmt.Errorf("%w: invalid reversal type", apperrors.ErrValidation)
	ErrEntryIDRequired       = fmt.Errorf("%w: entry id is required", apperrors.ErrValidation)
)

// reversalService corrects entries by posting their mirror image.
type reversalService struct {
	BaseService
	journals  portsrepo.JournalRepositoryFacade
	sequences portssvc.SequenceWriterSvc
	lockDates portssvc.LockDateGuardSvc
	newID     func() string
}

// ReversalOption is a functional option for configuring the reversal service
type ReversalOption func(*reversalService)

// WithReversalClock overrides the clock that dates reversal entries.
func WithReversalClock(now Clock) ReversalOption {
	return func(s *reversalService) {
		s.Now = now
	}
}

// WithReversalIDGenerator overrides entry id generation.
func WithReversalIDGenerator(newID func() string) ReversalOption {
	return func(s *reversalService) {
		s.newID = newID
	}
}

// NewReversalService creates the reversal protocol.
func NewReversalService(
	journals portsrepo.JournalRepositoryFacade,
	sequences portssvc.SequenceWriterSvc,
	lockDates portssvc.LockDateGuardSvc,
	options ...ReversalOption,
) portssvc.ReversalSvc {
	svc := &reversalService{
		BaseService: newBaseService(),
		journals:    journals,
		sequences:   sequences,
		lockDates:   lockDates,
		newID:       uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReversalSvc = (*reversalService)(nil)

func (s *reversalService) Reverse(ctx context.Context, req domain.ReversalRequest) (result domain.ReversalResult) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: reversal aborted: %v", apperrors.ErrInternal, r)
			s.LogError(ctx, err, "Recovered panic while reversing entry", slog.String("entry_id", req.EntryID))
			result = failedReversal(req.EntryID, err)
		}
	}()

	logger := s.GetLogger(ctx).With(
		slog.String("owner_id", req.OwnerID),
		slog.String("entry_id", req.EntryID),
	)

	if req.OwnerID == "" {
		return failedReversal(req.EntryID, ErrOwnerRequired)
	}
	if req.EntryID == "" {
		return failedReversal(req.EntryID, ErrEntryIDRequired)
	}
	if req.ReversalType == "" {
		req.ReversalType = domain.ReversalVoid
	}
	if !req.ReversalType.IsValid() {
		return failedReversal(req.EntryID, fmt.Errorf("%w: %q", ErrInvalidReversalType, req.ReversalType))
	}

	original, err := s.journals.FindEntryByID(ctx, req.OwnerID, req.EntryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Reversal target not found")
		} else {
			logger.Error("Failed to load reversal target", slog.String("error", err.Error()))
		}
		return failedReversal(req.EntryID, err)
	}

	if original.Status == domain.Reversed {
		logger.Warn("Attempted to reverse an already reversed entry")
		return failedReversal(req.EntryID, fmt.Errorf("%w: %s", ErrAlreadyReversed, original.EntryNumber))
	}
	if original.IsReversal() {
		logger.Warn("Attempted to reverse a reversal entry")
		return failedReversal(req.EntryID, fmt.Errorf("%w: %s", ErrCannotReverseReversal, original.EntryNumber))
	}

	// A reversal may not reach back into a closed period, nor be dated into one.
	if err := s.lockDates.Validate(ctx, req.OwnerID, original.Date); err != nil {
		logger.Warn("Reversal of entry in locked period rejected", slog.String("error", err.Error()))
		return failedReversal(req.EntryID, err)
	}
	today := domain.DateOnly(s.today())
	if err := s.lockDates.Validate(ctx, req.OwnerID, today); err != nil {
		logger.Warn("Reversal date falls in locked period", slog.String("error", err.Error()))
		return failedReversal(req.EntryID, err)
	}

	seq, err := s.sequences.Next(ctx, req.OwnerID)
	if err != nil {
		logger.Error("Failed to reserve sequence number for reversal", slog.String("error", err.Error()))
		return failedReversal(req.EntryID, err)
	}

	reversal := s.buildReversal(original, req, seq, today)
	link := domain.ReversalLink{
		ReversedByEntryID: reversal.EntryID,
		ReversedAt:        reversal.CreatedAt,
		Reason:            reversal.Reversal.Reason,
		ReversalType:      req.ReversalType,
	}

	err = s.journals.WithinUnit(ctx, func(unit portsrepo.JournalWriteUnit) error {
		if err := unit.InsertEntry(ctx, reversal); err != nil {
			return err
		}
		return unit.MarkEntryReversed(ctx, req.OwnerID, original.EntryID, link)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Another caller reversed it between our read and our write.
			logger.Warn("Concurrent reversal detected", slog.String("error", err.Error()))
			return failedReversal(req.EntryID, fmt.Errorf("%w: %s: %w", ErrAlreadyReversed, original.EntryNumber, err))
		}
		logger.Error("Failed to persist reversal", slog.String("error", err.Error()), slog.Int64("sequence_number", seq))
		return failedReversal(req.EntryID, err)
	}

	logger.Info("Journal entry reversed",
		slog.String("reversal_entry_id", reversal.EntryID),
		slog.String("reversal_entry_number", reversal.EntryNumber),
		slog.String("reversal_type", string(req.ReversalType)))

	return domain.ReversalResult{
		Success:                true,
		OriginalEntryID:        original.EntryID,
		ReversalEntryID:        reversal.EntryID,
		ReversalSequenceNumber: reversal.SequenceNumber,
	}
}

func (s *reversalService) buildReversal(original *domain.JournalEntry, req domain.ReversalRequest, seq int64, date time.Time) domain.JournalEntry {
	lines := make([]domain.JournalLine, len(original.Lines))
	for i, l := range original.Lines {
		lines[i] = l.Swapped()
	}

	reason := strings.TrimSpace(req.Reason)
	description := fmt.Sprintf("Reversal of %s", original.EntryNumber)
	if original.Description != "" {
		description += ": " + original.Description
	}

	requestedBy := req.RequestedBy
	if requestedBy == "" {
		requestedBy = systemUser
	}

	originalID := original.EntryID
	return domain.JournalEntry{
		EntryID:        s.newID(),
		OwnerID:        original.OwnerID,
		SequenceNumber: seq,
		EntryNumber:    domain.FormatEntryNumber(seq),
		Date:           date,
		Description:    description,
		Lines:          lines,
		Status:         domain.Posted,
		Source:         original.Source,
		Reversal: &domain.JournalReversal{
			IsReversal:      true,
			ReversesEntryID: &originalID,
			Reason:          reason,
			ReversalType:    req.ReversalType,
		},
		CreatedAt: s.today(),
		CreatedBy: requestedBy,
	}
}

func (s *reversalService) ReverseBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID, reason string, reversalType domain.ReversalType, requestedBy string) ([]domain.ReversalResult, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	if !sourceType.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSourceType, sourceType)
	}
	if documentID == "" {
		return nil, apperrors.NewValidationError("document id is required")
	}

	entries, err := s.journals.FindEntriesBySource(ctx, ownerID, sourceType, documentID, true, domain.LookupLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up entries for bulk reversal",
			slog.String("owner_id", ownerID),
			slog.String("source_type", string(sourceType)),
			slog.String("source_document_id", documentID))
		return nil, err
	}
	return s.reverseEach(ctx, ownerID, entries, reason, reversalType, requestedBy), nil
}

func (s *reversalService) ReverseByTransactionID(ctx context.Context, ownerID, transactionID, reason string, reversalType domain.ReversalType, requestedBy string) ([]domain.ReversalResult, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	if transactionID == "" {
		return nil, apperrors.NewValidationError("transaction id is required")
	}

	entries, err := s.journals.FindEntriesByTransactionID(ctx, ownerID, transactionID, true, domain.LookupLimit)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up entries for bulk reversal",
			slog.String("owner_id", ownerID),
			slog.String("source_transaction_id", transactionID))
		return nil, err
	}
	return s.reverseEach(ctx, ownerID, entries, reason, reversalType, requestedBy), nil
}

// reverseEach reverses every posted, non-reversal entry independently.
func (s *reversalService) reverseEach(ctx context.Context, ownerID string, entries []domain.JournalEntry, reason string, reversalType domain.ReversalType, requestedBy string) []domain.ReversalResult {
	results := make([]domain.ReversalResult, 0, len(entries))
	for _, e := range entries {
		if e.Status != domain.Posted || e.IsReversal() {
			continue
		}
		results = append(results, s.Reverse(ctx, domain.ReversalRequest{
			OwnerID:      ownerID,
			EntryID:      e.EntryID,
			Reason:       reason,
			ReversalType: reversalType,
			RequestedBy:  requestedBy,
		}))
	}

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	s.LogInfo(ctx, "Bulk reversal finished",
		slog.String("owner_id", ownerID),
		slog.Int("attempted", len(results)),
		slog.Int("failed", failed))
	return results
}

func failedReversal(entryID string, err error) domain.ReversalResult {
	return domain.ReversalResult{Success: false, OriginalEntryID: entryID, Error: err.Error(), Err: err}
}
