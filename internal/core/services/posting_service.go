package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
)

var (
	ErrNonPositiveAmount  = fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	ErrInvalidSourceType  = fmt.Errorf("%w: invalid source type", apperrors.ErrValidation)
	ErrDateRequired       = fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	ErrEntryMinLines      = fmt.Errorf("%w: entry must have at least two lines", apperrors.ErrValidation)
	ErrInvalidLine        = fmt.Errorf("%w: invalid journal line", apperrors.ErrValidation)
	ErrInvalidSequence    = fmt.Errorf("%w: sequence number must be positive", apperrors.ErrValidation)
	ErrWriteUnitRequired  = fmt.Errorf("%w: write unit is required", apperrors.ErrValidation)
	ErrDescriptionMissing = fmt.Errorf("%w: description is required", apperrors.ErrValidation)
)

const systemUser = "system"

// postingService is the only writer of new journal entries.
type postingService struct {
	BaseService
	journals  portsrepo.JournalRepositoryFacade
	sequences portssvc.SequenceSvcFacade
	lockDates portssvc.LockDateGuardSvc
	templates portssvc.TemplateResolverSvc
	newID     func() string
}

// PostingOption is a functional option for configuring the posting service
type PostingOption func(*postingService)

// WithPostingClock overrides the clock used for createdAt.
func WithPostingClock(now Clock) PostingOption {
	return func(s *postingService) {
		s.Now = now
	}
}

// WithPostingIDGenerator overrides entry id generation.
func WithPostingIDGenerator(newID func() string) PostingOption {
	return func(s *postingService) {
		s.newID = newID
	}
}

// NewPostingService creates the posting engine.
func NewPostingService(
	journals portsrepo.JournalRepositoryFacade,
	sequences portssvc.SequenceSvcFacade,
	lockDates portssvc.LockDateGuardSvc,
	templates portssvc.TemplateResolverSvc,
	options ...PostingOption,
) portssvc.PostingSvc {
	svc := &postingService{
		BaseService: newBaseService(),
		journals:    journals,
		sequences:   sequences,
		lockDates:   lockDates,
		templates:   templates,
		newID:       uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.PostingSvc = (*postingService)(nil)

func (s *postingService) Post(ctx context.Context, req domain.PostingRequest) (result domain.PostingResult) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("%w: posting aborted: %v", apperrors.ErrInternal, r)
			s.LogError(ctx, err, "Recovered panic while posting entry", slog.String("owner_id", req.OwnerID))
			result = failedPosting(err)
		}
	}()

	logger := s.GetLogger(ctx).With(
		slog.String("owner_id", req.OwnerID),
		slog.String("template_kind", string(req.TemplateKind)),
		slog.String("source_type", string(req.Source.Type)),
		slog.String("source_document_id", req.Source.DocumentID),
	)

	if err := validatePostingRequest(req); err != nil {
		logger.Warn("Posting request rejected", slog.String("error", err.Error()))
		return failedPosting(err)
	}

	// Nothing may be reserved or written for a closed period.
	if err := s.lockDates.Validate(ctx, req.OwnerID, req.Date); err != nil {
		logger.Warn("Posting into locked period rejected", slog.String("error", err.Error()))
		return failedPosting(err)
	}

	lines, err := s.buildLines(req)
	if err != nil {
		logger.Warn("Failed to build entry lines", slog.String("error", err.Error()))
		return failedPosting(err)
	}

	if err := checkBalance(lines); err != nil {
		logger.Warn("Unbalanced entry rejected", slog.String("error", err.Error()))
		return failedPosting(err)
	}

	seq, err := s.sequences.Next(ctx, req.OwnerID)
	if err != nil {
		logger.Error("Failed to reserve sequence number", slog.String("error", err.Error()))
		return failedPosting(err)
	}

	entry := s.buildEntry(req, lines, seq)
	err = s.journals.WithinUnit(ctx, func(unit portsrepo.JournalWriteUnit) error {
		return unit.InsertEntry(ctx, entry)
	})
	if err != nil {
		// The sequence number is burned; gaps are only ruled out among successful posts.
		logger.Error("Failed to persist journal entry",
			slog.String("error", err.Error()),
			slog.Int64("sequence_number", seq))
		return failedPosting(err)
	}

	logger.Info("Journal entry posted",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))

	return domain.PostingResult{
		Success:        true,
		EntryID:        entry.EntryID,
		SequenceNumber: entry.SequenceNumber,
		EntryNumber:    entry.EntryNumber,
	}
}

func (s *postingService) PostToBatch(ctx context.Context, unit portsrepo.JournalWriteUnit, req domain.PostingRequest, sequenceNumber int64) (*domain.EntryRef, error) {
	if unit == nil {
		return nil, ErrWriteUnitRequired
	}
	if sequenceNumber < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSequence, sequenceNumber)
	}
	if err := validatePostingRequest(req); err != nil {
		return nil, err
	}
	// Read-only check; a batch must not bypass a closed period either.
	if err := s.lockDates.Validate(ctx, req.OwnerID, req.Date); err != nil {
		return nil, err
	}

	lines, err := s.buildLines(req)
	if err != nil {
		return nil, err
	}
	if err := checkBalance(lines); err != nil {
		return nil, err
	}

	entry := s.buildEntry(req, lines, sequenceNumber)
	if err := unit.InsertEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to stage journal entry in batch",
			slog.String("owner_id", req.OwnerID),
			slog.Int64("sequence_number", sequenceNumber))
		return nil, err
	}

	s.LogDebug(ctx, "Journal entry staged in batch",
		slog.String("owner_id", req.OwnerID),
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))

	return &domain.EntryRef{
		EntryID:        entry.EntryID,
		SequenceNumber: entry.SequenceNumber,
		EntryNumber:    entry.EntryNumber,
	}, nil
}

func (s *postingService) ReserveSequences(ctx context.Context, ownerID string, count int) ([]int64, error) {
	return s.sequences.ReserveBlock(ctx, ownerID, count)
}

// buildLines resolves a template into a debit and a credit line, or passes explicit lines through.
func (s *postingService) buildLines(req domain.PostingRequest) ([]domain.JournalLine, error) {
	if len(req.Lines) > 0 {
		lines := make([]domain.JournalLine, len(req.Lines))
		copy(lines, req.Lines)
		return lines, nil
	}

	pair, err := s.templates.Resolve(req.TemplateKind, req.Context)
	if err != nil {
		return nil, err
	}
	return []domain.JournalLine{
		{AccountCode: pair.Debit.Code, AccountName: pair.Debit.Name, Debit: req.Amount, Credit: decimal.Zero},
		{AccountCode: pair.Credit.Code, AccountName: pair.Credit.Name, Debit: decimal.Zero, Credit: req.Amount},
	}, nil
}

func (s *postingService) buildEntry(req domain.PostingRequest, lines []domain.JournalLine, seq int64) domain.JournalEntry {
	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = systemUser
	}
	return domain.JournalEntry{
		EntryID:        s.newID(),
		OwnerID:        req.OwnerID,
		SequenceNumber: seq,
		EntryNumber:    domain.FormatEntryNumber(seq),
		Date:           domain.DateOnly(req.Date),
		Description:    strings.TrimSpace(req.Description),
		Lines:          lines,
		Status:         domain.Posted,
		Source:         req.Source,
		CreatedAt:      s.today(),
		CreatedBy:      createdBy,
	}
}

// validatePostingRequest checks everything that does not need a store.
func validatePostingRequest(req domain.PostingRequest) error {
	if req.OwnerID == "" {
		return ErrOwnerRequired
	}
	if req.Date.IsZero() {
		return ErrDateRequired
	}
	if strings.TrimSpace(req.Description) == "" {
		return ErrDescriptionMissing
	}
	if !req.Source.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidSourceType, req.Source.Type)
	}

	if len(req.Lines) > 0 {
		return validateLines(req.Lines)
	}
	if req.TemplateKind == "" {
		return fmt.Errorf("%w: template kind or explicit lines are required", ErrUnknownTemplate)
	}
	if !req.Amount.IsPositive() {
		return fmt.Errorf("%w: got %s", ErrNonPositiveAmount, req.Amount.String())
	}
	return nil
}

func validateLines(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return ErrEntryMinLines
	}
	for i, l := range lines {
		if strings.TrimSpace(l.AccountCode) == "" {
			return fmt.Errorf("%w: line %d has no account code", ErrInvalidLine, i+1)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", ErrInvalidLine, i+1)
		}
		if l.Debit.IsPositive() == l.Credit.IsPositive() {
			return fmt.Errorf("%w: line %d must have exactly one of debit or credit", ErrInvalidLine, i+1)
		}
	}
	return nil
}

// checkBalance requires |debits - credits| to be within tolerance.
func checkBalance(lines []domain.JournalLine) error {
	debits, credits := domain.SumLines(lines)
	if !debits.IsPositive() {
		return fmt.Errorf("%w: entry total must be greater than zero", ErrNonPositiveAmount)
	}
	if !domain.IsBalanced(debits, credits) {
		return &apperrors.UnbalancedEntryError{TotalDebit: debits, TotalCredit: credits}
	}
	return nil
}

func failedPosting(err error) domain.PostingResult {
	return domain.PostingResult{Success: false, Error: err.Error(), Err: err}
}

// IsBusinessRejection reports whether err is an expected rule violation rather than an infrastructure fault.
func IsBusinessRejection(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrLockedPeriod) ||
		errors.Is(err, apperrors.ErrNotFound)
}
