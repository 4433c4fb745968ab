package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
)

var (
	ErrSequenceBlockTooLarge = fmt.Errorf("%w: sequence block size out of range", apperrors.ErrValidation)
	ErrOwnerRequired         = fmt.Errorf("%w: owner id is required", apperrors.ErrValidation)
)

const (
	DefaultSequenceMaxRetries = 5
	defaultSequenceBackoff    = 10 * time.Millisecond
)

// sequenceService issues gapless per-owner sequence numbers.
type sequenceService struct {
	BaseService
	repo       portsrepo.SequenceRepositoryFacade
	maxRetries int
	backoff    time.Duration
}

// SequenceOption is a functional option for configuring the sequence service
type SequenceOption func(*sequenceService)

// WithSequenceMaxRetries sets how many attempts a contended increment gets.
func WithSequenceMaxRetries(n int) SequenceOption {
	return func(s *sequenceService) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithSequenceBackoff sets the base delay between attempts; attempt k waits k times this.
func WithSequenceBackoff(d time.Duration) SequenceOption {
	return func(s *sequenceService) {
		s.backoff = d
	}
}

// NewSequenceService creates a new sequence service with the provided options
func NewSequenceService(repo portsrepo.SequenceRepositoryFacade, options ...SequenceOption) portssvc.SequenceSvcFacade {
	svc := &sequenceService{
		BaseService: newBaseService(),
		repo:        repo,
		maxRetries:  DefaultSequenceMaxRetries,
		backoff:     defaultSequenceBackoff,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SequenceSvcFacade = (*sequenceService)(nil)

func (s *sequenceService) Next(ctx context.Context, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, ErrOwnerRequired
	}
	return s.increment(ctx, ownerID, 1)
}

func (s *sequenceService) ReserveBlock(ctx context.Context, ownerID string, count int) ([]int64, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	if count == 0 {
		return []int64{}, nil
	}
	if count < 0 || count > domain.MaxSequenceBlock {
		return nil, fmt.Errorf("%w: requested %d, allowed 1..%d", ErrSequenceBlockTooLarge, count, domain.MaxSequenceBlock)
	}

	last, err := s.increment(ctx, ownerID, int64(count))
	if err != nil {
		return nil, err
	}

	first := last - int64(count) + 1
	block := make([]int64, count)
	for i := range block {
		block[i] = first + int64(i)
	}
	return block, nil
}

func (s *sequenceService) Current(ctx context.Context, ownerID string) (int64, error) {
	if ownerID == "" {
		return 0, ErrOwnerRequired
	}
	counter, err := s.repo.FindSequence(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return 0, nil
		}
		s.LogError(ctx, err, "Failed to read sequence counter", slog.String("owner_id", ownerID))
		return 0, err
	}
	return counter.CurrentSequence, nil
}

func (s *sequenceService) PreviewNext(ctx context.Context, ownerID string) (string, error) {
	current, err := s.Current(ctx, ownerID)
	if err != nil {
		return "", err
	}
	return domain.FormatEntryNumber(current + 1), nil
}

// increment retries lost serializable races with linear backoff.
func (s *sequenceService) increment(ctx context.Context, ownerID string, delta int64) (int64, error) {
	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		value, err := s.repo.IncrementSequence(ctx, ownerID, delta)
		if err == nil {
			return value, nil
		}
		if !errors.Is(err, apperrors.ErrTransactionConflict) {
			s.LogError(ctx, err, "Failed to increment sequence counter", slog.String("owner_id", ownerID))
			return 0, err
		}
		lastErr = err
		s.LogDebug(ctx, "Sequence increment conflicted, retrying",
			slog.String("owner_id", ownerID),
			slog.Int("attempt", attempt))

		if attempt == s.maxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(s.backoff * time.Duration(attempt)):
		}
	}

	s.LogError(ctx, lastErr, "Sequence counter still contended after retries",
		slog.String("owner_id", ownerID),
		slog.Int("attempts", s.maxRetries))
	return 0, fmt.Errorf("sequence for owner %s still contended after %d attempts: %w", ownerID, s.maxRetries, lastErr)
}
