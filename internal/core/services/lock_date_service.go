package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
)

type lockDateService struct {
	BaseService
	repo portsrepo.LockDateRepositoryFacade
}

// NewLockDateService creates the period-close guard.
func NewLockDateService(repo portsrepo.LockDateRepositoryFacade) portssvc.LockDateSvcFacade {
	return &lockDateService{
		BaseService: newBaseService(),
		repo:        repo,
	}
}

var _ portssvc.LockDateSvcFacade = (*lockDateService)(nil)

// lockDate returns nil when nothing is locked for the owner.
func (s *lockDateService) lockDate(ctx context.Context, ownerID string) (*time.Time, error) {
	setting, err := s.repo.FindLockDateSetting(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to read lock date setting", slog.String("owner_id", ownerID))
		return nil, err
	}
	if setting.LockDate == nil {
		return nil, nil
	}
	d := domain.DateOnly(*setting.LockDate)
	return &d, nil
}

func (s *lockDateService) IsLocked(ctx context.Context, ownerID string, date time.Time) (bool, error) {
	if ownerID == "" {
		return false, ErrOwnerRequired
	}
	lock, err := s.lockDate(ctx, ownerID)
	if err != nil || lock == nil {
		return false, err
	}
	return !domain.DateOnly(date).After(*lock), nil
}

func (s *lockDateService) Validate(ctx context.Context, ownerID string, date time.Time) error {
	if ownerID == "" {
		return ErrOwnerRequired
	}
	lock, err := s.lockDate(ctx, ownerID)
	if err != nil || lock == nil {
		return err
	}
	if domain.DateOnly(date).After(*lock) {
		return nil
	}
	return &apperrors.LockedPeriodError{Date: domain.DateOnly(date), LockDate: *lock}
}

func (s *lockDateService) GetSetting(ctx context.Context, ownerID string) (*domain.LockDateSetting, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	setting, err := s.repo.FindLockDateSetting(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.LockDateSetting{OwnerID: ownerID}, nil
		}
		s.LogError(ctx, err, "Failed to read lock date setting", slog.String("owner_id", ownerID))
		return nil, err
	}
	return setting, nil
}

func (s *lockDateService) UpdateSetting(ctx context.Context, setting domain.LockDateSetting) (*domain.LockDateSetting, error) {
	if setting.OwnerID == "" {
		return nil, ErrOwnerRequired
	}
	if setting.LockDate != nil {
		d := domain.DateOnly(*setting.LockDate)
		setting.LockDate = &d
	}
	if setting.FiscalYearEnd != nil {
		d := domain.DateOnly(*setting.FiscalYearEnd)
		setting.FiscalYearEnd = &d
	}
	setting.UpdatedAt = s.today()

	if err := s.repo.SaveLockDateSetting(ctx, setting); err != nil {
		s.LogError(ctx, err, "Failed to save lock date setting", slog.String("owner_id", setting.OwnerID))
		return nil, err
	}

	attrs := []any{slog.String("owner_id", setting.OwnerID), slog.String("updated_by", setting.UpdatedBy)}
	if setting.LockDate != nil {
		attrs = append(attrs, slog.String("lock_date", setting.LockDate.Format(time.DateOnly)))
	}
	s.LogInfo(ctx, "Lock date updated", attrs...)
	return &setting, nil
}
