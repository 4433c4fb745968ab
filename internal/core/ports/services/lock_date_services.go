package services

import (
	"context"
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// LockDateGuardSvc answers whether a date falls in a closed period.
type LockDateGuardSvc interface {
	IsLocked(ctx context.Context, ownerID string, date time.Time) (bool, error)

	// Validate returns *apperrors.LockedPeriodError when date is locked.
	Validate(ctx context.Context, ownerID string, date time.Time) error
}

// LockDateAdminSvc closes and reopens periods.
type LockDateAdminSvc interface {
	// GetSetting returns the owner's setting, or an empty one when none is stored.
	GetSetting(ctx context.Context, ownerID string) (*domain.LockDateSetting, error)

	// UpdateSetting stores setting. A nil LockDate reopens every period.
	UpdateSetting(ctx context.Context, setting domain.LockDateSetting) (*domain.LockDateSetting, error)
}

// LockDateSvcFacade combines all lock-date service interfaces
type LockDateSvcFacade interface {
	LockDateGuardSvc
	LockDateAdminSvc
}
