package repositories

import (
	"context"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// LockDateReader reads period-close settings.
type LockDateReader interface {
	// FindLockDateSetting returns apperrors.ErrNotFound when the owner has never closed a period.
	FindLockDateSetting(ctx context.Context, ownerID string) (*domain.LockDateSetting, error)
}

// LockDateWriter persists period-close settings.
type LockDateWriter interface {
	SaveLockDateSetting(ctx context.Context, setting domain.LockDateSetting) error
}

// LockDateRepositoryFacade combines all lock-date repository interfaces
type LockDateRepositoryFacade interface {
	LockDateReader
	LockDateWriter
}
