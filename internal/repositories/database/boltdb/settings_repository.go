package boltdb

import (
	"context"

	bolt "go.etcd.io/bbolt"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
)

type lockDateRepository struct {
	store *Store
}

func newLockDateRepository(s *Store) *lockDateRepository {
	return &lockDateRepository{store: s}
}

var _ portsrepo.LockDateRepositoryFacade = (*lockDateRepository)(nil)

func (r *lockDateRepository) FindLockDateSetting(ctx context.Context, ownerID string) (*domain.LockDateSetting, error) {
	var setting domain.LockDateSetting
	err := r.store.db.View(func(tx *bolt.Tx) error {
		found, err := getJSON(ownerBucket(tx, ownerID, bucketMeta), keyLockDate, &setting)
		if err != nil {
			return apperrors.NewAppError(500, "failed to read lock date setting", err)
		}
		if !found {
			return apperrors.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *lockDateRepository) SaveLockDateSetting(ctx context.Context, setting domain.LockDateSetting) error {
	err := r.store.db.Update(func(tx *bolt.Tx) error {
		meta, err := ownerBucketForWrite(tx, setting.OwnerID, bucketMeta)
		if err != nil {
			return err
		}
		return putJSON(meta, keyLockDate, setting)
	})
	if err != nil {
		return apperrors.NewAppError(500, "failed to save lock date setting", err)
	}
	return nil
}
