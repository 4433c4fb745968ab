package boltdb

import (
	"context"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
)

type sequenceRepository struct {
	store *Store
}

func newSequenceRepository(s *Store) *sequenceRepository {
	return &sequenceRepository{store: s}
}

var _ portsrepo.SequenceRepositoryFacade = (*sequenceRepository)(nil)

func (r *sequenceRepository) FindSequence(ctx context.Context, ownerID string) (*domain.SequenceCounter, error) {
	var counter domain.SequenceCounter
	err := r.store.db.View(func(tx *bolt.Tx) error {
		found, err := getJSON(ownerBucket(tx, ownerID, bucketMeta), keySequence, &counter)
		if err != nil {
			return apperrors.NewAppError(500, "failed to read sequence counter", err)
		}
		if !found {
			return apperrors.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &counter, nil
}

// IncrementSequence runs inside a bbolt write transaction. bbolt admits one
// writer at a time, so the read-modify-write is serial and never conflicts.
func (r *sequenceRepository) IncrementSequence(ctx context.Context, ownerID string, delta int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var next int64
	err := r.store.db.Update(func(tx *bolt.Tx) error {
		meta, err := ownerBucketForWrite(tx, ownerID, bucketMeta)
		if err != nil {
			return err
		}
		counter := domain.SequenceCounter{OwnerID: ownerID}
		if _, err := getJSON(meta, keySequence, &counter); err != nil {
			return err
		}
		counter.CurrentSequence += delta
		counter.LastUpdated = time.Now().UTC()
		next = counter.CurrentSequence
		return putJSON(meta, keySequence, counter)
	})
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to increment sequence counter", err)
	}
	return next, nil
}
