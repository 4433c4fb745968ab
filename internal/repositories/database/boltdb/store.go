// Package boltdb backs the ledger with an embedded bbolt file, for single-node
// deployments and for exercising the full posting path in tests.
//
// Layout, per owner under the "owners" bucket:
//
//	entries    itob(sequence) -> JSON entry
//	entry_ids  entryID -> itob(sequence)
//	meta       "sequence", "lock_date" -> JSON
package boltdb

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
)

var (
	bucketOwners   = []byte("owners")
	bucketEntries  = []byte("entries")
	bucketEntryIDs = []byte("entry_ids")
	bucketMeta     = []byte("meta")

	keySequence = []byte("sequence")
	keyLockDate = []byte("lock_date")
)

// Store represents the bbolt database wrapper.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the database file at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketOwners); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucketOwners, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		JournalRepo:  newJournalRepository(s),
		SequenceRepo: newSequenceRepository(s),
		LockDateRepo: newLockDateRepository(s),
	}
}

// ownerBucket returns the owner's sub-bucket, nil if the owner has no data yet.
func ownerBucket(tx *bolt.Tx, ownerID string, name []byte) *bolt.Bucket {
	owner := tx.Bucket(bucketOwners).Bucket([]byte(ownerID))
	if owner == nil {
		return nil
	}
	return owner.Bucket(name)
}

// ownerBucketForWrite creates the owner's sub-bucket on first use.
func ownerBucketForWrite(tx *bolt.Tx, ownerID string, name []byte) (*bolt.Bucket, error) {
	owner, err := tx.Bucket(bucketOwners).CreateBucketIfNotExists([]byte(ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to create owner bucket: %w", err)
	}
	b, err := owner.CreateBucketIfNotExists(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create bucket %s: %w", name, err)
	}
	return b, nil
}

func getJSON(b *bolt.Bucket, key []byte, value any) (bool, error) {
	if b == nil {
		return false, nil
	}
	data := b.Get(key)
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s: %w", key, err)
	}
	return true, nil
}

func putJSON(b *bolt.Bucket, key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return b.Put(key, data)
}

// itob converts an int64 to a byte slice for use as a bbolt key.
// Big-endian keeps bbolt's byte order equal to numeric order.
func itob(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func btoi(b []byte) int64 {
	return int64(binary.BigEndian.Uint64(b))
}
