package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	bolt "go.etcd.io/bbolt"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/pagination"
)

type journalRepository struct {
	store *Store
}

func newJournalRepository(s *Store) *journalRepository {
	return &journalRepository{store: s}
}

var _ portsrepo.JournalRepositoryFacade = (*journalRepository)(nil)

func (r *journalRepository) FindEntryByID(ctx context.Context, ownerID, entryID string) (*domain.JournalEntry, error) {
	var entry *domain.JournalEntry
	err := r.store.db.View(func(tx *bolt.Tx) error {
		var err error
		entry, err = loadEntryByID(tx, ownerID, entryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *journalRepository) FindEntriesBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID string, activeOnly bool, limit int) ([]domain.JournalEntry, error) {
	return r.scan(ownerID, limit, func(e *domain.JournalEntry) bool {
		return e.Source.Type == sourceType && e.Source.DocumentID == documentID && isActive(e, activeOnly)
	})
}

func (r *journalRepository) FindEntriesByTransactionID(ctx context.Context, ownerID, transactionID string, activeOnly bool, limit int) ([]domain.JournalEntry, error) {
	return r.scan(ownerID, limit, func(e *domain.JournalEntry) bool {
		return e.Source.TransactionID == transactionID && isActive(e, activeOnly)
	})
}

// isActive is evaluated inside the scan so the limit only counts matching entries.
func isActive(e *domain.JournalEntry, activeOnly bool) bool {
	return !activeOnly || (e.Status == domain.Posted && !e.IsReversal())
}

func (r *journalRepository) ListEntries(ctx context.Context, ownerID string, filter domain.JournalEntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	order := filter.Order
	if order == "" {
		order = domain.OrderDateDesc
	}

	var cursor *pagination.Cursor
	if nextToken != nil {
		c, err := pagination.DecodeCursor(*nextToken, string(order))
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", fmt.Errorf("%w: %w", apperrors.ErrValidation, err))
		}
		cursor = &c
	}

	matched, err := r.scan(ownerID, 0, filter.Matches)
	if err != nil {
		return nil, nil, err
	}

	sort.Slice(matched, func(i, j int) bool {
		return entryBefore(order, matched[i].Date, matched[i].SequenceNumber, matched[j].Date, matched[j].SequenceNumber)
	})

	// Fetch one more than the limit to know whether another page exists.
	page := make([]domain.JournalEntry, 0, limit+1)
	for _, e := range matched {
		if cursor != nil && !entryBefore(order, cursor.Date, cursor.SequenceNumber, e.Date, e.SequenceNumber) {
			continue
		}
		page = append(page, e)
		if len(page) == limit+1 {
			break
		}
	}

	var next *string
	if len(page) > limit {
		page = page[:limit]
		last := page[limit-1]
		token := pagination.EncodeCursor(pagination.Cursor{
			Order:          string(order),
			Date:           last.Date,
			SequenceNumber: last.SequenceNumber,
		})
		next = &token
	}
	return page, next, nil
}

func (r *journalRepository) CountEntries(ctx context.Context, ownerID string, status *domain.JournalStatus) (int64, error) {
	return r.count(ownerID, func(e *domain.JournalEntry) bool {
		return status == nil || e.Status == *status
	})
}

func (r *journalRepository) CountEntriesBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID string) (int64, error) {
	return r.count(ownerID, func(e *domain.JournalEntry) bool {
		return e.Source.Type == sourceType && e.Source.DocumentID == documentID
	})
}

func (r *journalRepository) WithinUnit(ctx context.Context, fn func(unit portsrepo.JournalWriteUnit) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// Returning an error from Update rolls back everything fn staged.
	return r.store.db.Update(func(tx *bolt.Tx) error {
		return fn(&writeUnit{tx: tx})
	})
}

// scan walks an owner's entries in sequence order. limit <= 0 means no limit.
func (r *journalRepository) scan(ownerID string, limit int, match func(*domain.JournalEntry) bool) ([]domain.JournalEntry, error) {
	entries := []domain.JournalEntry{}
	err := r.store.db.View(func(tx *bolt.Tx) error {
		b := ownerBucket(tx, ownerID, bucketEntries)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var e domain.JournalEntry
			if err := json.Unmarshal(v, &e); err != nil {
				return apperrors.NewAppError(500, "failed to decode journal entry", err)
			}
			if !match(&e) {
				continue
			}
			entries = append(entries, e)
			if limit > 0 && len(entries) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *journalRepository) count(ownerID string, match func(*domain.JournalEntry) bool) (int64, error) {
	entries, err := r.scan(ownerID, 0, match)
	if err != nil {
		return 0, err
	}
	return int64(len(entries)), nil
}

func loadEntryByID(tx *bolt.Tx, ownerID, entryID string) (*domain.JournalEntry, error) {
	ids := ownerBucket(tx, ownerID, bucketEntryIDs)
	if ids == nil {
		return nil, apperrors.NewNotFoundError("journal entry " + entryID + " not found")
	}
	seqKey := ids.Get([]byte(entryID))
	if seqKey == nil {
		return nil, apperrors.NewNotFoundError("journal entry " + entryID + " not found")
	}
	var e domain.JournalEntry
	found, err := getJSON(ownerBucket(tx, ownerID, bucketEntries), seqKey, &e)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to decode journal entry", err)
	}
	if !found {
		return nil, apperrors.NewAppError(500, "entry index points at a missing entry", fmt.Errorf("entry %s, sequence %d", entryID, btoi(seqKey)))
	}
	return &e, nil
}

// writeUnit stages mutations in one bbolt write transaction.
type writeUnit struct {
	tx *bolt.Tx
}

func (u *writeUnit) InsertEntry(ctx context.Context, entry domain.JournalEntry) error {
	entries, err := ownerBucketForWrite(u.tx, entry.OwnerID, bucketEntries)
	if err != nil {
		return err
	}
	ids, err := ownerBucketForWrite(u.tx, entry.OwnerID, bucketEntryIDs)
	if err != nil {
		return err
	}

	seqKey := itob(entry.SequenceNumber)
	if entries.Get(seqKey) != nil {
		return apperrors.NewAppError(409, fmt.Sprintf("sequence number %d already used", entry.SequenceNumber), apperrors.ErrDuplicate)
	}
	if ids.Get([]byte(entry.EntryID)) != nil {
		return apperrors.NewAppError(409, "journal entry "+entry.EntryID+" already exists", apperrors.ErrDuplicate)
	}

	if err := putJSON(entries, seqKey, entry); err != nil {
		return err
	}
	return ids.Put([]byte(entry.EntryID), seqKey)
}

func (u *writeUnit) MarkEntryReversed(ctx context.Context, ownerID, entryID string, link domain.ReversalLink) error {
	e, err := loadEntryByID(u.tx, ownerID, entryID)
	if err != nil {
		return err
	}
	if e.Status != domain.Posted {
		return apperrors.NewAppError(409, "journal entry "+entryID+" is no longer posted", apperrors.ErrConflict)
	}

	if e.Reversal == nil {
		e.Reversal = &domain.JournalReversal{}
	}
	reversedBy := link.ReversedByEntryID
	reversedAt := link.ReversedAt
	e.Status = domain.Reversed
	e.Reversal.ReversedByEntryID = &reversedBy
	e.Reversal.ReversedAt = &reversedAt
	e.Reversal.Reason = link.Reason
	e.Reversal.ReversalType = link.ReversalType

	entries, err := ownerBucketForWrite(u.tx, ownerID, bucketEntries)
	if err != nil {
		return err
	}
	return putJSON(entries, itob(e.SequenceNumber), e)
}
