package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/mapping"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils/pagination"
)

const journalColumns = `entry_id, owner_id, sequence_number, entry_number, entry_date, description, lines, status,
	source_type, source_document_id, source_transaction_id, source_cheque_id,
	is_reversal, reverses_entry_id, reversed_by_entry_id, reversed_at, reversal_reason, reversal_type,
	created_at, created_by`

// PgxJournalRepository implements portsrepo.JournalRepositoryFacade using pgx.
type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal data.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJournalEntry(row rowScanner) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.OwnerID, &m.SequenceNumber, &m.EntryNumber, &m.EntryDate, &m.Description, &m.Lines, &m.Status,
		&m.SourceType, &m.SourceDocumentID, &m.SourceTransactionID, &m.SourceChequeID,
		&m.IsReversal, &m.ReversesEntryID, &m.ReversedByEntryID, &m.ReversedAt, &m.ReversalReason, &m.ReversalType,
		&m.CreatedAt, &m.CreatedBy,
	)
	if err != nil {
		return nil, err
	}
	d, err := mapping.ToDomainJournalEntry(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map journal entry", err)
	}
	return &d, nil
}

func (r *PgxJournalRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		e, err := scanJournalEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	return entries, nil
}

// FindEntryByID retrieves a single journal entry for an owner.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, ownerID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries WHERE owner_id = $1 AND entry_id = $2`
	e, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, ownerID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry " + entryID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry", err)
	}
	return e, nil
}

// FindEntriesBySource retrieves entries posted for one source document.
func (r *PgxJournalRepository) FindEntriesBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID string, activeOnly bool, limit int) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries
		WHERE owner_id = $1 AND source_type = $2 AND source_document_id = $3` + activeClause(activeOnly) + `
		ORDER BY sequence_number ASC
		LIMIT $4`
	return r.queryEntries(ctx, query, ownerID, string(sourceType), documentID, limit)
}

// FindEntriesByTransactionID retrieves entries sharing one business transaction id.
func (r *PgxJournalRepository) FindEntriesByTransactionID(ctx context.Context, ownerID, transactionID string, activeOnly bool, limit int) ([]domain.JournalEntry, error) {
	query := `SELECT ` + journalColumns + ` FROM journal_entries
		WHERE owner_id = $1 AND source_transaction_id = $2` + activeClause(activeOnly) + `
		ORDER BY sequence_number ASC
		LIMIT $3`
	return r.queryEntries(ctx, query, ownerID, transactionID, limit)
}

// activeClause keeps only posted, non-reversal rows. It must sit before LIMIT.
func activeClause(activeOnly bool) string {
	if !activeOnly {
		return ""
	}
	return ` AND status = 'POSTED' AND NOT is_reversal`
}

// orderClauses returns the ORDER BY clause and the keyset comparison for a page order.
func orderClauses(order domain.EntryOrder) (orderBy string, after func(datePos, seqPos string) string) {
	switch order {
	case domain.OrderDateAsc:
		return "entry_date ASC, sequence_number ASC", func(d, s string) string {
			return "(entry_date, sequence_number) > ($" + d + ", $" + s + ")"
		}
	case domain.OrderSequenceAsc:
		return "sequence_number ASC", func(_, s string) string {
			return "sequence_number > $" + s
		}
	case domain.OrderSequenceDesc:
		return "sequence_number DESC", func(_, s string) string {
			return "sequence_number < $" + s
		}
	default:
		return "entry_date DESC, sequence_number DESC", func(d, s string) string {
			return "(entry_date, sequence_number) < ($" + d + ", $" + s + ")"
		}
	}
}

// ListEntries retrieves a page of entries using keyset pagination.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, ownerID string, filter domain.JournalEntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	order := filter.Order
	if order == "" {
		order = domain.OrderDateDesc
	}
	orderBy, after := orderClauses(order)

	conditions := []string{"owner_id = $1"}
	args := []any{ownerID}
	placeholder := func(v any) string {
		args = append(args, v)
		return strconv.Itoa(len(args))
	}

	if filter.Status != nil {
		conditions = append(conditions, "status = $"+placeholder(string(*filter.Status)))
	}
	if filter.SourceType != nil {
		conditions = append(conditions, "source_type = $"+placeholder(string(*filter.SourceType)))
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, "entry_date >= $"+placeholder(domain.DateOnly(*filter.DateFrom)))
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "entry_date <= $"+placeholder(domain.DateOnly(*filter.DateTo)))
	}
	if nextToken != nil {
		cursor, err := pagination.DecodeCursor(*nextToken, string(order))
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid pagination token", fmt.Errorf("%w: %w", apperrors.ErrValidation, err))
		}
		datePos := placeholder(cursor.Date)
		seqPos := placeholder(cursor.SequenceNumber)
		conditions = append(conditions, after(datePos, seqPos))
	}

	// Fetch one more than the limit to know whether another page exists.
	query := `SELECT ` + journalColumns + ` FROM journal_entries
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY ` + orderBy + `
		LIMIT $` + placeholder(limit+1)

	entries, err := r.queryEntries(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[limit-1]
		token := pagination.EncodeCursor(pagination.Cursor{
			Order:          string(order),
			Date:           last.Date,
			SequenceNumber: last.SequenceNumber,
		})
		next = &token
	}
	return entries, next, nil
}

// CountEntries counts an owner's entries, optionally by status.
func (r *PgxJournalRepository) CountEntries(ctx context.Context, ownerID string, status *domain.JournalStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM journal_entries WHERE owner_id = $1`
	args := []any{ownerID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	var n int64
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count journal entries", err)
	}
	return n, nil
}

// CountEntriesBySource counts entries for one source document.
func (r *PgxJournalRepository) CountEntriesBySource(ctx context.Context, ownerID string, sourceType domain.SourceType, documentID string) (int64, error) {
	query := `SELECT COUNT(*) FROM journal_entries WHERE owner_id = $1 AND source_type = $2 AND source_document_id = $3`
	var n int64
	if err := r.Pool.QueryRow(ctx, query, ownerID, string(sourceType), documentID).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count journal entries by source", err)
	}
	return n, nil
}

// WithinUnit runs fn inside one transaction, committing only when fn succeeds.
func (r *PgxJournalRepository) WithinUnit(ctx context.Context, fn func(unit portsrepo.JournalWriteUnit) error) (err error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = r.Rollback(ctx, tx)
		}
	}()

	if err = fn(&pgxWriteUnit{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// pgxWriteUnit stages journal mutations in a pgx transaction.
type pgxWriteUnit struct {
	tx pgx.Tx
}

var (
	_ portsrepo.JournalWriteUnit = (*pgxWriteUnit)(nil)
	_ portsrepo.TxUnit           = (*pgxWriteUnit)(nil)
)

func (u *pgxWriteUnit) Tx() pgx.Tx {
	return u.tx
}

func (u *pgxWriteUnit) InsertEntry(ctx context.Context, entry domain.JournalEntry) error {
	m, err := mapping.ToModelJournalEntry(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to map journal entry", err)
	}

	query := `INSERT INTO journal_entries (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err = u.tx.Exec(ctx, query,
		m.EntryID, m.OwnerID, m.SequenceNumber, m.EntryNumber, m.EntryDate, m.Description, m.Lines, m.Status,
		m.SourceType, m.SourceDocumentID, m.SourceTransactionID, m.SourceChequeID,
		m.IsReversal, m.ReversesEntryID, m.ReversedByEntryID, m.ReversedAt, m.ReversalReason, m.ReversalType,
		m.CreatedAt, m.CreatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, fmt.Sprintf("journal entry %s (sequence %d) already exists", entry.EntryID, entry.SequenceNumber), errors.Join(apperrors.ErrDuplicate, err))
		}
		return apperrors.NewAppError(500, "failed to insert journal entry", err)
	}
	return nil
}

func (u *pgxWriteUnit) MarkEntryReversed(ctx context.Context, ownerID, entryID string, link domain.ReversalLink) error {
	query := `UPDATE journal_entries
		SET status = $3, reversed_by_entry_id = $4, reversed_at = $5, reversal_reason = $6, reversal_type = $7
		WHERE owner_id = $1 AND entry_id = $2 AND status = $8`
	tag, err := u.tx.Exec(ctx, query, ownerID, entryID,
		string(models.Reversed), link.ReversedByEntryID, link.ReversedAt, link.Reason, string(link.ReversalType),
		string(models.Posted),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal entry reversed", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := u.tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM journal_entries WHERE owner_id = $1 AND entry_id = $2)`, ownerID, entryID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check journal entry", err)
		}
		if !exists {
			return apperrors.NewNotFoundError("journal entry " + entryID + " not found")
		}
		return apperrors.NewAppError(409, "journal entry "+entryID+" is no longer posted", apperrors.ErrConflict)
	}
	return nil
}
