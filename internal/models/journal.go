package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry row.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// JournalEntry is the journal_entries row. Source and reversal metadata are
// flattened into columns so they can be indexed and filtered.
type JournalEntry struct {
	EntryID             string        `json:"entry_id"`
	OwnerID             string        `json:"owner_id"`
	SequenceNumber      int64         `json:"sequence_number"`
	EntryNumber         string        `json:"entry_number"`
	EntryDate           time.Time     `json:"entry_date"`
	Description         string        `json:"description"`
	Lines               []byte        `json:"lines"` // JSONB array of JournalLine
	Status              JournalStatus `json:"status"`
	SourceType          string        `json:"source_type"`
	SourceDocumentID    string        `json:"source_document_id"`
	SourceTransactionID *string       `json:"source_transaction_id"`
	SourceChequeID      *string       `json:"source_cheque_id"`
	IsReversal          bool          `json:"is_reversal"`
	ReversesEntryID     *string       `json:"reverses_entry_id"`
	ReversedByEntryID   *string       `json:"reversed_by_entry_id"`
	ReversedAt          *time.Time    `json:"reversed_at"`
	ReversalReason      *string       `json:"reversal_reason"`
	ReversalType        *string       `json:"reversal_type"`
	CreatedAt           time.Time     `json:"created_at"`
	CreatedBy           string        `json:"created_by"`
}

// JournalLine is one element of the lines JSONB column.
type JournalLine struct {
	AccountCode string          `json:"account_code"`
	AccountName string          `json:"account_name"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// LockDateSetting is the lock_date_settings row.
type LockDateSetting struct {
	OwnerID          string     `json:"owner_id"`
	LockDate         *time.Time `json:"lock_date"`
	FiscalYearEnd    *time.Time `json:"fiscal_year_end"`
	LastClosedPeriod *string    `json:"last_closed_period"`
	UpdatedAt        time.Time  `json:"updated_at"`
	UpdatedBy        *string    `json:"updated_by"`
}
