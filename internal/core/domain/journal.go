package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// IsValid reports whether s is a known status.
func (s JournalStatus) IsValid() bool {
	return s == Posted || s == Reversed
}

// SourceType tags the business document that caused an entry.
type SourceType string

const (
	SourceLedger             SourceType = "ledger"
	SourcePayment            SourceType = "payment"
	SourceChequeCash         SourceType = "cheque-cash"
	SourceEndorsement        SourceType = "endorsement"
	SourceInventory          SourceType = "inventory"
	SourceDepreciation       SourceType = "depreciation"
	SourceBadDebt            SourceType = "bad-debt"
	SourceDiscount           SourceType = "discount"
	SourceAdvanceApplication SourceType = "advance-application"
	SourceAdvanceClient      SourceType = "advance-client"
	SourceAdvanceSupplier    SourceType = "advance-supplier"
	SourceManual             SourceType = "manual"
)

var sourceTypes = map[SourceType]struct{}{
	SourceLedger:             {},
	SourcePayment:            {},
	SourceChequeCash:         {},
	SourceEndorsement:        {},
	SourceInventory:          {},
	SourceDepreciation:       {},
	SourceBadDebt:            {},
	SourceDiscount:           {},
	SourceAdvanceApplication: {},
	SourceAdvanceClient:      {},
	SourceAdvanceSupplier:    {},
	SourceManual:             {},
}

// IsValid reports whether t belongs to the closed set of source types.
func (t SourceType) IsValid() bool {
	_, ok := sourceTypes[t]
	return ok
}

// ReversalType distinguishes a plain void from a correction that will be re-posted.
type ReversalType string

const (
	ReversalVoid       ReversalType = "void"
	ReversalCorrection ReversalType = "correction"
)

// IsValid reports whether t is a known reversal type.
func (t ReversalType) IsValid() bool {
	return t == ReversalVoid || t == ReversalCorrection
}

// JournalLine is one side of a balanced entry.
type JournalLine struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// Swapped returns the line with debit and credit exchanged.
func (l JournalLine) Swapped() JournalLine {
	return JournalLine{
		AccountCode: l.AccountCode,
		AccountName: l.AccountName,
		Debit:       l.Credit,
		Credit:      l.Debit,
	}
}

// JournalSource records where an entry came from.
type JournalSource struct {
	Type          SourceType `json:"type"`
	DocumentID    string     `json:"documentID"`
	TransactionID string     `json:"transactionID,omitempty"` // shared by every document of one business transaction
	ChequeID      string     `json:"chequeID,omitempty"`
}

// JournalReversal is attached to entries that are a reversal or have been reversed.
type JournalReversal struct {
	IsReversal        bool         `json:"isReversal"`
	ReversesEntryID   *string      `json:"reversesEntryID,omitempty"`
	ReversedByEntryID *string      `json:"reversedByEntryID,omitempty"`
	ReversedAt        *time.Time   `json:"reversedAt,omitempty"`
	Reason            string       `json:"reason"`
	ReversalType      ReversalType `json:"reversalType"`
}

// JournalEntry is the ledger's unit of record. It is only created by the posting engine
// and only ever updated to attach reversal linkage.
type JournalEntry struct {
	EntryID        string           `json:"entryID"`
	OwnerID        string           `json:"ownerID"`
	SequenceNumber int64            `json:"sequenceNumber"`
	EntryNumber    string           `json:"entryNumber"`
	Date           time.Time        `json:"date"` // business date, not write time
	Description    string           `json:"description"`
	Lines          []JournalLine    `json:"lines"`
	Status         JournalStatus    `json:"status"`
	Source         JournalSource    `json:"source"`
	Reversal       *JournalReversal `json:"reversal,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	CreatedBy      string           `json:"createdBy,omitempty"`
}

// IsReversal reports whether the entry was created to reverse another entry.
func (e *JournalEntry) IsReversal() bool {
	return e.Reversal != nil && e.Reversal.IsReversal
}

// Totals sums the debit and credit sides of the entry.
func (e *JournalEntry) Totals() (decimal.Decimal, decimal.Decimal) {
	return SumLines(e.Lines)
}

// SumLines returns total debits and total credits for lines.
func SumLines(lines []JournalLine) (decimal.Decimal, decimal.Decimal) {
	debits := decimal.Zero
	credits := decimal.Zero
	for _, l := range lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}

// BalanceTolerance absorbs rounding noise from callers that compute amounts in floating point.
var BalanceTolerance = decimal.RequireFromString("0.001")

// IsBalanced reports whether |debits - credits| is below BalanceTolerance.
func IsBalanced(debits, credits decimal.Decimal) bool {
	return debits.Sub(credits).Abs().LessThan(BalanceTolerance)
}

// ReversalLink is the metadata written onto an original entry when it is reversed.
type ReversalLink struct {
	ReversedByEntryID string
	ReversedAt        time.Time
	Reason            string
	ReversalType      ReversalType
}

// EntryRef identifies an entry staged or written by the posting engine.
type EntryRef struct {
	EntryID        string `json:"entryID"`
	SequenceNumber int64  `json:"sequenceNumber"`
	EntryNumber    string `json:"entryNumber"`
}
