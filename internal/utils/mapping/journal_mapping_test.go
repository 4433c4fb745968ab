package mapping

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
)

func TestJournalEntryMappingKeepsReversalLinkage(t *testing.T) {
	reversesID := "orig-1"
	entry := domain.JournalEntry{
		EntryID:        "rev-1",
		OwnerID:        "owner-1",
		SequenceNumber: 7,
		EntryNumber:    "JE-000007",
		Date:           time.Date(2024, 7, 2, 0, 0, 0, 0, time.UTC),
		Description:    "Reversal of JE-000003: rent",
		Lines: []domain.JournalLine{
			{AccountCode: "1010", AccountName: "Cash", Debit: decimal.RequireFromString("12.50"), Credit: decimal.Zero},
			{AccountCode: "6100", AccountName: "Rent", Debit: decimal.Zero, Credit: decimal.RequireFromString("12.50")},
		},
		Status: domain.Posted,
		Source: domain.JournalSource{Type: domain.SourceLedger, DocumentID: "doc-1", TransactionID: "txn-9"},
		Reversal: &domain.JournalReversal{
			IsReversal:      true,
			ReversesEntryID: &reversesID,
			Reason:          "duplicate",
			ReversalType:    domain.ReversalVoid,
		},
		CreatedAt: time.Date(2024, 7, 2, 9, 30, 0, 0, time.UTC),
		CreatedBy: "u-1",
	}

	row, err := ToModelJournalEntry(entry)
	require.NoError(t, err)
	assert.True(t, row.IsReversal)
	assert.Equal(t, "txn-9", *row.SourceTransactionID)
	assert.Nil(t, row.SourceChequeID)
	assert.JSONEq(t,
		`[{"account_code":"1010","account_name":"Cash","debit":"12.5","credit":"0"},
		  {"account_code":"6100","account_name":"Rent","debit":"0","credit":"12.5"}]`,
		string(row.Lines))

	back, err := ToDomainJournalEntry(row)
	require.NoError(t, err)
	assert.Equal(t, entry.EntryID, back.EntryID)
	assert.Equal(t, entry.Source, back.Source)
	require.NotNil(t, back.Reversal)
	assert.Equal(t, "orig-1", *back.Reversal.ReversesEntryID)
	assert.True(t, back.Lines[0].Debit.Equal(decimal.RequireFromString("12.5")))
}

func TestToDomainJournalEntryWithoutReversal(t *testing.T) {
	row, err := ToModelJournalEntry(domain.JournalEntry{
		EntryID: "e-1",
		Lines:   []domain.JournalLine{},
		Status:  domain.Posted,
	})
	require.NoError(t, err)

	back, err := ToDomainJournalEntry(row)
	require.NoError(t, err)
	assert.Nil(t, back.Reversal)
}

func TestToDomainJournalEntryBadLines(t *testing.T) {
	_, err := ToDomainJournalEntry(models.JournalEntry{EntryID: "e-2", Lines: []byte("not json")})
	assert.Error(t, err)
}
