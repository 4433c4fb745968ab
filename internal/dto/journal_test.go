package dto_test

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/dto"
)

func newValidator(t *testing.T) *validator.Validate {
	v := validator.New()
	require.NoError(t, dto.RegisterValidators(v))
	return v
}

func TestRegisterValidators_EnumTags(t *testing.T) {
	v := newValidator(t)

	assert.NoError(t, v.Var("ledger", "source_type"))
	assert.Error(t, v.Var("invoice", "source_type"))
	assert.NoError(t, v.Var("COGS", "template_kind"))
	assert.Error(t, v.Var("cogs", "template_kind"))
	assert.NoError(t, v.Var("void", "reversal_type"))
	assert.Error(t, v.Var("refund", "reversal_type"))
	assert.NoError(t, v.Var("REVERSED", "journal_status"))
	assert.Error(t, v.Var("DRAFT", "journal_status"))
	assert.NoError(t, v.Var("sequence_desc", "entry_order"))
	assert.Error(t, v.Var("amount", "entry_order"))
}

func TestRegisterValidators_Twice(t *testing.T) {
	v := newValidator(t)
	assert.NoError(t, dto.RegisterValidators(v))
}

func TestPostEntryRequest_ToPostingRequest(t *testing.T) {
	req := dto.PostEntryRequest{
		Amount:      decimal.RequireFromString("12.50"),
		Date:        "2024-02-29",
		Description: "Manual accrual",
		Source:      dto.JournalSourceRequest{Type: domain.SourceManual, DocumentID: "adj-1"},
		Context:     dto.TemplateContextRequest{PaymentMethod: domain.PaymentCheque, IsEndorsement: true},
		Lines: []dto.JournalLineRequest{
			{AccountCode: "6100", Debit: decimal.RequireFromString("12.50")},
			{AccountCode: "2100", AccountName: "Accounts Payable", Credit: decimal.RequireFromString("12.50")},
		},
	}

	got, err := req.ToPostingRequest("owner-1", "bob")

	require.NoError(t, err)
	assert.Equal(t, "owner-1", got.OwnerID)
	assert.Equal(t, "bob", got.CreatedBy)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), got.Date)
	assert.Equal(t, domain.SourceManual, got.Source.Type)
	assert.Equal(t, "adj-1", got.Source.DocumentID)
	assert.True(t, got.Context.IsEndorsement)
	assert.Equal(t, domain.PaymentCheque, got.Context.PaymentMethod)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, "Accounts Payable", got.Lines[1].AccountName)
	assert.True(t, got.Lines[1].Credit.Equal(decimal.RequireFromString("12.5")))
}

func TestPostEntryRequest_BadDate(t *testing.T) {
	_, err := dto.PostEntryRequest{Date: "2024-02-30"}.ToPostingRequest("owner-1", "")
	assert.Error(t, err)
}

func TestListEntriesParams_ToFilter(t *testing.T) {
	f, err := dto.ListEntriesParams{
		Status:   domain.Reversed,
		DateFrom: "2024-01-01",
		DateTo:   "2024-03-31",
		Order:    domain.OrderDateAsc,
	}.ToFilter()

	require.NoError(t, err)
	assert.Equal(t, domain.OrderDateAsc, f.Order)
	require.NotNil(t, f.Status)
	assert.Equal(t, domain.Reversed, *f.Status)
	assert.Nil(t, f.SourceType)
	require.NotNil(t, f.DateFrom)
	require.NotNil(t, f.DateTo)
	assert.Equal(t, time.March, f.DateTo.Month())

	empty, err := dto.ListEntriesParams{}.ToFilter()
	require.NoError(t, err)
	assert.Nil(t, empty.Status)
	assert.Nil(t, empty.DateFrom)
	assert.Empty(t, empty.Order)
}

func TestUpdateLockDateRequest_ToDomain(t *testing.T) {
	lock := "2024-06-30"
	s, err := dto.UpdateLockDateRequest{LockDate: &lock, LastClosedPeriod: "2024-Q2"}.ToDomain("owner-1", "carol")

	require.NoError(t, err)
	require.NotNil(t, s.LockDate)
	assert.Equal(t, "2024-06-30", s.LockDate.Format(dto.DateLayout))
	assert.Nil(t, s.FiscalYearEnd)
	assert.Equal(t, "carol", s.UpdatedBy)

	reopen, err := dto.UpdateLockDateRequest{}.ToDomain("owner-1", "carol")
	require.NoError(t, err)
	assert.Nil(t, reopen.LockDate)
}

func TestToBulkReversalResponse(t *testing.T) {
	resp := dto.ToBulkReversalResponse([]domain.ReversalResult{{Success: true}, {Success: false}, {Success: true}})
	assert.Equal(t, 2, resp.Succeeded)
	assert.Equal(t, 1, resp.Failed)
}

func TestToReserveSequencesResponse(t *testing.T) {
	resp := dto.ToReserveSequencesResponse([]int64{99, 100})
	assert.Equal(t, []string{"JE-000099", "JE-000100"}, resp.EntryNumbers)
}
