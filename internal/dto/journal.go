package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// DateLayout is the wire format of business dates.
const DateLayout = "2006-01-02"

// JournalLineRequest is one explicit line of a manual entry.
type JournalLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalSourceRequest identifies the business document behind an entry.
type JournalSourceRequest struct {
	Type          domain.SourceType `json:"type" binding:"required,source_type"`
	DocumentID    string            `json:"documentID"`
	TransactionID string            `json:"transactionID"`
	ChequeID      string            `json:"chequeID"`
}

// TemplateContextRequest carries the template hints.
type TemplateContextRequest struct {
	Category      string               `json:"category"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"omitempty,oneof=cash bank cheque"`
	IsImmediate   bool                 `json:"isImmediate"`
	IsTracked     bool                 `json:"isTracked"`
	IsEndorsement bool                 `json:"isEndorsement"`
	IsAdvance     bool                 `json:"isAdvance"`
}

// PostEntryRequest posts either a template entry (templateKind + amount) or
// an explicit set of lines.
type PostEntryRequest struct {
	TemplateKind domain.TemplateKind    `json:"templateKind" binding:"omitempty,template_kind"`
	Amount       decimal.Decimal        `json:"amount"`
	Date         string                 `json:"date" binding:"required,datetime=2006-01-02"`
	Description  string                 `json:"description" binding:"required"`
	Source       JournalSourceRequest   `json:"source" binding:"required"`
	Context      TemplateContextRequest `json:"context"`
	Lines        []JournalLineRequest   `json:"lines" binding:"omitempty,dive"`
}

// ToPostingRequest converts the request into the posting engine's command.
func (r PostEntryRequest) ToPostingRequest(ownerID, userID string) (domain.PostingRequest, error) {
	date, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return domain.PostingRequest{}, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}
	lines := make([]domain.JournalLine, len(r.Lines))
	for i, l := range r.Lines {
		lines[i] = domain.JournalLine{
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return domain.PostingRequest{
		OwnerID:      ownerID,
		TemplateKind: r.TemplateKind,
		Amount:       r.Amount,
		Date:         date,
		Description:  r.Description,
		Source: domain.JournalSource{
			Type:          r.Source.Type,
			DocumentID:    r.Source.DocumentID,
			TransactionID: r.Source.TransactionID,
			ChequeID:      r.Source.ChequeID,
		},
		Context:   r.Context.ToTemplateContext(),
		Lines:     lines,
		CreatedBy: userID,
	}, nil
}

// ReverseEntryRequest is the body of every reversal endpoint.
type ReverseEntryRequest struct {
	Reason       string              `json:"reason" binding:"required"`
	ReversalType domain.ReversalType `json:"reversalType" binding:"omitempty,reversal_type"`
}

// ListEntriesParams are the query parameters of the paginated listing.
type ListEntriesParams struct {
	Status     domain.JournalStatus `form:"status" binding:"omitempty,journal_status"`
	SourceType domain.SourceType    `form:"sourceType" binding:"omitempty,source_type"`
	DateFrom   string               `form:"dateFrom" binding:"omitempty,datetime=2006-01-02"`
	DateTo     string               `form:"dateTo" binding:"omitempty,datetime=2006-01-02"`
	Order      domain.EntryOrder    `form:"order" binding:"omitempty,entry_order"`
	Limit      int                  `form:"limit" binding:"omitempty,min=1"`
	NextToken  *string              `form:"nextToken"`
}

// ToFilter converts the parameters into a domain filter.
func (p ListEntriesParams) ToFilter() (domain.JournalEntryFilter, error) {
	f := domain.JournalEntryFilter{Order: p.Order}
	if p.Status != "" {
		s := p.Status
		f.Status = &s
	}
	if p.SourceType != "" {
		t := p.SourceType
		f.SourceType = &t
	}
	var err error
	if f.DateFrom, err = parseOptionalDate(p.DateFrom); err != nil {
		return f, err
	}
	if f.DateTo, err = parseOptionalDate(p.DateTo); err != nil {
		return f, err
	}
	return f, nil
}

// LookupParams are the query parameters of by-source and by-transaction lookups.
type LookupParams struct {
	IncludeReversed bool `form:"includeReversed"`
}

// CountParams are the query parameters of the status count endpoint.
type CountParams struct {
	Status domain.JournalStatus `form:"status" binding:"omitempty,journal_status"`
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return &t, nil
}

// JournalLineResponse is one line of an entry.
type JournalLineResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalReversalResponse carries reversal linkage.
type JournalReversalResponse struct {
	IsReversal        bool                `json:"isReversal"`
	ReversesEntryID   *string             `json:"reversesEntryID,omitempty"`
	ReversedByEntryID *string             `json:"reversedByEntryID,omitempty"`
	ReversedAt        *time.Time          `json:"reversedAt,omitempty"`
	Reason            string              `json:"reason"`
	ReversalType      domain.ReversalType `json:"reversalType"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID        string                   `json:"entryID"`
	SequenceNumber int64                    `json:"sequenceNumber"`
	EntryNumber    string                   `json:"entryNumber"`
	Date           string                   `json:"date"`
	Description    string                   `json:"description"`
	Lines          []JournalLineResponse    `json:"lines"`
	TotalDebit     decimal.Decimal          `json:"totalDebit"`
	TotalCredit    decimal.Decimal          `json:"totalCredit"`
	Status         domain.JournalStatus     `json:"status"`
	Source         domain.JournalSource     `json:"source"`
	Reversal       *JournalReversalResponse `json:"reversal,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
	CreatedBy      string                   `json:"createdBy,omitempty"`
}

// ListEntriesResponse is one page of entries.
type ListEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// CountResponse carries a count.
type CountResponse struct {
	Count int64 `json:"count"`
}

// BulkReversalResponse lists per-entry reversal outcomes.
type BulkReversalResponse struct {
	Results   []domain.ReversalResult `json:"results"`
	Succeeded int                     `json:"succeeded"`
	Failed    int                     `json:"failed"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	debit, credit := e.Totals()
	resp := JournalEntryResponse{
		EntryID:        e.EntryID,
		SequenceNumber: e.SequenceNumber,
		EntryNumber:    e.EntryNumber,
		Date:           e.Date.Format(DateLayout),
		Description:    e.Description,
		Lines:          lines,
		TotalDebit:     debit,
		TotalCredit:    credit,
		Status:         e.Status,
		Source:         e.Source,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
	if r := e.Reversal; r != nil {
		resp.Reversal = &JournalReversalResponse{
			IsReversal:        r.IsReversal,
			ReversesEntryID:   r.ReversesEntryID,
			ReversedByEntryID: r.ReversedByEntryID,
			ReversedAt:        r.ReversedAt,
			Reason:            r.Reason,
			ReversalType:      r.ReversalType,
		}
	}
	return resp
}

// ToJournalEntryResponses converts a slice of domain.JournalEntry.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}

// ToBulkReversalResponse tallies per-entry outcomes.
func ToBulkReversalResponse(results []domain.ReversalResult) BulkReversalResponse {
	resp := BulkReversalResponse{Results: results}
	for _, r := range results {
		if r.Success {
			resp.Succeeded++
		} else {
			resp.Failed++
		}
	}
	return resp
}
