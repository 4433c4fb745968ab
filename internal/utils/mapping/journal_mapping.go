package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a journal_entries row.
func ToModelJournalEntry(d domain.JournalEntry) (models.JournalEntry, error) {
	lines := make([]models.JournalLine, len(d.Lines))
	for i, l := range d.Lines {
		lines[i] = models.JournalLine{
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return models.JournalEntry{}, fmt.Errorf("failed to encode lines of entry %s: %w", d.EntryID, err)
	}

	m := models.JournalEntry{
		EntryID:             d.EntryID,
		OwnerID:             d.OwnerID,
		SequenceNumber:      d.SequenceNumber,
		EntryNumber:         d.EntryNumber,
		EntryDate:           d.Date,
		Description:         d.Description,
		Lines:               linesJSON,
		Status:              models.JournalStatus(d.Status),
		SourceType:          string(d.Source.Type),
		SourceDocumentID:    d.Source.DocumentID,
		SourceTransactionID: nullableString(d.Source.TransactionID),
		SourceChequeID:      nullableString(d.Source.ChequeID),
		CreatedAt:           d.CreatedAt,
		CreatedBy:           d.CreatedBy,
	}
	if r := d.Reversal; r != nil {
		m.IsReversal = r.IsReversal
		m.ReversesEntryID = r.ReversesEntryID
		m.ReversedByEntryID = r.ReversedByEntryID
		m.ReversedAt = r.ReversedAt
		m.ReversalReason = nullableString(r.Reason)
		m.ReversalType = nullableString(string(r.ReversalType))
	}
	return m, nil
}

// ToDomainJournalEntry converts a journal_entries row to a domain JournalEntry.
func ToDomainJournalEntry(m models.JournalEntry) (domain.JournalEntry, error) {
	var lines []models.JournalLine
	if err := json.Unmarshal(m.Lines, &lines); err != nil {
		return domain.JournalEntry{}, fmt.Errorf("failed to decode lines of entry %s: %w", m.EntryID, err)
	}
	domainLines := make([]domain.JournalLine, len(lines))
	for i, l := range lines {
		domainLines[i] = domain.JournalLine{
			AccountCode: l.AccountCode,
			AccountName: l.AccountName,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}

	d := domain.JournalEntry{
		EntryID:        m.EntryID,
		OwnerID:        m.OwnerID,
		SequenceNumber: m.SequenceNumber,
		EntryNumber:    m.EntryNumber,
		Date:           domain.DateOnly(m.EntryDate),
		Description:    m.Description,
		Lines:          domainLines,
		Status:         domain.JournalStatus(m.Status),
		Source: domain.JournalSource{
			Type:          domain.SourceType(m.SourceType),
			DocumentID:    m.SourceDocumentID,
			TransactionID: derefString(m.SourceTransactionID),
			ChequeID:      derefString(m.SourceChequeID),
		},
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
	if m.IsReversal || m.ReversedByEntryID != nil {
		d.Reversal = &domain.JournalReversal{
			IsReversal:        m.IsReversal,
			ReversesEntryID:   m.ReversesEntryID,
			ReversedByEntryID: m.ReversedByEntryID,
			ReversedAt:        m.ReversedAt,
			Reason:            derefString(m.ReversalReason),
			ReversalType:      domain.ReversalType(derefString(m.ReversalType)),
		}
	}
	return d, nil
}

// ToModelLockDateSetting converts a domain LockDateSetting to a lock_date_settings row.
func ToModelLockDateSetting(d domain.LockDateSetting) models.LockDateSetting {
	return models.LockDateSetting{
		OwnerID:          d.OwnerID,
		LockDate:         d.LockDate,
		FiscalYearEnd:    d.FiscalYearEnd,
		LastClosedPeriod: nullableString(d.LastClosedPeriod),
		UpdatedAt:        d.UpdatedAt,
		UpdatedBy:        nullableString(d.UpdatedBy),
	}
}

// ToDomainLockDateSetting converts a lock_date_settings row to a domain LockDateSetting.
func ToDomainLockDateSetting(m models.LockDateSetting) domain.LockDateSetting {
	d := domain.LockDateSetting{
		OwnerID:          m.OwnerID,
		LastClosedPeriod: derefString(m.LastClosedPeriod),
		UpdatedAt:        m.UpdatedAt,
		UpdatedBy:        derefString(m.UpdatedBy),
	}
	if m.LockDate != nil {
		t := domain.DateOnly(*m.LockDate)
		d.LockDate = &t
	}
	if m.FiscalYearEnd != nil {
		t := domain.DateOnly(*m.FiscalYearEnd)
		d.FiscalYearEnd = &t
	}
	return d
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
