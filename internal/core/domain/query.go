package domain

import "time"

// EntryOrder selects the sort order of a paginated entry listing.
type EntryOrder string

const (
	OrderDateDesc     EntryOrder = "date_desc"
	OrderDateAsc      EntryOrder = "date_asc"
	OrderSequenceDesc EntryOrder = "sequence_desc"
	OrderSequenceAsc  EntryOrder = "sequence_asc"
)

// IsValid reports whether o is a supported order.
func (o EntryOrder) IsValid() bool {
	switch o {
	case OrderDateDesc, OrderDateAsc, OrderSequenceDesc, OrderSequenceAsc:
		return true
	}
	return false
}

// JournalEntryFilter narrows a paginated listing. Nil fields do not filter.
type JournalEntryFilter struct {
	Status     *JournalStatus
	SourceType *SourceType
	DateFrom   *time.Time // inclusive
	DateTo     *time.Time // inclusive
	Order      EntryOrder
}

// Matches applies the filter in memory; used by stores without a query planner.
func (f JournalEntryFilter) Matches(e *JournalEntry) bool {
	if f.Status != nil && e.Status != *f.Status {
		return false
	}
	if f.SourceType != nil && e.Source.Type != *f.SourceType {
		return false
	}
	d := DateOnly(e.Date)
	if f.DateFrom != nil && d.Before(DateOnly(*f.DateFrom)) {
		return false
	}
	if f.DateTo != nil && d.After(DateOnly(*f.DateTo)) {
		return false
	}
	return true
}

// JournalEntryPage is one page of a cursor-paginated listing.
type JournalEntryPage struct {
	Entries   []JournalEntry `json:"entries"`
	NextToken *string        `json:"nextToken,omitempty"`
}

const (
	DefaultPageSize = 100
	MaxPageSize     = 500
	// LookupLimit caps by-source and by-transaction lookups, including bulk reversals.
	LookupLimit = 50
)

// ClampPageSize applies the default and the ceiling to a requested page size.
func ClampPageSize(n int) int {
	switch {
	case n <= 0:
		return DefaultPageSize
	case n > MaxPageSize:
		return MaxPageSize
	}
	return n
}
