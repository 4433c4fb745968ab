package domain

import "time"

// LockDateSetting holds an owner's period-close state.
// Dates on or before LockDate are immutable.
type LockDateSetting struct {
	OwnerID          string     `json:"ownerID"`
	LockDate         *time.Time `json:"lockDate,omitempty"`
	FiscalYearEnd    *time.Time `json:"fiscalYearEnd,omitempty"`
	LastClosedPeriod string     `json:"lastClosedPeriod,omitempty"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	UpdatedBy        string     `json:"updatedBy,omitempty"`
}

// DateOnly drops the time-of-day component, keeping the calendar date as written.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
