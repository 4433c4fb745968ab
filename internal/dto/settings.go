package dto

import (
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// UpdateLockDateRequest closes (or, with a null lockDate, reopens) periods.
type UpdateLockDateRequest struct {
	LockDate         *string `json:"lockDate" binding:"omitempty,datetime=2006-01-02"`
	FiscalYearEnd    *string `json:"fiscalYearEnd" binding:"omitempty,datetime=2006-01-02"`
	LastClosedPeriod string  `json:"lastClosedPeriod"`
}

// ToDomain builds the setting to store.
func (r UpdateLockDateRequest) ToDomain(ownerID, userID string) (domain.LockDateSetting, error) {
	s := domain.LockDateSetting{
		OwnerID:          ownerID,
		LastClosedPeriod: r.LastClosedPeriod,
		UpdatedBy:        userID,
	}
	var err error
	if r.LockDate != nil {
		if s.LockDate, err = parseOptionalDate(*r.LockDate); err != nil {
			return s, err
		}
	}
	if r.FiscalYearEnd != nil {
		if s.FiscalYearEnd, err = parseOptionalDate(*r.FiscalYearEnd); err != nil {
			return s, err
		}
	}
	return s, nil
}

// LockDateResponse defines the data returned for a lock date setting.
type LockDateResponse struct {
	LockDate         *string   `json:"lockDate"`
	FiscalYearEnd    *string   `json:"fiscalYearEnd,omitempty"`
	LastClosedPeriod string    `json:"lastClosedPeriod,omitempty"`
	UpdatedAt        time.Time `json:"updatedAt"`
	UpdatedBy        string    `json:"updatedBy,omitempty"`
}

// LockCheckResponse answers whether a date is locked.
type LockCheckResponse struct {
	Date   string `json:"date"`
	Locked bool   `json:"locked"`
}

// ToLockDateResponse converts a domain.LockDateSetting to LockDateResponse DTO.
func ToLockDateResponse(s *domain.LockDateSetting) LockDateResponse {
	return LockDateResponse{
		LockDate:         formatOptionalDate(s.LockDate),
		FiscalYearEnd:    formatOptionalDate(s.FiscalYearEnd),
		LastClosedPeriod: s.LastClosedPeriod,
		UpdatedAt:        s.UpdatedAt,
		UpdatedBy:        s.UpdatedBy,
	}
}

func formatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
