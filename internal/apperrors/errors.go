package apperrors

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource changed state underneath the caller.
var ErrConflict = errors.New("conflict")

// ErrInternal indicates an unexpected infrastructure failure.
var ErrInternal = errors.New("internal error")

// ErrLockedPeriod indicates a write into a closed accounting period.
var ErrLockedPeriod = errors.New("accounting period is locked")

// ErrTransactionConflict is returned by stores when a serializable transaction lost a race.
// Callers that own a retry loop should retry; everyone else treats it as ErrConflict.
var ErrTransactionConflict = fmt.Errorf("%w: transaction conflict", ErrConflict)

// AppError carries an HTTP-ish status code alongside the wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError builds a 404 AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewValidationError builds a 400 AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message, Err: ErrValidation}
}

// LockedPeriodError reports a business date that falls on or before the owner's lock date.
type LockedPeriodError struct {
	Date     time.Time
	LockDate time.Time
}

func (e *LockedPeriodError) Error() string {
	return fmt.Sprintf("date %s falls in a closed period (locked through %s)",
		e.Date.Format(time.DateOnly), e.LockDate.Format(time.DateOnly))
}

func (e *LockedPeriodError) Is(target error) bool {
	return target == ErrLockedPeriod
}

// UnbalancedEntryError reports both sides of an entry whose debits and credits disagree.
type UnbalancedEntryError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *UnbalancedEntryError) Error() string {
	return fmt.Sprintf("unbalanced entry: total debit %s does not equal total credit %s",
		e.TotalDebit.String(), e.TotalCredit.String())
}

func (e *UnbalancedEntryError) Is(target error) bool {
	return target == ErrValidation
}
