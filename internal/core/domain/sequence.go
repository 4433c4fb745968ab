package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// EntryNumberPrefix is part of the audit trail; changing it breaks ParseEntryNumber for old entries.
	EntryNumberPrefix = "JE-"
	// EntryNumberWidth is the minimum number of digits after the prefix.
	EntryNumberWidth = 6
	// MaxSequenceBlock bounds a single block reservation.
	MaxSequenceBlock = 250
)

// SequenceCounter is the per-owner counter behind entry numbering.
type SequenceCounter struct {
	OwnerID         string    `json:"ownerID"`
	CurrentSequence int64     `json:"currentSequence"`
	LastUpdated     time.Time `json:"lastUpdated"`
}

// FormatEntryNumber renders a sequence number as e.g. "JE-000042".
func FormatEntryNumber(n int64) string {
	return fmt.Sprintf("%s%0*d", EntryNumberPrefix, EntryNumberWidth, n)
}

// ParseEntryNumber is the strict inverse of FormatEntryNumber.
// It returns false for anything FormatEntryNumber could not have produced for n >= 1.
func ParseEntryNumber(s string) (int64, bool) {
	digits, ok := strings.CutPrefix(s, EntryNumberPrefix)
	if !ok || len(digits) < EntryNumberWidth {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	// Numbers wider than the pad are printed without leading zeros.
	if len(digits) > EntryNumberWidth && digits[0] == '0' {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
