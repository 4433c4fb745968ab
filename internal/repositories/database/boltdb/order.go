package boltdb

import (
	"time"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// entryBefore reports whether (aDate, aSeq) sorts strictly before (bDate, bSeq)
// in the given order. Date orders break ties on sequence number in the same direction.
func entryBefore(order domain.EntryOrder, aDate time.Time, aSeq int64, bDate time.Time, bSeq int64) bool {
	ad, bd := domain.DateOnly(aDate), domain.DateOnly(bDate)
	switch order {
	case domain.OrderDateAsc:
		if !ad.Equal(bd) {
			return ad.Before(bd)
		}
		return aSeq < bSeq
	case domain.OrderSequenceAsc:
		return aSeq < bSeq
	case domain.OrderSequenceDesc:
		return aSeq > bSeq
	default:
		if !ad.Equal(bd) {
			return ad.After(bd)
		}
		return aSeq > bSeq
	}
}
