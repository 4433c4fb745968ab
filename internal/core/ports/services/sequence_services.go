package services

import "context"

// SequenceReaderSvc peeks at an owner's counter without advancing it.
type SequenceReaderSvc interface {
	// Current returns the last issued number, 0 when none has been issued.
	Current(ctx context.Context, ownerID string) (int64, error)

	// PreviewNext formats Current+1 for display. The number is not reserved.
	PreviewNext(ctx context.Context, ownerID string) (string, error)
}

// SequenceWriterSvc issues sequence numbers.
type SequenceWriterSvc interface {
	// Next atomically issues the next number.
	Next(ctx context.Context, ownerID string) (int64, error)

	// ReserveBlock atomically issues count contiguous numbers in ascending order.
	ReserveBlock(ctx context.Context, ownerID string, count int) ([]int64, error)
}

// SequenceSvcFacade combines all sequence service interfaces
type SequenceSvcFacade interface {
	SequenceReaderSvc
	SequenceWriterSvc
}
