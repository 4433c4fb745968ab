package dto

import "github.com/SscSPs/bookkeeping_ledger/internal/core/domain"

// SequenceStatusResponse shows the last issued number and a preview of the next one.
type SequenceStatusResponse struct {
	Current     int64  `json:"current"`
	NextPreview string `json:"nextPreview"`
}

// ReserveSequencesRequest reserves a contiguous block of numbers.
type ReserveSequencesRequest struct {
	Count int `json:"count" binding:"required,min=1,max=250"`
}

// ReserveSequencesResponse lists the reserved numbers.
type ReserveSequencesResponse struct {
	SequenceNumbers []int64  `json:"sequenceNumbers"`
	EntryNumbers    []string `json:"entryNumbers"`
}

// ToReserveSequencesResponse formats reserved numbers.
func ToReserveSequencesResponse(numbers []int64) ReserveSequencesResponse {
	resp := ReserveSequencesResponse{
		SequenceNumbers: numbers,
		EntryNumbers:    make([]string, len(numbers)),
	}
	for i, n := range numbers {
		resp.EntryNumbers[i] = domain.FormatEntryNumber(n)
	}
	return resp
}

// ResolveTemplateRequest asks which accounts a template would post to.
type ResolveTemplateRequest struct {
	TemplateKind domain.TemplateKind    `json:"templateKind" binding:"required,template_kind"`
	Context      TemplateContextRequest `json:"context"`
}

// ToTemplateContext converts the context hints.
func (r TemplateContextRequest) ToTemplateContext() domain.TemplateContext {
	return domain.TemplateContext{
		Category:      r.Category,
		PaymentMethod: r.PaymentMethod,
		IsImmediate:   r.IsImmediate,
		IsTracked:     r.IsTracked,
		IsEndorsement: r.IsEndorsement,
		IsAdvance:     r.IsAdvance,
	}
}
