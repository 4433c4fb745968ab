package dto

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
)

// RegisterValidators adds the ledger's enum tags to v.
func RegisterValidators(v *validator.Validate) error {
	tags := map[string]validator.Func{
		"source_type": func(fl validator.FieldLevel) bool {
			return domain.SourceType(fl.Field().String()).IsValid()
		},
		"template_kind": func(fl validator.FieldLevel) bool {
			return domain.TemplateKind(fl.Field().String()).IsValid()
		},
		"reversal_type": func(fl validator.FieldLevel) bool {
			return domain.ReversalType(fl.Field().String()).IsValid()
		},
		"journal_status": func(fl validator.FieldLevel) bool {
			return domain.JournalStatus(fl.Field().String()).IsValid()
		},
		"entry_order": func(fl validator.FieldLevel) bool {
			return domain.EntryOrder(fl.Field().String()).IsValid()
		},
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register validator %s: %w", tag, err)
		}
	}
	return nil
}
