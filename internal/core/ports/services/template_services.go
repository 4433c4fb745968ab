package services

import "github.com/SscSPs/bookkeeping_ledger/internal/core/domain"

// AccountLookup maps an account role to a concrete account. The mapping itself
// belongs to the chart of accounts, not the ledger.
type AccountLookup interface {
	Lookup(role domain.AccountRole, category string) (domain.AccountRef, error)
}

// TemplateResolverSvc maps a business event to its debit and credit accounts.
type TemplateResolverSvc interface {
	Resolve(kind domain.TemplateKind, tctx domain.TemplateContext) (domain.AccountPair, error)

	// Kinds lists the registered template kinds in a stable order.
	Kinds() []domain.TemplateKind
}
