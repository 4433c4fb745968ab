package services

import (
	"fmt"
	"sort"

	"github.com/SscSPs/bookkeeping_ledger/internal/apperrors"
	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_ledger/internal/core/ports/services"
)

var ErrUnknownTemplate = fmt.Errorf("%w: unknown template kind", apperrors.ErrValidation)

// roleRef is a role plus whether the context category specialises it.
type roleRef struct {
	role        domain.AccountRole
	useCategory bool
}

func role(r domain.AccountRole) roleRef        { return roleRef{role: r} }
func categorised(r domain.AccountRole) roleRef { return roleRef{role: r, useCategory: true} }

// templateRule picks the debit and credit roles for one template kind.
type templateRule func(tctx domain.TemplateContext) (debit, credit roleRef)

// receiptRole is where incoming money lands.
func receiptRole(tctx domain.TemplateContext) roleRef {
	switch tctx.PaymentMethod {
	case domain.PaymentCheque:
		return role(domain.RoleChequesInHand)
	case domain.PaymentBank:
		return role(domain.RoleBank)
	default:
		return role(domain.RoleCash)
	}
}

// paymentRole is where outgoing money leaves from. Issued cheques clear through the bank.
func paymentRole(tctx domain.TemplateContext) roleRef {
	switch tctx.PaymentMethod {
	case domain.PaymentBank, domain.PaymentCheque:
		return role(domain.RoleBank)
	default:
		return role(domain.RoleCash)
	}
}

func fixed(debit, credit domain.AccountRole) templateRule {
	return func(domain.TemplateContext) (roleRef, roleRef) {
		return role(debit), role(credit)
	}
}

var templateRules = map[domain.TemplateKind]templateRule{
	domain.TemplateLedgerIncome: func(tctx domain.TemplateContext) (roleRef, roleRef) {
		if tctx.IsTracked && !tctx.IsImmediate {
			return role(domain.RoleReceivable), categorised(domain.RoleRevenue)
		}
		return receiptRole(tctx), categorised(domain.RoleRevenue)
	},
	domain.TemplateLedgerExpense: func(tctx domain.TemplateContext) (roleRef, roleRef) {
		if tctx.IsTracked && !tctx.IsImmediate {
			return categorised(domain.RoleExpense), role(domain.RolePayable)
		}
		return categorised(domain.RoleExpense), paymentRole(tctx)
	},
	domain.TemplateCashReceipt: func(tctx domain.TemplateContext) (roleRef, roleRef) {
		return receiptRole(tctx), role(domain.RoleReceivable)
	},
	domain.TemplateCashDisbursement: func(tctx domain.TemplateContext) (roleRef, roleRef) {
		return role(domain.RolePayable), paymentRole(tctx)
	},
	domain.TemplateChequeCash:       fixed(domain.RoleBank, domain.RoleChequesInHand),
	domain.TemplateCOGS:             fixed(domain.RoleCOGS, domain.RoleInventory),
	domain.TemplateDepreciation:     fixed(domain.RoleDepreciationExpense, domain.RoleAccumulatedDepreciation),
	domain.TemplateBadDebt:          fixed(domain.RoleBadDebtExpense, domain.RoleReceivable),
	domain.TemplateSalesDiscount:    fixed(domain.RoleSalesDiscount, domain.RoleReceivable),
	domain.TemplatePurchaseDiscount: fixed(domain.RolePayable, domain.RolePurchaseDiscount),
	domain.TemplateChequeEndorsement: func(tctx domain.TemplateContext) (roleRef, roleRef) {
		if tctx.IsAdvance {
			return role(domain.RoleSupplierAdvances), role(domain.RoleChequesInHand)
		}
		return role(domain.RolePayable), role(domain.RoleChequesInHand)
	},
	domain.TemplateClientAdvance: func(tctx domain.TemplateContext) (roleRef, roleRef) {
		return receiptRole(tctx), role(domain.RoleCustomerAdvances)
	},
	domain.TemplateSupplierAdvance: func(tctx domain.TemplateContext) (roleRef, roleRef) {
		if tctx.IsEndorsement {
			return role(domain.RoleSupplierAdvances), role(domain.RoleChequesInHand)
		}
		return role(domain.RoleSupplierAdvances), paymentRole(tctx)
	},
	domain.TemplateClientAdvanceApplication:   fixed(domain.RoleCustomerAdvances, domain.RoleReceivable),
	domain.TemplateSupplierAdvanceApplication: fixed(domain.RolePayable, domain.RoleSupplierAdvances),
	domain.TemplateFixedAssetPurchase: func(tctx domain.TemplateContext) (roleRef, roleRef) {
		if tctx.IsTracked {
			return categorised(domain.RoleFixedAssets), role(domain.RolePayable)
		}
		return categorised(domain.RoleFixedAssets), paymentRole(tctx)
	},
	domain.TemplateOwnerCapital: func(tctx domain.TemplateContext) (roleRef, roleRef) {
		return receiptRole(tctx), role(domain.RoleOwnerCapital)
	},
	domain.TemplateOwnerDrawings: func(tctx domain.TemplateContext) (roleRef, roleRef) {
		return role(domain.RoleOwnerDrawings), paymentRole(tctx)
	},
	domain.TemplateLoanGiven: func(tctx domain.TemplateContext) (roleRef, roleRef) {
		return role(domain.RoleLoansReceivable), paymentRole(tctx)
	},
	domain.TemplateLoanCollected: func(tctx domain.TemplateContext) (roleRef, roleRef) {
		return receiptRole(tctx), role(domain.RoleLoansReceivable)
	},
	domain.TemplateLoanReceived: func(tctx domain.TemplateContext) (roleRef, roleRef) {
		return receiptRole(tctx), role(domain.RoleLoansPayable)
	},
	domain.TemplateLoanRepaid: func(tctx domain.TemplateContext) (roleRef, roleRef) {
		return role(domain.RoleLoansPayable), paymentRole(tctx)
	},
}

type templateResolver struct {
	lookup portssvc.AccountLookup
}

// NewTemplateResolver creates a resolver backed by the given chart of accounts.
func NewTemplateResolver(lookup portssvc.AccountLookup) portssvc.TemplateResolverSvc {
	return &templateResolver{lookup: lookup}
}

var _ portssvc.TemplateResolverSvc = (*templateResolver)(nil)

func (r *templateResolver) Resolve(kind domain.TemplateKind, tctx domain.TemplateContext) (domain.AccountPair, error) {
	rule, ok := templateRules[kind]
	if !ok {
		return domain.AccountPair{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, kind)
	}

	debitRole, creditRole := rule(tctx)
	debit, err := r.account(debitRole, tctx)
	if err != nil {
		return domain.AccountPair{}, fmt.Errorf("resolving debit account for %s: %w", kind, err)
	}
	credit, err := r.account(creditRole, tctx)
	if err != nil {
		return domain.AccountPair{}, fmt.Errorf("resolving credit account for %s: %w", kind, err)
	}
	return domain.AccountPair{Debit: debit, Credit: credit}, nil
}

func (r *templateResolver) account(ref roleRef, tctx domain.TemplateContext) (domain.AccountRef, error) {
	category := ""
	if ref.useCategory {
		category = tctx.Category
	}
	return r.lookup.Lookup(ref.role, category)
}

func (r *templateResolver) Kinds() []domain.TemplateKind {
	kinds := make([]domain.TemplateKind, 0, len(templateRules))
	for k := range templateRules {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
