package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TemplateKind names a business transaction the template resolver knows how to post.
type TemplateKind string

const (
	TemplateLedgerIncome               TemplateKind = "LEDGER_INCOME"
	TemplateLedgerExpense              TemplateKind = "LEDGER_EXPENSE"
	TemplateCashReceipt                TemplateKind = "CASH_RECEIPT"
	TemplateCashDisbursement           TemplateKind = "CASH_DISBURSEMENT"
	TemplateChequeCash                 TemplateKind = "CHEQUE_CASH"
	TemplateCOGS                       TemplateKind = "COGS"
	TemplateDepreciation               TemplateKind = "DEPRECIATION"
	TemplateBadDebt                    TemplateKind = "BAD_DEBT"
	TemplateSalesDiscount              TemplateKind = "SALES_DISCOUNT"
	TemplatePurchaseDiscount           TemplateKind = "PURCHASE_DISCOUNT"
	TemplateChequeEndorsement          TemplateKind = "CHEQUE_ENDORSEMENT"
	TemplateClientAdvance              TemplateKind = "CLIENT_ADVANCE"
	TemplateSupplierAdvance            TemplateKind = "SUPPLIER_ADVANCE"
	TemplateClientAdvanceApplication   TemplateKind = "CLIENT_ADVANCE_APPLICATION"
	TemplateSupplierAdvanceApplication TemplateKind = "SUPPLIER_ADVANCE_APPLICATION"
	TemplateFixedAssetPurchase         TemplateKind = "FIXED_ASSET_PURCHASE"
	TemplateOwnerCapital               TemplateKind = "OWNER_CAPITAL"
	TemplateOwnerDrawings              TemplateKind = "OWNER_DRAWINGS"
	TemplateLoanGiven                  TemplateKind = "LOAN_GIVEN"
	TemplateLoanCollected              TemplateKind = "LOAN_COLLECTED"
	TemplateLoanReceived               TemplateKind = "LOAN_RECEIVED"
	TemplateLoanRepaid                 TemplateKind = "LOAN_REPAID"
)

// TemplateKinds lists every template kind in declaration order.
var TemplateKinds = []TemplateKind{
	TemplateLedgerIncome, TemplateLedgerExpense, TemplateCashReceipt, TemplateCashDisbursement,
	TemplateChequeCash, TemplateCOGS, TemplateDepreciation, TemplateBadDebt,
	TemplateSalesDiscount, TemplatePurchaseDiscount, TemplateChequeEndorsement,
	TemplateClientAdvance, TemplateSupplierAdvance, TemplateClientAdvanceApplication,
	TemplateSupplierAdvanceApplication, TemplateFixedAssetPurchase, TemplateOwnerCapital,
	TemplateOwnerDrawings, TemplateLoanGiven, TemplateLoanCollected, TemplateLoanReceived,
	TemplateLoanRepaid,
}

// IsValid reports whether k is a known template kind.
func (k TemplateKind) IsValid() bool {
	for _, known := range TemplateKinds {
		if k == known {
			return true
		}
	}
	return false
}

// PaymentMethod says how money physically moved.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentBank   PaymentMethod = "bank"
	PaymentCheque PaymentMethod = "cheque"
)

// TemplateContext carries the hints a template rule may consult.
type TemplateContext struct {
	Category      string        `json:"category,omitempty"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	IsImmediate   bool          `json:"isImmediate,omitempty"`   // settled at the time of the event
	IsTracked     bool          `json:"isTracked,omitempty"`     // tracked as a receivable or payable
	IsEndorsement bool          `json:"isEndorsement,omitempty"` // advance paid by endorsing a received cheque
	IsAdvance     bool          `json:"isAdvance,omitempty"`     // endorsement applied as a supplier advance
}

// AccountRole is a chart-independent account slot used by template rules.
type AccountRole string

const (
	RoleCash                    AccountRole = "cash"
	RoleBank                    AccountRole = "bank"
	RoleChequesInHand           AccountRole = "cheques-in-hand"
	RoleReceivable              AccountRole = "receivable"
	RolePayable                 AccountRole = "payable"
	RoleRevenue                 AccountRole = "revenue"
	RoleExpense                 AccountRole = "expense"
	RoleInventory               AccountRole = "inventory"
	RoleCOGS                    AccountRole = "cogs"
	RoleDepreciationExpense     AccountRole = "depreciation-expense"
	RoleAccumulatedDepreciation AccountRole = "accumulated-depreciation"
	RoleBadDebtExpense          AccountRole = "bad-debt-expense"
	RoleSalesDiscount           AccountRole = "sales-discount"
	RolePurchaseDiscount        AccountRole = "purchase-discount"
	RoleCustomerAdvances        AccountRole = "customer-advances"
	RoleSupplierAdvances        AccountRole = "supplier-advances"
	RoleFixedAssets             AccountRole = "fixed-assets"
	RoleOwnerCapital            AccountRole = "owner-capital"
	RoleOwnerDrawings           AccountRole = "owner-drawings"
	RoleLoansReceivable         AccountRole = "loans-receivable"
	RoleLoansPayable            AccountRole = "loans-payable"
)

// AccountRef is a concrete account from the chart of accounts.
type AccountRef struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// AccountPair is what the template resolver returns.
type AccountPair struct {
	Debit  AccountRef `json:"debit"`
	Credit AccountRef `json:"credit"`
}

// PostingRequest is the single command consumed by the posting engine.
// When Lines is non-empty it is posted as-is and TemplateKind/Amount/Context are ignored.
type PostingRequest struct {
	OwnerID      string
	TemplateKind TemplateKind
	Amount       decimal.Decimal
	Date         time.Time
	Description  string
	Source       JournalSource
	Context      TemplateContext
	Lines        []JournalLine
	CreatedBy    string
}

// PostingResult is returned by the posting engine instead of an error.
type PostingResult struct {
	Success        bool   `json:"success"`
	EntryID        string `json:"entryID,omitempty"`
	SequenceNumber int64  `json:"sequenceNumber,omitempty"`
	EntryNumber    string `json:"entryNumber,omitempty"`
	Error          string `json:"error,omitempty"`
	Err            error  `json:"-"`
}

// ReversalRequest asks the reversal protocol to reverse one entry.
type ReversalRequest struct {
	OwnerID      string
	EntryID      string
	Reason       string
	ReversalType ReversalType
	RequestedBy  string
}

// ReversalResult is returned by the reversal protocol instead of an error.
type ReversalResult struct {
	Success                bool   `json:"success"`
	OriginalEntryID        string `json:"originalEntryID,omitempty"`
	ReversalEntryID        string `json:"reversalEntryID,omitempty"`
	ReversalSequenceNumber int64  `json:"reversalSequenceNumber,omitempty"`
	Error                  string `json:"error,omitempty"`
	Err                    error  `json:"-"`
}
