package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountKind discriminates the account variants. Every operation that
// consumes an Account switches exhaustively on this field.
type AccountKind string

const (
	AccountCash     AccountKind = "cash"
	AccountInvested AccountKind = "invested"
	AccountProperty AccountKind = "property"
	AccountDebt     AccountKind = "debt"
)

// TaxTreatment classifies an invested account for contribution and
// withdrawal tax purposes.
type TaxTreatment string

const (
	TreatmentBrokerage      TaxTreatment = "brokerage"
	TreatmentTraditional401 TaxTreatment = "traditional_401k"
	TreatmentRoth401        TaxTreatment = "roth_401k"
	TreatmentTraditionalIRA TaxTreatment = "traditional_ira"
	TreatmentRothIRA        TaxTreatment = "roth_ira"
	TreatmentHSA            TaxTreatment = "hsa"
)

// Ownership describes how a property is held.
type Ownership string

const (
	OwnershipOwned    Ownership = "owned"
	OwnershipFinanced Ownership = "financed"
)

// Account is a tagged variant: Cash, Invested, Property or Debt. Only the
// fields for the active Kind are meaningful; the rest stay at zero values.
type Account struct {
	ID      string          `yaml:"id" json:"id"`
	Name    string          `yaml:"name" json:"name"`
	Kind    AccountKind     `yaml:"kind" json:"kind"`
	Balance decimal.Decimal `yaml:"balance" json:"balance"`

	// Cash
	APR decimal.Decimal `yaml:"apr,omitempty" json:"apr,omitempty"`

	// Invested
	ExpenseRatio         decimal.Decimal  `yaml:"expense_ratio,omitempty" json:"expense_ratio,omitempty"`
	TaxTreatment         TaxTreatment     `yaml:"tax_treatment,omitempty" json:"tax_treatment,omitempty"`
	ReturnOverride       *decimal.Decimal `yaml:"return_override,omitempty" json:"return_override,omitempty"`
	EmployerBalance      decimal.Decimal  `yaml:"employer_balance,omitempty" json:"employer_balance,omitempty"`
	VestedPerYear        decimal.Decimal  `yaml:"vested_per_year,omitempty" json:"vested_per_year,omitempty"`
	TenureYears          int              `yaml:"tenure_years,omitempty" json:"tenure_years,omitempty"`
	ContributionEligible bool             `yaml:"contribution_eligible,omitempty" json:"contribution_eligible,omitempty"`

	// Property
	Ownership   Ownership       `yaml:"ownership,omitempty" json:"ownership,omitempty"`
	LoanAmount  decimal.Decimal `yaml:"loan_amount,omitempty" json:"loan_amount,omitempty"`
	LoanBalance decimal.Decimal `yaml:"loan_balance,omitempty" json:"loan_balance,omitempty"`

	// Property and Debt: the expense record driving amortization.
	LinkedExpenseID string `yaml:"linked_expense_id,omitempty" json:"linked_expense_id,omitempty"`
}

// EnsureID assigns a fresh uuid when the caller did not supply one.
// Ids provided by the configuration are kept verbatim.
func (a *Account) EnsureID() {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
}

// VestedAmount returns the vested portion of the employer-match balance.
// Vesting accrues linearly at VestedPerYear per year of tenure, capped at 100%.
func (a *Account) VestedAmount() decimal.Decimal {
	if a.Kind != AccountInvested {
		return decimal.Zero
	}
	frac := a.VestedPerYear.Mul(decimal.NewFromInt(int64(a.TenureYears)))
	one := decimal.NewFromInt(1)
	if frac.GreaterThan(one) {
		frac = one
	}
	return a.EmployerBalance.Mul(frac)
}

// NonVestedAmount returns the employer-match balance not yet vested.
func (a *Account) NonVestedAmount() decimal.Decimal {
	if a.Kind != AccountInvested {
		return decimal.Zero
	}
	return a.EmployerBalance.Sub(a.VestedAmount())
}

// RequiresLinkedExpense reports whether the account must name an expense
// record to amortize against. Financed properties and any debt with a
// balance qualify; a missing link freezes the account and is surfaced as a
// simulation warning rather than an error.
func (a *Account) RequiresLinkedExpense() bool {
	switch a.Kind {
	case AccountProperty:
		return a.Ownership == OwnershipFinanced || a.LoanBalance.GreaterThan(decimal.Zero)
	case AccountDebt:
		return a.Balance.GreaterThan(decimal.Zero)
	default:
		return false
	}
}

// IsInvestable reports whether the account participates in the retirement
// withdrawal portfolio.
func (a *Account) IsInvestable() bool {
	return a.Kind == AccountInvested
}
