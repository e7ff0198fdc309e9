package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finplan/household-planner/pkg/dateutil"
)

// ExpenseKind discriminates the expense variants.
type ExpenseKind string

const (
	ExpenseRent         ExpenseKind = "rent"
	ExpenseMortgage     ExpenseKind = "mortgage"
	ExpenseLoan         ExpenseKind = "loan"
	ExpenseDependent    ExpenseKind = "dependent"
	ExpenseHealthcare   ExpenseKind = "healthcare"
	ExpenseVacation     ExpenseKind = "vacation"
	ExpenseSubscription ExpenseKind = "subscription"
	ExpenseTransport    ExpenseKind = "transport"
	ExpenseEmergency    ExpenseKind = "emergency"
	ExpenseFood         ExpenseKind = "food"
	ExpenseCharity      ExpenseKind = "charity"
	ExpenseOther        ExpenseKind = "other"
)

// Deductibility is the tax treatment of an expense.
type Deductibility string

const (
	DeductNo       Deductibility = "no"
	DeductYes      Deductibility = "yes"      // pre-tax, always subtracted
	DeductItemized Deductibility = "itemized" // counts toward itemized total
)

// InterestType selects the debt accrual rule.
type InterestType string

const (
	InterestSimple      InterestType = "simple"
	InterestCompounding InterestType = "compounding"
)

// Expense is a tagged variant. Mortgage and Loan carry enough terms to
// amortize independently of the linked account.
type Expense struct {
	ID            string          `yaml:"id" json:"id"`
	Name          string          `yaml:"name" json:"name"`
	Kind          ExpenseKind     `yaml:"kind" json:"kind"`
	Amount        decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency     Frequency       `yaml:"frequency" json:"frequency"`
	Deductible    Deductibility   `yaml:"deductible,omitempty" json:"deductible,omitempty"`
	Discretionary bool            `yaml:"discretionary,omitempty" json:"discretionary,omitempty"`
	StartDate     *time.Time      `yaml:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate       *time.Time      `yaml:"end_date,omitempty" json:"end_date,omitempty"`

	// Mortgage / Loan terms. ExtraPrincipal is per year.
	InterestRate   decimal.Decimal `yaml:"interest_rate,omitempty" json:"interest_rate,omitempty"`
	TermYears      int             `yaml:"term_years,omitempty" json:"term_years,omitempty"`
	InterestType   InterestType    `yaml:"interest_type,omitempty" json:"interest_type,omitempty"`
	ExtraPrincipal decimal.Decimal `yaml:"extra_principal,omitempty" json:"extra_principal,omitempty"`

	// Mortgage only: carrying costs that survive payoff.
	PropertyTaxRate decimal.Decimal `yaml:"property_tax_rate,omitempty" json:"property_tax_rate,omitempty"`
	InsuranceRate   decimal.Decimal `yaml:"insurance_rate,omitempty" json:"insurance_rate,omitempty"`
	PMIRate         decimal.Decimal `yaml:"pmi_rate,omitempty" json:"pmi_rate,omitempty"`
	HOAFee          decimal.Decimal `yaml:"hoa_fee,omitempty" json:"hoa_fee,omitempty"`

	LinkedAccountID string `yaml:"linked_account_id,omitempty" json:"linked_account_id,omitempty"`
}

// EnsureID assigns a fresh uuid when the caller did not supply one.
func (e *Expense) EnsureID() {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
}

// AnnualAmount returns the expense expressed per year.
func (e *Expense) AnnualAmount() decimal.Decimal {
	return e.Amount.Mul(e.Frequency.AnnualFactor())
}

// ActiveFraction returns the portion of the given calendar year the expense
// applies, honoring optional start and end dates.
func (e *Expense) ActiveFraction(year int) decimal.Decimal {
	return activeFraction(year, e.StartDate, e.EndDate)
}

// IsAmortizing reports whether the expense drives a linked account's
// amortization schedule.
func (e *Expense) IsAmortizing() bool {
	return e.Kind == ExpenseMortgage || e.Kind == ExpenseLoan
}

// activeFraction computes the overlap of [start, end] with a calendar year
// as a fraction in [0, 1]. Nil bounds are open.
func activeFraction(year int, start, end *time.Time) decimal.Decimal {
	from := dateutil.BeginningOfYear(year)
	to := dateutil.EndOfYear(year)
	if start != nil {
		from = *start
	}
	if end != nil {
		to = *end
	}
	frac := dateutil.YearFraction(year, from, to)
	if frac <= 0 {
		return decimal.Zero
	}
	if frac >= 1 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromFloat(frac)
}
