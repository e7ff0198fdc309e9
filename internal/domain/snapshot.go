package domain

import (
	"github.com/shopspring/decimal"
)

// Phase labels which side of retirement a simulated year is on.
type Phase string

const (
	PhaseAccumulating Phase = "accumulating"
	PhaseWithdrawing  Phase = "withdrawing"
)

// AccountBalance is one account's end-of-year position inside a snapshot.
// Ordered by plan input order so snapshot sequences are reproducible
// byte for byte.
type AccountBalance struct {
	AccountID   string          `json:"account_id"`
	Name        string          `json:"name"`
	Kind        AccountKind     `json:"kind"`
	Balance     decimal.Decimal `json:"balance"`
	LoanBalance decimal.Decimal `json:"loan_balance,omitempty"`
	Vested      decimal.Decimal `json:"vested,omitempty"`
	Frozen      bool            `json:"frozen,omitempty"`
}

// TaxDetail breaks the year's tax liability into categories.
type TaxDetail struct {
	Federal          decimal.Decimal `json:"federal"`
	State            decimal.Decimal `json:"state"`
	FICA             decimal.Decimal `json:"fica"`
	DeductionApplied decimal.Decimal `json:"deduction_applied"`
	Itemized         bool            `json:"itemized"`
}

// Total returns the combined liability across categories.
func (td TaxDetail) Total() decimal.Decimal {
	return td.Federal.Add(td.State).Add(td.FICA)
}

// SimulationYearResult is the immutable snapshot emitted once per simulated
// year. The orchestrator writes it exactly once and never revisits it; the
// full simulation is the ordered sequence of these.
type SimulationYearResult struct {
	YearIndex    int   `json:"year_index"`
	CalendarYear int   `json:"calendar_year"`
	Age          int   `json:"age"`
	Phase        Phase `json:"phase"`

	// Cash flow.
	GrossIncome    decimal.Decimal `json:"gross_income"`
	EarnedIncome   decimal.Decimal `json:"earned_income"`
	Expenses       decimal.Decimal `json:"expenses"`
	Taxes          TaxDetail       `json:"taxes"`
	Contributions  decimal.Decimal `json:"contributions"`
	Withdrawals    decimal.Decimal `json:"withdrawals"`
	RothConversion decimal.Decimal `json:"roth_conversion,omitempty"`
	NetSavings     decimal.Decimal `json:"net_savings"`

	// Positions.
	Balances []AccountBalance `json:"balances"`
	NetWorth decimal.Decimal  `json:"net_worth"`

	// Outcomes. Shortfall is a reportable result, not an error.
	Shortfall decimal.Decimal `json:"shortfall,omitempty"`
	Depleted  bool            `json:"depleted,omitempty"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// ComputeNetWorth sums account balances net of loan balances. Debt account
// balances count against net worth; only the vested portion of an employer
// match balance counts for it.
func (r *SimulationYearResult) ComputeNetWorth() decimal.Decimal {
	total := decimal.Zero
	for _, b := range r.Balances {
		switch b.Kind {
		case AccountDebt:
			total = total.Sub(b.Balance)
		case AccountProperty:
			total = total.Add(b.Balance).Sub(b.LoanBalance)
		case AccountInvested:
			total = total.Add(b.Balance).Add(b.Vested)
		default:
			total = total.Add(b.Balance)
		}
	}
	return total
}

// PortfolioBalance sums the invested balances in a snapshot.
func (r *SimulationYearResult) PortfolioBalance() decimal.Decimal {
	total := decimal.Zero
	for _, b := range r.Balances {
		if b.Kind == AccountInvested {
			total = total.Add(b.Balance)
		}
	}
	return total
}
