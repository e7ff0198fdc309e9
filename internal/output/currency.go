package output

import (
	money "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/finplan/household-planner/internal/calculation"
	"github.com/finplan/household-planner/internal/domain"
	pkgdecimal "github.com/finplan/household-planner/pkg/decimal"
)

// formatUSD renders an amount as grouped US dollars, e.g. "$1,234,567.89".
func formatUSD(d decimal.Decimal) string {
	cents := pkgdecimal.NewMoneyFromDecimal(d).Round().Shift(2)
	return money.New(cents.IntPart(), money.USD).Display()
}

// deflate converts a nominal amount to start-year dollars for
// inflation-adjusted display.
func deflate(d decimal.Decimal, inflation decimal.Decimal, yearIndex int) decimal.Decimal {
	if yearIndex == 0 || inflation.IsZero() {
		return d
	}
	factor := decimal.NewFromInt(1).Add(inflation).Pow(decimal.NewFromInt(int64(yearIndex)))
	return d.Div(factor)
}

// DeflateResult returns a copy of the run with every money field expressed
// in start-year dollars. The original result is untouched.
func DeflateResult(result *calculation.RunResult, inflation decimal.Decimal) *calculation.RunResult {
	out := &calculation.RunResult{
		Years:   make([]domain.SimulationYearResult, len(result.Years)),
		Summary: result.Summary,
	}
	for i, y := range result.Years {
		adj := func(d decimal.Decimal) decimal.Decimal { return deflate(d, inflation, y.YearIndex) }
		y.GrossIncome = adj(y.GrossIncome)
		y.EarnedIncome = adj(y.EarnedIncome)
		y.Expenses = adj(y.Expenses)
		y.Taxes.Federal = adj(y.Taxes.Federal)
		y.Taxes.State = adj(y.Taxes.State)
		y.Taxes.FICA = adj(y.Taxes.FICA)
		y.Contributions = adj(y.Contributions)
		y.Withdrawals = adj(y.Withdrawals)
		y.RothConversion = adj(y.RothConversion)
		y.NetSavings = adj(y.NetSavings)
		y.NetWorth = adj(y.NetWorth)
		y.Shortfall = adj(y.Shortfall)
		balances := make([]domain.AccountBalance, len(y.Balances))
		for j, b := range y.Balances {
			b.Balance = adj(b.Balance)
			b.LoanBalance = adj(b.LoanBalance)
			b.Vested = adj(b.Vested)
			balances[j] = b
		}
		y.Balances = balances
		out.Years[i] = y
	}
	if n := len(out.Years); n > 0 {
		out.Summary.EndingNetWorth = out.Years[n-1].NetWorth
	}
	return out
}
