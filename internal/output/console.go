package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/finplan/household-planner/internal/calculation"
	"github.com/finplan/household-planner/internal/domain"
)

// ConsoleFormatter renders a year-by-year table plus the run summary for
// terminal display. Amounts are nominal; deflate the result first for
// inflation-adjusted display.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

// Format renders the projection.
func (cf ConsoleFormatter) Format(result *calculation.RunResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "HOUSEHOLD PROJECTION (%d years)\n\n", result.Summary.YearsSimulated)

	w := tabwriter.NewWriter(&buf, 2, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Year\tAge\tPhase\tIncome\tExpenses\tTaxes\tSavings\tWithdrawals\tNet Worth\t")
	for _, y := range result.Years {
		fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			y.CalendarYear,
			y.Age,
			phaseLabel(y.Phase),
			formatUSD(y.GrossIncome),
			formatUSD(y.Expenses),
			formatUSD(y.Taxes.Total()),
			formatUSD(y.NetSavings),
			formatUSD(y.Withdrawals),
			formatUSD(y.NetWorth),
		)
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}

	fmt.Fprintf(&buf, "\nEnding net worth: %s\n", formatUSD(result.Summary.EndingNetWorth))
	fmt.Fprintf(&buf, "Total taxes paid: %s\n", formatUSD(result.Summary.TotalTaxesPaid))
	if result.Summary.FirstShortfallYear > 0 {
		fmt.Fprintf(&buf, "First shortfall: %d\n", result.Summary.FirstShortfallYear)
	}
	if result.Summary.PortfolioDepletedYear > 0 {
		fmt.Fprintf(&buf, "Portfolio depleted: %d\n", result.Summary.PortfolioDepletedYear)
	}

	// Setup warnings repeat every year; print the first year's set only.
	if len(result.Years) > 0 {
		y := result.Years[0]
		for _, warning := range y.Warnings {
			fmt.Fprintf(&buf, "warning (%d): %s\n", y.CalendarYear, warning)
		}
	}

	return buf.Bytes(), nil
}

func phaseLabel(p domain.Phase) string {
	if p == domain.PhaseWithdrawing {
		return "drawdown"
	}
	return "saving"
}
