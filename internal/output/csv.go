package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/finplan/household-planner/internal/calculation"
)

// CSVExporter writes one row per simulated year with plain decimal amounts,
// suitable for spreadsheets.
type CSVExporter struct{}

func (CSVExporter) Name() string { return "csv" }

// Format renders the projection as CSV.
func (CSVExporter) Format(result *calculation.RunResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"year", "age", "phase",
		"gross_income", "earned_income", "expenses",
		"federal_tax", "state_tax", "fica",
		"contributions", "withdrawals", "roth_conversion",
		"net_savings", "net_worth", "shortfall", "warnings",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, y := range result.Years {
		row := []string{
			strconv.Itoa(y.CalendarYear),
			strconv.Itoa(y.Age),
			string(y.Phase),
			y.GrossIncome.StringFixed(2),
			y.EarnedIncome.StringFixed(2),
			y.Expenses.StringFixed(2),
			y.Taxes.Federal.StringFixed(2),
			y.Taxes.State.StringFixed(2),
			y.Taxes.FICA.StringFixed(2),
			y.Contributions.StringFixed(2),
			y.Withdrawals.StringFixed(2),
			y.RothConversion.StringFixed(2),
			y.NetSavings.StringFixed(2),
			y.NetWorth.StringFixed(2),
			y.Shortfall.StringFixed(2),
			strings.Join(y.Warnings, "; "),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
