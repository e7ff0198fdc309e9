package calculation

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finplan/household-planner/internal/domain"
)

// TaxSource is the read-only lookup for jurisdiction tax tables, keyed by
// (year, filing status, jurisdiction). The engine never writes to it.
type TaxSource interface {
	Lookup(year int, status domain.FilingStatus, jurisdiction string) (*domain.TaxParameters, error)
}

// Engine orchestrates the year-stepping simulation. It holds no per-run
// state: every Run builds fresh working copies, so identical inputs always
// produce identical snapshot sequences.
type Engine struct {
	TaxCalc *TaxCalculator
	Taxes   TaxSource
	Logger  Logger
}

// NewEngine creates a simulation engine backed by the given tax-table source.
func NewEngine(taxes TaxSource) *Engine {
	return &Engine{
		TaxCalc: NewTaxCalculator(),
		Taxes:   taxes,
		Logger:  NopLogger{},
	}
}

// SetLogger sets the engine logger. A nil logger restores the no-op default.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
	e.TaxCalc.Logger = l
}

// Summary condenses a full projection into headline outcomes.
type Summary struct {
	YearsSimulated        int             `json:"years_simulated"`
	EndingNetWorth        decimal.Decimal `json:"ending_net_worth"`
	FirstShortfallYear    int             `json:"first_shortfall_year,omitempty"`
	PortfolioDepletedYear int             `json:"portfolio_depleted_year,omitempty"`
	TotalTaxesPaid        decimal.Decimal `json:"total_taxes_paid"`
}

// RunResult is the full output of one simulation: the ordered snapshot
// sequence plus its summary. Partial results are never returned; a run
// either completes or fails with a configuration error.
type RunResult struct {
	Years   []domain.SimulationYearResult `json:"years"`
	Summary Summary                       `json:"summary"`
}

// Run validates the plan, resolves the tax tables and steps the household
// forward one year at a time to the life-expectancy year. Configuration
// errors stop the run before it starts; simulation outcomes such as
// portfolio depletion are recorded in the snapshots and the run continues
// to completion.
func (e *Engine) Run(ctx context.Context, plan *domain.Plan) (*RunResult, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	federal, err := e.Taxes.Lookup(plan.Assumptions.StartYear, plan.Assumptions.FilingStatus, domain.JurisdictionFederal)
	if err != nil {
		return nil, fmt.Errorf("federal tax table: %w", err)
	}
	if err := federal.Validate(); err != nil {
		return nil, err
	}

	var state *domain.TaxParameters
	if plan.Assumptions.State != "" {
		state, err = e.Taxes.Lookup(plan.Assumptions.StartYear, plan.Assumptions.FilingStatus, plan.Assumptions.State)
		if err != nil {
			return nil, fmt.Errorf("state tax table %q: %w", plan.Assumptions.State, err)
		}
		if err := state.Validate(); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	years := e.generateProjection(plan, federal, state)

	result := &RunResult{Years: years, Summary: summarize(years)}
	return result, nil
}

// summarize derives headline outcomes from a completed projection.
func summarize(years []domain.SimulationYearResult) Summary {
	s := Summary{YearsSimulated: len(years)}
	for _, y := range years {
		s.TotalTaxesPaid = s.TotalTaxesPaid.Add(y.Taxes.Total())
		if y.Shortfall.GreaterThan(decimal.Zero) && s.FirstShortfallYear == 0 {
			s.FirstShortfallYear = y.CalendarYear
		}
		if y.Depleted && s.PortfolioDepletedYear == 0 {
			s.PortfolioDepletedYear = y.CalendarYear
		}
	}
	if len(years) > 0 {
		s.EndingNetWorth = years[len(years)-1].NetWorth
	}
	return s
}
