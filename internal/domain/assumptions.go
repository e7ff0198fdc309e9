package domain

import (
	"github.com/shopspring/decimal"
)

// WithdrawalStrategyKind selects the retirement drawdown policy.
type WithdrawalStrategyKind string

const (
	StrategyFixedReal     WithdrawalStrategyKind = "fixed_real"
	StrategyPercentage    WithdrawalStrategyKind = "percentage"
	StrategyGuytonKlinger WithdrawalStrategyKind = "guyton_klinger"
)

// CapKind limits how much a priority bucket may absorb per period.
type CapKind string

const (
	CapFixed              CapKind = "fixed"
	CapAnnualMax          CapKind = "annual_max"
	CapMultipleOfExpenses CapKind = "multiple_of_expenses"
	CapRemainder          CapKind = "remainder"
)

// PriorityBucket is one rung of the surplus allocation waterfall.
type PriorityBucket struct {
	Name      string          `yaml:"name" json:"name"`
	AccountID string          `yaml:"account_id" json:"account_id"`
	Cap       CapKind         `yaml:"cap" json:"cap"`
	Value     decimal.Decimal `yaml:"value,omitempty" json:"value,omitempty"`
}

// Assumptions carries the household demographics, macro rates and policy
// settings that drive the simulation. All of it is fixed configuration; the
// simulation itself holds no other tunable state.
type Assumptions struct {
	// Demographics.
	BirthYear      int `yaml:"birth_year" json:"birth_year"`
	StartYear      int `yaml:"start_year" json:"start_year"`
	RetirementAge  int `yaml:"retirement_age" json:"retirement_age"`
	LifeExpectancy int `yaml:"life_expectancy" json:"life_expectancy"`

	// Macro.
	Inflation           decimal.Decimal `yaml:"inflation" json:"inflation"`
	HealthcareInflation decimal.Decimal `yaml:"healthcare_inflation" json:"healthcare_inflation"`
	IncomeGrowth        decimal.Decimal `yaml:"income_growth" json:"income_growth"`
	HousingAppreciation decimal.Decimal `yaml:"housing_appreciation" json:"housing_appreciation"`
	InflationAdjusted   bool            `yaml:"inflation_adjusted_display" json:"inflation_adjusted_display"`

	// Investments and withdrawal policy.
	ReturnRate          decimal.Decimal        `yaml:"return_rate" json:"return_rate"`
	WithdrawalStrategy  WithdrawalStrategyKind `yaml:"withdrawal_strategy" json:"withdrawal_strategy"`
	WithdrawalRate      decimal.Decimal        `yaml:"withdrawal_rate" json:"withdrawal_rate"`
	GuardrailUpper      decimal.Decimal        `yaml:"guardrail_upper,omitempty" json:"guardrail_upper,omitempty"`
	GuardrailLower      decimal.Decimal        `yaml:"guardrail_lower,omitempty" json:"guardrail_lower,omitempty"`
	GuardrailAdjustment decimal.Decimal        `yaml:"guardrail_adjustment,omitempty" json:"guardrail_adjustment,omitempty"`
	AutoRothConversion  bool                   `yaml:"auto_roth_conversion,omitempty" json:"auto_roth_conversion,omitempty"`

	// Contribution caps and allocation.
	ContributionAnnualMax decimal.Decimal  `yaml:"contribution_annual_max,omitempty" json:"contribution_annual_max,omitempty"`
	Buckets               []PriorityBucket `yaml:"priority_buckets,omitempty" json:"priority_buckets,omitempty"`
	WithdrawalOrder       []string         `yaml:"withdrawal_order,omitempty" json:"withdrawal_order,omitempty"`

	// Taxes. TaxCredits is the household's annual federal credit total,
	// applied against the ordinary liability and floored at zero.
	FilingStatus FilingStatus    `yaml:"filing_status" json:"filing_status"`
	State        string          `yaml:"state" json:"state"`
	TaxCredits   decimal.Decimal `yaml:"tax_credits,omitempty" json:"tax_credits,omitempty"`
}

// ProjectionYears returns the number of simulated years from the start year
// through the life-expectancy year inclusive.
func (a *Assumptions) ProjectionYears() int {
	currentAge := a.StartYear - a.BirthYear
	years := a.LifeExpectancy - currentAge + 1
	if years < 0 {
		return 0
	}
	return years
}

// RetirementYear returns the calendar year the household reaches the
// configured retirement age.
func (a *Assumptions) RetirementYear() int {
	return a.BirthYear + a.RetirementAge
}
