package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IncomeKind discriminates the income variants.
type IncomeKind string

const (
	IncomeWork                  IncomeKind = "work"
	IncomeCurrentSocialSecurity IncomeKind = "current_social_security"
	IncomeFutureSocialSecurity  IncomeKind = "future_social_security"
	IncomePassive               IncomeKind = "passive"
	IncomeWindfall              IncomeKind = "windfall"
)

// Frequency expresses how often an amount recurs.
type Frequency string

const (
	Weekly   Frequency = "weekly"
	Monthly  Frequency = "monthly"
	Annually Frequency = "annually"
)

// AnnualFactor returns the number of periods per year for the frequency.
func (f Frequency) AnnualFactor() decimal.Decimal {
	switch f {
	case Weekly:
		return decimal.NewFromInt(52)
	case Monthly:
		return decimal.NewFromInt(12)
	default:
		return decimal.NewFromInt(1)
	}
}

// ContributionStrategy controls how Work contribution amounts evolve
// year over year.
type ContributionStrategy string

const (
	ContributionFixed          ContributionStrategy = "fixed"
	ContributionGrowWithSalary ContributionStrategy = "grow_with_salary"
	ContributionTrackMax       ContributionStrategy = "track_annual_max"
)

// EarningsRecord is one year of historical covered earnings, used by the
// Social Security AIME computation.
type EarningsRecord struct {
	Year   int             `yaml:"year" json:"year"`
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
}

// PIAStatus is the compute-once state of a future Social Security benefit.
// It starts Pending and transitions to Fixed exactly once, in the simulated
// year the claiming age is reached. After that the monthly amount only
// escalates by COLA and is never recomputed from history.
type PIAStatus struct {
	Fixed     bool            `yaml:"fixed" json:"fixed"`
	Monthly   decimal.Decimal `yaml:"monthly" json:"monthly"`
	FixedYear int             `yaml:"fixed_year,omitempty" json:"fixed_year,omitempty"`
}

// Fix records the computed monthly PIA. Calling Fix on an already-fixed
// status is a no-op so the value cannot be recomputed by accident.
func (p *PIAStatus) Fix(monthly decimal.Decimal, year int) {
	if p.Fixed {
		return
	}
	p.Fixed = true
	p.Monthly = monthly
	p.FixedYear = year
}

// Income is a tagged variant: Work, CurrentSocialSecurity,
// FutureSocialSecurity, Passive or Windfall.
type Income struct {
	ID        string          `yaml:"id" json:"id"`
	Name      string          `yaml:"name" json:"name"`
	Kind      IncomeKind      `yaml:"kind" json:"kind"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
	Frequency Frequency       `yaml:"frequency" json:"frequency"`
	Earned    bool            `yaml:"earned" json:"earned"`
	StartDate *time.Time      `yaml:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate   *time.Time      `yaml:"end_date,omitempty" json:"end_date,omitempty"`

	// Work: annual contribution amounts and payroll deductions.
	PreTaxContribution   decimal.Decimal      `yaml:"pretax_contribution,omitempty" json:"pretax_contribution,omitempty"`
	RothContribution     decimal.Decimal      `yaml:"roth_contribution,omitempty" json:"roth_contribution,omitempty"`
	InsurancePremium     decimal.Decimal      `yaml:"insurance_premium,omitempty" json:"insurance_premium,omitempty"`
	EmployerMatch        decimal.Decimal      `yaml:"employer_match,omitempty" json:"employer_match,omitempty"`
	MatchAccountID       string               `yaml:"match_account_id,omitempty" json:"match_account_id,omitempty"`
	ContributionStrategy ContributionStrategy `yaml:"contribution_strategy,omitempty" json:"contribution_strategy,omitempty"`

	// FutureSocialSecurity: claiming configuration and computed benefit.
	ClaimingAge     int              `yaml:"claiming_age,omitempty" json:"claiming_age,omitempty"`
	EarningsHistory []EarningsRecord `yaml:"earnings_history,omitempty" json:"earnings_history,omitempty"`
	PIA             PIAStatus        `yaml:"pia,omitempty" json:"pia,omitempty"`
}

// EnsureID assigns a fresh uuid when the caller did not supply one.
func (inc *Income) EnsureID() {
	if inc.ID == "" {
		inc.ID = uuid.NewString()
	}
}

// AnnualAmount returns the gross amount expressed per year.
func (inc *Income) AnnualAmount() decimal.Decimal {
	return inc.Amount.Mul(inc.Frequency.AnnualFactor())
}

// ActiveFraction returns the portion of the given calendar year the income
// is active, honoring optional start and end dates. Windfalls without dates
// apply only to the simulation's first year.
func (inc *Income) ActiveFraction(year int, startYear int) decimal.Decimal {
	if inc.Kind == IncomeWindfall && inc.StartDate == nil {
		if year == startYear {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	}
	return activeFraction(year, inc.StartDate, inc.EndDate)
}
