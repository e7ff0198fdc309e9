package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// JurisdictionFederal is the jurisdiction key for the federal table in any
// tax-table source.
const JurisdictionFederal = "federal"

// FilingStatus keys a jurisdiction's bracket table.
type FilingStatus string

const (
	FilingSingle  FilingStatus = "single"
	FilingJoint   FilingStatus = "married_filing_jointly"
	FilingHeadOfH FilingStatus = "head_of_household"
)

// Bracket is one rung of a progressive rate table. Threshold is the lower
// bound of the bracket; the upper bound is the next bracket's threshold, or
// unbounded for the last bracket.
type Bracket struct {
	Threshold decimal.Decimal `yaml:"threshold" json:"threshold"`
	Rate      decimal.Decimal `yaml:"rate" json:"rate"`
}

// TaxParameters describes one jurisdiction's tax rules for one year and
// filing status. The simulation treats it as a read-only lookup result.
type TaxParameters struct {
	Year              int             `yaml:"year" json:"year"`
	FilingStatus      FilingStatus    `yaml:"filing_status" json:"filing_status"`
	Jurisdiction      string          `yaml:"jurisdiction" json:"jurisdiction"`
	Brackets          []Bracket       `yaml:"brackets" json:"brackets"`
	StandardDeduction decimal.Decimal `yaml:"standard_deduction" json:"standard_deduction"`
	SSWageBase        decimal.Decimal `yaml:"ss_wage_base" json:"ss_wage_base"`
	SSRate            decimal.Decimal `yaml:"ss_rate" json:"ss_rate"`
	MedicareRate      decimal.Decimal `yaml:"medicare_rate" json:"medicare_rate"`
}

// Validate rejects malformed bracket tables before a simulation starts.
// An empty or out-of-order table is a configuration error, never silently
// tolerated.
func (tp *TaxParameters) Validate() error {
	if len(tp.Brackets) == 0 {
		return &ConfigError{Field: "brackets", Reason: fmt.Sprintf("%s: bracket table is empty", tp.Jurisdiction)}
	}
	if !tp.Brackets[0].Threshold.IsZero() {
		return &ConfigError{Field: "brackets", Reason: fmt.Sprintf("%s: first bracket threshold must be 0, got %s", tp.Jurisdiction, tp.Brackets[0].Threshold)}
	}
	for i := 1; i < len(tp.Brackets); i++ {
		if !tp.Brackets[i].Threshold.GreaterThan(tp.Brackets[i-1].Threshold) {
			return &ConfigError{Field: "brackets", Reason: fmt.Sprintf("%s: bracket %d threshold %s is not greater than previous %s",
				tp.Jurisdiction, i, tp.Brackets[i].Threshold, tp.Brackets[i-1].Threshold)}
		}
	}
	for i, b := range tp.Brackets {
		if b.Rate.IsNegative() {
			return &ConfigError{Field: "brackets", Reason: fmt.Sprintf("%s: bracket %d rate is negative", tp.Jurisdiction, i)}
		}
	}
	return nil
}

// ConfigError is a structured reason a run cannot start. Configuration
// errors are fatal before simulation; they never occur mid-run.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}
