package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finplan/household-planner/internal/domain"
)

// TaxCalculator computes FICA and progressive income tax from a
// jurisdiction's parameter table. All methods are pure; negative inputs are
// clamped to zero rather than rejected. Malformed bracket tables are caught
// by TaxParameters.Validate before a run starts, never here.
type TaxCalculator struct {
	Logger Logger
}

// NewTaxCalculator creates a new tax calculator
func NewTaxCalculator() *TaxCalculator {
	return &TaxCalculator{Logger: NopLogger{}}
}

// CalculateFICA calculates combined Social Security and Medicare payroll tax.
// Only earned income belongs in earnedGross; the caller excludes passive,
// windfall and benefit income from the base.
func (tc *TaxCalculator) CalculateFICA(earnedGross, ficaExemptions decimal.Decimal, params *domain.TaxParameters) decimal.Decimal {
	base := earnedGross.Sub(ficaExemptions)
	if base.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	// Social Security portion is capped at the wage base; Medicare is not.
	ssTax := decimal.Min(base, params.SSWageBase).Mul(params.SSRate)
	medicareTax := base.Mul(params.MedicareRate)

	return ssTax.Add(medicareTax)
}

// CalculateTax calculates progressive income tax on gross income after
// pre-tax deductions and the given standard-or-itemized deduction.
func (tc *TaxCalculator) CalculateTax(grossIncome, preTaxDeductions, deduction decimal.Decimal, params *domain.TaxParameters) decimal.Decimal {
	adjustedGross := grossIncome.Sub(preTaxDeductions)
	if adjustedGross.LessThan(decimal.Zero) {
		adjustedGross = decimal.Zero
	}
	taxableIncome := adjustedGross.Sub(deduction)
	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return BracketTax(taxableIncome, params.Brackets)
}

// BracketTax accrues tax at each bracket's rate on the portion of taxable
// income between that bracket's threshold and the next one. This reproduces
// standard marginal arithmetic exactly; no per-bracket rounding.
func BracketTax(taxableIncome decimal.Decimal, brackets []domain.Bracket) decimal.Decimal {
	totalTax := decimal.Zero
	for i, bracket := range brackets {
		if taxableIncome.LessThanOrEqual(bracket.Threshold) {
			break
		}
		upper := taxableIncome
		if i+1 < len(brackets) && brackets[i+1].Threshold.LessThan(taxableIncome) {
			upper = brackets[i+1].Threshold
		}
		portion := upper.Sub(bracket.Threshold)
		if portion.GreaterThan(decimal.Zero) {
			totalTax = totalTax.Add(portion.Mul(bracket.Rate))
		}
	}
	return totalTax
}

// MarginalTax returns the additional tax incurred by adding extra income on
// top of an existing taxable base. Used for traditional withdrawals and Roth
// conversions that land on a year whose wage tax is already computed.
func MarginalTax(taxableBase, extra decimal.Decimal, brackets []domain.Bracket) decimal.Decimal {
	if extra.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if taxableBase.LessThan(decimal.Zero) {
		taxableBase = decimal.Zero
	}
	return BracketTax(taxableBase.Add(extra), brackets).Sub(BracketTax(taxableBase, brackets))
}

// ApplyCredits subtracts credits from a computed liability, floored at zero.
func ApplyCredits(tax, credits decimal.Decimal) decimal.Decimal {
	result := tax.Sub(credits)
	if result.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return result
}
