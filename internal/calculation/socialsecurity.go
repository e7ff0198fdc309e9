package calculation

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/finplan/household-planner/internal/domain"
	"github.com/finplan/household-planner/pkg/dateutil"
)

// Social Security benefit math: AIME from the 35 highest indexed earning
// years, bend-point PIA, and the SSA claiming-age schedule. The computed
// benefit is fixed exactly once per income entity, in the simulated year the
// claiming age is reached (PIAStatus.Fix); afterwards it only receives COLA.

// SocialSecurityCalculator computes a worker's benefit from an earnings
// history. Bend points default to the 2025 values and can be overridden for
// other benefit years.
type SocialSecurityCalculator struct {
	BirthYear         int
	FullRetirementAge int
	BendPoint1        decimal.Decimal
	BendPoint2        decimal.Decimal
}

// NewSocialSecurityCalculator creates a calculator for a worker born in the
// given year.
func NewSocialSecurityCalculator(birthYear int) *SocialSecurityCalculator {
	return &SocialSecurityCalculator{
		BirthYear:         birthYear,
		FullRetirementAge: dateutil.FullRetirementAge(birthYear),
		BendPoint1:        decimal.NewFromInt(1226), // 2025 monthly bend points
		BendPoint2:        decimal.NewFromInt(7391),
	}
}

// ComputeAIME returns the Average Indexed Monthly Earnings: the mean of the
// 35 highest earning years divided into months. Histories shorter than 35
// years average zeros for the missing years, per the SSA rule.
func (ssc *SocialSecurityCalculator) ComputeAIME(history []domain.EarningsRecord) decimal.Decimal {
	amounts := make([]decimal.Decimal, 0, len(history))
	for _, rec := range history {
		if rec.Amount.IsPositive() {
			amounts = append(amounts, rec.Amount)
		}
	}
	sort.Slice(amounts, func(i, j int) bool { return amounts[i].GreaterThan(amounts[j]) })
	if len(amounts) > 35 {
		amounts = amounts[:35]
	}
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total.Div(decimal.NewFromInt(35 * 12)).Floor()
}

// ComputePIA applies the bend-point formula to an AIME: 90% of the first
// bend point, 32% between the bend points, 15% above the second.
func (ssc *SocialSecurityCalculator) ComputePIA(aime decimal.Decimal) decimal.Decimal {
	if aime.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	pia := decimal.Min(aime, ssc.BendPoint1).Mul(decimal.NewFromFloat(0.90))
	if aime.GreaterThan(ssc.BendPoint1) {
		pia = pia.Add(decimal.Min(aime, ssc.BendPoint2).Sub(ssc.BendPoint1).Mul(decimal.NewFromFloat(0.32)))
	}
	if aime.GreaterThan(ssc.BendPoint2) {
		pia = pia.Add(aime.Sub(ssc.BendPoint2).Mul(decimal.NewFromFloat(0.15)))
	}
	return pia
}

// AdjustForClaimingAge scales a PIA by the claiming-age factor: reduced by
// 5/9 of 1% per month for the first 36 months early and 5/12 of 1% per month
// beyond, increased by 2/3 of 1% per month delayed, capped at age 70.
// Claiming ages outside [62, 70] are rejected at input validation; here they
// are clamped so the function stays total.
func (ssc *SocialSecurityCalculator) AdjustForClaimingAge(pia decimal.Decimal, claimingAge int) decimal.Decimal {
	if claimingAge < 62 {
		claimingAge = 62
	}
	if claimingAge > 70 {
		claimingAge = 70
	}

	if claimingAge < ssc.FullRetirementAge {
		monthsEarly := (ssc.FullRetirementAge - claimingAge) * 12
		var reduction decimal.Decimal
		if monthsEarly <= 36 {
			reduction = decimal.NewFromFloat(5.0 / 9.0 / 100.0).Mul(decimal.NewFromInt(int64(monthsEarly)))
		} else {
			first := decimal.NewFromFloat(5.0 / 9.0 / 100.0).Mul(decimal.NewFromInt(36))
			extra := decimal.NewFromFloat(5.0 / 12.0 / 100.0).Mul(decimal.NewFromInt(int64(monthsEarly - 36)))
			reduction = first.Add(extra)
		}
		return pia.Mul(decimal.NewFromInt(1).Sub(reduction))
	}

	if claimingAge > ssc.FullRetirementAge {
		monthsDelayed := (claimingAge - ssc.FullRetirementAge) * 12
		if monthsDelayed > 48 {
			monthsDelayed = 48
		}
		credit := decimal.NewFromFloat(2.0 / 3.0 / 100.0).Mul(decimal.NewFromInt(int64(monthsDelayed)))
		return pia.Mul(decimal.NewFromInt(1).Add(credit))
	}

	return pia
}

// MonthlyBenefitAtClaim runs the full pipeline: AIME, PIA, claiming-age
// adjustment. Returns the monthly benefit payable from the claiming year.
func (ssc *SocialSecurityCalculator) MonthlyBenefitAtClaim(history []domain.EarningsRecord, claimingAge int) decimal.Decimal {
	aime := ssc.ComputeAIME(history)
	pia := ssc.ComputePIA(aime)
	return ssc.AdjustForClaimingAge(pia, claimingAge)
}

// ApplyCOLA applies one year's cost-of-living adjustment to a benefit.
func ApplyCOLA(currentBenefit, colaRate decimal.Decimal) decimal.Decimal {
	return currentBenefit.Mul(decimal.NewFromInt(1).Add(colaRate))
}
