package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finplan/household-planner/internal/domain"
)

// Per-variant annual balance transitions. Each function is applied exactly
// once per simulated year, after that year's contributions and withdrawals
// are known, so cash flows compound in the year they occur.

var one = decimal.NewFromInt(1)
var twelve = decimal.NewFromInt(12)

// GrowCash advances a cash balance one year: interest at APR, then the
// year's net contribution.
func GrowCash(balance, apr, netContribution decimal.Decimal) decimal.Decimal {
	next := balance.Mul(one.Add(apr)).Add(netContribution)
	if next.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return next
}

// EffectiveReturn resolves an invested account's annual return: the custom
// override when present, otherwise the global rate, less the expense ratio.
func EffectiveReturn(acct *domain.Account, globalReturn decimal.Decimal) decimal.Decimal {
	rate := globalReturn
	if acct.ReturnOverride != nil {
		rate = *acct.ReturnOverride
	}
	return rate.Sub(acct.ExpenseRatio)
}

// GrowInvested advances an invested balance one year at the effective
// return, then applies the year's net contribution (negative for
// withdrawals). Balances never go below zero.
func GrowInvested(balance, effectiveReturn, netContribution decimal.Decimal) decimal.Decimal {
	next := balance.Mul(one.Add(effectiveReturn)).Add(netContribution)
	if next.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return next
}

// MonthlyPayment derives the level payment for a fixed-rate loan from
// principal, annual rate and term: P*r / (1 - (1+r)^-n) at the monthly rate.
// A zero rate degenerates to straight-line principal.
func MonthlyPayment(principal, annualRate decimal.Decimal, termYears int) decimal.Decimal {
	if principal.LessThanOrEqual(decimal.Zero) || termYears <= 0 {
		return decimal.Zero
	}
	months := decimal.NewFromInt(int64(termYears) * 12)
	if annualRate.IsZero() {
		return principal.Div(months)
	}
	r := annualRate.Div(twelve)
	// (1+r)^-n via positive power to stay in decimal arithmetic.
	compounded := one.Add(r).Pow(months)
	return principal.Mul(r).Mul(compounded).Div(compounded.Sub(one))
}

// AmortizeLoanYear applies twelve monthly payments to a fixed-rate loan
// balance. extraPrincipal is the annual extra payment, spread evenly across
// the months, matching what the mortgage expense charges. Returns the new
// balance and the principal and interest portions actually paid. Once the
// balance reaches zero it stays there and remaining payments stop.
func AmortizeLoanYear(balance, monthlyPayment, annualRate, extraPrincipal decimal.Decimal) (newBalance, principalPaid, interestPaid decimal.Decimal) {
	r := annualRate.Div(twelve)
	monthlyExtra := extraPrincipal.Div(twelve)
	for m := 0; m < 12; m++ {
		if balance.LessThanOrEqual(decimal.Zero) {
			balance = decimal.Zero
			break
		}
		interest := balance.Mul(r)
		principal := monthlyPayment.Sub(interest).Add(monthlyExtra)
		if principal.LessThan(decimal.Zero) {
			principal = decimal.Zero
		}
		if principal.GreaterThan(balance) {
			principal = balance
		}
		balance = balance.Sub(principal)
		principalPaid = principalPaid.Add(principal)
		interestPaid = interestPaid.Add(interest)
	}
	return balance, principalPaid, interestPaid
}

// AmortizeDebtYear pays a debt down by (payment - accrued interest) per
// month. Simple interest accrues on the original principal only;
// compounding interest accrues on principal plus prior unpaid interest.
// The balance cannot go negative: at zero the debt is retired.
func AmortizeDebtYear(balance, originalPrincipal, annualPayment, apr decimal.Decimal, interestType domain.InterestType) (newBalance, interestPaid decimal.Decimal) {
	if balance.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero
	}
	monthlyPayment := annualPayment.Div(twelve)
	r := apr.Div(twelve)
	for m := 0; m < 12; m++ {
		if balance.LessThanOrEqual(decimal.Zero) {
			balance = decimal.Zero
			break
		}
		var interest decimal.Decimal
		if interestType == domain.InterestSimple {
			interest = originalPrincipal.Mul(r)
		} else {
			interest = balance.Mul(r)
		}
		// Unpaid interest capitalizes onto the balance for compounding
		// debts; for simple debts the shortfall just slows payoff.
		principal := monthlyPayment.Sub(interest)
		if principal.LessThan(decimal.Zero) {
			if interestType == domain.InterestCompounding {
				balance = balance.Add(interest.Sub(monthlyPayment))
			}
			interestPaid = interestPaid.Add(monthlyPayment)
			continue
		}
		if principal.GreaterThan(balance) {
			principal = balance
		}
		balance = balance.Sub(principal)
		interestPaid = interestPaid.Add(interest)
	}
	return balance, interestPaid
}

// AppreciateProperty advances a property valuation one year.
func AppreciateProperty(value, appreciationRate decimal.Decimal) decimal.Decimal {
	return value.Mul(one.Add(appreciationRate))
}

// MortgageCarryingCost returns the annual taxes + insurance + PMI + HOA cost
// of a mortgage expense. This is what the payment drops to once the loan
// balance reaches zero (PMI drops with it, since it is billed on the
// outstanding loan).
func MortgageCarryingCost(e *domain.Expense, propertyValue, loanBalance decimal.Decimal) decimal.Decimal {
	cost := propertyValue.Mul(e.PropertyTaxRate.Add(e.InsuranceRate))
	if loanBalance.GreaterThan(decimal.Zero) {
		cost = cost.Add(loanBalance.Mul(e.PMIRate))
	}
	return cost.Add(e.HOAFee.Mul(twelve))
}
