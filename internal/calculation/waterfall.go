package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finplan/household-planner/internal/domain"
)

// Priority waterfall: a surplus is distributed across an ordered bucket
// list, each bucket capped by its own rule, strictly sequentially. The only
// way to change the outcome is to reorder the list.

// Allocation is one bucket's share of a period's surplus.
type Allocation struct {
	Bucket domain.PriorityBucket
	Amount decimal.Decimal
}

// AllocateSurplus distributes a per-period surplus across the buckets.
// periodsPerYear converts annual caps to the allocation period;
// periodExpenses and balanceOf feed the multiple-of-expenses cap. Buckets
// after the surplus is exhausted receive zero.
func AllocateSurplus(surplus decimal.Decimal, buckets []domain.PriorityBucket, periodsPerYear decimal.Decimal, periodExpenses decimal.Decimal, balanceOf func(accountID string) decimal.Decimal) []Allocation {
	allocations := make([]Allocation, len(buckets))
	remaining := surplus
	if remaining.LessThan(decimal.Zero) {
		remaining = decimal.Zero
	}

	for i, bucket := range buckets {
		cost := bucketCost(bucket, periodsPerYear, periodExpenses, balanceOf, remaining)
		deduction := decimal.Min(cost, remaining)
		if deduction.LessThan(decimal.Zero) {
			deduction = decimal.Zero
		}
		allocations[i] = Allocation{Bucket: bucket, Amount: deduction}
		remaining = remaining.Sub(deduction)
	}

	return allocations
}

// bucketCost evaluates one bucket's cap for the period.
func bucketCost(bucket domain.PriorityBucket, periodsPerYear, periodExpenses decimal.Decimal, balanceOf func(string) decimal.Decimal, remaining decimal.Decimal) decimal.Decimal {
	switch bucket.Cap {
	case domain.CapFixed:
		return bucket.Value
	case domain.CapAnnualMax:
		if periodsPerYear.LessThanOrEqual(decimal.Zero) {
			return bucket.Value
		}
		return bucket.Value.Div(periodsPerYear)
	case domain.CapMultipleOfExpenses:
		// A zero expense base makes the target zero; never divide by it.
		target := bucket.Value.Mul(periodExpenses)
		balance := decimal.Zero
		if balanceOf != nil {
			balance = balanceOf(bucket.AccountID)
		}
		cost := target.Sub(balance)
		if cost.LessThan(decimal.Zero) {
			return decimal.Zero
		}
		return cost
	case domain.CapRemainder:
		return remaining
	default:
		return decimal.Zero
	}
}

// TotalAllocated sums a set of allocations.
func TotalAllocated(allocations []Allocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocations {
		total = total.Add(a.Amount)
	}
	return total
}
