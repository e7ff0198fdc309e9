package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/household-planner/internal/domain"
)

func TestAllocateSurplus(t *testing.T) {
	buckets := []domain.PriorityBucket{
		{Name: "fun money", AccountID: "a1", Cap: domain.CapFixed, Value: decimal.NewFromInt(300)},
		{Name: "ira", AccountID: "a2", Cap: domain.CapAnnualMax, Value: decimal.NewFromInt(6000)},
		{Name: "brokerage", AccountID: "a3", Cap: domain.CapRemainder},
	}
	balanceOf := func(string) decimal.Decimal { return decimal.Zero }

	allocs := AllocateSurplus(decimal.NewFromInt(1000), buckets, twelve, decimal.NewFromInt(3000), balanceOf)
	require.Len(t, allocs, 3)

	// 300 fixed, 500 monthly cap on the 6000 annual max, 200 remainder.
	assert.True(t, allocs[0].Amount.Equal(decimal.NewFromInt(300)), "got %s", allocs[0].Amount)
	assert.True(t, allocs[1].Amount.Equal(decimal.NewFromInt(500)), "got %s", allocs[1].Amount)
	assert.True(t, allocs[2].Amount.Equal(decimal.NewFromInt(200)), "got %s", allocs[2].Amount)
	assert.True(t, TotalAllocated(allocs).Equal(decimal.NewFromInt(1000)))
}

func TestAllocateSurplusExhausted(t *testing.T) {
	buckets := []domain.PriorityBucket{
		{Name: "first", AccountID: "a1", Cap: domain.CapFixed, Value: decimal.NewFromInt(400)},
		{Name: "second", AccountID: "a2", Cap: domain.CapFixed, Value: decimal.NewFromInt(400)},
		{Name: "third", AccountID: "a3", Cap: domain.CapFixed, Value: decimal.NewFromInt(400)},
	}
	balanceOf := func(string) decimal.Decimal { return decimal.Zero }

	allocs := AllocateSurplus(decimal.NewFromInt(500), buckets, twelve, decimal.Zero, balanceOf)

	// Earlier buckets drain the surplus; later ones get zero.
	assert.True(t, allocs[0].Amount.Equal(decimal.NewFromInt(400)))
	assert.True(t, allocs[1].Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, allocs[2].Amount.IsZero())
}

func TestAllocateSurplusMultipleOfExpenses(t *testing.T) {
	buckets := []domain.PriorityBucket{
		{Name: "emergency fund", AccountID: "efund", Cap: domain.CapMultipleOfExpenses, Value: decimal.NewFromInt(6)},
		{Name: "rest", AccountID: "a2", Cap: domain.CapRemainder},
	}

	// Target is 6x monthly expenses; the fund already holds 17000 of the
	// 18000 target, so only the 1000 gap is absorbed.
	balanceOf := func(id string) decimal.Decimal {
		if id == "efund" {
			return decimal.NewFromInt(17000)
		}
		return decimal.Zero
	}

	allocs := AllocateSurplus(decimal.NewFromInt(2500), buckets, twelve, decimal.NewFromInt(3000), balanceOf)
	assert.True(t, allocs[0].Amount.Equal(decimal.NewFromInt(1000)), "got %s", allocs[0].Amount)
	assert.True(t, allocs[1].Amount.Equal(decimal.NewFromInt(1500)), "got %s", allocs[1].Amount)

	// A fully funded target absorbs nothing.
	fullOf := func(string) decimal.Decimal { return decimal.NewFromInt(20000) }
	allocs = AllocateSurplus(decimal.NewFromInt(2500), buckets, twelve, decimal.NewFromInt(3000), fullOf)
	assert.True(t, allocs[0].Amount.IsZero())
	assert.True(t, allocs[1].Amount.Equal(decimal.NewFromInt(2500)))
}

func TestAllocateSurplusNonPositive(t *testing.T) {
	buckets := []domain.PriorityBucket{
		{Name: "only", AccountID: "a1", Cap: domain.CapRemainder},
	}
	balanceOf := func(string) decimal.Decimal { return decimal.Zero }

	allocs := AllocateSurplus(decimal.NewFromInt(-100), buckets, twelve, decimal.Zero, balanceOf)
	assert.True(t, allocs[0].Amount.IsZero(), "negative surplus allocates nothing")

	allocs = AllocateSurplus(decimal.Zero, buckets, twelve, decimal.Zero, balanceOf)
	assert.True(t, allocs[0].Amount.IsZero())
}
