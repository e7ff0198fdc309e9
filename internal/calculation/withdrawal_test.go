package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/household-planner/internal/domain"
)

func TestFixedRealStrategy(t *testing.T) {
	s := NewFixedRealStrategy(decimal.NewFromFloat(0.04), decimal.NewFromFloat(0.03))
	portfolio := decimal.NewFromInt(1000000)

	// First year captures the baseline: 4% of the portfolio at retirement.
	first := s.CalculateWithdrawal(portfolio, 0)
	assert.True(t, first.Equal(decimal.NewFromInt(40000)),
		"expected 40000, got %s", first)

	// Later years inflate the baseline regardless of portfolio moves.
	second := s.CalculateWithdrawal(decimal.NewFromInt(500000), 1)
	assert.True(t, second.Equal(decimal.NewFromInt(41200)),
		"expected 41200, got %s", second)

	third := s.CalculateWithdrawal(decimal.NewFromInt(2000000), 2)
	assert.InDelta(t, 42436, third.InexactFloat64(), 0.01)
}

func TestPercentageStrategy(t *testing.T) {
	s := NewPercentageStrategy(decimal.NewFromFloat(0.04))

	result := s.CalculateWithdrawal(decimal.NewFromInt(1000000), 0)
	assert.True(t, result.Equal(decimal.NewFromInt(40000)))

	// Recomputed from the current value every year.
	result = s.CalculateWithdrawal(decimal.NewFromInt(500000), 5)
	assert.True(t, result.Equal(decimal.NewFromInt(20000)))
}

func TestGuytonKlingerSteadyState(t *testing.T) {
	s := NewGuytonKlingerStrategy(
		decimal.NewFromFloat(0.05),
		decimal.NewFromFloat(0.06), // upper
		decimal.NewFromFloat(0.04), // lower
		decimal.NewFromFloat(0.10),
		decimal.NewFromFloat(0.03),
	)

	first := s.CalculateWithdrawal(decimal.NewFromInt(1000000), 0)
	assert.True(t, first.Equal(decimal.NewFromInt(50000)))

	// Rate 50000/1000000 = 5% sits inside the guardrails: plain inflation.
	second := s.CalculateWithdrawal(decimal.NewFromInt(1000000), 1)
	assert.True(t, second.Equal(decimal.NewFromInt(51500)),
		"expected 51500, got %s", second)
	assert.True(t, s.DiscretionaryFactor().Equal(decimal.NewFromInt(1)))
}

func TestGuytonKlingerUpperGuardrail(t *testing.T) {
	s := NewGuytonKlingerStrategy(
		decimal.NewFromFloat(0.05),
		decimal.NewFromFloat(0.06),
		decimal.NewFromFloat(0.04),
		decimal.NewFromFloat(0.10),
		decimal.NewFromFloat(0.03),
	)

	s.CalculateWithdrawal(decimal.NewFromInt(1000000), 0) // baseline 50000

	// Portfolio crash: 50000/700000 > 6% breaches the upper guardrail.
	s.CalculateWithdrawal(decimal.NewFromInt(700000), 1)
	assert.True(t, s.DiscretionaryFactor().Equal(decimal.NewFromFloat(0.90)),
		"upper breach cuts discretionary spending by the adjustment")

	// A second consecutive breach compounds the cut.
	s.CalculateWithdrawal(decimal.NewFromInt(600000), 2)
	assert.True(t, s.DiscretionaryFactor().Equal(decimal.NewFromFloat(0.81)),
		"expected 0.81, got %s", s.DiscretionaryFactor())
}

func TestGuytonKlingerLowerGuardrail(t *testing.T) {
	s := NewGuytonKlingerStrategy(
		decimal.NewFromFloat(0.05),
		decimal.NewFromFloat(0.06),
		decimal.NewFromFloat(0.04),
		decimal.NewFromFloat(0.10),
		decimal.NewFromFloat(0.03),
	)

	s.CalculateWithdrawal(decimal.NewFromInt(1000000), 0) // baseline 50000

	// Portfolio boom: 50000/2000000 < 4% breaches the lower guardrail.
	result := s.CalculateWithdrawal(decimal.NewFromInt(2000000), 1)
	// 50000 * 1.03 * 1.10
	assert.True(t, result.Equal(decimal.NewFromInt(56650)),
		"expected 56650, got %s", result)
	assert.True(t, s.DiscretionaryFactor().Equal(decimal.NewFromInt(1)),
		"lower breach raises the withdrawal, never the cut factor")
}

func TestGuytonKlingerDepletedPortfolio(t *testing.T) {
	s := NewGuytonKlingerStrategy(
		decimal.NewFromFloat(0.05),
		decimal.NewFromFloat(0.06),
		decimal.NewFromFloat(0.04),
		decimal.NewFromFloat(0.10),
		decimal.NewFromFloat(0.03),
	)

	s.CalculateWithdrawal(decimal.NewFromInt(100000), 0)
	result := s.CalculateWithdrawal(decimal.Zero, 1)
	assert.True(t, result.Equal(decimal.NewFromInt(5150)),
		"the inflated ask survives depletion so the shortfall is visible")
}

func TestNewWithdrawalStrategy(t *testing.T) {
	tests := []struct {
		kind     domain.WithdrawalStrategyKind
		expected string
	}{
		{domain.StrategyFixedReal, "fixed_real"},
		{domain.StrategyPercentage, "percentage"},
		{domain.StrategyGuytonKlinger, "guyton_klinger"},
		{"", "fixed_real"}, // unset defaults to fixed-real
	}

	for _, tt := range tests {
		a := &domain.Assumptions{
			WithdrawalStrategy: tt.kind,
			WithdrawalRate:     decimal.NewFromFloat(0.04),
		}
		s := NewWithdrawalStrategy(a)
		require.NotNil(t, s)
		assert.Equal(t, tt.expected, s.Name())
	}
}
