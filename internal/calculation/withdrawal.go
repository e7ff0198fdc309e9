package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/finplan/household-planner/internal/domain"
)

// WithdrawalStrategy decides the year's draw from the investable portfolio
// once the household is in the Withdrawing phase. Strategies carry their own
// running state across years; a fresh strategy is built per run so repeated
// runs stay idempotent.
type WithdrawalStrategy interface {
	CalculateWithdrawal(portfolio decimal.Decimal, yearsWithdrawing int) decimal.Decimal
	Name() string
}

// SpendingAdjuster is implemented by strategies that scale discretionary
// expenses. The factor compounds across consecutive guardrail breaches.
type SpendingAdjuster interface {
	DiscretionaryFactor() decimal.Decimal
}

// FixedRealStrategy withdraws a fixed share of the portfolio value at
// retirement, inflated each subsequent year. The amount is independent of
// market performance after the first year.
type FixedRealStrategy struct {
	Rate      decimal.Decimal
	Inflation decimal.Decimal

	base        decimal.Decimal
	initialized bool
}

// NewFixedRealStrategy creates a fixed-real withdrawal strategy.
func NewFixedRealStrategy(rate, inflation decimal.Decimal) *FixedRealStrategy {
	return &FixedRealStrategy{Rate: rate, Inflation: inflation}
}

// CalculateWithdrawal captures the baseline on the first withdrawing year,
// then inflates it.
func (s *FixedRealStrategy) CalculateWithdrawal(portfolio decimal.Decimal, yearsWithdrawing int) decimal.Decimal {
	if !s.initialized {
		s.base = portfolio.Mul(s.Rate)
		s.initialized = true
	}
	factor := one.Add(s.Inflation).Pow(decimal.NewFromInt(int64(yearsWithdrawing)))
	return s.base.Mul(factor)
}

// Name returns the strategy identifier.
func (s *FixedRealStrategy) Name() string { return string(domain.StrategyFixedReal) }

// PercentageStrategy withdraws a fixed percentage of the current portfolio
// value, recomputed every year. By itself it never drives the portfolio to
// exactly zero.
type PercentageStrategy struct {
	Rate decimal.Decimal
}

// NewPercentageStrategy creates a percentage-of-portfolio strategy.
func NewPercentageStrategy(rate decimal.Decimal) *PercentageStrategy {
	return &PercentageStrategy{Rate: rate}
}

// CalculateWithdrawal returns rate x current portfolio value.
func (s *PercentageStrategy) CalculateWithdrawal(portfolio decimal.Decimal, yearsWithdrawing int) decimal.Decimal {
	return portfolio.Mul(s.Rate)
}

// Name returns the strategy identifier.
func (s *PercentageStrategy) Name() string { return string(domain.StrategyPercentage) }

// GuytonKlingerStrategy holds withdrawals steady in real terms while the
// running withdrawal rate stays inside the guardrails. Above the upper
// guardrail it cuts discretionary spending by the adjustment percent (cuts
// compound across breach years); below the lower guardrail it raises the
// withdrawal by the adjustment percent. The upper guardrail is checked
// first, so both cannot trigger in the same year.
type GuytonKlingerStrategy struct {
	InitialRate decimal.Decimal
	Upper       decimal.Decimal
	Lower       decimal.Decimal
	Adjustment  decimal.Decimal
	Inflation   decimal.Decimal

	lastWithdrawal decimal.Decimal
	cutFactor      decimal.Decimal
	initialized    bool
}

// NewGuytonKlingerStrategy creates a guardrail strategy from the configured
// bounds and adjustment percent.
func NewGuytonKlingerStrategy(initialRate, upper, lower, adjustment, inflation decimal.Decimal) *GuytonKlingerStrategy {
	return &GuytonKlingerStrategy{
		InitialRate: initialRate,
		Upper:       upper,
		Lower:       lower,
		Adjustment:  adjustment,
		Inflation:   inflation,
		cutFactor:   one,
	}
}

// CalculateWithdrawal applies the guardrail rules and records the result as
// the baseline for next year.
func (s *GuytonKlingerStrategy) CalculateWithdrawal(portfolio decimal.Decimal, yearsWithdrawing int) decimal.Decimal {
	if !s.initialized {
		s.initialized = true
		s.lastWithdrawal = portfolio.Mul(s.InitialRate)
		return s.lastWithdrawal
	}

	inflated := s.lastWithdrawal.Mul(one.Add(s.Inflation))
	if portfolio.LessThanOrEqual(decimal.Zero) {
		// Depleted portfolio: the engine clamps to zero and reports the
		// shortfall; keep the inflated ask so the gap is visible.
		s.lastWithdrawal = inflated
		return inflated
	}

	currentRate := s.lastWithdrawal.Div(portfolio)
	switch {
	case currentRate.GreaterThan(s.Upper):
		s.cutFactor = s.cutFactor.Mul(one.Sub(s.Adjustment))
		s.lastWithdrawal = inflated
	case currentRate.LessThan(s.Lower):
		s.lastWithdrawal = inflated.Mul(one.Add(s.Adjustment))
	default:
		s.lastWithdrawal = inflated
	}
	return s.lastWithdrawal
}

// DiscretionaryFactor returns the compounded spending multiplier applied to
// expenses flagged discretionary.
func (s *GuytonKlingerStrategy) DiscretionaryFactor() decimal.Decimal {
	return s.cutFactor
}

// Name returns the strategy identifier.
func (s *GuytonKlingerStrategy) Name() string { return string(domain.StrategyGuytonKlinger) }

// NewWithdrawalStrategy builds the strategy configured in the assumptions.
// An unset strategy defaults to fixed-real, matching the most common
// planning convention.
func NewWithdrawalStrategy(a *domain.Assumptions) WithdrawalStrategy {
	switch a.WithdrawalStrategy {
	case domain.StrategyPercentage:
		return NewPercentageStrategy(a.WithdrawalRate)
	case domain.StrategyGuytonKlinger:
		return NewGuytonKlingerStrategy(a.WithdrawalRate, a.GuardrailUpper, a.GuardrailLower, a.GuardrailAdjustment, a.Inflation)
	default:
		return NewFixedRealStrategy(a.WithdrawalRate, a.Inflation)
	}
}
