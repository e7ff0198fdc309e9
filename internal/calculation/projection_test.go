package calculation

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplan/household-planner/internal/domain"
)

type stubTaxSource struct{}

func (stubTaxSource) Lookup(year int, status domain.FilingStatus, jurisdiction string) (*domain.TaxParameters, error) {
	if jurisdiction != domain.JurisdictionFederal {
		return nil, fmt.Errorf("no table for jurisdiction %q", jurisdiction)
	}
	return testFederalParams(), nil
}

func newTestEngine() *Engine {
	return NewEngine(stubTaxSource{})
}

func TestRunMonotonicityWithoutGrowth(t *testing.T) {
	// With zero rates everywhere, each year's net worth change must equal
	// income minus taxes minus expenses exactly.
	plan := &domain.Plan{
		Accounts: []domain.Account{
			{ID: "chk", Name: "Checking", Kind: domain.AccountCash, Balance: decimal.NewFromInt(10000)},
		},
		Incomes: []domain.Income{
			{ID: "job", Name: "Job", Kind: domain.IncomeWork, Amount: decimal.NewFromInt(80000), Frequency: domain.Annually, Earned: true},
		},
		Expenses: []domain.Expense{
			{ID: "food", Name: "Food", Kind: domain.ExpenseFood, Amount: decimal.NewFromInt(2000), Frequency: domain.Monthly},
		},
		Assumptions: domain.Assumptions{
			BirthYear:      1985,
			StartYear:      2025,
			RetirementAge:  65,
			LifeExpectancy: 49,
			FilingStatus:   domain.FilingSingle,
		},
	}

	result, err := newTestEngine().Run(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, result.Years, 10)

	prev := decimal.NewFromInt(10000)
	for _, y := range result.Years {
		assert.Equal(t, domain.PhaseAccumulating, y.Phase)
		expected := prev.Add(y.GrossIncome).Sub(y.Taxes.Total()).Sub(y.Expenses)
		assert.True(t, y.NetWorth.Equal(expected),
			"year %d: expected net worth %s, got %s", y.CalendarYear, expected, y.NetWorth)
		assert.True(t, y.NetSavings.Equal(y.GrossIncome.Sub(y.Taxes.Total()).Sub(y.Expenses)))
		prev = y.NetWorth
	}
}

func TestRunIdempotent(t *testing.T) {
	plan := &domain.Plan{
		Accounts: []domain.Account{
			{ID: "chk", Name: "Checking", Kind: domain.AccountCash, Balance: decimal.NewFromInt(20000), APR: decimal.NewFromFloat(0.02)},
			{ID: "ira", Name: "IRA", Kind: domain.AccountInvested, Balance: decimal.NewFromInt(150000), TaxTreatment: domain.TreatmentTraditionalIRA, ExpenseRatio: decimal.NewFromFloat(0.004), ContributionEligible: true},
		},
		Incomes: []domain.Income{
			{ID: "job", Name: "Job", Kind: domain.IncomeWork, Amount: decimal.NewFromInt(90000), Frequency: domain.Annually, Earned: true, PreTaxContribution: decimal.NewFromInt(6000), MatchAccountID: "ira"},
		},
		Expenses: []domain.Expense{
			{ID: "rent", Name: "Rent", Kind: domain.ExpenseRent, Amount: decimal.NewFromInt(1800), Frequency: domain.Monthly},
			{ID: "travel", Name: "Travel", Kind: domain.ExpenseVacation, Amount: decimal.NewFromInt(4000), Frequency: domain.Annually, Discretionary: true},
		},
		Assumptions: domain.Assumptions{
			BirthYear:          1970,
			StartYear:          2025,
			RetirementAge:      60,
			LifeExpectancy:     75,
			Inflation:          decimal.NewFromFloat(0.025),
			IncomeGrowth:       decimal.NewFromFloat(0.03),
			ReturnRate:         decimal.NewFromFloat(0.06),
			WithdrawalStrategy: domain.StrategyFixedReal,
			WithdrawalRate:     decimal.NewFromFloat(0.04),
			WithdrawalOrder:    []string{"ira"},
			FilingStatus:       domain.FilingSingle,
		},
	}

	engine := newTestEngine()
	first, err := engine.Run(context.Background(), plan)
	require.NoError(t, err)
	second, err := engine.Run(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, first.Years, second.Years,
		"identical inputs must produce identical snapshot sequences")
	assert.Equal(t, first.Summary, second.Summary)
}

func TestRunPhaseTransition(t *testing.T) {
	plan := &domain.Plan{
		Accounts: []domain.Account{
			{ID: "brk", Name: "Brokerage", Kind: domain.AccountInvested, Balance: decimal.NewFromInt(500000), TaxTreatment: domain.TreatmentBrokerage},
		},
		Incomes: []domain.Income{
			{ID: "job", Name: "Job", Kind: domain.IncomeWork, Amount: decimal.NewFromInt(70000), Frequency: domain.Annually, Earned: true},
		},
		Assumptions: domain.Assumptions{
			BirthYear:      1963,
			StartYear:      2025,
			RetirementAge:  64,
			LifeExpectancy: 68,
			WithdrawalRate: decimal.NewFromFloat(0.04),
			FilingStatus:   domain.FilingSingle,
		},
	}

	result, err := newTestEngine().Run(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, result.Years, 7)

	// Ages 62, 63 accumulate; the retirement-age year is the first
	// withdrawing year and wages stop with it.
	assert.Equal(t, domain.PhaseAccumulating, result.Years[0].Phase)
	assert.Equal(t, domain.PhaseAccumulating, result.Years[1].Phase)
	assert.Equal(t, domain.PhaseWithdrawing, result.Years[2].Phase)
	assert.True(t, result.Years[1].GrossIncome.GreaterThan(decimal.Zero))
	assert.True(t, result.Years[2].GrossIncome.IsZero())
	assert.True(t, result.Years[2].Withdrawals.GreaterThan(decimal.Zero))
}

func TestRunPortfolioDepletion(t *testing.T) {
	// Spending far outruns a small portfolio: the run must complete, report
	// shortfalls and mark depletion, never error.
	plan := &domain.Plan{
		Accounts: []domain.Account{
			{ID: "ira", Name: "IRA", Kind: domain.AccountInvested, Balance: decimal.NewFromInt(100000), TaxTreatment: domain.TreatmentTraditionalIRA},
		},
		Expenses: []domain.Expense{
			{ID: "living", Name: "Living", Kind: domain.ExpenseOther, Amount: decimal.NewFromInt(30000), Frequency: domain.Annually},
		},
		Assumptions: domain.Assumptions{
			BirthYear:          1960,
			StartYear:          2025,
			RetirementAge:      65,
			LifeExpectancy:     80,
			WithdrawalStrategy: domain.StrategyPercentage,
			WithdrawalRate:     decimal.NewFromFloat(0.04),
			FilingStatus:       domain.FilingSingle,
		},
	}

	result, err := newTestEngine().Run(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, result.Years, 16)

	first := result.Years[0]
	assert.Equal(t, domain.PhaseWithdrawing, first.Phase)
	assert.False(t, first.Depleted)
	assert.True(t, first.Withdrawals.GreaterThan(decimal.Zero))

	last := result.Years[len(result.Years)-1]
	assert.True(t, last.Depleted, "the portfolio cannot fund 30000/year for 16 years")
	assert.True(t, last.Shortfall.GreaterThan(decimal.Zero))
	assert.True(t, last.NetWorth.IsZero())

	assert.NotZero(t, result.Summary.PortfolioDepletedYear)
	assert.NotZero(t, result.Summary.FirstShortfallYear)
}

func TestRunSocialSecurityBenefitFixedOnce(t *testing.T) {
	plan := &domain.Plan{
		Accounts: []domain.Account{
			{ID: "chk", Name: "Checking", Kind: domain.AccountCash, Balance: decimal.NewFromInt(500000)},
		},
		Incomes: []domain.Income{
			{
				ID: "ss", Name: "Social Security", Kind: domain.IncomeFutureSocialSecurity,
				ClaimingAge:     62,
				EarningsHistory: flatHistory(35, 42000),
			},
		},
		Assumptions: domain.Assumptions{
			BirthYear:      1963,
			StartYear:      2025,
			RetirementAge:  62,
			LifeExpectancy: 70,
			FilingStatus:   domain.FilingSingle,
		},
	}

	result, err := newTestEngine().Run(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, result.Years, 9)

	// The benefit is fixed at the end of the claiming year and pays out
	// from the following year.
	assert.True(t, result.Years[0].GrossIncome.IsZero())
	benefit := result.Years[1].GrossIncome
	assert.True(t, benefit.GreaterThan(decimal.Zero))

	// AIME 3500 => PIA 1831.08, reduced to 70% for claiming at 62.
	assert.InDelta(t, 1831.08*0.70*12, benefit.InexactFloat64(), 1.0)

	// Zero inflation means zero COLA: the fixed benefit never moves.
	for _, y := range result.Years[2:] {
		assert.True(t, y.GrossIncome.Equal(benefit),
			"year %d: benefit %s drifted from %s", y.CalendarYear, y.GrossIncome, benefit)
	}
}

func TestRunWaterfallAllocation(t *testing.T) {
	plan := &domain.Plan{
		Accounts: []domain.Account{
			{ID: "chk", Name: "Checking", Kind: domain.AccountCash},
			{ID: "brk", Name: "Brokerage", Kind: domain.AccountInvested, TaxTreatment: domain.TreatmentBrokerage},
		},
		Incomes: []domain.Income{
			{ID: "job", Name: "Job", Kind: domain.IncomeWork, Amount: decimal.NewFromInt(50000), Frequency: domain.Annually, Earned: true},
		},
		Expenses: []domain.Expense{
			{ID: "rent", Name: "Rent", Kind: domain.ExpenseRent, Amount: decimal.NewFromInt(1000), Frequency: domain.Monthly},
		},
		Assumptions: domain.Assumptions{
			BirthYear:      1990,
			StartYear:      2025,
			RetirementAge:  65,
			LifeExpectancy: 36,
			FilingStatus:   domain.FilingSingle,
			Buckets: []domain.PriorityBucket{
				{Name: "fun", AccountID: "brk", Cap: domain.CapFixed, Value: decimal.NewFromInt(300)},
				{Name: "rest", AccountID: "chk", Cap: domain.CapRemainder},
			},
		},
	}

	result, err := newTestEngine().Run(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, result.Years, 2)

	y := result.Years[0]
	surplus := y.GrossIncome.Sub(y.Taxes.Total()).Sub(y.Expenses)
	assert.True(t, y.Contributions.Equal(surplus),
		"the waterfall must place the whole surplus: %s vs %s", y.Contributions, surplus)

	// Fixed bucket takes 300/month; the remainder lands in checking.
	require.Len(t, y.Balances, 2)
	assert.True(t, y.Balances[1].Balance.Equal(decimal.NewFromInt(3600)),
		"expected 3600 in the fixed bucket, got %s", y.Balances[1].Balance)
	assert.True(t, y.Balances[0].Balance.Equal(surplus.Sub(decimal.NewFromInt(3600))))
}

func TestRunFrozenAccountWarning(t *testing.T) {
	plan := &domain.Plan{
		Accounts: []domain.Account{
			{ID: "chk", Name: "Checking", Kind: domain.AccountCash, Balance: decimal.NewFromInt(50000)},
			{ID: "card", Name: "Card", Kind: domain.AccountDebt, Balance: decimal.NewFromInt(5000)},
		},
		Assumptions: domain.Assumptions{
			BirthYear:      1980,
			StartYear:      2025,
			RetirementAge:  65,
			LifeExpectancy: 47,
			FilingStatus:   domain.FilingSingle,
		},
	}

	result, err := newTestEngine().Run(context.Background(), plan)
	require.NoError(t, err)
	require.NotEmpty(t, result.Years)

	y := result.Years[0]
	require.NotEmpty(t, y.Warnings)
	assert.Contains(t, y.Warnings[0], "frozen")

	// The frozen debt never amortizes.
	last := result.Years[len(result.Years)-1]
	assert.True(t, last.Balances[1].Frozen)
	assert.True(t, last.Balances[1].Balance.Equal(decimal.NewFromInt(5000)))
}

func TestRunRejectsInvalidPlan(t *testing.T) {
	plan := &domain.Plan{
		Assumptions: domain.Assumptions{
			BirthYear:          1980,
			StartYear:          2025,
			RetirementAge:      65,
			LifeExpectancy:     90,
			WithdrawalStrategy: domain.StrategyGuytonKlinger,
			GuardrailUpper:     decimal.NewFromFloat(0.04),
			GuardrailLower:     decimal.NewFromFloat(0.06), // inverted
			FilingStatus:       domain.FilingSingle,
		},
	}

	_, err := newTestEngine().Run(context.Background(), plan)
	require.Error(t, err)
	var cfgErr *domain.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRunEmergencyFundStopsAtTarget(t *testing.T) {
	// A multiple-of-expenses bucket must stop at its target even when the
	// year's surplus could fill it many times over.
	plan := &domain.Plan{
		Accounts: []domain.Account{
			{ID: "chk", Name: "Checking", Kind: domain.AccountCash},
			{ID: "efund", Name: "Emergency fund", Kind: domain.AccountCash},
		},
		Incomes: []domain.Income{
			{ID: "job", Name: "Job", Kind: domain.IncomeWork, Amount: decimal.NewFromInt(50000), Frequency: domain.Annually, Earned: true},
		},
		Expenses: []domain.Expense{
			{ID: "rent", Name: "Rent", Kind: domain.ExpenseRent, Amount: decimal.NewFromInt(1000), Frequency: domain.Monthly},
		},
		Assumptions: domain.Assumptions{
			BirthYear:      1990,
			StartYear:      2025,
			RetirementAge:  65,
			LifeExpectancy: 36,
			FilingStatus:   domain.FilingSingle,
			Buckets: []domain.PriorityBucket{
				{Name: "efund", AccountID: "efund", Cap: domain.CapMultipleOfExpenses, Value: decimal.NewFromInt(1)},
			},
		},
	}

	result, err := newTestEngine().Run(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, result.Years, 2)

	// One month of expenses is 1000; the fund fills in the first month and
	// absorbs nothing more. The rest of the surplus lands in checking.
	target := decimal.NewFromInt(1000)
	for _, y := range result.Years {
		assert.True(t, y.Balances[1].Balance.Equal(target),
			"year %d: emergency fund at %s, target %s", y.CalendarYear, y.Balances[1].Balance, target)
	}
	y := result.Years[0]
	surplus := y.GrossIncome.Sub(y.Taxes.Total()).Sub(y.Expenses)
	assert.True(t, y.Balances[0].Balance.Equal(surplus.Sub(target)))
}

func TestRunInsurancePremiumIsSpent(t *testing.T) {
	// The premium is deductible, but it is also money out the door: a plan
	// paying one must end the year poorer than the same plan without it.
	makePlan := func(premium decimal.Decimal) *domain.Plan {
		return &domain.Plan{
			Accounts: []domain.Account{
				{ID: "chk", Name: "Checking", Kind: domain.AccountCash, Balance: decimal.NewFromInt(10000)},
			},
			Incomes: []domain.Income{
				{ID: "job", Name: "Job", Kind: domain.IncomeWork, Amount: decimal.NewFromInt(80000), Frequency: domain.Annually, Earned: true, InsurancePremium: premium},
			},
			Expenses: []domain.Expense{
				{ID: "food", Name: "Food", Kind: domain.ExpenseFood, Amount: decimal.NewFromInt(2000), Frequency: domain.Monthly},
			},
			Assumptions: domain.Assumptions{
				BirthYear:      1985,
				StartYear:      2025,
				RetirementAge:  65,
				LifeExpectancy: 41,
				FilingStatus:   domain.FilingSingle,
			},
		}
	}

	premium := decimal.NewFromInt(6000)
	with, err := newTestEngine().Run(context.Background(), makePlan(premium))
	require.NoError(t, err)
	without, err := newTestEngine().Run(context.Background(), makePlan(decimal.Zero))
	require.NoError(t, err)

	withYear, withoutYear := with.Years[0], without.Years[0]
	assert.True(t, withYear.Expenses.Sub(withoutYear.Expenses).Equal(premium),
		"the premium must show up as spending")
	assert.True(t, withYear.Taxes.Total().LessThan(withoutYear.Taxes.Total()),
		"the premium is FICA-exempt and pre-tax")
	assert.True(t, withYear.NetWorth.LessThan(withoutYear.NetWorth),
		"paying for insurance cannot make the plan wealthier")

	// 6000 spent less 459 FICA and 1320 bracket savings.
	diff := withoutYear.NetWorth.Sub(withYear.NetWorth)
	assert.True(t, diff.Equal(decimal.NewFromInt(4221)),
		"expected net worth gap 4221, got %s", diff)
}

func TestRunMortgagePrincipalMatchesPayment(t *testing.T) {
	// On a zero-rate loan with no carrying costs, every mortgage dollar the
	// household spends becomes home equity, extra principal included: net
	// worth must move by exactly income minus taxes.
	plan := &domain.Plan{
		Accounts: []domain.Account{
			{ID: "chk", Name: "Checking", Kind: domain.AccountCash, Balance: decimal.NewFromInt(50000)},
			{
				ID: "home", Name: "Home", Kind: domain.AccountProperty,
				Balance:         decimal.NewFromInt(200000),
				Ownership:       domain.OwnershipFinanced,
				LoanAmount:      decimal.NewFromInt(120000),
				LoanBalance:     decimal.NewFromInt(120000),
				LinkedExpenseID: "mortgage",
			},
		},
		Incomes: []domain.Income{
			{ID: "job", Name: "Job", Kind: domain.IncomeWork, Amount: decimal.NewFromInt(60000), Frequency: domain.Annually, Earned: true},
		},
		Expenses: []domain.Expense{
			{
				ID: "mortgage", Name: "Mortgage", Kind: domain.ExpenseMortgage,
				InterestRate:    decimal.Zero,
				TermYears:       10,
				ExtraPrincipal:  decimal.NewFromInt(120),
				LinkedAccountID: "home",
			},
		},
		Assumptions: domain.Assumptions{
			BirthYear:      1985,
			StartYear:      2025,
			RetirementAge:  65,
			LifeExpectancy: 41,
			FilingStatus:   domain.FilingSingle,
		},
	}

	result, err := newTestEngine().Run(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, result.Years, 2)

	y := result.Years[0]
	// Twelve 1000 payments plus the annual 120 extra.
	assert.True(t, y.Expenses.Equal(decimal.NewFromInt(12120)),
		"expected mortgage charge 12120, got %s", y.Expenses)
	assert.True(t, y.Balances[1].LoanBalance.Equal(decimal.NewFromInt(107880)),
		"expected loan balance 107880, got %s", y.Balances[1].LoanBalance)

	// 130000 starting net worth + 60000 income - 9806 taxes.
	expected := decimal.NewFromInt(130000).Add(y.GrossIncome).Sub(y.Taxes.Total())
	assert.True(t, y.NetWorth.Equal(expected),
		"expected net worth %s, got %s", expected, y.NetWorth)
}

func TestRunVestedEmployerMatchInNetWorth(t *testing.T) {
	plan := &domain.Plan{
		Accounts: []domain.Account{
			{
				ID: "401k", Name: "401k", Kind: domain.AccountInvested,
				TaxTreatment:    domain.TreatmentTraditional401,
				Balance:         decimal.NewFromInt(10000),
				EmployerBalance: decimal.NewFromInt(20000),
				VestedPerYear:   decimal.NewFromFloat(0.25),
				TenureYears:     2,
			},
		},
		Assumptions: domain.Assumptions{
			BirthYear:      1980,
			StartYear:      2025,
			RetirementAge:  65,
			LifeExpectancy: 46,
			FilingStatus:   domain.FilingSingle,
		},
	}

	result, err := newTestEngine().Run(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, result.Years, 2)

	// Two years of tenure at 25%/year vests half the match.
	y := result.Years[0]
	assert.True(t, y.Balances[0].Vested.Equal(decimal.NewFromInt(10000)))
	assert.True(t, y.NetWorth.Equal(decimal.NewFromInt(20000)),
		"expected net worth 20000 (10000 own + 10000 vested), got %s", y.NetWorth)
}

func TestRunEmployerMatchSettledAtRetirement(t *testing.T) {
	// At retirement the vested half of the match merges into the withdrawable
	// balance and the unvested half is forfeited.
	plan := &domain.Plan{
		Accounts: []domain.Account{
			{
				ID: "401k", Name: "401k", Kind: domain.AccountInvested,
				TaxTreatment:    domain.TreatmentTraditional401,
				Balance:         decimal.NewFromInt(10000),
				EmployerBalance: decimal.NewFromInt(50000),
				VestedPerYear:   decimal.NewFromFloat(0.5),
				TenureYears:     1,
			},
		},
		Expenses: []domain.Expense{
			{ID: "living", Name: "Living", Kind: domain.ExpenseOther, Amount: decimal.NewFromInt(5000), Frequency: domain.Annually},
		},
		Assumptions: domain.Assumptions{
			BirthYear:          1960,
			StartYear:          2025,
			RetirementAge:      65,
			LifeExpectancy:     68,
			WithdrawalStrategy: domain.StrategyPercentage,
			WithdrawalRate:     decimal.NewFromFloat(0.04),
			FilingStatus:       domain.FilingSingle,
		},
	}

	result, err := newTestEngine().Run(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, result.Years, 4)

	// 35000 at retirement (10000 own + 25000 vested), minus the 4% draw of
	// 1400 and the 3740 drained to cover spending and taxes.
	assert.True(t, result.Years[0].NetWorth.Equal(decimal.NewFromInt(29860)),
		"expected net worth 29860, got %s", result.Years[0].NetWorth)

	// The merged match funds spending well past the employee-only balance.
	withdrawn := decimal.Zero
	for _, y := range result.Years {
		withdrawn = withdrawn.Add(y.Withdrawals)
	}
	assert.True(t, withdrawn.GreaterThan(decimal.NewFromInt(10000)))
	assert.False(t, result.Years[len(result.Years)-1].Depleted)
}

func TestRunTaxCreditsReduceFederalTax(t *testing.T) {
	makePlan := func(credits decimal.Decimal) *domain.Plan {
		return &domain.Plan{
			Accounts: []domain.Account{
				{ID: "chk", Name: "Checking", Kind: domain.AccountCash, Balance: decimal.NewFromInt(5000)},
			},
			Incomes: []domain.Income{
				{ID: "job", Name: "Job", Kind: domain.IncomeWork, Amount: decimal.NewFromInt(60000), Frequency: domain.Annually, Earned: true},
			},
			Expenses: []domain.Expense{
				{ID: "food", Name: "Food", Kind: domain.ExpenseFood, Amount: decimal.NewFromInt(1000), Frequency: domain.Monthly},
			},
			Assumptions: domain.Assumptions{
				BirthYear:      1985,
				StartYear:      2025,
				RetirementAge:  65,
				LifeExpectancy: 41,
				FilingStatus:   domain.FilingSingle,
				TaxCredits:     credits,
			},
		}
	}

	base, err := newTestEngine().Run(context.Background(), makePlan(decimal.Zero))
	require.NoError(t, err)
	credited, err := newTestEngine().Run(context.Background(), makePlan(decimal.NewFromInt(1500)))
	require.NoError(t, err)
	flooded, err := newTestEngine().Run(context.Background(), makePlan(decimal.NewFromInt(99999)))
	require.NoError(t, err)

	baseFed := base.Years[0].Taxes.Federal
	assert.True(t, baseFed.Sub(credited.Years[0].Taxes.Federal).Equal(decimal.NewFromInt(1500)),
		"credits must come straight off the federal liability")
	assert.True(t, flooded.Years[0].Taxes.Federal.IsZero(),
		"credits floor the liability at zero, never refund")
	assert.True(t, flooded.Years[0].Taxes.FICA.Equal(base.Years[0].Taxes.FICA),
		"credits never touch payroll tax")
}

func TestRunMissingStateTable(t *testing.T) {
	plan := &domain.Plan{
		Assumptions: domain.Assumptions{
			BirthYear:      1980,
			StartYear:      2025,
			RetirementAge:  65,
			LifeExpectancy: 90,
			FilingStatus:   domain.FilingSingle,
			State:          "atlantis",
		},
	}

	_, err := newTestEngine().Run(context.Background(), plan)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "atlantis")
}
