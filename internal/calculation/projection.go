package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/finplan/household-planner/internal/domain"
)

// accountState is the orchestrator's per-account working state. The plan's
// accounts are never mutated; each run works on copies.
type accountState struct {
	acct              domain.Account
	linked            *domain.Expense
	originalPrincipal decimal.Decimal
	monthlyPayment    decimal.Decimal
	frozen            bool

	// Current-year cash flows, reset after growth is applied.
	netFlow   decimal.Decimal
	matchFlow decimal.Decimal
}

func (st *accountState) available() decimal.Decimal {
	avail := st.acct.Balance.Add(st.netFlow)
	if avail.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	return avail
}

// projector steps one household through its projection horizon. It is
// built fresh for every run so repeated runs of the same plan are
// byte-identical.
type projector struct {
	plan    *domain.Plan
	federal *domain.TaxParameters
	state   *domain.TaxParameters
	tc      *TaxCalculator
	log     Logger

	strategy WithdrawalStrategy
	adjuster SpendingAdjuster

	accounts  []*accountState
	incomes   []domain.Income
	byID      map[string]*accountState
	byExpense map[string]*accountState
	order     []*accountState

	workEarnings     []domain.EarningsRecord
	yearsWithdrawing int
	retired          bool
	setupWarnings    []string
}

func (e *Engine) generateProjection(plan *domain.Plan, federal, state *domain.TaxParameters) []domain.SimulationYearResult {
	p := newProjector(plan, federal, state, e.TaxCalc, e.Logger)

	n := plan.Assumptions.ProjectionYears()
	years := make([]domain.SimulationYearResult, 0, n)
	for i := 0; i < n; i++ {
		years = append(years, p.step(i))
	}
	return years
}

func newProjector(plan *domain.Plan, federal, state *domain.TaxParameters, tc *TaxCalculator, log Logger) *projector {
	p := &projector{
		plan:      plan,
		federal:   federal,
		state:     state,
		tc:        tc,
		log:       log,
		strategy:  NewWithdrawalStrategy(&plan.Assumptions),
		incomes:   append([]domain.Income(nil), plan.Incomes...),
		byID:      make(map[string]*accountState, len(plan.Accounts)),
		byExpense: make(map[string]*accountState),
	}
	p.adjuster, _ = p.strategy.(SpendingAdjuster)

	for i := range plan.Accounts {
		st := &accountState{acct: plan.Accounts[i]}
		if st.acct.Kind == domain.AccountDebt {
			st.originalPrincipal = st.acct.Balance
		}
		if st.acct.RequiresLinkedExpense() {
			exp := plan.ExpenseByID(st.acct.LinkedExpenseID)
			if exp == nil || !exp.IsAmortizing() {
				st.frozen = true
				p.setupWarnings = append(p.setupWarnings,
					fmt.Sprintf("account %q has no amortizing linked expense; balance frozen", st.acct.Name))
			} else {
				st.linked = exp
				p.byExpense[exp.ID] = st
				if st.acct.Kind == domain.AccountProperty {
					st.monthlyPayment = MonthlyPayment(st.acct.LoanAmount, exp.InterestRate, exp.TermYears)
				}
			}
		}
		p.accounts = append(p.accounts, st)
		p.byID[st.acct.ID] = st
	}

	// Withdrawal order: the configured ids first, then any remaining
	// invested accounts in plan order.
	seen := make(map[string]bool)
	for _, id := range plan.Assumptions.WithdrawalOrder {
		if st, ok := p.byID[id]; ok && !seen[id] {
			p.order = append(p.order, st)
			seen[id] = true
		}
	}
	for _, st := range p.accounts {
		if st.acct.IsInvestable() && !seen[st.acct.ID] {
			p.order = append(p.order, st)
		}
	}

	return p
}

// step advances the household one calendar year and emits its snapshot.
func (p *projector) step(yearIndex int) domain.SimulationYearResult {
	a := &p.plan.Assumptions
	calYear := a.StartYear + yearIndex
	age := calYear - a.BirthYear
	phase := domain.PhaseAccumulating
	if calYear >= a.RetirementYear() {
		phase = domain.PhaseWithdrawing
	}
	if phase == domain.PhaseWithdrawing && !p.retired {
		p.retired = true
		p.separateEmployment()
	}

	exp := decimal.NewFromInt(int64(yearIndex))
	inflFactor := one.Add(a.Inflation).Pow(exp)
	healthFactor := one.Add(a.HealthcareInflation).Pow(exp)
	salaryFactor := one.Add(a.IncomeGrowth).Pow(exp)

	warnings := append([]string(nil), p.setupWarnings...)

	inc := p.computeIncomes(calYear, age, phase, inflFactor, salaryFactor, &warnings)
	ex := p.computeExpenses(calYear, inflFactor, healthFactor)

	// Payroll taxes and income tax on ordinary income. Withdrawal and
	// conversion tax is layered on marginally below.
	preTaxTotal := inc.pretax.Add(inc.insurance).Add(ex.preTaxDeductible)
	deduction := p.federal.StandardDeduction
	itemized := false
	if ex.itemizedDeductible.GreaterThan(deduction) {
		deduction = ex.itemizedDeductible
		itemized = true
	}
	taxes := domain.TaxDetail{
		FICA:             p.tc.CalculateFICA(inc.earned, inc.insurance, p.federal),
		Federal:          p.tc.CalculateTax(inc.gross, preTaxTotal, deduction, p.federal),
		DeductionApplied: deduction,
		Itemized:         itemized,
	}
	taxes.Federal = ApplyCredits(taxes.Federal, a.TaxCredits)
	if p.state != nil {
		taxes.State = p.tc.CalculateTax(inc.gross, preTaxTotal, p.state.StandardDeduction, p.state)
	}
	taxableBase := inc.gross.Sub(preTaxTotal).Sub(deduction)
	if taxableBase.LessThan(decimal.Zero) {
		taxableBase = decimal.Zero
	}

	res := domain.SimulationYearResult{
		YearIndex:    yearIndex,
		CalendarYear: calYear,
		Age:          age,
		Phase:        phase,
		GrossIncome:  inc.gross,
		EarnedIncome: inc.earned,
	}

	if phase == domain.PhaseWithdrawing {
		p.withdrawingYear(&res, &taxes, inc, ex, taxableBase)
	} else {
		p.accumulatingYear(&res, &taxes, inc, ex, &warnings)
	}

	// Growth transitions after the year's flows are known.
	for _, st := range p.accounts {
		p.growAccount(st, phase)
	}

	// Social Security: record this year's covered earnings, fix any benefit
	// whose claiming age was reached, escalate already-fixed benefits.
	if inc.workGross.GreaterThan(decimal.Zero) {
		p.workEarnings = append(p.workEarnings, domain.EarningsRecord{Year: calYear, Amount: inc.workGross})
	}
	p.updateBenefits(calYear, age)

	res.Taxes = taxes
	res.NetSavings = inc.gross.Sub(res.Expenses).Sub(taxes.Total())
	res.Balances = p.balances()
	res.NetWorth = res.ComputeNetWorth()
	if phase == domain.PhaseWithdrawing && res.PortfolioBalance().IsZero() {
		res.Depleted = true
	}
	res.Warnings = warnings

	p.log.Debugf("year %d age %d phase %s net worth %s", calYear, age, phase, res.NetWorth.StringFixed(2))
	return res
}

// yearIncomes aggregates one year's income side.
type yearIncomes struct {
	gross     decimal.Decimal
	earned    decimal.Decimal
	workGross decimal.Decimal
	pretax    decimal.Decimal
	roth      decimal.Decimal
	insurance decimal.Decimal
	match     decimal.Decimal
}

func (p *projector) computeIncomes(calYear, age int, phase domain.Phase, inflFactor, salaryFactor decimal.Decimal, warnings *[]string) yearIncomes {
	a := &p.plan.Assumptions
	var out yearIncomes

	for i := range p.incomes {
		inc := &p.incomes[i]
		frac := inc.ActiveFraction(calYear, a.StartYear)
		if frac.IsZero() {
			continue
		}

		switch inc.Kind {
		case domain.IncomeWork:
			if phase == domain.PhaseWithdrawing {
				continue
			}
			amt := inc.AnnualAmount().Mul(salaryFactor).Mul(frac)
			out.gross = out.gross.Add(amt)
			out.earned = out.earned.Add(amt)
			out.workGross = out.workGross.Add(amt)
			out.insurance = out.insurance.Add(inc.InsurancePremium.Mul(frac))

			pre, roth := p.contributionAmounts(inc, salaryFactor)
			pre = pre.Mul(frac)
			roth = roth.Mul(frac)
			match := inc.EmployerMatch.Mul(salaryFactor).Mul(frac)
			dest := p.contributionAccount(inc.MatchAccountID)
			if dest == nil {
				if pre.Add(roth).Add(match).GreaterThan(decimal.Zero) {
					*warnings = append(*warnings,
						fmt.Sprintf("income %q has contributions but no eligible destination account", inc.Name))
				}
				continue
			}
			dest.netFlow = dest.netFlow.Add(pre).Add(roth)
			dest.matchFlow = dest.matchFlow.Add(match)
			out.pretax = out.pretax.Add(pre)
			out.roth = out.roth.Add(roth)
			out.match = out.match.Add(match)

		case domain.IncomeCurrentSocialSecurity:
			amt := inc.AnnualAmount().Mul(inflFactor).Mul(frac)
			out.gross = out.gross.Add(amt)

		case domain.IncomeFutureSocialSecurity:
			if inc.PIA.Fixed && calYear > inc.PIA.FixedYear {
				out.gross = out.gross.Add(inc.PIA.Monthly.Mul(twelve))
			}

		case domain.IncomePassive:
			amt := inc.AnnualAmount().Mul(inflFactor).Mul(frac)
			out.gross = out.gross.Add(amt)
			if inc.Earned {
				out.earned = out.earned.Add(amt)
			}

		case domain.IncomeWindfall:
			amt := inc.AnnualAmount().Mul(frac)
			out.gross = out.gross.Add(amt)
		}
	}

	return out
}

// contributionAmounts resolves an earner's pretax and Roth payroll
// contributions for the year according to the configured strategy.
func (p *projector) contributionAmounts(inc *domain.Income, salaryFactor decimal.Decimal) (pre, roth decimal.Decimal) {
	pre, roth = inc.PreTaxContribution, inc.RothContribution
	switch inc.ContributionStrategy {
	case domain.ContributionGrowWithSalary:
		pre = pre.Mul(salaryFactor)
		roth = roth.Mul(salaryFactor)
	case domain.ContributionTrackMax:
		max := p.plan.Assumptions.ContributionAnnualMax
		if max.GreaterThan(decimal.Zero) {
			total := pre.Add(roth)
			if total.GreaterThan(decimal.Zero) {
				pre = max.Mul(pre).Div(total)
				roth = max.Mul(roth).Div(total)
			} else {
				pre = max
			}
		}
	}
	return pre, roth
}

// contributionAccount resolves where payroll contributions land: the named
// account when present, otherwise the first contribution-eligible invested
// account, otherwise the first invested account.
func (p *projector) contributionAccount(matchAccountID string) *accountState {
	if st, ok := p.byID[matchAccountID]; ok && st.acct.IsInvestable() {
		return st
	}
	for _, st := range p.accounts {
		if st.acct.IsInvestable() && st.acct.ContributionEligible {
			return st
		}
	}
	for _, st := range p.accounts {
		if st.acct.IsInvestable() {
			return st
		}
	}
	return nil
}

// yearExpenses aggregates one year's expense side.
type yearExpenses struct {
	total              decimal.Decimal
	discretionary      decimal.Decimal
	preTaxDeductible   decimal.Decimal
	itemizedDeductible decimal.Decimal
}

func (p *projector) computeExpenses(calYear int, inflFactor, healthFactor decimal.Decimal) yearExpenses {
	var out yearExpenses

	for i := range p.plan.Expenses {
		e := &p.plan.Expenses[i]
		frac := e.ActiveFraction(calYear)
		if frac.IsZero() {
			continue
		}

		var amt decimal.Decimal
		switch e.Kind {
		case domain.ExpenseMortgage:
			st := p.byExpense[e.ID]
			if st != nil {
				// Principal and interest from the loan terms; carrying
				// costs track the current property value and survive
				// payoff. PMI drops with the loan balance.
				if st.acct.LoanBalance.GreaterThan(decimal.Zero) {
					amt = st.monthlyPayment.Mul(twelve).Add(e.ExtraPrincipal)
				}
				amt = amt.Add(MortgageCarryingCost(e, st.acct.Balance, st.acct.LoanBalance)).Mul(frac)
			} else {
				amt = e.AnnualAmount().Mul(inflFactor).Mul(frac)
			}

		case domain.ExpenseLoan:
			st := p.byExpense[e.ID]
			if st != nil && st.acct.Balance.IsZero() {
				continue // paid off
			}
			amt = e.AnnualAmount().Add(e.ExtraPrincipal).Mul(frac)

		case domain.ExpenseHealthcare:
			amt = e.AnnualAmount().Mul(healthFactor).Mul(frac)

		default:
			amt = e.AnnualAmount().Mul(inflFactor).Mul(frac)
		}

		out.total = out.total.Add(amt)
		if e.Discretionary {
			out.discretionary = out.discretionary.Add(amt)
		}
		switch e.Deductible {
		case domain.DeductYes:
			out.preTaxDeductible = out.preTaxDeductible.Add(amt)
		case domain.DeductItemized:
			out.itemizedDeductible = out.itemizedDeductible.Add(amt)
		}
	}

	return out
}

// accumulatingYear routes a working year's surplus through the priority
// waterfall, or drains savings to cover a deficit.
func (p *projector) accumulatingYear(res *domain.SimulationYearResult, taxes *domain.TaxDetail, inc yearIncomes, ex yearExpenses, warnings *[]string) {
	// Payroll insurance premiums are money spent, not just a deduction.
	res.Expenses = ex.total.Add(inc.insurance)
	res.Contributions = inc.pretax.Add(inc.roth).Add(inc.match)

	surplus := inc.gross.Sub(res.Expenses).Sub(taxes.Total()).Sub(inc.pretax).Sub(inc.roth)
	if surplus.GreaterThanOrEqual(decimal.Zero) {
		allocated := p.allocateSurplus(surplus, ex.total)
		res.Contributions = res.Contributions.Add(allocated)
		leftover := surplus.Sub(allocated)
		if leftover.GreaterThan(decimal.Zero) {
			if st := p.depositAccount(); st != nil {
				st.netFlow = st.netFlow.Add(leftover)
				res.Contributions = res.Contributions.Add(leftover)
			} else {
				*warnings = append(*warnings, "surplus has no account to land in")
			}
		}
		return
	}

	deficit := surplus.Neg()
	taken := p.drainCash(deficit)
	deficit = deficit.Sub(taken)
	res.Withdrawals = taken
	if deficit.GreaterThan(decimal.Zero) {
		invTaken, _ := p.drainInvested(deficit)
		res.Withdrawals = res.Withdrawals.Add(invTaken)
		deficit = deficit.Sub(invTaken)
	}
	if deficit.GreaterThan(decimal.Zero) {
		res.Shortfall = deficit
	}
}

// allocateSurplus runs the waterfall once per month, posting each month's
// flows before the next pass so balance-targeted buckets see what earlier
// months already put in and stop at their target. Returns the total
// allocated for the year.
func (p *projector) allocateSurplus(surplus, totalExpenses decimal.Decimal) decimal.Decimal {
	buckets := p.plan.Assumptions.Buckets
	if len(buckets) == 0 || surplus.IsZero() {
		return decimal.Zero
	}

	balanceOf := func(accountID string) decimal.Decimal {
		if st, ok := p.byID[accountID]; ok {
			return st.available()
		}
		return decimal.Zero
	}

	monthly := surplus.Div(twelve)
	monthlyExpenses := totalExpenses.Div(twelve)
	total := decimal.Zero
	for m := 0; m < 12; m++ {
		allocs := AllocateSurplus(monthly, buckets, twelve, monthlyExpenses, balanceOf)
		for _, alloc := range allocs {
			if alloc.Amount.IsZero() {
				continue
			}
			if st, ok := p.byID[alloc.Bucket.AccountID]; ok {
				st.netFlow = st.netFlow.Add(alloc.Amount)
				total = total.Add(alloc.Amount)
			}
		}
	}
	return total
}

// withdrawingYear asks the strategy for the year's draw, applies any
// guardrail spending cut, distributes the draw across the withdrawal order
// and reconciles the remaining cash flow.
func (p *projector) withdrawingYear(res *domain.SimulationYearResult, taxes *domain.TaxDetail, inc yearIncomes, ex yearExpenses, taxableBase decimal.Decimal) {
	portfolio := p.portfolioBalance()
	want := p.strategy.CalculateWithdrawal(portfolio, p.yearsWithdrawing)
	p.yearsWithdrawing++

	// Guardrail cuts trim discretionary spending only.
	if p.adjuster != nil {
		factor := p.adjuster.DiscretionaryFactor()
		if factor.LessThan(one) {
			ex.total = ex.total.Sub(ex.discretionary.Mul(one.Sub(factor)))
		}
	}
	res.Expenses = ex.total

	actual := decimal.Min(want, portfolio)
	if want.GreaterThan(portfolio) {
		res.Shortfall = want.Sub(portfolio)
	}
	_, taxable := p.drainInvested(actual)
	res.Withdrawals = actual

	taxes.Federal = taxes.Federal.Add(MarginalTax(taxableBase, taxable, p.federal.Brackets))
	if p.state != nil {
		taxes.State = taxes.State.Add(MarginalTax(taxableBase, taxable, p.state.Brackets))
	}

	if p.plan.Assumptions.AutoRothConversion {
		converted, convTax := p.rothConversion(taxableBase.Add(taxable))
		res.RothConversion = converted
		taxes.Federal = taxes.Federal.Add(convTax)
	}

	// Reconcile: leftover income plus the draw against spending and taxes.
	net := inc.gross.Add(actual).Sub(ex.total).Sub(taxes.Total())
	if net.GreaterThanOrEqual(decimal.Zero) {
		if st := p.depositAccount(); st != nil && net.GreaterThan(decimal.Zero) {
			st.netFlow = st.netFlow.Add(net)
		}
		return
	}

	gap := net.Neg()
	taken := p.drainCash(gap)
	gap = gap.Sub(taken)
	res.Withdrawals = res.Withdrawals.Add(taken)
	if gap.GreaterThan(decimal.Zero) {
		invTaken, invTaxable := p.drainInvested(gap)
		res.Withdrawals = res.Withdrawals.Add(invTaken)
		gap = gap.Sub(invTaken)
		extra := MarginalTax(taxableBase.Add(taxable), invTaxable, p.federal.Brackets)
		taxes.Federal = taxes.Federal.Add(extra)
	}
	if gap.GreaterThan(decimal.Zero) {
		res.Shortfall = res.Shortfall.Add(gap)
	}
}

// rothConversion fills the remaining headroom in the current federal
// bracket by moving traditional balances to the first Roth account.
// Returns the converted amount and the marginal federal tax on it.
func (p *projector) rothConversion(taxableBase decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	headroom := bracketHeadroom(taxableBase, p.federal.Brackets)
	if headroom.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero
	}

	var roth *accountState
	for _, st := range p.accounts {
		if st.acct.Kind == domain.AccountInvested &&
			(st.acct.TaxTreatment == domain.TreatmentRoth401 || st.acct.TaxTreatment == domain.TreatmentRothIRA) {
			roth = st
			break
		}
	}
	if roth == nil {
		return decimal.Zero, decimal.Zero
	}

	converted := decimal.Zero
	for _, st := range p.order {
		if headroom.LessThanOrEqual(decimal.Zero) {
			break
		}
		if !isTraditional(st.acct.TaxTreatment) {
			continue
		}
		c := decimal.Min(headroom, st.available())
		if c.LessThanOrEqual(decimal.Zero) {
			continue
		}
		st.netFlow = st.netFlow.Sub(c)
		roth.netFlow = roth.netFlow.Add(c)
		converted = converted.Add(c)
		headroom = headroom.Sub(c)
	}
	if converted.IsZero() {
		return decimal.Zero, decimal.Zero
	}
	return converted, MarginalTax(taxableBase, converted, p.federal.Brackets)
}

// bracketHeadroom returns how much more taxable income fits in the bracket
// containing base. Income already in the top bracket has no headroom.
func bracketHeadroom(base decimal.Decimal, brackets []domain.Bracket) decimal.Decimal {
	for i := range brackets {
		if i == len(brackets)-1 {
			return decimal.Zero
		}
		next := brackets[i+1].Threshold
		if base.LessThan(next) {
			return next.Sub(base)
		}
	}
	return decimal.Zero
}

func isTraditional(t domain.TaxTreatment) bool {
	return t == domain.TreatmentTraditional401 || t == domain.TreatmentTraditionalIRA
}

// drainCash takes up to amount from cash accounts in plan order.
func (p *projector) drainCash(amount decimal.Decimal) decimal.Decimal {
	taken := decimal.Zero
	for _, st := range p.accounts {
		if amount.LessThanOrEqual(decimal.Zero) {
			break
		}
		if st.acct.Kind != domain.AccountCash {
			continue
		}
		take := decimal.Min(amount, st.available())
		if take.LessThanOrEqual(decimal.Zero) {
			continue
		}
		st.netFlow = st.netFlow.Sub(take)
		taken = taken.Add(take)
		amount = amount.Sub(take)
	}
	return taken
}

// drainInvested takes up to amount from invested accounts in withdrawal
// order, returning the total taken and its taxable portion.
func (p *projector) drainInvested(amount decimal.Decimal) (taken, taxable decimal.Decimal) {
	for _, st := range p.order {
		if amount.LessThanOrEqual(decimal.Zero) {
			break
		}
		take := decimal.Min(amount, st.available())
		if take.LessThanOrEqual(decimal.Zero) {
			continue
		}
		st.netFlow = st.netFlow.Sub(take)
		taken = taken.Add(take)
		amount = amount.Sub(take)
		if isTraditional(st.acct.TaxTreatment) {
			taxable = taxable.Add(take)
		}
	}
	return taken, taxable
}

// depositAccount is where unallocated surplus lands: the first cash
// account, falling back to the first invested account.
func (p *projector) depositAccount() *accountState {
	for _, st := range p.accounts {
		if st.acct.Kind == domain.AccountCash {
			return st
		}
	}
	for _, st := range p.accounts {
		if st.acct.IsInvestable() {
			return st
		}
	}
	return nil
}

// separateEmployment settles employer-match balances when the household
// retires: the vested portion merges into the employee balance and becomes
// withdrawable, the unvested remainder is forfeited.
func (p *projector) separateEmployment() {
	for _, st := range p.accounts {
		a := &st.acct
		if a.Kind != domain.AccountInvested || !a.EmployerBalance.GreaterThan(decimal.Zero) {
			continue
		}
		vested := a.VestedAmount()
		forfeited := a.EmployerBalance.Sub(vested)
		a.Balance = a.Balance.Add(vested)
		a.EmployerBalance = decimal.Zero
		if forfeited.GreaterThan(decimal.Zero) {
			p.log.Infof("account %q: %s of unvested employer match forfeited at retirement",
				a.Name, forfeited.StringFixed(2))
		}
	}
}

func (p *projector) portfolioBalance() decimal.Decimal {
	total := decimal.Zero
	for _, st := range p.accounts {
		if st.acct.IsInvestable() {
			total = total.Add(st.available())
		}
	}
	return total
}

// growAccount applies the per-variant annual transition and resets the
// year's flows.
func (p *projector) growAccount(st *accountState, phase domain.Phase) {
	a := &st.acct
	switch a.Kind {
	case domain.AccountCash:
		a.Balance = GrowCash(a.Balance, a.APR, st.netFlow)

	case domain.AccountInvested:
		eff := EffectiveReturn(a, p.plan.Assumptions.ReturnRate)
		a.Balance = GrowInvested(a.Balance, eff, st.netFlow)
		if a.EmployerBalance.GreaterThan(decimal.Zero) || st.matchFlow.GreaterThan(decimal.Zero) {
			a.EmployerBalance = GrowInvested(a.EmployerBalance, eff, st.matchFlow)
		}
		if phase == domain.PhaseAccumulating && a.ContributionEligible {
			a.TenureYears++
		}

	case domain.AccountProperty:
		if st.linked != nil && a.LoanBalance.GreaterThan(decimal.Zero) {
			newBal, _, _ := AmortizeLoanYear(a.LoanBalance, st.monthlyPayment, st.linked.InterestRate, st.linked.ExtraPrincipal)
			a.LoanBalance = newBal
		}
		a.Balance = AppreciateProperty(a.Balance, p.plan.Assumptions.HousingAppreciation)

	case domain.AccountDebt:
		if st.linked != nil && a.Balance.GreaterThan(decimal.Zero) {
			payment := st.linked.AnnualAmount().Add(st.linked.ExtraPrincipal)
			a.Balance, _ = AmortizeDebtYear(a.Balance, st.originalPrincipal, payment, st.linked.InterestRate, st.linked.InterestType)
		}
	}

	st.netFlow = decimal.Zero
	st.matchFlow = decimal.Zero
}

// updateBenefits fixes pending Social Security benefits whose claiming age
// was reached this year and applies COLA to already-fixed ones.
func (p *projector) updateBenefits(calYear, age int) {
	a := &p.plan.Assumptions
	for i := range p.incomes {
		inc := &p.incomes[i]
		if inc.Kind != domain.IncomeFutureSocialSecurity {
			continue
		}
		if inc.PIA.Fixed {
			if calYear > inc.PIA.FixedYear {
				inc.PIA.Monthly = ApplyCOLA(inc.PIA.Monthly, a.Inflation)
			}
			continue
		}
		if age < inc.ClaimingAge {
			continue
		}
		ssc := NewSocialSecurityCalculator(a.BirthYear)
		history := make([]domain.EarningsRecord, 0, len(inc.EarningsHistory)+len(p.workEarnings))
		history = append(history, inc.EarningsHistory...)
		history = append(history, p.workEarnings...)
		monthly := ssc.MonthlyBenefitAtClaim(history, inc.ClaimingAge)
		inc.PIA.Fix(monthly, calYear)
		p.log.Infof("benefit %q fixed at %s/month in %d", inc.Name, monthly.StringFixed(2), calYear)
	}
}

// balances snapshots every account in plan order.
func (p *projector) balances() []domain.AccountBalance {
	out := make([]domain.AccountBalance, 0, len(p.accounts))
	for _, st := range p.accounts {
		b := domain.AccountBalance{
			AccountID: st.acct.ID,
			Name:      st.acct.Name,
			Kind:      st.acct.Kind,
			Balance:   st.acct.Balance,
			Frozen:    st.frozen,
		}
		if st.acct.Kind == domain.AccountProperty {
			b.LoanBalance = st.acct.LoanBalance
		}
		if st.acct.Kind == domain.AccountInvested {
			b.Vested = st.acct.VestedAmount()
		}
		out = append(out, b)
	}
	return out
}
