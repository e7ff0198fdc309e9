package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/finplan/household-planner/internal/domain"
)

// InputParser loads household plans from YAML files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a plan from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Plan, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a YAML plan
func (ip *InputParser) Parse(data []byte) (*domain.Plan, error) {
	var plan domain.Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.applyDefaults(&plan)

	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("plan validation failed: %w", err)
	}

	return &plan, nil
}

// SaveToFile writes a plan back out as YAML
func (ip *InputParser) SaveToFile(plan *domain.Plan, filename string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// applyDefaults fills the optional fields a hand-written plan usually omits
func (ip *InputParser) applyDefaults(plan *domain.Plan) {
	plan.EnsureIDs()

	for i := range plan.Incomes {
		if plan.Incomes[i].Frequency == "" {
			plan.Incomes[i].Frequency = domain.Annually
		}
		if plan.Incomes[i].Kind == domain.IncomeWork {
			plan.Incomes[i].Earned = true
		}
	}
	for i := range plan.Expenses {
		if plan.Expenses[i].Frequency == "" {
			plan.Expenses[i].Frequency = domain.Annually
		}
		if plan.Expenses[i].Deductible == "" {
			plan.Expenses[i].Deductible = domain.DeductNo
		}
	}

	a := &plan.Assumptions
	if a.FilingStatus == "" {
		a.FilingStatus = domain.FilingSingle
	}
	if a.WithdrawalStrategy == "" {
		a.WithdrawalStrategy = domain.StrategyFixedReal
	}
	if a.WithdrawalRate.IsZero() {
		a.WithdrawalRate = decimal.NewFromFloat(0.04)
	}
	if a.HealthcareInflation.IsZero() {
		a.HealthcareInflation = a.Inflation
	}
}

// CreateExamplePlan returns a complete household plan suitable as a
// starting template
func (ip *InputParser) CreateExamplePlan() *domain.Plan {
	plan := &domain.Plan{
		Accounts: []domain.Account{
			{
				ID:      "checking",
				Name:    "Checking",
				Kind:    domain.AccountCash,
				Balance: decimal.NewFromInt(25000),
				APR:     decimal.NewFromFloat(0.005),
			},
			{
				ID:                   "401k",
				Name:                 "Employer 401k",
				Kind:                 domain.AccountInvested,
				Balance:              decimal.NewFromInt(180000),
				TaxTreatment:         domain.TreatmentTraditional401,
				ExpenseRatio:         decimal.NewFromFloat(0.004),
				EmployerBalance:      decimal.NewFromInt(20000),
				VestedPerYear:        decimal.NewFromFloat(0.20),
				TenureYears:          3,
				ContributionEligible: true,
			},
			{
				ID:           "roth-ira",
				Name:         "Roth IRA",
				Kind:         domain.AccountInvested,
				Balance:      decimal.NewFromInt(60000),
				TaxTreatment: domain.TreatmentRothIRA,
				ExpenseRatio: decimal.NewFromFloat(0.003),
			},
			{
				ID:              "home",
				Name:            "Home",
				Kind:            domain.AccountProperty,
				Balance:         decimal.NewFromInt(450000),
				Ownership:       domain.OwnershipFinanced,
				LoanAmount:      decimal.NewFromInt(360000),
				LoanBalance:     decimal.NewFromInt(310000),
				LinkedExpenseID: "mortgage",
			},
			{
				ID:              "car-loan",
				Name:            "Car loan",
				Kind:            domain.AccountDebt,
				Balance:         decimal.NewFromInt(18000),
				LinkedExpenseID: "car-payment",
			},
		},
		Incomes: []domain.Income{
			{
				ID:                 "salary",
				Name:               "Salary",
				Kind:               domain.IncomeWork,
				Amount:             decimal.NewFromInt(110000),
				Frequency:          domain.Annually,
				Earned:             true,
				PreTaxContribution: decimal.NewFromInt(12000),
				RothContribution:   decimal.NewFromInt(3000),
				InsurancePremium:   decimal.NewFromInt(4800),
				EmployerMatch:      decimal.NewFromInt(5500),
				MatchAccountID:     "401k",
			},
			{
				ID:          "social-security",
				Name:        "Social Security",
				Kind:        domain.IncomeFutureSocialSecurity,
				ClaimingAge: 67,
			},
		},
		Expenses: []domain.Expense{
			{
				ID:              "mortgage",
				Name:            "Mortgage",
				Kind:            domain.ExpenseMortgage,
				InterestRate:    decimal.NewFromFloat(0.055),
				TermYears:       30,
				PropertyTaxRate: decimal.NewFromFloat(0.011),
				InsuranceRate:   decimal.NewFromFloat(0.0035),
				PMIRate:         decimal.NewFromFloat(0.005),
				LinkedAccountID: "home",
				Deductible:      domain.DeductItemized,
			},
			{
				ID:              "car-payment",
				Name:            "Car payment",
				Kind:            domain.ExpenseLoan,
				Amount:          decimal.NewFromInt(450),
				Frequency:       domain.Monthly,
				InterestRate:    decimal.NewFromFloat(0.065),
				InterestType:    domain.InterestSimple,
				LinkedAccountID: "car-loan",
			},
			{
				ID:        "groceries",
				Name:      "Groceries",
				Kind:      domain.ExpenseFood,
				Amount:    decimal.NewFromInt(900),
				Frequency: domain.Monthly,
			},
			{
				ID:        "health-insurance",
				Name:      "Health insurance",
				Kind:      domain.ExpenseHealthcare,
				Amount:    decimal.NewFromInt(350),
				Frequency: domain.Monthly,
			},
			{
				ID:            "vacation",
				Name:          "Vacation",
				Kind:          domain.ExpenseVacation,
				Amount:        decimal.NewFromInt(5000),
				Frequency:     domain.Annually,
				Discretionary: true,
			},
		},
		Assumptions: domain.Assumptions{
			BirthYear:             1980,
			StartYear:             2025,
			RetirementAge:         65,
			LifeExpectancy:        92,
			Inflation:             decimal.NewFromFloat(0.025),
			HealthcareInflation:   decimal.NewFromFloat(0.05),
			IncomeGrowth:          decimal.NewFromFloat(0.03),
			HousingAppreciation:   decimal.NewFromFloat(0.035),
			ReturnRate:            decimal.NewFromFloat(0.065),
			WithdrawalStrategy:    domain.StrategyGuytonKlinger,
			WithdrawalRate:        decimal.NewFromFloat(0.05),
			GuardrailUpper:        decimal.NewFromFloat(0.06),
			GuardrailLower:        decimal.NewFromFloat(0.04),
			GuardrailAdjustment:   decimal.NewFromFloat(0.10),
			ContributionAnnualMax: decimal.NewFromInt(23500),
			Buckets: []domain.PriorityBucket{
				{Name: "Emergency fund", AccountID: "checking", Cap: domain.CapMultipleOfExpenses, Value: decimal.NewFromInt(6)},
				{Name: "Roth IRA", AccountID: "roth-ira", Cap: domain.CapAnnualMax, Value: decimal.NewFromInt(7000)},
				{Name: "Taxable savings", AccountID: "checking", Cap: domain.CapRemainder},
			},
			WithdrawalOrder: []string{"401k", "roth-ira"},
			FilingStatus:    domain.FilingJoint,
			State:           "",
		},
	}

	ip.applyDefaults(plan)
	return plan
}
