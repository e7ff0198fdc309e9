package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Plan bundles the entity lists and assumptions a simulation consumes.
// Tax parameters arrive separately from the tax-table store.
type Plan struct {
	Accounts    []Account   `yaml:"accounts" json:"accounts"`
	Incomes     []Income    `yaml:"incomes" json:"incomes"`
	Expenses    []Expense   `yaml:"expenses" json:"expenses"`
	Assumptions Assumptions `yaml:"assumptions" json:"assumptions"`
}

// EnsureIDs assigns ids to any entity created without one.
func (p *Plan) EnsureIDs() {
	for i := range p.Accounts {
		p.Accounts[i].EnsureID()
	}
	for i := range p.Incomes {
		p.Incomes[i].EnsureID()
	}
	for i := range p.Expenses {
		p.Expenses[i].EnsureID()
	}
}

// ExpenseByID looks up an expense record.
func (p *Plan) ExpenseByID(id string) *Expense {
	for i := range p.Expenses {
		if p.Expenses[i].ID == id {
			return &p.Expenses[i]
		}
	}
	return nil
}

// AccountByID looks up an account record.
func (p *Plan) AccountByID(id string) *Account {
	for i := range p.Accounts {
		if p.Accounts[i].ID == id {
			return &p.Accounts[i]
		}
	}
	return nil
}

// Validate rejects configuration errors before a run starts. Simulation
// outcomes (shortfalls, payoffs) are never validated here; only input that
// makes a run meaningless is fatal.
func (p *Plan) Validate() error {
	a := &p.Assumptions
	if a.BirthYear <= 0 {
		return &ConfigError{Field: "assumptions.birth_year", Reason: "birth year is required"}
	}
	if a.StartYear <= 0 {
		return &ConfigError{Field: "assumptions.start_year", Reason: "start year is required"}
	}
	currentAge := a.StartYear - a.BirthYear
	if currentAge < 0 || currentAge > 120 {
		return &ConfigError{Field: "assumptions.start_year", Reason: fmt.Sprintf("implied current age %d is out of range", currentAge)}
	}
	if a.LifeExpectancy <= currentAge {
		return &ConfigError{Field: "assumptions.life_expectancy", Reason: "life expectancy must exceed current age"}
	}
	if a.RetirementAge <= 0 {
		return &ConfigError{Field: "assumptions.retirement_age", Reason: "retirement age is required"}
	}
	if a.Inflation.LessThan(decimal.NewFromFloat(-0.10)) || a.Inflation.GreaterThan(decimal.NewFromFloat(0.20)) {
		return &ConfigError{Field: "assumptions.inflation", Reason: "inflation must be between -10% and 20%"}
	}
	if a.TaxCredits.IsNegative() {
		return &ConfigError{Field: "assumptions.tax_credits", Reason: "tax credits cannot be negative"}
	}
	switch a.WithdrawalStrategy {
	case StrategyFixedReal, StrategyPercentage, StrategyGuytonKlinger, "":
	default:
		return &ConfigError{Field: "assumptions.withdrawal_strategy", Reason: fmt.Sprintf("unknown strategy %q", a.WithdrawalStrategy)}
	}
	if a.WithdrawalStrategy == StrategyGuytonKlinger {
		if a.GuardrailLower.GreaterThanOrEqual(a.GuardrailUpper) {
			return &ConfigError{Field: "assumptions.guardrail_lower", Reason: "lower guardrail must be below upper guardrail"}
		}
	}

	seenAccounts := make(map[string]bool, len(p.Accounts))
	for i := range p.Accounts {
		acct := &p.Accounts[i]
		if acct.ID == "" {
			return &ConfigError{Field: "accounts", Reason: fmt.Sprintf("account %q has no id", acct.Name)}
		}
		if seenAccounts[acct.ID] {
			return &ConfigError{Field: "accounts", Reason: fmt.Sprintf("duplicate account id %q", acct.ID)}
		}
		seenAccounts[acct.ID] = true
		switch acct.Kind {
		case AccountCash, AccountInvested, AccountProperty, AccountDebt:
		default:
			return &ConfigError{Field: "accounts", Reason: fmt.Sprintf("account %q has unknown kind %q", acct.Name, acct.Kind)}
		}
		// A dangling link is a configuration error; a missing link on an
		// account that requires one is a warning-producing freeze handled
		// at simulation time.
		if acct.LinkedExpenseID != "" {
			exp := p.ExpenseByID(acct.LinkedExpenseID)
			if exp == nil {
				return &ConfigError{Field: "accounts", Reason: fmt.Sprintf("account %q links to missing expense %q", acct.Name, acct.LinkedExpenseID)}
			}
			if !exp.IsAmortizing() {
				return &ConfigError{Field: "accounts", Reason: fmt.Sprintf("account %q links to expense %q which is not a mortgage or loan", acct.Name, acct.LinkedExpenseID)}
			}
		}
	}

	for i := range p.Incomes {
		inc := &p.Incomes[i]
		if inc.Kind == IncomeFutureSocialSecurity {
			if inc.ClaimingAge < 62 || inc.ClaimingAge > 70 {
				return &ConfigError{Field: "incomes", Reason: fmt.Sprintf("income %q claiming age must be between 62 and 70, got %d", inc.Name, inc.ClaimingAge)}
			}
		}
		if inc.MatchAccountID != "" && !seenAccounts[inc.MatchAccountID] {
			return &ConfigError{Field: "incomes", Reason: fmt.Sprintf("income %q employer match targets missing account %q", inc.Name, inc.MatchAccountID)}
		}
	}

	for i := range p.Expenses {
		exp := &p.Expenses[i]
		if exp.LinkedAccountID != "" && !seenAccounts[exp.LinkedAccountID] {
			return &ConfigError{Field: "expenses", Reason: fmt.Sprintf("expense %q links to missing account %q", exp.Name, exp.LinkedAccountID)}
		}
	}

	remainderSeen := false
	for _, b := range a.Buckets {
		switch b.Cap {
		case CapFixed, CapAnnualMax, CapMultipleOfExpenses:
		case CapRemainder:
			remainderSeen = true
		default:
			return &ConfigError{Field: "assumptions.priority_buckets", Reason: fmt.Sprintf("bucket %q has unknown cap %q", b.Name, b.Cap)}
		}
		if remainderSeen && b.Cap != CapRemainder {
			return &ConfigError{Field: "assumptions.priority_buckets", Reason: "remainder bucket must be last"}
		}
		if b.AccountID != "" && !seenAccounts[b.AccountID] {
			return &ConfigError{Field: "assumptions.priority_buckets", Reason: fmt.Sprintf("bucket %q targets missing account %q", b.Name, b.AccountID)}
		}
	}

	for _, id := range a.WithdrawalOrder {
		if !seenAccounts[id] {
			return &ConfigError{Field: "assumptions.withdrawal_order", Reason: fmt.Sprintf("withdrawal order references missing account %q", id)}
		}
	}

	return nil
}
