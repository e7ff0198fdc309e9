// Package taxtable stores per-jurisdiction tax parameter tables, keyed by
// (year, filing status, jurisdiction). The simulation engine treats a store
// as a read-only lookup; writes happen at load or seeding time.
package taxtable

import (
	"github.com/shopspring/decimal"

	"github.com/finplan/household-planner/internal/domain"
)

func bracket(threshold int64, rate float64) domain.Bracket {
	return domain.Bracket{Threshold: decimal.NewFromInt(threshold), Rate: decimal.NewFromFloat(rate)}
}

// Defaults2025 returns the 2025 federal tables for every filing status.
// State tables are user-supplied; only the federal schedule ships built in.
func Defaults2025() []domain.TaxParameters {
	ssWageBase := decimal.NewFromInt(176100)
	ssRate := decimal.NewFromFloat(0.062)
	medicareRate := decimal.NewFromFloat(0.0145)

	return []domain.TaxParameters{
		{
			Year:         2025,
			FilingStatus: domain.FilingSingle,
			Jurisdiction: domain.JurisdictionFederal,
			Brackets: []domain.Bracket{
				bracket(0, 0.10),
				bracket(11925, 0.12),
				bracket(48475, 0.22),
				bracket(103350, 0.24),
				bracket(197300, 0.32),
				bracket(250525, 0.35),
				bracket(626350, 0.37),
			},
			StandardDeduction: decimal.NewFromInt(15000),
			SSWageBase:        ssWageBase,
			SSRate:            ssRate,
			MedicareRate:      medicareRate,
		},
		{
			Year:         2025,
			FilingStatus: domain.FilingJoint,
			Jurisdiction: domain.JurisdictionFederal,
			Brackets: []domain.Bracket{
				bracket(0, 0.10),
				bracket(23850, 0.12),
				bracket(96950, 0.22),
				bracket(206700, 0.24),
				bracket(394600, 0.32),
				bracket(501050, 0.35),
				bracket(751600, 0.37),
			},
			StandardDeduction: decimal.NewFromInt(30000),
			SSWageBase:        ssWageBase,
			SSRate:            ssRate,
			MedicareRate:      medicareRate,
		},
		{
			Year:         2025,
			FilingStatus: domain.FilingHeadOfH,
			Jurisdiction: domain.JurisdictionFederal,
			Brackets: []domain.Bracket{
				bracket(0, 0.10),
				bracket(17000, 0.12),
				bracket(64850, 0.22),
				bracket(103350, 0.24),
				bracket(197300, 0.32),
				bracket(250525, 0.35),
				bracket(626350, 0.37),
			},
			StandardDeduction: decimal.NewFromInt(22500),
			SSWageBase:        ssWageBase,
			SSRate:            ssRate,
			MedicareRate:      medicareRate,
		},
	}
}
