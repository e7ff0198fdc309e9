package taxtable

import (
	"fmt"

	"github.com/shopspring/decimal"
)

func parseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("bad decimal %q in tax table: %w", s, err)
	}
	return d, nil
}
