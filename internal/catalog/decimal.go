package catalog

import "github.com/shopspring/decimal"

// decimalOf bridges the float64 multipliers seed data carries (yields,
// quality multipliers) into the exact decimal domain Qty/Money operate in.
// These multipliers are catalog constants, not accumulated sums, so the
// float64-to-decimal conversion happens exactly once per use, not
// repeatedly across turns.
func decimalOf(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
