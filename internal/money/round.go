package money

import "github.com/shopspring/decimal"

// RoundToInt rounds a decimal to the nearest integer, half away from zero
// (never banker's rounding) — the convention used for customer counts
// (total demand, per-segment demand) and similar whole-unit values that
// are not currency.
func RoundToInt(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
