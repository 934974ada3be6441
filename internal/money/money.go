// Package money provides exact fixed-point arithmetic for currency and
// quantities. Nothing in this module ever stores a price, cost, or cash
// balance as a binary float; every amount routes through shopspring/decimal
// so that totals reconcile to the last fractional digit.
package money

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the fixed number of fractional digits money values are
// quantized to. Quantities (ingredient amounts) use QtyScale instead.
const (
	MoneyScale = 4
	QtyScale   = 3
	// DisplayScale is used only when formatting money for a human.
	DisplayScale = 2
)

// Money is an exact fixed-point amount with 4 fractional digits.
type Money struct {
	d decimal.Decimal
}

// Zero is the additive identity.
var Zero = Money{d: decimal.Zero}

// NewMoney builds a Money from a decimal string, rejecting malformed input.
func NewMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	return Money{d: d.Round(MoneyScale)}, nil
}

// MustMoney is NewMoney for literals known at compile time to be valid.
func MustMoney(s string) Money {
	m, err := NewMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromInt builds a Money from a whole-unit integer (e.g. FromInt(10) == 10.0000).
func FromInt(n int64) Money {
	return Money{d: decimal.NewFromInt(n).Round(MoneyScale)}
}

// FromFloat builds a Money from a float64. Reserved for bridging
// human-entered decimals (e.g. parsed config); never used for accumulation.
func FromFloat(f float64) Money {
	return Money{d: decimal.NewFromFloat(f).Round(MoneyScale)}
}

// FromDecimal wraps an already-computed exact decimal as Money, quantizing
// to MoneyScale.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d.Round(MoneyScale)}
}

func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d).Round(MoneyScale)}
}

func (m Money) Sub(other Money) Money {
	return Money{d: m.d.Sub(other.d).Round(MoneyScale)}
}

func (m Money) Neg() Money {
	return Money{d: m.d.Neg()}
}

// Mul multiplies money by a unitless decimal factor (e.g. a VAT rate or a
// cost multiplier).
func (m Money) Mul(factor decimal.Decimal) Money {
	return Money{d: m.d.Mul(factor).Round(MoneyScale)}
}

// MulQty multiplies a unit price by a quantity to produce a money amount.
func (m Money) MulQty(q Qty) Money {
	return Money{d: m.d.Mul(q.d).Round(MoneyScale)}
}

// Div divides money by a unitless decimal divisor. Division by zero panics;
// callers must guard zero divisors explicitly (this is an invariant, not a
// recoverable condition).
func (m Money) Div(divisor decimal.Decimal) Money {
	if divisor.IsZero() {
		panic("money: division by zero")
	}
	return Money{d: m.d.DivRound(divisor, MoneyScale+2).Round(MoneyScale)}
}

// DivInt divides money by a positive integer divisor.
func (m Money) DivInt(n int64) Money {
	if n == 0 {
		panic("money: division by zero")
	}
	return m.Div(decimal.NewFromInt(n))
}

func (m Money) Cmp(other Money) int {
	return m.d.Cmp(other.d)
}

func (m Money) Equal(other Money) bool {
	return m.d.Equal(other.d)
}

func (m Money) GreaterThan(other Money) bool  { return m.d.GreaterThan(other.d) }
func (m Money) LessThan(other Money) bool     { return m.d.LessThan(other.d) }
func (m Money) IsZero() bool                  { return m.d.IsZero() }
func (m Money) IsNegative() bool              { return m.d.IsNegative() }
func (m Money) IsPositive() bool              { return m.d.IsPositive() }
func (m Money) Sign() int                     { return m.d.Sign() }

// Decimal exposes the underlying exact decimal for callers that need to
// build ratios (e.g. food-cost percentage) from two Money values.
func (m Money) Decimal() decimal.Decimal { return m.d }

// Float64 converts to a binary float. Besides host-side display, the
// market allocator's price-factor and satisfaction formulas and
// procurement offer scoring use it.
func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}

// String renders at MoneyScale precision.
func (m Money) String() string {
	return m.d.StringFixed(MoneyScale)
}

// Display renders at 2 fractional digits using banker's rounding, the
// convention for human-facing totals; internal arithmetic never uses this.
func (m Money) Display() string {
	return m.d.RoundBank(DisplayScale).StringFixed(DisplayScale)
}

// MarshalJSON serializes as a decimal string to preserve exactness across
// save/load, per the snapshot contract.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.d.StringFixed(MoneyScale))
}

func (m *Money) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("money: invalid amount %q: %w", s, err)
	}
	m.d = d.Round(MoneyScale)
	return nil
}

// Sum adds a list of Money values; convenience for ledger/P&L aggregation.
func Sum(values ...Money) Money {
	total := Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Min returns the smaller of two Money values.
func Min(a, b Money) Money {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two Money values.
func Max(a, b Money) Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}
