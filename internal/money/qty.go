package money

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Qty is an exact fixed-point quantity with 3 fractional digits, used for
// ingredient amounts, portions, and pack sizes.
type Qty struct {
	d decimal.Decimal
}

var ZeroQty = Qty{d: decimal.Zero}

func NewQty(s string) (Qty, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Qty{}, fmt.Errorf("qty: invalid amount %q: %w", s, err)
	}
	return Qty{d: d.Round(QtyScale)}, nil
}

func MustQty(s string) Qty {
	q, err := NewQty(s)
	if err != nil {
		panic(err)
	}
	return q
}

func QtyFromInt(n int64) Qty {
	return Qty{d: decimal.NewFromInt(n).Round(QtyScale)}
}

// QtyFromDecimal wraps an already-computed exact decimal as a Qty,
// quantizing to QtyScale.
func QtyFromDecimal(d decimal.Decimal) Qty {
	return Qty{d: d.Round(QtyScale)}
}

func QtyFromFloat(f float64) Qty {
	return Qty{d: decimal.NewFromFloat(f).Round(QtyScale)}
}

func (q Qty) Add(other Qty) Qty { return Qty{d: q.d.Add(other.d).Round(QtyScale)} }
func (q Qty) Sub(other Qty) Qty { return Qty{d: q.d.Sub(other.d).Round(QtyScale)} }

// Mul multiplies a quantity by a unitless decimal factor (yields, cost
// multipliers, forecast scaling).
func (q Qty) Mul(factor decimal.Decimal) Qty {
	return Qty{d: q.d.Mul(factor).Round(QtyScale)}
}

func (q Qty) Div(divisor decimal.Decimal) Qty {
	if divisor.IsZero() {
		panic("qty: division by zero")
	}
	return Qty{d: q.d.DivRound(divisor, QtyScale+2).Round(QtyScale)}
}

func (q Qty) Cmp(other Qty) int           { return q.d.Cmp(other.d) }
func (q Qty) Equal(other Qty) bool        { return q.d.Equal(other.d) }
func (q Qty) GreaterThan(other Qty) bool  { return q.d.GreaterThan(other.d) }
func (q Qty) LessThan(other Qty) bool     { return q.d.LessThan(other.d) }
func (q Qty) GreaterOrEqual(other Qty) bool { return !q.d.LessThan(other.d) }
func (q Qty) LessOrEqual(other Qty) bool  { return !q.d.GreaterThan(other.d) }
func (q Qty) IsZero() bool                { return q.d.IsZero() }
func (q Qty) IsNegative() bool            { return q.d.IsNegative() }
func (q Qty) IsPositive() bool            { return q.d.IsPositive() }

func (q Qty) Decimal() decimal.Decimal { return q.d }

func (q Qty) Float64() float64 {
	f, _ := q.d.Float64()
	return f
}

func (q Qty) String() string {
	return q.d.StringFixed(QtyScale)
}

func (q Qty) MarshalJSON() ([]byte, error) {
	return json.Marshal(q.d.StringFixed(QtyScale))
}

func (q *Qty) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("qty: invalid amount %q: %w", s, err)
	}
	q.d = d.Round(QtyScale)
	return nil
}

// MinQty returns the smaller of two quantities.
func MinQty(a, b Qty) Qty {
	if a.LessThan(b) {
		return a
	}
	return b
}

// MaxQty returns the larger of two quantities.
func MaxQty(a, b Qty) Qty {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// CeilToMultiple rounds q up to the next multiple of step (step > 0),
// the pack-size rounding rule used throughout procurement.
func CeilToMultiple(q Qty, step Qty) Qty {
	if step.d.IsZero() || step.d.IsNegative() {
		panic("qty: CeilToMultiple requires a positive step")
	}
	if q.d.LessThanOrEqual(decimal.Zero) {
		return ZeroQty
	}
	units := q.d.Div(step.d).Ceil()
	return Qty{d: units.Mul(step.d).Round(QtyScale)}
}
