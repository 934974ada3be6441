package catalog

import (
	"strconv"

	"github.com/foodops/foodops-kernel/internal/money"
)

// Ingredient is immutable seed data: a base ingredient that quality
// variants, recipes, and stock lots all reference by id.
type Ingredient struct {
	ID            string
	Name          string
	Unit          string
	BaseCostHT    money.Money
	VATRate       Rate
	ShelfLifeDays int
	Category      string
	// Density is optional; nil means "not applicable" (e.g. items sold
	// by piece rather than volume/weight conversion).
	Density *float64
}

// Rate is a unitless percentage-like decimal (e.g. a VAT rate of 0.10),
// kept distinct from money.Money since rates multiply amounts rather than
// adding to them.
type Rate struct {
	value float64
}

func NewRate(v float64) (Rate, error) {
	if v < 0 {
		return Rate{}, newError("rate must be >= 0, got %v", v)
	}
	return Rate{value: v}, nil
}

func MustRate(v float64) Rate {
	r, err := NewRate(v)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Rate) Value() float64 { return r.value }

// QualityVariant is a (ingredient, quality level, supplier) tuple carrying
// the multipliers that shift cost, satisfaction, prep time, and shelf life
// for that tier. Immutable once constructed.
type QualityVariant struct {
	BaseIngredientID  string
	QualityLevel      int // 1..5
	RangeTag          string
	SupplierID        string
	CostMultiplier    float64 // > 0
	SatisfactionBonus float64 // -1..+1
	PrepTimeMultiplier float64 // > 0
	ShelfLifeMultiplier float64 // > 0
}

// ID is the derived compound identifier: a composite of the fields that
// make the variant unique.
func (v QualityVariant) ID() string {
	return v.BaseIngredientID + "|" + strconv.Itoa(v.QualityLevel) + "|" + v.RangeTag + "|" + v.SupplierID
}

func newQualityVariant(v QualityVariant) (QualityVariant, error) {
	if v.BaseIngredientID == "" {
		return QualityVariant{}, newError("quality variant missing base ingredient id")
	}
	if v.QualityLevel < 1 || v.QualityLevel > 5 {
		return QualityVariant{}, newError("quality level %d out of range 1..5", v.QualityLevel)
	}
	if v.CostMultiplier <= 0 {
		return QualityVariant{}, newError("cost multiplier must be > 0, got %v", v.CostMultiplier)
	}
	if v.SatisfactionBonus < -1 || v.SatisfactionBonus > 1 {
		return QualityVariant{}, newError("satisfaction bonus %v out of range -1..1", v.SatisfactionBonus)
	}
	if v.PrepTimeMultiplier <= 0 {
		return QualityVariant{}, newError("prep time multiplier must be > 0, got %v", v.PrepTimeMultiplier)
	}
	if v.ShelfLifeMultiplier <= 0 {
		return QualityVariant{}, newError("shelf life multiplier must be > 0, got %v", v.ShelfLifeMultiplier)
	}
	return v, nil
}
