package procurement

import (
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/shopspring/decimal"
)

// RecipeIngredientUse is one ingredient line of one active recipe, the
// shape a requirements calculation consumes from the catalog.
type RecipeIngredientUse struct {
	RecipeID     string
	IngredientID string
	QtyBrute     money.Qty
	Portions     int // recipe's total portions per batch, > 0
}

// GrossNeed accumulates gross_need(i) = Σ qty_brute(i) × forecast(r) / portions(r)
// across every active recipe's ingredient lines, keyed by ingredient id.
func GrossNeed(uses []RecipeIngredientUse, forecast map[string]int64) map[string]money.Qty {
	need := make(map[string]money.Qty)
	for _, u := range uses {
		f, ok := forecast[u.RecipeID]
		if !ok || f <= 0 || u.Portions <= 0 {
			continue
		}
		perPortion := u.QtyBrute.Div(decimal.NewFromInt(int64(u.Portions)))
		line := perPortion.Mul(decimal.NewFromInt(f))
		need[u.IngredientID] = need[u.IngredientID].Add(line)
	}
	return need
}

// NetNeed is max(0, gross_need - available).
func NetNeed(grossNeed, available money.Qty) money.Qty {
	shortfall := grossNeed.Sub(available)
	if shortfall.IsNegative() {
		return money.ZeroQty
	}
	return shortfall
}
