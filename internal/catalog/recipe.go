package catalog

import "github.com/foodops/foodops-kernel/internal/money"

// RecipeItem is one ingredient line within a recipe.
type RecipeItem struct {
	IngredientID string
	QtyBrute     money.Qty
	YieldPrep    float64 // (0, 1]
	YieldCook    float64 // (0, 1]
}

// NetQtyPerPortion is qty_brute × yield_prep × yield_cook.
func (ri RecipeItem) NetQtyPerPortion() money.Qty {
	return ri.QtyBrute.Mul(decimalOf(ri.YieldPrep)).Mul(decimalOf(ri.YieldCook))
}

// Recipe is immutable seed data: an ordered list of ingredient lines plus
// timing and difficulty metadata.
type Recipe struct {
	ID           string
	Items        []RecipeItem
	PrepMinutes  int
	ServiceMinutes int
	Portions     int // > 0
	Category     string
	Difficulty   int // 1..5
	Description  string
}

// TotalMinutes is the labor time basis for costing.
func (r Recipe) TotalMinutes() int {
	return r.PrepMinutes + r.ServiceMinutes
}

func newRecipe(r Recipe, ingredients map[string]Ingredient) (Recipe, error) {
	if r.ID == "" {
		return Recipe{}, newError("recipe missing id")
	}
	if len(r.Items) == 0 {
		return Recipe{}, newError("recipe %s has no items", r.ID)
	}
	if r.Portions <= 0 {
		return Recipe{}, newError("recipe %s has non-positive portions", r.ID)
	}
	if r.Difficulty < 1 || r.Difficulty > 5 {
		return Recipe{}, newError("recipe %s difficulty %d out of range 1..5", r.ID, r.Difficulty)
	}
	for _, item := range r.Items {
		if _, ok := ingredients[item.IngredientID]; !ok {
			return Recipe{}, newError("recipe %s references unknown ingredient %s", r.ID, item.IngredientID)
		}
		if item.YieldPrep <= 0 || item.YieldPrep > 1 {
			return Recipe{}, newError("recipe %s item %s yield_prep %v out of range (0,1]", r.ID, item.IngredientID, item.YieldPrep)
		}
		if item.YieldCook <= 0 || item.YieldCook > 1 {
			return Recipe{}, newError("recipe %s item %s yield_cook %v out of range (0,1]", r.ID, item.IngredientID, item.YieldCook)
		}
	}
	return r, nil
}
