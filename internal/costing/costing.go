// Package costing computes per-portion recipe cost and margin analysis.
// Ingredient cost is valued at FEFO stock cost when lots are supplied,
// falling back to catalog cost for any shortfall, then adjusted by the
// restaurant's ingredient-quality choice.
package costing

import (
	"time"

	"github.com/foodops/foodops-kernel/internal/catalog"
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/foodops/foodops-kernel/internal/stock"
	"github.com/shopspring/decimal"
)

// LaborTypeFactor is the hourly-rate multiplier per restaurant type. The
// restaurant type itself is modeled by package restaurant; costing only
// needs the resulting factor, which callers look up via
// restaurant.Type.LaborFactor() and pass in directly — this keeps the two
// packages from depending on each other.
func LaborTypeFactor(factor float64) float64 {
	if factor <= 0 {
		return 1.0
	}
	return factor
}

// Engine computes costs against a fixed catalog.
type Engine struct {
	cat *catalog.Catalog
}

func NewEngine(cat *catalog.Catalog) *Engine {
	return &Engine{cat: cat}
}

// PortionCost is the full breakdown for one portion of a recipe.
type PortionCost struct {
	IngredientCost money.Money
	LaborCost      money.Money
	TotalCost      money.Money
}

// QualityChoices maps ingredient id to the restaurant's selected quality
// level (1..5); ingredients with no explicit choice use catalog cost
// unmodified.
type QualityChoices map[string]int

// ComputePortionCost computes the per-portion cost breakdown for a recipe.
// stockMgr may be nil to value every ingredient at catalog cost; today is
// only used when stockMgr is non-nil, to determine which lots are
// non-expired.
func (e *Engine) ComputePortionCost(recipe catalog.Recipe, quality QualityChoices, stockMgr *stock.Manager, today time.Time, hourlyLaborRate money.Money, laborTypeFactor float64) (PortionCost, error) {
	ingredientCost := money.Zero

	for _, item := range recipe.Items {
		ing, ok := e.cat.Ingredient(item.IngredientID)
		if !ok {
			return PortionCost{}, newError("recipe %s references unknown ingredient %s", recipe.ID, item.IngredientID)
		}
		effectiveQty := item.QtyBrute

		lineCost := e.valueLine(ing, effectiveQty, stockMgr, today)

		if level, ok := quality[item.IngredientID]; ok {
			if variant, found := e.cat.VariantForLevel(item.IngredientID, level); found {
				lineCost = lineCost.Mul(decimal.NewFromFloat(variant.CostMultiplier))
			}
		}
		ingredientCost = ingredientCost.Add(lineCost)
	}

	totalMinutes := recipe.TotalMinutes()
	hourlyRate := hourlyLaborRate.Mul(decimal.NewFromFloat(LaborTypeFactor(laborTypeFactor)))
	laborShare := hourlyRate.Mul(decimal.NewFromFloat(float64(totalMinutes) / 60.0))

	total := ingredientCost.Add(laborShare)
	perPortion := total.DivInt(int64(recipe.Portions))
	laborPerPortion := laborShare.DivInt(int64(recipe.Portions))
	ingredientPerPortion := ingredientCost.DivInt(int64(recipe.Portions))

	return PortionCost{
		IngredientCost: ingredientPerPortion,
		LaborCost:      laborPerPortion,
		TotalCost:      perPortion,
	}, nil
}

// valueLine values one recipe line's effective quantity, drawing first from
// FEFO stock (weighted average of the lots needed) and falling back to
// catalog cost for any shortfall.
func (e *Engine) valueLine(ing catalog.Ingredient, qty money.Qty, stockMgr *stock.Manager, today time.Time) money.Money {
	if stockMgr == nil {
		return ing.BaseCostHT.MulQty(qty)
	}

	lots := stockMgr.Lots(ing.ID, today)
	remaining := qty
	cost := money.Zero
	for _, lot := range lots {
		if remaining.IsZero() {
			break
		}
		take := money.MinQty(remaining, lot.Quantity)
		cost = cost.Add(lot.UnitCostHT.MulQty(take))
		remaining = remaining.Sub(take)
	}
	if remaining.IsPositive() {
		cost = cost.Add(ing.BaseCostHT.MulQty(remaining))
	}
	return cost
}

// MarginResult is the output of margin analysis for a menu price.
type MarginResult struct {
	PriceHT     money.Money
	Margin      money.Money
	FoodCostPct float64
}

// AnalyzeMargin computes HT price, margin, and food-cost % for a menu price.
func AnalyzeMargin(priceTTC money.Money, vat catalog.Rate, costPerPortion money.Money) MarginResult {
	priceHT := priceTTC.Div(decimal.NewFromFloat(1 + vat.Value()))
	margin := priceHT.Sub(costPerPortion)
	foodCostPct := 100.0
	if priceHT.IsPositive() {
		foodCostPct = costPerPortion.Decimal().Div(priceHT.Decimal()).InexactFloat64() * 100.0
	}
	return MarginResult{PriceHT: priceHT, Margin: margin, FoodCostPct: foodCostPct}
}
