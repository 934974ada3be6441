package costing

import (
	"testing"
	"time"

	"github.com/foodops/foodops-kernel/internal/catalog"
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	ingredients := []catalog.Ingredient{
		{ID: "tomato", Name: "Tomato", Unit: "kg", BaseCostHT: money.MustMoney("1.0000"), VATRate: catalog.MustRate(0.10), ShelfLifeDays: 7},
		{ID: "pasta-dough", Name: "Pasta Dough", Unit: "kg", BaseCostHT: money.MustMoney("2.0000"), VATRate: catalog.MustRate(0.10), ShelfLifeDays: 30},
	}
	recipes := []catalog.Recipe{
		{
			ID: "pasta",
			Items: []catalog.RecipeItem{
				{IngredientID: "tomato", QtyBrute: money.MustQty("0.200"), YieldPrep: 1, YieldCook: 1},
				{IngredientID: "pasta-dough", QtyBrute: money.MustQty("0.150"), YieldPrep: 1, YieldCook: 1},
			},
			PrepMinutes:    10,
			ServiceMinutes: 5,
			Portions:       1,
			Difficulty:     2,
		},
	}
	cat, err := catalog.Load(ingredients, nil, recipes, nil, nil)
	require.NoError(t, err)
	return cat
}

func TestComputePortionCostCatalogOnly(t *testing.T) {
	cat := newTestCatalog(t)
	engine := NewEngine(cat)
	recipe, ok := cat.Recipe("pasta")
	require.True(t, ok)

	cost, err := engine.ComputePortionCost(recipe, nil, nil, time.Now(), money.MustMoney("20.0000"), 1.0)
	require.NoError(t, err)

	// ingredient cost = 0.2*1.00 + 0.15*2.00 = 0.5000
	assert.Equal(t, "0.5000", cost.IngredientCost.String())
	// labor = 20.00 * (15/60) = 5.0000
	assert.Equal(t, "5.0000", cost.LaborCost.String())
	assert.Equal(t, "5.5000", cost.TotalCost.String())
}

func TestComputePortionCostAppliesQualityMultiplier(t *testing.T) {
	cat := newTestCatalog(t)
	variants := []catalog.QualityVariant{
		{BaseIngredientID: "tomato", QualityLevel: 3, CostMultiplier: 1.5, PrepTimeMultiplier: 1, ShelfLifeMultiplier: 1},
	}
	catWithVariant, err := catalog.Load(
		[]catalog.Ingredient{{ID: "tomato", Unit: "kg", BaseCostHT: money.MustMoney("1.0000"), VATRate: catalog.MustRate(0.10), ShelfLifeDays: 7}},
		variants, nil, nil, nil,
	)
	require.NoError(t, err)

	engine := NewEngine(catWithVariant)
	recipe := catalog.Recipe{
		ID:       "single",
		Items:    []catalog.RecipeItem{{IngredientID: "tomato", QtyBrute: money.MustQty("1.000"), YieldPrep: 1, YieldCook: 1}},
		Portions: 1,
	}

	cost, err := engine.ComputePortionCost(recipe, QualityChoices{"tomato": 3}, nil, time.Now(), money.Zero, 1.0)
	require.NoError(t, err)
	assert.Equal(t, "1.5000", cost.IngredientCost.String())
}

func TestAnalyzeMarginComputesFoodCostPercentage(t *testing.T) {
	result := AnalyzeMargin(money.MustMoney("16.0000"), catalog.MustRate(0.10), money.MustMoney("5.5000"))
	// priceHT = 16.00 / 1.10 = 14.5455 (rounded)
	assert.InDelta(t, 14.5455, result.PriceHT.Float64(), 0.001)
	assert.InDelta(t, 37.81, result.FoodCostPct, 0.1)
}
