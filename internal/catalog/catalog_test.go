package catalog

import (
	"testing"

	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRejectsDuplicateIngredient(t *testing.T) {
	ingredients := []Ingredient{
		{ID: "tomato", Unit: "kg", BaseCostHT: money.MustMoney("1.0000"), VATRate: MustRate(0.1), ShelfLifeDays: 5},
		{ID: "tomato", Unit: "kg", BaseCostHT: money.MustMoney("1.0000"), VATRate: MustRate(0.1), ShelfLifeDays: 5},
	}
	_, err := Load(ingredients, nil, nil, nil, nil)
	assert.Error(t, err)
}

func TestLoadRejectsRecipeReferencingUnknownIngredient(t *testing.T) {
	recipes := []Recipe{
		{ID: "pasta", Portions: 1, Difficulty: 1, Items: []RecipeItem{{IngredientID: "ghost", QtyBrute: money.MustQty("1.000"), YieldPrep: 1, YieldCook: 1}}},
	}
	_, err := Load(nil, nil, recipes, nil, nil)
	assert.Error(t, err)
}

func TestVariantForLevelBreaksTiesByRangeTagThenSupplier(t *testing.T) {
	ingredients := []Ingredient{{ID: "tomato", Unit: "kg", BaseCostHT: money.MustMoney("1.0000"), VATRate: MustRate(0.1), ShelfLifeDays: 5}}
	variants := []QualityVariant{
		{BaseIngredientID: "tomato", QualityLevel: 2, RangeTag: "z-range", SupplierID: "s1", CostMultiplier: 2.0, PrepTimeMultiplier: 1, ShelfLifeMultiplier: 1},
		{BaseIngredientID: "tomato", QualityLevel: 2, RangeTag: "a-range", SupplierID: "s2", CostMultiplier: 1.5, PrepTimeMultiplier: 1, ShelfLifeMultiplier: 1},
	}
	suppliers := []Supplier{{ID: "s1"}, {ID: "s2"}}
	cat, err := Load(ingredients, variants, nil, suppliers, nil)
	require.NoError(t, err)

	v, ok := cat.VariantForLevel("tomato", 2)
	require.True(t, ok)
	assert.Equal(t, "a-range", v.RangeTag, "the lexicographically smallest range tag must win regardless of insertion order")
}

func TestOffersForReturnsIndependentCopy(t *testing.T) {
	ingredients := []Ingredient{{ID: "tomato", Unit: "kg", BaseCostHT: money.MustMoney("1.0000"), VATRate: MustRate(0.1), ShelfLifeDays: 5}}
	suppliers := []Supplier{{ID: "s1", Reliability: 0.9}}
	offers := []SupplierOffer{
		{IngredientID: "tomato", SupplierID: "s1", QualityLevel: 1, PackSize: money.MustQty("1.000"), UnitPriceHT: money.MustMoney("1.0000")},
	}
	cat, err := Load(ingredients, nil, nil, suppliers, offers)
	require.NoError(t, err)

	got := cat.OffersFor("tomato")
	require.Len(t, got, 1)
	got[0].UnitPriceHT = money.MustMoney("999.0000")

	again := cat.OffersFor("tomato")
	assert.Equal(t, "1.0000", again[0].UnitPriceHT.String())
}
