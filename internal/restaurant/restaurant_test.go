package restaurant

import (
	"testing"

	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRestaurant() *Restaurant {
	return New("r1", "Chez Test", TypeClassic, 80, 1.0, money.MustMoney("1000.0000"), money.MustMoney("500.0000"), money.MustMoney("100.0000"))
}

func TestCapacityCombinesBaseAndEmployees(t *testing.T) {
	r := newRestaurant()
	r.StaffingLevel = StaffingNormal
	assert.Equal(t, int64(80), r.Capacity())

	require.NoError(t, r.HireEmployee(Employee{ID: "e1", Position: PositionCuisine, Contract: ContractCDI, GrossMonthlySalary: money.MustMoney("2000.0000"), Productivity: 1.0}))
	assert.Greater(t, r.Capacity(), int64(80))
}

func TestCapacityZeroWhenClosed(t *testing.T) {
	r := newRestaurant()
	r.StaffingLevel = StaffingClosed
	assert.Equal(t, int64(0), r.Capacity())
}

func TestSetPriceRejectsNonPositive(t *testing.T) {
	r := newRestaurant()
	assert.Error(t, r.SetPrice("pasta", money.Zero))
	assert.NoError(t, r.SetPrice("pasta", money.MustMoney("16.0000")))
}

func TestActivateRecipeRestoresLastPrice(t *testing.T) {
	r := newRestaurant()
	require.NoError(t, r.SetPrice("pasta", money.MustMoney("16.0000")))
	r.DeactivateRecipe("pasta")
	_, active := r.Menu["pasta"]
	assert.False(t, active)

	require.NoError(t, r.ActivateRecipe("pasta"))
	entry, active := r.Menu["pasta"]
	require.True(t, active)
	assert.True(t, entry.PriceTTC.Equal(money.MustMoney("16.0000")))
}

func TestActivateRecipeNeverPricedReturnsError(t *testing.T) {
	r := newRestaurant()
	assert.Error(t, r.ActivateRecipe("pasta"))
}

func TestActivateRecipeAlreadyActiveIsNoop(t *testing.T) {
	r := newRestaurant()
	require.NoError(t, r.SetPrice("pasta", money.MustMoney("16.0000")))
	require.NoError(t, r.ActivateRecipe("pasta"))
	entry := r.Menu["pasta"]
	assert.True(t, entry.PriceTTC.Equal(money.MustMoney("16.0000")))
}

func TestQualityScoreDefaultsToTypeBaseline(t *testing.T) {
	r := newRestaurant()
	assert.Equal(t, TypeClassic.BaselineQuality(), r.QualityScore())
}

func TestQualityScoreClampedToRange(t *testing.T) {
	r := newRestaurant()
	require.NoError(t, r.SetIngredientQuality("tomato", 5))
	r.StaffingLevel = StaffingHigh
	assert.LessOrEqual(t, r.QualityScore(), 5.0)
	assert.GreaterOrEqual(t, r.QualityScore(), 1.0)
}

func TestUpdateReputationMovesTowardSatisfactionTarget(t *testing.T) {
	r := newRestaurant()
	initial := r.Reputation
	for i := 0; i < 10; i++ {
		r.PushSatisfaction(5.0)
	}
	r.UpdateReputation()
	assert.Greater(t, r.Reputation, initial)
	assert.LessOrEqual(t, r.Reputation, 10.0)
}

func TestSatisfactionHistoryBoundedLength(t *testing.T) {
	r := newRestaurant()
	for i := 0; i < 25; i++ {
		r.PushSatisfaction(3.0)
	}
	assert.LessOrEqual(t, len(r.SatisfactionHistory()), 10)
}

func TestHireEmployeeRejectsInvalidContract(t *testing.T) {
	r := newRestaurant()
	err := r.HireEmployee(Employee{ID: "stagiaire", Contract: ContractStage, GrossMonthlySalary: money.MustMoney("1.0000"), Productivity: 1.0})
	assert.Error(t, err)
}

func TestMonthlyPersonnelCostSumsEmployerCostAcrossRoster(t *testing.T) {
	r := newRestaurant()
	require.NoError(t, r.HireEmployee(Employee{ID: "e1", Position: PositionCuisine, Contract: ContractCDI, GrossMonthlySalary: money.MustMoney("2000.0000"), Productivity: 1.0}))
	require.NoError(t, r.HireEmployee(Employee{ID: "e2", Position: PositionSalle, Contract: ContractCDI, GrossMonthlySalary: money.MustMoney("1800.0000"), Productivity: 1.0}))

	cost := r.MonthlyPersonnelCost(DefaultSocialCharges())
	assert.True(t, cost.IsPositive())
	assert.Greater(t, cost.Float64(), 3800.0)
}
