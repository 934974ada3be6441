package simulation

import (
	"testing"

	"github.com/foodops/foodops-kernel/internal/catalog"
	"github.com/foodops/foodops-kernel/internal/events"
	"github.com/foodops/foodops-kernel/internal/market"
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/foodops/foodops-kernel/internal/restaurant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load(nil, nil, nil, nil, nil)
	require.NoError(t, err)
	return cat
}

func oneRestaurantScenario() market.Scenario {
	return market.Scenario{
		Turns:       10,
		BaseDemand:  420,
		DemandNoise: 0,
		Segments: []market.Segment{
			{Name: "Families", Share: 1.0, Budget: money.MustMoney("17.0000"), TypeAffinity: map[string]float64{"CLASSIC": 1.0}, PriceSensitivity: 1.0, QualitySensitivity: 1.0},
		},
	}
}

func TestRunTurnDeterministicOneRestaurant(t *testing.T) {
	cat := emptyCatalog(t)
	registry := events.NewRegistry()
	sim, err := New(oneRestaurantScenario(), cat, registry, 42, 1)
	require.NoError(t, err)

	id, err := sim.AddRestaurant(RestaurantSpec{
		ID: "r1", Name: "Chez Test", Type: restaurant.TypeClassic,
		BaseCapacity: 80, ServiceSpeed: 1.0,
		StartingCash: money.MustMoney("5000.0000"),
	})
	require.NoError(t, err)
	r := sim.Restaurants[id]
	r.StaffingLevel = restaurant.StaffingNormal
	require.NoError(t, r.SetPrice("pasta", money.MustMoney("16.0000")))

	outcome, err := sim.RunTurn()
	require.NoError(t, err)
	require.Len(t, outcome.PerRestaurant, 1)

	result := outcome.PerRestaurant[0]
	assert.Equal(t, int64(80), result.Served)
	assert.Equal(t, "1280.0000", result.Revenue.String())
}

func TestRunTurnIsBitIdenticalForSameSeedAndDecisions(t *testing.T) {
	build := func() (*Simulation, string) {
		cat := emptyCatalog(t)
		sim, err := New(oneRestaurantScenario(), cat, events.NewRegistry(), 42, 1)
		require.NoError(t, err)
		id, err := sim.AddRestaurant(RestaurantSpec{
			ID: "r1", Type: restaurant.TypeClassic, BaseCapacity: 80, ServiceSpeed: 1.0,
			StartingCash: money.MustMoney("5000.0000"),
		})
		require.NoError(t, err)
		r := sim.Restaurants[id]
		r.StaffingLevel = restaurant.StaffingNormal
		require.NoError(t, r.SetPrice("pasta", money.MustMoney("16.0000")))
		return sim, id
	}

	simA, _ := build()
	simB, _ := build()

	outcomeA, err := simA.RunTurn()
	require.NoError(t, err)
	outcomeB, err := simB.RunTurn()
	require.NoError(t, err)

	assert.Equal(t, outcomeA.PerRestaurant[0].Served, outcomeB.PerRestaurant[0].Served)
	assert.True(t, outcomeA.PerRestaurant[0].Revenue.Equal(outcomeB.PerRestaurant[0].Revenue))
	assert.True(t, outcomeA.PerRestaurant[0].Cash.Equal(outcomeB.PerRestaurant[0].Cash))
}

func TestRunTurnBankruptcyIsAStateNotAnError(t *testing.T) {
	cat := emptyCatalog(t)
	scenario := market.Scenario{
		Turns:       5,
		BaseDemand:  0,
		DemandNoise: 0,
		Segments:    []market.Segment{{Name: "none", Share: 1.0, Budget: money.MustMoney("10.0000")}},
	}
	sim, err := New(scenario, cat, events.NewRegistry(), 1, 1)
	require.NoError(t, err)

	id, err := sim.AddRestaurant(RestaurantSpec{
		ID: "r1", Type: restaurant.TypeClassic, BaseCapacity: 10, ServiceSpeed: 1.0,
		StartingCash:      money.Zero,
		MonthlyRent:       money.MustMoney("1000.0000"),
		MonthlyFixedCosts: money.Zero,
	})
	require.NoError(t, err)
	r := sim.Restaurants[id]
	r.StaffingLevel = restaurant.StaffingNormal

	outcome, err := sim.RunTurn()
	require.NoError(t, err, "a cash shortfall must never abort the turn")
	assert.True(t, outcome.PerRestaurant[0].Cash.IsNegative())
}

func TestRunTurnCapacityRedistributionAcrossTwoRestaurants(t *testing.T) {
	cat := emptyCatalog(t)
	scenario := market.Scenario{
		Turns:       1,
		BaseDemand:  80,
		DemandNoise: 0,
		Segments:    []market.Segment{{Name: "all", Share: 1.0, Budget: money.MustMoney("100.0000"), TypeAffinity: map[string]float64{"CLASSIC": 1.0}}},
	}
	sim, err := New(scenario, cat, events.NewRegistry(), 7, 1)
	require.NoError(t, err)

	id1, err := sim.AddRestaurant(RestaurantSpec{ID: "r1", Type: restaurant.TypeClassic, BaseCapacity: 30, ServiceSpeed: 1.0, StartingCash: money.MustMoney("1000.0000")})
	require.NoError(t, err)
	id2, err := sim.AddRestaurant(RestaurantSpec{ID: "r2", Type: restaurant.TypeClassic, BaseCapacity: 100, ServiceSpeed: 1.0, StartingCash: money.MustMoney("1000.0000")})
	require.NoError(t, err)

	for _, id := range []string{id1, id2} {
		r := sim.Restaurants[id]
		r.StaffingLevel = restaurant.StaffingNormal
		require.NoError(t, r.SetPrice("pasta", money.MustMoney("10.0000")))
	}

	outcome, err := sim.RunTurn()
	require.NoError(t, err)

	byID := map[string]TurnResult{}
	for _, r := range outcome.PerRestaurant {
		byID[r.RestaurantID] = r
	}
	assert.Equal(t, int64(30), byID["r1"].Served)
	assert.Equal(t, int64(50), byID["r2"].Served)
}
