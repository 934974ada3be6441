package market

import (
	"testing"

	"github.com/foodops/foodops-kernel/internal/events"
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/foodops/foodops-kernel/internal/restaurant"
	"github.com/foodops/foodops-kernel/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neutralMods() events.Modifiers {
	return events.Modifiers{Demand: 1, PriceSensitivity: 1, QualityImportance: 1}
}

func newClassic(id string, capacity float64) *restaurant.Restaurant {
	r := restaurant.New(id, id, restaurant.TypeClassic, capacity, 1.0, money.Zero, money.Zero, money.Zero)
	r.StaffingLevel = restaurant.StaffingNormal
	return r
}

func TestAllocateDeterministicOneRestaurant(t *testing.T) {
	scenario := Scenario{
		BaseDemand:  420,
		DemandNoise: 0,
		Segments: []Segment{
			{
				Name:               "Families",
				Share:              1.0,
				Budget:             money.MustMoney("17.0000"),
				TypeAffinity:       map[string]float64{"CLASSIC": 1.0},
				PriceSensitivity:   1.0,
				QualitySensitivity: 1.0,
			},
		},
	}

	r := newClassic("r1", 80)
	require.NoError(t, r.SetPrice("pasta", money.MustMoney("16.0000")))

	stream := rng.NewStream(42, 1)
	result := Allocate(scenario, []*restaurant.Restaurant{r}, 1, neutralMods(), stream)

	assert.Equal(t, int64(420), result.TotalDemand)
	res := result.PerRestaurant["r1"]
	require.NotNil(t, res)
	assert.Equal(t, int64(80), res.Served)
	assert.Equal(t, "1280.0000", res.Revenue.String())
	assert.Equal(t, int64(340), res.LostCustomers)
}

func TestAllocateEventModulatesDemand(t *testing.T) {
	scenario := Scenario{
		BaseDemand:  100,
		DemandNoise: 0,
		Segments: []Segment{
			{Name: "families", Share: 1.0, Budget: money.MustMoney("100.0000"), TypeAffinity: map[string]float64{"CLASSIC": 1.0}},
		},
	}
	mods := events.Modifiers{
		Demand:            1.25,
		PriceSensitivity:  1,
		QualityImportance: 1,
		PerSegment:        map[string]float64{"families": 1.3},
	}

	r := newClassic("r1", 1000)
	require.NoError(t, r.SetPrice("pasta", money.MustMoney("10.0000")))

	stream := rng.NewStream(1, 1)
	result := Allocate(scenario, []*restaurant.Restaurant{r}, 1, mods, stream)

	assert.Equal(t, int64(125), result.TotalDemand)
	assert.Equal(t, int64(163), result.SegmentDemand["families"])
}

func TestAllocateCapacityRedistributionWithinSegment(t *testing.T) {
	scenario := Scenario{
		BaseDemand:  80,
		DemandNoise: 0,
		Segments: []Segment{
			{Name: "all", Share: 1.0, Budget: money.MustMoney("100.0000"), TypeAffinity: map[string]float64{"CLASSIC": 1.0}},
		},
	}

	r1 := newClassic("r1", 30)
	require.NoError(t, r1.SetPrice("pasta", money.MustMoney("10.0000")))
	r2 := newClassic("r2", 100)
	require.NoError(t, r2.SetPrice("pasta", money.MustMoney("10.0000")))

	stream := rng.NewStream(7, 1)
	result := Allocate(scenario, []*restaurant.Restaurant{r1, r2}, 1, neutralMods(), stream)

	assert.Equal(t, int64(30), result.PerRestaurant["r1"].Served)
	assert.Equal(t, int64(50), result.PerRestaurant["r2"].Served)
	assert.Equal(t, int64(0), result.PerRestaurant["r1"].LostCustomers)
	assert.Equal(t, int64(0), result.PerRestaurant["r2"].LostCustomers)
}

func TestAllocateIneligibleOverBudgetRestaurantServesNobody(t *testing.T) {
	scenario := Scenario{
		BaseDemand:  100,
		DemandNoise: 0,
		Segments: []Segment{
			{Name: "budget", Share: 1.0, Budget: money.MustMoney("10.0000"), TypeAffinity: map[string]float64{"CLASSIC": 1.0}},
		},
	}

	r := newClassic("pricey", 50)
	require.NoError(t, r.SetPrice("steak", money.MustMoney("50.0000")))

	stream := rng.NewStream(3, 1)
	result := Allocate(scenario, []*restaurant.Restaurant{r}, 1, neutralMods(), stream)

	assert.Equal(t, int64(0), result.PerRestaurant["pricey"].Served)
}
