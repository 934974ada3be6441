package simulation

import (
	"encoding/json"
	"testing"

	"github.com/foodops/foodops-kernel/internal/events"
	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/foodops/foodops-kernel/internal/restaurant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRestoreRoundTripPreservesState(t *testing.T) {
	cat := emptyCatalog(t)
	registry := events.NewRegistry()
	sim, err := New(oneRestaurantScenario(), cat, registry, 42, 1)
	require.NoError(t, err)

	id, err := sim.AddRestaurant(RestaurantSpec{
		ID: "r1", Type: restaurant.TypeClassic, BaseCapacity: 80, ServiceSpeed: 1.0,
		StartingCash: money.MustMoney("5000.0000"),
	})
	require.NoError(t, err)
	r := sim.Restaurants[id]
	r.StaffingLevel = restaurant.StaffingNormal
	require.NoError(t, r.SetPrice("pasta", money.MustMoney("16.0000")))

	_, err = sim.RunTurn()
	require.NoError(t, err)

	snap := sim.Snapshot()

	restored, err := Restore(snap, cat, registry)
	require.NoError(t, err)

	assert.Equal(t, sim.turn, restored.turn)
	assert.True(t, sim.Restaurants["r1"].Cash.Equal(restored.Restaurants["r1"].Cash))
	assert.Equal(t, sim.Restaurants["r1"].Reputation, restored.Restaurants["r1"].Reputation)
	assert.Equal(t, sim.Ledger.Entries(), restored.Ledger.Entries())
}

func TestSnapshotJSONRoundTrip(t *testing.T) {
	cat := emptyCatalog(t)
	registry := events.NewRegistry()
	sim, err := New(oneRestaurantScenario(), cat, registry, 42, 1)
	require.NoError(t, err)

	_, err = sim.AddRestaurant(RestaurantSpec{
		ID: "r1", Type: restaurant.TypeClassic, BaseCapacity: 80, ServiceSpeed: 1.0,
		StartingCash: money.MustMoney("5000.0000"),
	})
	require.NoError(t, err)
	_, err = sim.RunTurn()
	require.NoError(t, err)

	snap := sim.Snapshot()
	data, err := json.Marshal(snap)
	require.NoError(t, err)

	var roundTripped Snapshot
	require.NoError(t, json.Unmarshal(data, &roundTripped))

	restored, err := Restore(roundTripped, cat, registry)
	require.NoError(t, err)
	assert.True(t, sim.Restaurants["r1"].Cash.Equal(restored.Restaurants["r1"].Cash))
}

func TestRestoreRejectsUnknownSchemaVersion(t *testing.T) {
	snap := Snapshot{SchemaVersion: 999}
	_, err := Restore(snap, emptyCatalog(t), events.NewRegistry())
	assert.Error(t, err)
	assert.IsType(t, &SnapshotError{}, err)
}
