package events

import (
	"testing"

	"github.com/foodops/foodops-kernel/internal/rng"
	"github.com/stretchr/testify/assert"
)

func TestStepTriggersTemplateWithCertainProbability(t *testing.T) {
	registry := NewRegistry(Template{
		ID:              "heatwave",
		Category:        CategoryWeather,
		BaseProbability: 1,
		DurationTurns:   3,
		Multipliers:     Multipliers{Demand: 1.25, PerSegment: map[string]float64{"families": 1.3}},
	})
	m := NewModulator(registry)

	triggered, mods := m.Step(1, SeasonSummer, rng.NewStream(1, 1))
	assert.Len(t, triggered, 1)
	assert.InDelta(t, 1.25, mods.Demand, 1e-9)
	assert.InDelta(t, 1.3, mods.PerSegment["families"], 1e-9)
}

func TestStepNeverTriggersAtZeroProbability(t *testing.T) {
	registry := NewRegistry(Template{ID: "never", BaseProbability: 0, DurationTurns: 1})
	m := NewModulator(registry)

	triggered, mods := m.Step(1, SeasonSummer, rng.NewStream(1, 1))
	assert.Empty(t, triggered)
	assert.Equal(t, 1.0, mods.Demand)
}

func TestActiveInstanceBlocksSameCategoryRetrigger(t *testing.T) {
	registry := NewRegistry(Template{
		ID:              "a",
		Category:        CategoryWeather,
		BaseProbability: 1,
		DurationTurns:   3,
	}, Template{
		ID:              "b",
		Category:        CategoryWeather,
		BaseProbability: 1,
		DurationTurns:   1,
	})
	m := NewModulator(registry)
	triggered, _ := m.Step(1, SeasonSummer, rng.NewStream(1, 1))
	assert.Len(t, triggered, 1)
	assert.Equal(t, "a", triggered[0].TemplateID)
}

func TestEligibilityRestrictsBySeasonAndTurnWindow(t *testing.T) {
	registry := NewRegistry(Template{
		ID:              "summer-only",
		BaseProbability: 1,
		DurationTurns:   1,
		Eligibility:     Eligibility{MinTurn: 5, MaxTurn: 10, RequiredSeason: SeasonSummer},
	})
	m := NewModulator(registry)

	triggered, _ := m.Step(1, SeasonSummer, rng.NewStream(1, 1))
	assert.Empty(t, triggered, "turn below MinTurn must not trigger")

	triggered, _ = m.Step(6, SeasonWinter, rng.NewStream(1, 6))
	assert.Empty(t, triggered, "wrong season must not trigger")

	triggered, _ = m.Step(6, SeasonSummer, rng.NewStream(1, 6))
	assert.Len(t, triggered, 1)
}

func TestRestoreActiveRoundTrips(t *testing.T) {
	m := NewModulator(NewRegistry())
	m.RestoreActive([]Instance{{TemplateID: "x", RemainingDuration: 2}})
	assert.Equal(t, []Instance{{TemplateID: "x", RemainingDuration: 2}}, m.Active())
}
