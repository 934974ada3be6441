package events

import "github.com/foodops/foodops-kernel/internal/rng"

// Modulator holds active event instances and a fixed-order template
// registry, and produces the aggregate Modifiers for a turn.
type Modulator struct {
	registry *Registry
	active   []Instance
}

func NewModulator(registry *Registry) *Modulator {
	return &Modulator{registry: registry}
}

// Active returns a defensive copy of the currently active instances.
func (m *Modulator) Active() []Instance {
	out := make([]Instance, len(m.active))
	copy(out, m.active)
	return out
}

// RestoreActive replaces the active instance list wholesale, used when
// reconstructing a modulator from a saved snapshot.
func (m *Modulator) RestoreActive(active []Instance) {
	out := make([]Instance, len(active))
	copy(out, active)
	m.active = out
}

// activeByCategory reports whether an active instance of this category has
// more than one turn of duration remaining — used to stop a category from
// re-triggering while one of its instances is still running.
func (m *Modulator) activeByCategory(cat Category) bool {
	for _, inst := range m.active {
		if inst.Category == cat && inst.RemainingDuration > 1 {
			return true
		}
	}
	return false
}

// Step advances the modulator by one turn: decrement durations, archive
// expired instances, evaluate templates in registration order (drawing
// from stream for each eligible template whether or not it triggers, so
// the draw sequence is stable across runs), and return the newly
// triggered instances alongside the aggregate Modifiers.
func (m *Modulator) Step(turn int, season Season, stream *rng.Stream) ([]Instance, Modifiers) {
	kept := m.active[:0:0]
	for _, inst := range m.active {
		inst.RemainingDuration--
		if inst.RemainingDuration > 0 {
			kept = append(kept, inst)
		}
	}
	m.active = kept

	var triggered []Instance
	for _, tmpl := range m.registry.Templates() {
		if !tmpl.Eligibility.satisfiedBy(turn, season) {
			continue
		}
		if m.activeByCategory(tmpl.Category) {
			continue
		}
		if stream.Bernoulli(tmpl.BaseProbability) {
			inst := Instance{
				TemplateID:        tmpl.ID,
				Category:          tmpl.Category,
				RemainingDuration: tmpl.DurationTurns,
				Multipliers:       tmpl.Multipliers,
			}
			m.active = append(m.active, inst)
			triggered = append(triggered, inst)
		}
	}

	return triggered, m.aggregate()
}

// Modifiers is the per-turn aggregate the market allocator consumes.
type Modifiers struct {
	Demand            float64
	PriceSensitivity  float64
	QualityImportance float64
	PerSegment        map[string]float64
}

func (m *Modulator) aggregate() Modifiers {
	agg := Modifiers{Demand: 1, PriceSensitivity: 1, QualityImportance: 1, PerSegment: map[string]float64{}}
	for _, inst := range m.active {
		if inst.Multipliers.Demand != 0 {
			agg.Demand *= inst.Multipliers.Demand
		}
		if inst.Multipliers.PriceSensitivity != 0 {
			agg.PriceSensitivity *= inst.Multipliers.PriceSensitivity
		}
		if inst.Multipliers.QualityImportance != 0 {
			agg.QualityImportance *= inst.Multipliers.QualityImportance
		}
		for seg, mult := range inst.Multipliers.PerSegment {
			if cur, ok := agg.PerSegment[seg]; ok {
				agg.PerSegment[seg] = cur * mult
			} else {
				agg.PerSegment[seg] = mult
			}
		}
	}
	return agg
}

// ApplySeasonality multiplies a per-segment demand figure by that segment's
// seasonal factor for the current month, defaulting to 1 when the segment
// declares no seasonality for that month.
func ApplySeasonality(demand float64, seasonalFactors map[int]float64, month int) float64 {
	if seasonalFactors == nil {
		return demand
	}
	factor, ok := seasonalFactors[month]
	if !ok {
		return demand
	}
	return demand * factor
}
