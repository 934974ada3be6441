// Package market implements the segmented demand allocator: it splits a
// scenario's total customer demand across restaurants by segment,
// honoring capacity, budget, and attractiveness scoring.
package market

import "github.com/foodops/foodops-kernel/internal/money"

// Segment is one customer segment: a shared budget, type affinities, and
// price/quality sensitivities.
type Segment struct {
	Name                string
	Share               float64 // [0,1]
	Budget              money.Money
	TypeAffinity        map[string]float64 // restaurant type -> coefficient >= 0
	PriceSensitivity    float64            // [0,2]
	QualitySensitivity  float64            // [0,2]
	SeasonalFactorByMonth map[int]float64  // month (1..12) -> factor >= 0, optional
}

func (s Segment) seasonalFactor(month int) float64 {
	if s.SeasonalFactorByMonth == nil {
		return 1
	}
	if f, ok := s.SeasonalFactorByMonth[month]; ok {
		return f
	}
	return 1
}

func (s Segment) typeAffinity(restaurantType string) float64 {
	if s.TypeAffinity == nil {
		return 1
	}
	if a, ok := s.TypeAffinity[restaurantType]; ok {
		return a
	}
	return 1
}
