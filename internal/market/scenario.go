package market

// TurnDuration resolves the open question of what one turn represents;
// scenarios must declare it explicitly rather than leaving it implicit.
type TurnDuration string

const (
	TurnDurationWeek   TurnDuration = "week"
	TurnDurationMonth  TurnDuration = "month"
	TurnDurationService TurnDuration = "service"
)

// PeriodsPerMonth is the accounting divisor for monthly fixed and
// personnel costs implied by a turn duration: a week-long turn bears a
// quarter of the monthly cost, a month-long turn bears all of it, and a
// single service is treated the same as a week for cost-sharing purposes.
func (d TurnDuration) PeriodsPerMonth() float64 {
	switch d {
	case TurnDurationMonth:
		return 1
	case TurnDurationWeek, TurnDurationService:
		return 4
	default:
		return 4
	}
}

// ConsumptionPolicy resolves the open question of how served customers map
// onto active recipes when segment composition isn't tracked explicitly.
type ConsumptionPolicy string

const (
	ConsumptionUniformOverMenu  ConsumptionPolicy = "uniform_over_menu"
	ConsumptionSegmentWeighted ConsumptionPolicy = "segment_weighted"
)

// Scenario is the immutable configuration for one simulation run.
type Scenario struct {
	Name              string
	Description       string
	Turns             int
	BaseDemand        float64
	DemandNoise       float64 // [0,1]
	Segments          []Segment
	AICompetitorCount int
	Seed              *int64
	TurnDuration      TurnDuration
	ConsumptionPolicy ConsumptionPolicy
}

// ValidateShares checks the sum-of-shares invariant: segment shares must
// sum to within [0.95, 1.05].
func (s Scenario) ValidateShares() error {
	var sum float64
	for _, seg := range s.Segments {
		sum += seg.Share
	}
	if sum < 0.95 || sum > 1.05 {
		return newScenarioError("segment shares sum to %.4f, outside [0.95,1.05]", sum)
	}
	return nil
}
