package simulation

import (
	"github.com/foodops/foodops-kernel/internal/restaurant"
	"github.com/foodops/foodops-kernel/internal/rng"
)

// Difficulty selects which rule set an AI-controlled restaurant follows.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// GenerateAIDecisions produces the decisions an AI-controlled restaurant
// submits for a turn when no human decisions were queued. Easy keeps
// staffing fixed; medium reacts to last turn's utilization; hard is a
// placeholder for a future learned or lookahead policy and currently
// behaves like medium.
func GenerateAIDecisions(r *restaurant.Restaurant, difficulty Difficulty, stream *rng.Stream) []Decision {
	switch difficulty {
	case DifficultyEasy:
		return []Decision{SetStaffingLevel{Level: restaurant.StaffingNormal}}
	case DifficultyMedium, DifficultyHard:
		return medianStaffingReaction(r)
	default:
		return nil
	}
}

// medianStaffingReaction raises staffing after a high-utilization turn and
// lowers it after a quiet one, holding steady otherwise.
func medianStaffingReaction(r *restaurant.Restaurant) []Decision {
	level := r.StaffingLevel
	if level == 0 {
		level = restaurant.StaffingLow
	}
	switch {
	case r.LastUtilization > 0.8 && level < restaurant.StaffingHigh:
		level++
	case r.LastUtilization < 0.5 && level > restaurant.StaffingLow:
		level--
	}
	return []Decision{SetStaffingLevel{Level: level}}
}
