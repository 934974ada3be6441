package simulation

import (
	"testing"

	"github.com/foodops/foodops-kernel/internal/money"
	"github.com/foodops/foodops-kernel/internal/restaurant"
	"github.com/foodops/foodops-kernel/internal/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAIDecisionsEasyFixesStaffingAtNormal(t *testing.T) {
	r := restaurant.New("r1", "r1", restaurant.TypeClassic, 80, 1.0, money.Zero, money.Zero, money.Zero)
	stream := rng.NewStream(1, 1)

	decisions := GenerateAIDecisions(r, DifficultyEasy, stream)

	require.Len(t, decisions, 1)
	set, ok := decisions[0].(SetStaffingLevel)
	require.True(t, ok)
	assert.Equal(t, restaurant.StaffingNormal, set.Level)
}

func TestGenerateAIDecisionsMediumRaisesStaffingAfterHighUtilization(t *testing.T) {
	r := restaurant.New("r1", "r1", restaurant.TypeClassic, 80, 1.0, money.Zero, money.Zero, money.Zero)
	r.StaffingLevel = restaurant.StaffingNormal
	r.LastUtilization = 0.9
	stream := rng.NewStream(1, 1)

	decisions := GenerateAIDecisions(r, DifficultyMedium, stream)

	require.Len(t, decisions, 1)
	set, ok := decisions[0].(SetStaffingLevel)
	require.True(t, ok)
	assert.Equal(t, restaurant.StaffingHigh, set.Level)
}
