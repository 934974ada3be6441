package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewStreamIsDeterministicForSameSeedAndTurn(t *testing.T) {
	a := NewStream(42, 3)
	b := NewStream(42, 3)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestNewStreamDiffersAcrossTurns(t *testing.T) {
	a := NewStream(42, 1)
	b := NewStream(42, 2)
	assert.NotEqual(t, a.Seed(), b.Seed())
}

func TestBernoulliBoundaryProbabilities(t *testing.T) {
	s := NewStream(1, 1)
	assert.True(t, s.Bernoulli(1))
	assert.False(t, s.Bernoulli(0))
}

func TestUniformInRangeStaysWithinBounds(t *testing.T) {
	s := NewStream(99, 1)
	for i := 0; i < 50; i++ {
		v := s.UniformInRange(-0.1, 0.1)
		assert.GreaterOrEqual(t, v, -0.1)
		assert.LessOrEqual(t, v, 0.1)
	}
}

func TestRestoreReplaysToSamePosition(t *testing.T) {
	original := NewStream(7, 2)
	for i := 0; i < 5; i++ {
		original.Float64()
	}

	restored := Restore(7, 2, 5)
	assert.Equal(t, original.Float64(), restored.Float64())
}
