// Package rng provides the deterministic pseudo-random streams a
// simulation draws from: one Stream per turn, derived from the simulation
// seed and the turn index. Bit-identical output for identical (seed,
// decisions) is a hard requirement; every draw in a turn — event Bernoulli
// trials, then demand noise — routes through that turn's Stream so the
// draw order, not wall-clock time, determines the sequence.
package rng

import "math/rand"

// Stream is a seeded, restartable pseudo-random source. It wraps
// math/rand's classic (non-crypto) generator, which is the deterministic,
// seedable generator Go's standard library offers; nothing here reads from
// a global source or from crypto/rand.
type Stream struct {
	src  *rand.Rand
	seed int64
	// draws counts how many values have been pulled; Restore replays a
	// stream to this position.
	draws uint64
}

// NewStream creates a stream seeded deterministically from a simulation
// seed and a turn index.
func NewStream(seed int64, turn int) *Stream {
	// Mix turn into the seed with a fixed odd multiplier so distinct turns
	// never collide for small seeds; this is a pure function of (seed, turn).
	mixed := seed ^ int64(uint64(turn+1)*0x9E3779B97F4A7C15)
	return &Stream{src: rand.New(rand.NewSource(mixed)), seed: mixed}
}

// Float64 returns the next draw in [0, 1).
func (s *Stream) Float64() float64 {
	s.draws++
	return s.src.Float64()
}

// UniformInRange returns a draw uniformly distributed in [lo, hi].
func (s *Stream) UniformInRange(lo, hi float64) float64 {
	return lo + s.Float64()*(hi-lo)
}

// Bernoulli returns true with probability p (clamped to [0, 1]).
func (s *Stream) Bernoulli(p float64) bool {
	if p <= 0 {
		s.Float64()
		return false
	}
	if p >= 1 {
		s.Float64()
		return true
	}
	return s.Float64() < p
}

// Draws reports how many values have been pulled from this stream; passing
// it to Restore recreates a stream that resumes from exactly that point.
func (s *Stream) Draws() uint64 { return s.draws }

// Seed reports the mixed seed this stream was constructed from.
func (s *Stream) Seed() int64 { return s.seed }

// Restore recreates a stream at the same logical position by re-seeding and
// discarding `draws` values. math/rand has no public position-restore API,
// so replay is the only deterministic way to reach the same point.
func Restore(seed int64, turn int, draws uint64) *Stream {
	s := NewStream(seed, turn)
	for i := uint64(0); i < draws; i++ {
		s.src.Float64()
	}
	s.draws = draws
	return s
}
