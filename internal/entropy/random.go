// Package entropy provides the seeded random stream behind composition.
// One stream is created per run; identical seeds replay identical draws.
package entropy

import "math/rand"

// Stream is a deterministic source of draws. Not safe for concurrent use;
// each composition owns its own Stream.
type Stream struct {
	seed  int64
	rng   *rand.Rand
	draws uint64
}

// NewStream creates a stream seeded once for a composition run.
func NewStream(seed int64) *Stream {
	return &Stream{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() int64 {
	return s.seed
}

// Draws returns how many values have been taken from the stream.
func (s *Stream) Draws() uint64 {
	return s.draws
}

// Float returns a value in [0, 1).
func (s *Stream) Float() float64 {
	s.draws++
	return s.rng.Float64()
}

// FloatRange returns a value in [lo, hi).
func (s *Stream) FloatRange(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.Float()*(hi-lo)
}

// IntRange returns a uniform integer in [lo, hi] inclusive.
func (s *Stream) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	s.draws++
	return lo + s.rng.Intn(hi-lo+1)
}

// Derive returns an independent stream for a named sub-purpose, so that
// adding draws in one stage does not shift another stage's sequence.
func (s *Stream) Derive(salt int64) *Stream {
	return NewStream(s.seed*31 + salt)
}
