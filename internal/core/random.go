package core

import "math/rand"

// RandomSource yields uniformly distributed values in [0, 1).
// *rand.Rand satisfies it; tests substitute a Sequence.
type RandomSource interface {
	Float64() float64
}

// NewRandom returns a seeded math/rand generator.
func NewRandom(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Intn maps one draw from src onto [0, n). n must be positive.
func Intn(src RandomSource, n int) int {
	i := int(src.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Sequence is a RandomSource that replays fixed values in order and
// wraps around when exhausted. An empty Sequence always yields 0.
type Sequence struct {
	values []float64
	next   int
}

// NewSequence creates a Sequence over the given values.
func NewSequence(values ...float64) *Sequence {
	return &Sequence{values: values}
}

// Float64 returns the next scripted value.
func (s *Sequence) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Draws returns how many values have been consumed.
func (s *Sequence) Draws() int {
	return s.next
}
