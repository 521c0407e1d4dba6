package core

import (
	"math/rand"
)

// Stream is the seeded random source behind every draw of a lab run.
// Draws are a pure function of the seed and of the order in which they are requested.
type Stream struct {
	rng  *rand.Rand
	seed int64
}

// NewStream creates a stream seeded with seed
func NewStream(seed int64) *Stream {
	return &Stream{
		rng:  rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reseed restarts the stream from seed
func (s *Stream) Reseed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.seed = seed
}

// Seed returns the seed of the current run
func (s *Stream) Seed() int64 {
	return s.seed
}

// Normal returns a value from a Gaussian distribution with given mean and stdDev
func (s *Stream) Normal(mean, stdDev float64) float64 {
	return mean + s.rng.NormFloat64()*stdDev
}

// NormalN returns n independent Gaussian draws
func (s *Stream) NormalN(n int, mean, stdDev float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = s.Normal(mean, stdDev)
	}
	return values
}

// Uniform returns a uniform random value in [min, max)
func (s *Stream) Uniform(min, max float64) float64 {
	return min + s.rng.Float64()*(max-min)
}

// UniformN returns n independent uniform draws in [min, max)
func (s *Stream) UniformN(n int, min, max float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = s.Uniform(min, max)
	}
	return values
}

// Intn returns a uniform random integer in [0, n)
func (s *Stream) Intn(n int) int {
	return s.rng.Intn(n)
}

// FloorPositive replaces value by its magnitude, never going below floor.
func FloorPositive(value, floor float64) float64 {
	if value < 0 {
		value = -value
	}
	if value < floor {
		return floor
	}
	return value
}
