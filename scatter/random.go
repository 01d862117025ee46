package scatter

import (
	"math/rand"
)

// Source is the random-number interface the engine draws from during
// channel selection and final-state sampling. A Source is not assumed to be
// safe for concurrent use; give each worker its own.
type Source interface {
	// Uniform returns a draw from [lo, hi).
	Uniform(lo, hi float64) float64
	// Canonical returns a draw from [0, 1).
	Canonical() float64
}

type randSource struct {
	r *rand.Rand
}

// NewSource returns a math/rand backed Source with the given seed.
func NewSource(seed int64) Source {
	return &randSource{rand.New(rand.NewSource(seed))}
}

func (s *randSource) Uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.r.Float64()
}

func (s *randSource) Canonical() float64 { return s.r.Float64() }
