// Package wind generates stochastic wind speed populations.
package wind

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws independent wind speeds from a two-parameter Weibull
// distribution with location zero. It is a batch generator: one Sample call
// produces the whole population, small or large, with no streaming state
// beyond the entropy source.
type Sampler struct {
	dist distuv.Weibull
}

// NewSampler creates a sampler for Weibull(shape, scale). Both parameters
// must be positive; that precondition is enforced by parameter validation
// upstream and is not re-checked here. A nil src seeds from the wall clock;
// tests pass a fixed source for reproducible populations.
func NewSampler(shape, scale float64, src rand.Source) *Sampler {
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	return &Sampler{dist: distuv.Weibull{K: shape, Lambda: scale, Src: src}}
}

// Sample returns count independent draws in m/s. Order carries no meaning
// but is preserved so each speed can be paired with its derived power.
func (s *Sampler) Sample(count int) []float64 {
	speeds := make([]float64, count)
	for i := range speeds {
		speeds[i] = s.dist.Rand()
	}
	return speeds
}

// Mean returns the theoretical distribution mean scale·Γ(1+1/shape), the
// correctness contract for the sampler's distributional shape.
func (s *Sampler) Mean() float64 {
	return s.dist.Mean()
}
