package simulation

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Rng is the single seeded randomness source of a World. Every stochastic
// decision in a step draws from it explicitly, in agent-id order, so a run
// is fully reproducible from its seed. The global math/rand state is never
// touched.
type Rng struct {
	src  *rand.Rand
	norm distuv.Normal
}

func NewRng(seed uint64) *Rng {
	src := rand.NewSource(seed)
	return &Rng{
		src:  rand.New(src),
		norm: distuv.Normal{Mu: 0, Sigma: 1, Src: src},
	}
}

// Float64 returns a pseudo-random float in [0, 1).
func (r *Rng) Float64() float64 {
	return r.src.Float64()
}

// Uniform returns a pseudo-random float in [a, b).
func (r *Rng) Uniform(a, b float64) float64 {
	return a + (b-a)*r.src.Float64()
}

// Normal returns a normally distributed value with the given mean and std-dev.
func (r *Rng) Normal(mean, std float64) float64 {
	return mean + std*r.norm.Rand()
}
