package searcher

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

// Boltzmann turns non-negative scores into a distribution. Temperature 0
// gives a one-hot distribution on the first maximum; otherwise every score is
// scaled by the maximum, raised to 1/temperature and normalized. All-zero
// scores give a uniform distribution.
func Boltzmann(scores []float64, temperature float64) []float64 {
	dist := make([]float64, len(scores))
	if len(scores) == 0 {
		return dist
	}
	if temperature == 0 {
		dist[Argmax(scores)] = 1
		return dist
	}

	// Scaled scores lie in [0, 1], so the power cannot overflow
	top := floats.Max(scores)
	if top <= 0 {
		return uniform(len(scores))
	}
	exponent := 1 / temperature
	for i, score := range scores {
		dist[i] = math.Pow(score/top, exponent)
	}
	sum := floats.Sum(dist)
	if sum == 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
		return uniform(len(scores))
	}
	floats.Scale(1/sum, dist)
	return dist
}

// Argmax returns the index of the first maximum
func Argmax(scores []float64) int {
	return floats.MaxIdx(scores)
}

// Sample draws an index from a categorical distribution
func Sample(dist []float64, rng *rand.Rand) int {
	sampled := rng.Float64()
	cumulative := 0.0
	last := 0
	for i, p := range dist {
		if p <= 0 {
			continue
		}
		last = i
		cumulative += p
		if sampled < cumulative {
			return i
		}
	}
	return last // Fallback in case of rounding errors
}
