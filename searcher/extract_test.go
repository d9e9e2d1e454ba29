package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoltzmann(t *testing.T) {
	t.Run("temperature 1 normalizes the scores", func(t *testing.T) {
		got := Boltzmann([]float64{2, 3, 5}, 1)

		require.InDeltaSlice(t, []float64{0.2, 0.3, 0.5}, got, 1e-9)
	})

	t.Run("temperature 0 is one-hot on the maximum", func(t *testing.T) {
		got := Boltzmann([]float64{3, 0, 7, 2}, 0)

		require.Equal(t, []float64{0, 0, 1, 0}, got)
	})

	t.Run("temperature 0 keeps the first of tied maxima", func(t *testing.T) {
		got := Boltzmann([]float64{1, 4, 4}, 0)

		require.Equal(t, []float64{0, 1, 0}, got)
	})

	t.Run("low temperature sharpens", func(t *testing.T) {
		got := Boltzmann([]float64{1, 2}, 0.5)

		require.InDeltaSlice(t, []float64{0.2, 0.8}, got, 1e-9)
	})

	t.Run("low temperature on large counts stays sharp", func(t *testing.T) {
		got := Boltzmann([]float64{2000, 3, 1}, 0.01)

		require.InDeltaSlice(t, []float64{1, 0, 0}, got, 1e-9)
	})

	t.Run("low temperature keeps close counts apart from rare ones", func(t *testing.T) {
		got := Boltzmann([]float64{400, 399, 1}, 0.005)

		second := math.Pow(399.0/400, 200)
		require.InDelta(t, 1/(1+second), got[0], 1e-9)
		require.InDelta(t, second/(1+second), got[1], 1e-9)
		require.Less(t, got[2], 1e-100, "A single visit should get almost no mass")
	})

	t.Run("all-zero scores give a uniform distribution", func(t *testing.T) {
		got := Boltzmann([]float64{0, 0, 0, 0}, 1)

		require.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, got)
	})

	t.Run("input is left untouched", func(t *testing.T) {
		scores := []float64{1, 3}
		Boltzmann(scores, 1)

		require.Equal(t, []float64{1, 3}, scores)
	})
}

func TestArgmax(t *testing.T) {
	require.Equal(t, 2, Argmax([]float64{3, 0, 7, 2}))
	require.Equal(t, 0, Argmax([]float64{5, 5}))
}

func TestSample(t *testing.T) {
	t.Run("one-hot always returns its index", func(t *testing.T) {
		rng := seeded(11)
		for range 100 {
			require.Equal(t, 1, Sample([]float64{0, 1, 0}, rng))
		}
	})

	t.Run("frequencies follow the distribution", func(t *testing.T) {
		rng := seeded(12)
		dist := []float64{0.1, 0.6, 0.3}
		counts := make([]float64, len(dist))
		const draws = 20000
		for range draws {
			counts[Sample(dist, rng)]++
		}

		for i := range dist {
			require.InDelta(t, dist[i], counts[i]/draws, 0.02)
		}
	})

	t.Run("never returns a zero-probability index", func(t *testing.T) {
		rng := seeded(13)
		for range 1000 {
			require.NotEqual(t, 2, Sample([]float64{0.5, 0.5, 0}, rng))
		}
	})
}
