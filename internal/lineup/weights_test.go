package lineup

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightVector_Normalizes(t *testing.T) {
	w, err := NewWeightVectorFromSlice([]float64{30, 10, 60})
	require.NoError(t, err)

	p := w.Probabilities()
	assert.InDeltaSlice(t, []float64{0.3, 0.1, 0.6}, p, 1e-12)
	assert.InDelta(t, 0.6, w.Probability(2), 1e-12)
	assert.Equal(t, 60.0, w.Raw(2))
}

func TestWeightVector_RejectsDegenerateInput(t *testing.T) {
	tests := []struct {
		name string
		raw  []float64
	}{
		{"all zero", []float64{0, 0, 0}},
		{"empty", nil},
		{"negative", []float64{5, -1}},
		{"nan", []float64{5, math.NaN()}},
		{"inf", []float64{5, math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWeightVectorFromSlice(tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidWeights), "got %v", err)
		})
	}
}

func TestWeightVector_ByName(t *testing.T) {
	pool := newTestPool(t, buildPlayers(3))

	t.Run("missing entry", func(t *testing.T) {
		weights := uniformWeights(pool)
		delete(weights, "IND-WK-0")
		_, err := NewWeightVector(pool, weights)
		assert.ErrorIs(t, err, ErrInvalidWeights)
	})

	t.Run("unknown entry", func(t *testing.T) {
		weights := uniformWeights(pool)
		weights["Nobody"] = 10
		_, err := NewWeightVector(pool, weights)
		assert.ErrorIs(t, err, ErrUnknownPlayer)
	})

	t.Run("zero total", func(t *testing.T) {
		weights := uniformWeights(pool)
		for name := range weights {
			weights[name] = 0
		}
		_, err := NewWeightVector(pool, weights)
		assert.ErrorIs(t, err, ErrInvalidWeights)
	})

	t.Run("aligned with pool order", func(t *testing.T) {
		weights := uniformWeights(pool)
		weights["AUS-BOWL-2"] = 5
		w, err := NewWeightVector(pool, weights)
		require.NoError(t, err)

		i, ok := pool.Index("AUS-BOWL-2")
		require.True(t, ok)
		assert.Equal(t, 5.0, w.Raw(i))
	})
}

func TestWeightVector_Sub(t *testing.T) {
	w, err := NewWeightVectorFromSlice([]float64{2, 0, 0, 6})
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{0.25, 0.75}, w.Sub([]int{0, 3}), 1e-12)
	assert.InDeltaSlice(t, []float64{0.25, 0, 0, 0.75}, w.Sub([]int{0, 1, 2, 3}), 1e-12)

	// All-zero subsets fall back to uniform.
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, w.Sub([]int{1, 2}), 1e-12)
	assert.Empty(t, w.Sub(nil))
}

func TestWeightVector_SubUsesOriginalWeights(t *testing.T) {
	w, err := NewWeightVectorFromSlice([]float64{1, 2, 3, 4})
	require.NoError(t, err)

	// Removing players one at a time must match a fresh renormalization of
	// the survivors' raw weights.
	assert.InDeltaSlice(t, []float64{2.0 / 9, 3.0 / 9, 4.0 / 9}, w.Sub([]int{1, 2, 3}), 1e-12)
	assert.InDeltaSlice(t, []float64{3.0 / 7, 4.0 / 7}, w.Sub([]int{2, 3}), 1e-12)
	assert.InDeltaSlice(t, []float64{1}, w.Sub([]int{3}), 1e-12)
}
