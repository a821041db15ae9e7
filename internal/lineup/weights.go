package lineup

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// WeightVector holds the raw, non-negative selection weights of a pool, index
// aligned with the pool. Probabilities are always derived from the raw values
// so that renormalizing a shrinking subset never compounds rounding.
type WeightVector struct {
	raw   []float64
	total float64
}

// NewWeightVector maps weights by player name onto the pool order. Every pool
// player needs an entry and every entry must name a pool player.
func NewWeightVector(pool *Pool, weights map[string]float64) (*WeightVector, error) {
	if pool == nil || pool.Len() == 0 {
		return nil, ErrEmptyPool
	}

	for name := range weights {
		if _, ok := pool.Index(name); !ok {
			return nil, fmt.Errorf("%w: weight given for %q", ErrUnknownPlayer, name)
		}
	}

	raw := make([]float64, pool.Len())
	for i := range raw {
		name := pool.Player(i).Name
		w, ok := weights[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing weight for %s", ErrInvalidWeights, name)
		}
		raw[i] = w
	}

	return NewWeightVectorFromSlice(raw)
}

// NewWeightVectorFromSlice builds a vector from index-aligned raw weights.
func NewWeightVectorFromSlice(raw []float64) (*WeightVector, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no weights", ErrInvalidWeights)
	}
	for i, w := range raw {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return nil, fmt.Errorf("%w: weight %d is not finite", ErrInvalidWeights, i)
		}
		if w < 0 {
			return nil, fmt.Errorf("%w: weight %d is negative (%g)", ErrInvalidWeights, i, w)
		}
	}

	total := floats.Sum(raw)
	if total <= 0 {
		return nil, fmt.Errorf("%w: total weight is zero", ErrInvalidWeights)
	}

	cp := make([]float64, len(raw))
	copy(cp, raw)
	return &WeightVector{raw: cp, total: total}, nil
}

// Len returns the number of weights.
func (w *WeightVector) Len() int { return len(w.raw) }

// Raw returns the unnormalized weight at index i.
func (w *WeightVector) Raw(i int) float64 { return w.raw[i] }

// Probability returns p[i] = w[i] / sum(w) over the full pool.
func (w *WeightVector) Probability(i int) float64 { return w.raw[i] / w.total }

// Probabilities returns the full-pool distribution.
func (w *WeightVector) Probabilities() []float64 {
	p := make([]float64, len(w.raw))
	floats.ScaleTo(p, 1/w.total, w.raw)
	return p
}

// Sub renormalizes over the given subset: p[k] = w[subset[k]] / sum(w[subset]).
// A subset whose weights are all zero gets a uniform distribution.
func (w *WeightVector) Sub(subset []int) []float64 {
	p := make([]float64, len(subset))
	if len(subset) == 0 {
		return p
	}
	for k, i := range subset {
		p[k] = w.raw[i]
	}

	total := floats.Sum(p)
	if total <= 0 {
		for k := range p {
			p[k] = 1 / float64(len(p))
		}
		return p
	}
	floats.Scale(1/total, p)
	return p
}
