package lineup

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Sampler draws players without replacement, weighted by a WeightVector
// restricted to the candidates of each draw. A Sampler owns its random source
// and must not be shared between goroutines.
type Sampler struct {
	weights *WeightVector
	src     rand.Source
}

// NewSampler binds weights to a random source. Pass a seeded source for
// reproducible draws.
func NewSampler(weights *WeightVector, src rand.Source) *Sampler {
	return &Sampler{weights: weights, src: src}
}

// Draw returns k distinct pool indices from candidates. Each successive pick is
// proportional to the original weights of the candidates still left, falling
// back to uniform once only zero-weight candidates remain.
func (s *Sampler) Draw(candidates []int, k int) ([]int, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: draw size must be positive, got %d", ErrInvalidConfig, k)
	}
	if len(candidates) < k {
		return nil, fmt.Errorf("%w: need %d, have %d", ErrInsufficientCandidates, k, len(candidates))
	}

	// Captain and vice from a two player pool are both forced.
	if k == 2 && len(candidates) == 2 {
		return []int{candidates[0], candidates[1]}, nil
	}

	sampler := sampleuv.NewWeighted(s.weights.Sub(candidates), s.src)
	taken := make([]bool, len(candidates))
	out := make([]int, 0, k)

	for len(out) < k {
		idx, ok := sampler.Take()
		if !ok || taken[idx] {
			// Either only zero-weight candidates are left or heap rounding
			// drifted; rebuild from the original weights of what remains.
			sampler.ReweightAll(s.remaining(candidates, taken))
			if idx, ok = sampler.Take(); !ok || taken[idx] {
				return nil, fmt.Errorf("%w: drew %d of %d", ErrInsufficientCandidates, len(out), k)
			}
		}
		taken[idx] = true
		out = append(out, candidates[idx])
	}

	return out, nil
}

func (s *Sampler) remaining(candidates []int, taken []bool) []float64 {
	w := make([]float64, len(candidates))
	var total float64
	for k, i := range candidates {
		if !taken[k] {
			w[k] = s.weights.Raw(i)
			total += w[k]
		}
	}
	if total > 0 {
		return w
	}
	for k := range w {
		if !taken[k] {
			w[k] = 1
		}
	}
	return w
}

// DrawOne is Draw with k == 1.
func (s *Sampler) DrawOne(candidates []int) (int, error) {
	picked, err := s.Draw(candidates, 1)
	if err != nil {
		return -1, err
	}
	return picked[0], nil
}
