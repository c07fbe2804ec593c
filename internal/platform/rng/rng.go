// Package rng provides the deterministic random stream the match engine
// draws from. Each match owns exactly one Stream seeded once at kickoff,
// so a given seed and input always replays to the same timeline.
package rng

import "math/rand/v2"

// Stream wraps a seeded PRNG. It is not safe for concurrent use; the
// engine consumes it from a single goroutine per match.
type Stream struct {
	r *rand.Rand
}

func New(seed int64) *Stream {
	return &Stream{r: rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))}
}

// Float64 returns a draw in [0, 1).
func (s *Stream) Float64() float64 {
	return s.r.Float64()
}

// IntN returns a draw in [0, n).
func (s *Stream) IntN(n int) int {
	return s.r.IntN(n)
}

// Weighted draws index i with probability weights[i] / sum(weights).
// Zero and negative weights are treated as zero. When every weight is
// zero the first index wins, so callers never get a sentinel to branch
// on mid-simulation.
func (s *Stream) Weighted(weights []float64) int {
	var total float64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return 0
	}

	target := s.Float64() * total
	var cum float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cum += w
		if target < cum {
			return i
		}
	}
	return len(weights) - 1
}
