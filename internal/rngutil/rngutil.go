// Package rngutil holds the handful of random-sampling helpers shared
// by the engine and the optimizer, all drawing from the one seeded
// *rand.Rand threaded through a run.
package rngutil

import "math/rand"

// ChooseWeightedIndex draws an index into weights with probability
// proportional to its weight. Weights must be non-negative and sum to
// a positive total; any negative entry is an invariant violation, not
// an expected failure, so it panics.
func ChooseWeightedIndex(weights []float64, rng *rand.Rand) int {
	if len(weights) == 0 {
		panic("rngutil: weights must be non-empty")
	}
	total := 0.0
	for _, w := range weights {
		if w < 0 {
			panic("rngutil: weights must be non-negative")
		}
		total += w
	}
	if total <= 0 {
		panic("rngutil: weights must sum to a positive total")
	}

	d := rng.Float64() * total
	for i, w := range weights {
		if d < w {
			return i
		}
		d -= w
	}
	return len(weights) - 1
}

// FairCoin flips a fair coin using rng.
func FairCoin(rng *rand.Rand) bool {
	return rng.Intn(2) == 0
}
