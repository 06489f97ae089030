package analysis

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DefaultIterations is the resampling count used by both the bootstrap and
// the permutation test.
const DefaultIterations = 10000

// BootstrapResult is a one-sided resampling confidence interval for a
// difference of group means. Upper is open.
type BootstrapResult struct {
	Iterations int
	Seed       int64
	Observed   float64 // observed mean(x) - mean(y)
	Lower      float64 // empirical 5th percentile of resampled differences
}

// BootstrapDiffCI draws, for each iteration, a same-size with-replacement
// resample from each group independently, computes the difference of
// resample means, and reports the empirical 5th percentile as the lower
// confidence bound. Same seed, same inputs, same answer.
func BootstrapDiffCI(x, y []float64, iters int, seed int64) (*BootstrapResult, error) {
	if len(x) == 0 || len(y) == 0 {
		return nil, fmt.Errorf("bootstrap needs non-empty groups, got %d and %d", len(x), len(y))
	}
	if iters <= 0 {
		iters = DefaultIterations
	}

	rng := rand.New(rand.NewSource(seed))
	diffs := make([]float64, iters)
	rx := make([]float64, len(x))
	ry := make([]float64, len(y))

	for i := 0; i < iters; i++ {
		for j := range rx {
			rx[j] = x[rng.Intn(len(x))]
		}
		for j := range ry {
			ry[j] = y[rng.Intn(len(y))]
		}
		diffs[i] = stat.Mean(rx, nil) - stat.Mean(ry, nil)
	}
	sort.Float64s(diffs)

	return &BootstrapResult{
		Iterations: iters,
		Seed:       seed,
		Observed:   stat.Mean(x, nil) - stat.Mean(y, nil),
		Lower:      stat.Quantile(0.05, stat.Empirical, diffs, nil),
	}, nil
}

// PermutationResult is an empirical significance test for a correlation.
type PermutationResult struct {
	Iterations int
	Seed       int64
	Observed   float64 // observed Pearson correlation
	Extreme    int     // permutations with |r| >= |Observed|
	P          float64 // Extreme / Iterations, two-sided
}

// PermutationTest breaks the pairing between x and y by shuffling y each
// iteration, recomputes the Pearson correlation, and reports the fraction
// of permuted correlations at least as extreme in absolute value as the
// observed one.
func PermutationTest(x, y []float64, iters int, seed int64) (*PermutationResult, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("permutation test needs paired samples, got %d and %d", len(x), len(y))
	}
	if len(x) < 3 {
		return nil, fmt.Errorf("permutation test needs at least 3 pairs, got %d", len(x))
	}
	if iters <= 0 {
		iters = DefaultIterations
	}

	rng := rand.New(rand.NewSource(seed))
	obs := stat.Correlation(x, y, nil)

	shuffled := make([]float64, len(y))
	extreme := 0
	for i := 0; i < iters; i++ {
		for j, k := range rng.Perm(len(y)) {
			shuffled[j] = y[k]
		}
		if r := stat.Correlation(x, shuffled, nil); math.Abs(r) >= math.Abs(obs) {
			extreme++
		}
	}

	return &PermutationResult{
		Iterations: iters,
		Seed:       seed,
		Observed:   obs,
		Extreme:    extreme,
		P:          float64(extreme) / float64(iters),
	}, nil
}
