package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CorrelationResult reports a Pearson correlation test with a Fisher
// z-transform confidence interval.
type CorrelationResult struct {
	N         int
	R         float64
	T         float64
	DF        float64
	P         float64 // two-sided
	ConfLevel float64
	ConfLower float64
	ConfUpper float64
}

// PearsonTest computes the Pearson correlation of two paired samples, the
// t-distributed two-sided p-value, and a 95% confidence interval for the
// coefficient.
func PearsonTest(x, y []float64) (*CorrelationResult, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("correlation test needs paired samples, got %d and %d", len(x), len(y))
	}
	n := len(x)
	if n < 4 {
		return nil, fmt.Errorf("correlation test needs at least 4 pairs, got %d", n)
	}

	r := stat.Correlation(x, y, nil)
	if math.Abs(r) >= 1 {
		return nil, fmt.Errorf("correlation test: samples are perfectly collinear (r = %v)", r)
	}

	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}

	// Fisher z interval.
	z := math.Atanh(r)
	se := 1 / math.Sqrt(float64(n-3))
	zc := distuv.UnitNormal.Quantile(0.975)

	return &CorrelationResult{
		N:         n,
		R:         r,
		T:         t,
		DF:        df,
		P:         2 * dist.CDF(-math.Abs(t)),
		ConfLevel: 0.95,
		ConfLower: math.Tanh(z - zc*se),
		ConfUpper: math.Tanh(z + zc*se),
	}, nil
}
