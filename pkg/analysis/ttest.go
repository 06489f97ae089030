// Package analysis implements the report's statistical procedures on top of
// gonum: a Welch two-sample t-test, bootstrap and permutation resampling,
// a Pearson correlation test, and least-squares regression with backward
// elimination.
package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Alternative selects the alternative hypothesis of a test.
type Alternative int

const (
	TwoSided Alternative = iota
	Less                 // first sample's mean is smaller
	Greater              // first sample's mean is larger
)

func (a Alternative) String() string {
	switch a {
	case Less:
		return "less"
	case Greater:
		return "greater"
	default:
		return "two-sided"
	}
}

// TTestResult reports a two-sample location test. For a one-sided
// alternative the open side of the confidence interval is ±Inf.
type TTestResult struct {
	Alt       Alternative
	T         float64
	DF        float64
	P         float64
	MeanX     float64
	MeanY     float64
	Diff      float64 // MeanX - MeanY
	ConfLevel float64
	ConfLower float64
	ConfUpper float64
}

// WelchTTest compares the means of two independent samples without assuming
// equal variances, using the Welch-Satterthwaite degrees of freedom. The
// confidence interval is at the 95% level.
func WelchTTest(x, y []float64, alt Alternative) (*TTestResult, error) {
	if len(x) < 2 || len(y) < 2 {
		return nil, fmt.Errorf("t-test needs at least 2 observations per group, got %d and %d", len(x), len(y))
	}

	nx, ny := float64(len(x)), float64(len(y))
	mx, my := stat.Mean(x, nil), stat.Mean(y, nil)
	vx, vy := stat.Variance(x, nil), stat.Variance(y, nil)

	sx, sy := vx/nx, vy/ny
	se := math.Sqrt(sx + sy)
	if se == 0 {
		return nil, fmt.Errorf("t-test: both groups have zero variance")
	}

	diff := mx - my
	t := diff / se
	df := (sx + sy) * (sx + sy) / (sx*sx/(nx-1) + sy*sy/(ny-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}

	res := &TTestResult{
		Alt: alt, T: t, DF: df,
		MeanX: mx, MeanY: my, Diff: diff,
		ConfLevel: 0.95,
	}
	switch alt {
	case Less:
		res.P = dist.CDF(t)
		res.ConfLower = math.Inf(-1)
		res.ConfUpper = diff + dist.Quantile(0.95)*se
	case Greater:
		res.P = 1 - dist.CDF(t)
		res.ConfLower = diff - dist.Quantile(0.95)*se
		res.ConfUpper = math.Inf(1)
	default:
		res.P = 2 * dist.CDF(-math.Abs(t))
		q := dist.Quantile(0.975)
		res.ConfLower = diff - q*se
		res.ConfUpper = diff + q*se
	}
	return res, nil
}
