package analysis

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Predictor is one regression term. A continuous predictor carries Values;
// a categorical predictor carries Labels instead and is expanded into
// indicator columns with the alphabetically first level held out as the
// reference.
type Predictor struct {
	Name   string
	Values []float64
	Labels []string
}

func Continuous(name string, values []float64) Predictor {
	return Predictor{Name: name, Values: values}
}

func Categorical(name string, labels []string) Predictor {
	return Predictor{Name: name, Labels: labels}
}

func (p Predictor) categorical() bool { return p.Labels != nil }

func (p Predictor) len() int {
	if p.categorical() {
		return len(p.Labels)
	}
	return len(p.Values)
}

// Coefficient is one row of a fitted model's coefficient table. Term names
// the predictor the coefficient belongs to; for an indicator column Name is
// the predictor name with the level appended.
type Coefficient struct {
	Name     string
	Term     string
	Estimate float64
	StdErr   float64
	T        float64
	P        float64
}

// Model is a fitted least-squares regression.
type Model struct {
	Response     string
	Coefficients []Coefficient // intercept first
	Terms        []string      // predictor names, model order
	N            int
	DF           int
	R2           float64
	AdjR2        float64
	Sigma        float64 // residual standard error
}

// OLS fits an ordinary least-squares regression of y on the predictors,
// with an intercept. Coefficient standard errors come from the unscaled
// covariance matrix (X'X)^-1 times the residual variance.
func OLS(response string, y []float64, preds []Predictor) (*Model, error) {
	n := len(y)
	if n == 0 {
		return nil, fmt.Errorf("regression: empty response")
	}
	for _, p := range preds {
		if p.len() != n {
			return nil, fmt.Errorf("regression: predictor %s has %d observations, response has %d", p.Name, p.len(), n)
		}
	}

	names, terms, cols := expand(preds, n)
	p := len(cols) + 1
	if n <= p {
		return nil, fmt.Errorf("regression: %d observations cannot support %d coefficients", n, p)
	}

	X := mat.NewDense(n, p, nil)
	for i := 0; i < n; i++ {
		X.Set(i, 0, 1)
	}
	for j, col := range cols {
		for i := 0; i < n; i++ {
			X.Set(i, j+1, col[i])
		}
	}
	yVec := mat.NewVecDense(n, y)

	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	var inv mat.Dense
	if err := inv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("regression: singular design matrix (collinear predictors?): %w", err)
	}

	var xty, beta, fitted mat.VecDense
	xty.MulVec(X.T(), yVec)
	beta.MulVec(&inv, &xty)
	fitted.MulVec(X, &beta)

	mean := stat.Mean(y, nil)
	var sse, sst float64
	for i := 0; i < n; i++ {
		r := y[i] - fitted.AtVec(i)
		sse += r * r
		d := y[i] - mean
		sst += d * d
	}

	df := n - p
	sigma2 := sse / float64(df)
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}

	m := &Model{
		Response: response,
		Terms:    termOrder(preds),
		N:        n,
		DF:       df,
		R2:       1 - sse/sst,
		Sigma:    math.Sqrt(sigma2),
	}
	m.AdjR2 = 1 - (1-m.R2)*float64(n-1)/float64(df)

	coefNames := append([]string{"(Intercept)"}, names...)
	coefTerms := append([]string{"(Intercept)"}, terms...)
	for j := 0; j < p; j++ {
		est := beta.AtVec(j)
		se := math.Sqrt(sigma2 * inv.At(j, j))
		t := est / se
		m.Coefficients = append(m.Coefficients, Coefficient{
			Name:     coefNames[j],
			Term:     coefTerms[j],
			Estimate: est,
			StdErr:   se,
			T:        t,
			P:        2 * dist.CDF(-math.Abs(t)),
		})
	}
	return m, nil
}

// expand turns predictors into design columns. Categorical predictors
// become one indicator column per non-reference level.
func expand(preds []Predictor, n int) (names, terms []string, cols [][]float64) {
	for _, p := range preds {
		if !p.categorical() {
			names = append(names, p.Name)
			terms = append(terms, p.Name)
			cols = append(cols, p.Values)
			continue
		}

		levels := uniqueSorted(p.Labels)
		for _, level := range levels[1:] { // levels[0] is the reference
			col := make([]float64, n)
			for i, l := range p.Labels {
				if l == level {
					col[i] = 1
				}
			}
			names = append(names, p.Name+level)
			terms = append(terms, p.Name)
			cols = append(cols, col)
		}
	}
	return names, terms, cols
}

func termOrder(preds []Predictor) []string {
	out := make([]string, len(preds))
	for i, p := range preds {
		out[i] = p.Name
	}
	return out
}

func uniqueSorted(labels []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range labels {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Strings(out)
	return out
}

// TermP returns the p-value representing a whole term: a continuous
// predictor's own p, or the smallest p among a categorical predictor's
// levels. The smallest level p decides whether a categorical predictor
// survives elimination, since the predictor is kept if any level is
// significant.
func (m *Model) TermP(term string) float64 {
	p := math.Inf(1)
	for _, c := range m.Coefficients {
		if c.Term == term && c.P < p {
			p = c.P
		}
	}
	return p
}

// EliminationStep records one round of backward elimination.
type EliminationStep struct {
	Removed string
	P       float64
}

// BackwardEliminate refits the model repeatedly, each round dropping the
// least-significant remaining predictor, until every predictor meets the
// significance threshold. A categorical predictor is dropped or kept as a
// whole: it stays as long as any of its levels is significant.
func BackwardEliminate(response string, y []float64, preds []Predictor, alpha float64) (*Model, []EliminationStep, error) {
	remaining := append([]Predictor(nil), preds...)
	var steps []EliminationStep

	for {
		m, err := OLS(response, y, remaining)
		if err != nil {
			return nil, nil, err
		}

		worst, worstP := -1, alpha
		for i, p := range remaining {
			if tp := m.TermP(p.Name); tp > worstP {
				worst, worstP = i, tp
			}
		}
		if worst < 0 {
			return m, steps, nil
		}

		steps = append(steps, EliminationStep{Removed: remaining[worst].Name, P: worstP})
		remaining = append(remaining[:worst], remaining[worst+1:]...)
		if len(remaining) == 0 {
			m, err := OLS(response, y, nil)
			if err != nil {
				return nil, nil, err
			}
			return m, steps, nil
		}
	}
}
