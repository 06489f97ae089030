// Package report runs the statistical procedures over the analysis table
// and renders the human-readable output: printed summaries, a per-continent
// table, a CSV export, and plots.
package report

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/anrid/world-stats/pkg/analysis"
	"github.com/anrid/world-stats/pkg/derive"
)

// Config controls a report run. Seed fixes the resampling procedures so the
// same inputs reproduce the same report.
type Config struct {
	Seed       int64
	Iterations int
	Alpha      float64
}

func DefaultConfig() Config {
	return Config{Seed: 42, Iterations: analysis.DefaultIterations, Alpha: 0.05}
}

// Report holds every fitted result of one run.
type Report struct {
	Table       derive.AnalysisTable
	TTest       *analysis.TTestResult
	Bootstrap   *analysis.BootstrapResult
	Correlation *analysis.CorrelationResult
	Permutation *analysis.PermutationResult
	FullModel   *analysis.Model
	FinalModel  *analysis.Model
	Steps       []analysis.EliminationStep
}

// Run executes the full battery:
//
//   - one-sided Welch t-test of log GNI, rural vs non-rural countries
//   - bootstrap lower bound for the difference of group means
//   - Pearson test of log infant mortality against log GNI
//   - permutation test of the same correlation
//   - least-squares fit of log GNI on the remaining indicators plus
//     continent, then backward elimination
func Run(table derive.AnalysisTable, cfg Config) (*Report, error) {
	if len(table) == 0 {
		return nil, fmt.Errorf("report: empty analysis table")
	}

	rep := &Report{Table: table}

	rural, nonRural := table.Split(func(r derive.AnalysisRow) float64 { return r.LogGNI })

	var err error
	if rep.TTest, err = analysis.WelchTTest(rural, nonRural, analysis.Less); err != nil {
		return nil, err
	}
	if rep.Bootstrap, err = analysis.BootstrapDiffCI(rural, nonRural, cfg.Iterations, cfg.Seed); err != nil {
		return nil, err
	}

	logMort := table.Column(func(r derive.AnalysisRow) float64 { return r.LogInfantMortality })
	logGNI := table.Column(func(r derive.AnalysisRow) float64 { return r.LogGNI })

	if rep.Correlation, err = analysis.PearsonTest(logMort, logGNI); err != nil {
		return nil, err
	}
	if rep.Permutation, err = analysis.PermutationTest(logMort, logGNI, cfg.Iterations, cfg.Seed+1); err != nil {
		return nil, err
	}

	preds := predictors(table)
	if rep.FullModel, err = analysis.OLS("LogGNI", logGNI, preds); err != nil {
		return nil, err
	}
	if rep.FinalModel, rep.Steps, err = analysis.BackwardEliminate("LogGNI", logGNI, preds, cfg.Alpha); err != nil {
		return nil, err
	}
	return rep, nil
}

func predictors(table derive.AnalysisTable) []analysis.Predictor {
	ruralFlag := make([]float64, len(table))
	continents := make([]string, len(table))
	for i, r := range table {
		if r.Rural {
			ruralFlag[i] = 1
		}
		continents[i] = r.Continent
	}

	col := table.Column
	return []analysis.Predictor{
		analysis.Continuous("LogImports", col(func(r derive.AnalysisRow) float64 { return r.LogImports })),
		analysis.Continuous("LogExports", col(func(r derive.AnalysisRow) float64 { return r.LogExports })),
		analysis.Continuous("Fertility1960", col(func(r derive.AnalysisRow) float64 { return r.Fertility1960 })),
		analysis.Continuous("Fertility2013", col(func(r derive.AnalysisRow) float64 { return r.Fertility2013 })),
		analysis.Continuous("LogInfantMortality", col(func(r derive.AnalysisRow) float64 { return r.LogInfantMortality })),
		analysis.Continuous("Rural", ruralFlag),
		analysis.Categorical("Continent", continents),
	}
}

// Print writes the report's statistical summaries.
func (rep *Report) Print(w io.Writer) {
	// New locale number printer.
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "\nCountries in analysis: %d\n", len(rep.Table))

	t := rep.TTest
	p.Fprintf(w, "\nWelch t-test, log GNI per capita, rural vs non-rural (alternative: %s)\n", t.Alt)
	p.Fprintf(w, "  t = %.4f  df = %.2f  p = %.6f\n", t.T, t.DF, t.P)
	p.Fprintf(w, "  mean rural = %.4f  mean non-rural = %.4f  diff = %.4f\n", t.MeanX, t.MeanY, t.Diff)
	p.Fprintf(w, "  %.0f%% confidence bound: (%.4f, %.4f)\n", t.ConfLevel*100, t.ConfLower, t.ConfUpper)

	b := rep.Bootstrap
	p.Fprintf(w, "\nBootstrap (%d iterations, seed %d)\n", b.Iterations, b.Seed)
	p.Fprintf(w, "  observed diff of means = %.4f\n", b.Observed)
	p.Fprintf(w, "  empirical 5th percentile lower bound = %.4f\n", b.Lower)

	c := rep.Correlation
	p.Fprintf(w, "\nPearson correlation, log infant mortality vs log GNI (n = %d)\n", c.N)
	p.Fprintf(w, "  r = %.4f  t = %.4f  df = %.0f  p = %.6f\n", c.R, c.T, c.DF, c.P)
	p.Fprintf(w, "  %.0f%% CI: (%.4f, %.4f)\n", c.ConfLevel*100, c.ConfLower, c.ConfUpper)

	pm := rep.Permutation
	p.Fprintf(w, "\nPermutation test (%d iterations, seed %d)\n", pm.Iterations, pm.Seed)
	p.Fprintf(w, "  observed r = %.4f  extreme permutations = %d  p = %.6f\n", pm.Observed, pm.Extreme, pm.P)

	p.Fprintf(w, "\nFull model\n")
	printModel(p, w, rep.FullModel)

	for _, s := range rep.Steps {
		p.Fprintf(w, "\nDropped %s (p = %.4f)\n", s.Removed, s.P)
	}

	p.Fprintf(w, "\nFinal model\n")
	printModel(p, w, rep.FinalModel)
}

func printModel(p *message.Printer, w io.Writer, m *analysis.Model) {
	p.Fprintf(w, "  response: %s  n = %d  df = %d\n", m.Response, m.N, m.DF)
	p.Fprintf(w, "  R² = %.4f  adjusted R² = %.4f  residual SE = %.4f\n", m.R2, m.AdjR2, m.Sigma)
	p.Fprintf(w, "  %-22s %12s %12s %8s %10s\n", "coefficient", "estimate", "std error", "t", "p")
	for _, c := range m.Coefficients {
		p.Fprintf(w, "  %-22s %12.4f %12.4f %8.3f %10.6f\n", c.Name, c.Estimate, c.StdErr, c.T, c.P)
	}
}
