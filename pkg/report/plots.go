package report

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/anrid/world-stats/pkg/derive"
)

// SavePlots renders every figure of the report into dir as PNG files:
// a box plot of log GNI by rural flag, normal QQ plots per group, a scatter
// of log infant mortality against log GNI, and histograms of GNI before and
// after the log transform.
func SavePlots(table derive.AnalysisTable, dir string) error {
	rural, nonRural := table.Split(func(r derive.AnalysisRow) float64 { return r.LogGNI })

	if err := boxPlot(rural, nonRural, filepath.Join(dir, "loggni_by_rural_box.png")); err != nil {
		return err
	}
	if err := qqPlot(rural, "log GNI, rural countries", filepath.Join(dir, "qq_rural.png")); err != nil {
		return err
	}
	if err := qqPlot(nonRural, "log GNI, non-rural countries", filepath.Join(dir, "qq_nonrural.png")); err != nil {
		return err
	}

	logMort := table.Column(func(r derive.AnalysisRow) float64 { return r.LogInfantMortality })
	logGNI := table.Column(func(r derive.AnalysisRow) float64 { return r.LogGNI })
	if err := scatterPlot(logMort, logGNI, filepath.Join(dir, "mortality_vs_gni.png")); err != nil {
		return err
	}

	gni := make([]float64, len(logGNI))
	for i, v := range logGNI {
		gni[i] = math.Exp(v)
	}
	if err := histogram(gni, "GNI per capita", filepath.Join(dir, "gni_hist.png")); err != nil {
		return err
	}
	return histogram(logGNI, "log GNI per capita", filepath.Join(dir, "loggni_hist.png"))
}

func boxPlot(rural, nonRural []float64, path string) error {
	p := plot.New()
	p.Title.Text = "Log GNI per capita by rural majority"
	p.Y.Label.Text = "log GNI per capita"

	b0, err := plotter.NewBoxPlot(vg.Points(40), 0, plotter.Values(nonRural))
	if err != nil {
		return fmt.Errorf("box plot: %w", err)
	}
	b1, err := plotter.NewBoxPlot(vg.Points(40), 1, plotter.Values(rural))
	if err != nil {
		return fmt.Errorf("box plot: %w", err)
	}
	p.Add(b0, b1)
	p.NominalX("non-rural", "rural")

	return savePlot(p, path)
}

func qqPlot(sample []float64, title, path string) error {
	n := len(sample)
	if n < 3 {
		return fmt.Errorf("qq plot: need at least 3 values, got %d", n)
	}

	sorted := append([]float64(nil), sample...)
	sort.Float64s(sorted)
	mean := stat.Mean(sorted, nil)
	sd := stat.StdDev(sorted, nil)

	pts := make(plotter.XYs, n)
	for i, v := range sorted {
		pts[i].X = distuv.UnitNormal.Quantile((float64(i) + 0.5) / float64(n))
		pts[i].Y = (v - mean) / sd
	}

	p := plot.New()
	p.Title.Text = "Normal QQ: " + title
	p.X.Label.Text = "theoretical quantiles"
	p.Y.Label.Text = "standardized sample quantiles"

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("qq plot: %w", err)
	}

	lo, hi := pts[0].X, pts[n-1].X
	line, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return fmt.Errorf("qq plot: %w", err)
	}

	p.Add(s, line)
	return savePlot(p, path)
}

func scatterPlot(x, y []float64, path string) error {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}

	p := plot.New()
	p.Title.Text = "Log GNI vs log infant mortality"
	p.X.Label.Text = "log infant mortality"
	p.Y.Label.Text = "log GNI per capita"

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("scatter plot: %w", err)
	}
	p.Add(s)
	return savePlot(p, path)
}

func histogram(values []float64, label, path string) error {
	p := plot.New()
	p.Title.Text = "Distribution of " + label
	p.X.Label.Text = label

	h, err := plotter.NewHist(plotter.Values(values), 16)
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	p.Add(h)
	return savePlot(p, path)
}

func savePlot(p *plot.Plot, path string) error {
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
