// Package derive builds the analysis table: continent labels, the rural
// flag, log transforms, and the row filtering that drops incomplete
// countries and dependent territories.
package derive

import (
	"errors"
	"fmt"
	"math"

	"github.com/anrid/world-stats/pkg/continent"
	"github.com/anrid/world-stats/pkg/dataset"
)

// ErrNonPositive is returned when a value headed for a log transform is
// zero or negative. GNI, trade shares and mortality rates are strictly
// positive in valid rows, so this means bad source data, and failing beats
// feeding -Inf into the tests downstream.
var ErrNonPositive = errors.New("non-positive value in log-transformed column")

// AnalysisRow is one complete, filtered observation. Log columns hold
// natural logs of the raw indicator.
type AnalysisRow struct {
	Country            string
	Continent          string
	Rural              bool
	LogGNI             float64
	LogImports         float64
	LogExports         float64
	Fertility1960      float64
	Fertility2013      float64
	LogInfantMortality float64
}

// AnalysisTable is the final read-only input to the statistical procedures.
type AnalysisTable []AnalysisRow

// RuralFlag reports whether a country's population is majority rural.
// Exactly 50% is not a majority.
func RuralFlag(ruralPct float64) bool {
	return ruralPct > 50
}

// Log transforms a strictly positive indicator value.
func Log(country, field string, v float64) (float64, error) {
	if v <= 0 {
		return 0, fmt.Errorf("%s %s = %v: %w", country, field, v, ErrNonPositive)
	}
	return math.Log(v), nil
}

// BuildAnalysisTable resolves each row's continent against the normalized
// membership list, then derives the analysis columns. Rows missing any
// selected field are dropped, as are rows resolving to Other; both are
// expected and silent. A corrupt membership list or a non-positive value in
// a log column is an error.
func BuildAnalysisTable(rows dataset.Table, membership []string) (AnalysisTable, error) {
	var out AnalysisTable

	for _, r := range rows {
		label, err := continent.Resolve(r.Country, membership)
		if err != nil {
			return nil, err
		}
		if label == continent.Other {
			continue
		}
		if anyMissing(r.GNI, r.Imports, r.Exports, r.Fertility1960, r.Fertility2013, r.InfantMortality, r.RuralPct) {
			continue
		}

		a := AnalysisRow{
			Country:       r.Country,
			Continent:     label,
			Rural:         RuralFlag(*r.RuralPct),
			Fertility1960: *r.Fertility1960,
			Fertility2013: *r.Fertility2013,
		}
		if a.LogGNI, err = Log(r.Country, "GNI", *r.GNI); err != nil {
			return nil, err
		}
		if a.LogImports, err = Log(r.Country, "Imports", *r.Imports); err != nil {
			return nil, err
		}
		if a.LogExports, err = Log(r.Country, "Exports", *r.Exports); err != nil {
			return nil, err
		}
		if a.LogInfantMortality, err = Log(r.Country, "InfantMortality", *r.InfantMortality); err != nil {
			return nil, err
		}

		out = append(out, a)
	}
	return out, nil
}

func anyMissing(vs ...*float64) bool {
	for _, v := range vs {
		if v == nil {
			return true
		}
	}
	return false
}

// Split partitions a column by the rural flag, rural group first.
func (t AnalysisTable) Split(col func(AnalysisRow) float64) (rural, nonRural []float64) {
	for _, r := range t {
		if r.Rural {
			rural = append(rural, col(r))
		} else {
			nonRural = append(nonRural, col(r))
		}
	}
	return rural, nonRural
}

// Column extracts one numeric column in table order.
func (t AnalysisTable) Column(col func(AnalysisRow) float64) []float64 {
	out := make([]float64, len(t))
	for i, r := range t {
		out[i] = col(r)
	}
	return out
}
