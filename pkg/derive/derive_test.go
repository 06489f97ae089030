package derive

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anrid/world-stats/pkg/dataset"
)

func TestRuralFlag(t *testing.T) {
	cases := []struct {
		pct  float64
		want bool
	}{
		{49.9999, false},
		{50, false},
		{50.0001, true},
		{60, true},
		{0, false},
		{100, true},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, RuralFlag(tc.pct), "rural pct %v", tc.pct)
	}
}

func TestLogRoundTrip(t *testing.T) {
	for _, v := range []float64{0.0001, 0.5, 1, 2.718281828, 100, 48_500} {
		logged, err := Log("Chad", "GNI", v)
		require.NoError(t, err)
		assert.InDelta(t, v, math.Exp(logged), v*1e-12)
	}
}

func TestLogRejectsNonPositive(t *testing.T) {
	for _, v := range []float64{0, -1, -0.0001} {
		_, err := Log("Chad", "GNI", v)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrNonPositive)
	}
}

func fullRow(country string, ruralPct float64) *dataset.Row {
	return &dataset.Row{
		Country:         country,
		GNI:             dataset.Float(1000),
		Imports:         dataset.Float(40),
		Exports:         dataset.Float(30),
		Fertility1960:   dataset.Float(6.5),
		Fertility2013:   dataset.Float(4.2),
		InfantMortality: dataset.Float(85),
		RuralPct:        dataset.Float(ruralPct),
	}
}

func TestBuildAnalysisTableEndToEnd(t *testing.T) {
	membership := []string{"AFRICA", "Chad"}

	incomplete := fullRow("Niger", 40)
	incomplete.GNI = nil

	rows := dataset.Table{
		incomplete,           // dropped: missing GNI
		fullRow("Aruba", 55), // dropped: not in membership list, resolves to Other
		fullRow("Chad", 60),  // kept
	}

	table, err := BuildAnalysisTable(rows, membership)
	require.NoError(t, err)
	require.Len(t, table, 1)

	got := table[0]
	assert.Equal(t, "Chad", got.Country)
	assert.Equal(t, "Africa", got.Continent)
	assert.True(t, got.Rural)
	assert.InDelta(t, math.Log(1000), got.LogGNI, 1e-12)
	assert.InDelta(t, math.Log(85), got.LogInfantMortality, 1e-12)
	assert.Equal(t, 6.5, got.Fertility1960)
	assert.Equal(t, 4.2, got.Fertility2013)
}

func TestBuildAnalysisTableDropsMissingEvenWhenListed(t *testing.T) {
	membership := []string{"AFRICA", "Chad"}

	row := fullRow("Chad", 60)
	row.RuralPct = nil

	table, err := BuildAnalysisTable(dataset.Table{row}, membership)
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestBuildAnalysisTableDropsOtherRegardlessOfCompleteness(t *testing.T) {
	table, err := BuildAnalysisTable(dataset.Table{fullRow("Aruba", 55)}, []string{"AFRICA", "Chad"})
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestBuildAnalysisTableFailsOnCorruptMembership(t *testing.T) {
	_, err := BuildAnalysisTable(dataset.Table{fullRow("Chad", 60)}, []string{"Chad", "AFRICA"})
	require.Error(t, err)
}

func TestBuildAnalysisTableFailsOnNonPositiveLogInput(t *testing.T) {
	row := fullRow("Chad", 60)
	row.Imports = dataset.Float(0)

	_, err := BuildAnalysisTable(dataset.Table{row}, []string{"AFRICA", "Chad"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonPositive)
}

func TestSplitAndColumn(t *testing.T) {
	table := AnalysisTable{
		{Country: "A", Rural: true, LogGNI: 1},
		{Country: "B", Rural: false, LogGNI: 2},
		{Country: "C", Rural: true, LogGNI: 3},
	}

	rural, nonRural := table.Split(func(r AnalysisRow) float64 { return r.LogGNI })
	assert.Equal(t, []float64{1, 3}, rural)
	assert.Equal(t, []float64{2}, nonRural)

	col := table.Column(func(r AnalysisRow) float64 { return r.LogGNI })
	assert.Equal(t, []float64{1, 2, 3}, col)
}
