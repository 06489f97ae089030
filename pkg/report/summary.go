package report

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"

	"github.com/anrid/world-stats/pkg/derive"
)

// ContinentSummary groups the analysis table by continent and reports count
// and mean of the log-transformed outcome columns.
func ContinentSummary(table derive.AnalysisTable) dataframe.DataFrame {
	df := dataframe.LoadStructs(table)
	grouped := df.GroupBy("Continent")
	agg := grouped.Aggregation(
		[]dataframe.AggregationType{
			dataframe.Aggregation_COUNT,
			dataframe.Aggregation_MEAN,
			dataframe.Aggregation_MEAN,
		},
		[]string{"LogGNI", "LogGNI", "LogInfantMortality"},
	)
	return agg.Arrange(dataframe.Sort("Continent"))
}

// PrintSummary writes the per-continent summary table.
func PrintSummary(w io.Writer, table derive.AnalysisTable) error {
	df := ContinentSummary(table)
	if df.Err != nil {
		return fmt.Errorf("continent summary: %w", df.Err)
	}
	fmt.Fprintf(w, "\nBy continent:\n%v\n", df)
	return nil
}

// WriteCSV exports the final analysis table for the written report.
func WriteCSV(table derive.AnalysisTable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	df := dataframe.LoadStructs(table)
	if df.Err != nil {
		return fmt.Errorf("building dataframe: %w", df.Err)
	}
	if err := df.WriteCSV(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
