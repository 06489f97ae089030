package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anrid/world-stats/pkg/analysis"
	"github.com/anrid/world-stats/pkg/continent"
	"github.com/anrid/world-stats/pkg/dataset"
	"github.com/anrid/world-stats/pkg/derive"
	"github.com/anrid/world-stats/pkg/report"
)

const defaultDatabase = "/tmp/world-stats.json"

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	root := &cobra.Command{
		Use:           "worldstats",
		Short:         "Country development indicators: dataset builder and analysis report",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(createCmd(logger.Sugar()), reportCmd(logger.Sugar()))

	if err := root.Execute(); err != nil {
		logger.Sugar().Errorw("run failed", "error", err)
		os.Exit(1)
	}
}

func createCmd(log *zap.SugaredLogger) *cobra.Command {
	var dataSource, membersURL, dbFile string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Load the indicator table, scrape the continent membership list and save a snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, found, err := dataset.LoadIfExists(dbFile)
			if err != nil {
				return err
			}
			if found {
				log.Infow("snapshot already exists, leaving it alone", "db", dbFile)
				db.Info()
				return nil
			}

			fetcher := dataset.NewFetcher(log)

			file := &dataset.File{Title: "country indicators"}
			if strings.HasPrefix(dataSource, "http://") || strings.HasPrefix(dataSource, "https://") {
				file.URL = dataSource
				err = file.DownloadContent(fetcher)
			} else {
				file.URL = dataSource
				err = file.ReadContent(dataSource)
			}
			if err != nil {
				return err
			}

			builder := dataset.NewTableBuilder()
			if err := dataset.ExtractDataFromFile(file, builder.Add); err != nil {
				return err
			}
			rows, err := builder.Table()
			if err != nil {
				return err
			}

			html, err := fetcher.Get(membersURL)
			if err != nil {
				return err
			}
			tokens := continent.Normalize(continent.FlattenHTML(string(html)), continent.DefaultRewriteRules)
			if err := continent.CheckIntegrity(tokens); err != nil {
				// Resolution is first-match and tolerates duplicates; only
				// warn here so a slightly messy page still produces a snapshot.
				log.Warnw("membership list integrity", "error", err)
			}

			db = &dataset.Database{
				DataSource:    dataSource,
				MembershipURL: membersURL,
				Rows:          rows,
				Membership:    tokens,
				Downloaded:    time.Now().UTC(),
			}
			if err := db.Save(dbFile); err != nil {
				return err
			}

			db.Info()
			return nil
		},
	}

	cmd.Flags().StringVar(&dataSource, "data", "", "indicator table: local path or URL (.xlsx, .xls or CSV)")
	cmd.Flags().StringVar(&membersURL, "members", "", "URL of the nations-by-continent page")
	cmd.Flags().StringVar(&dbFile, "db", defaultDatabase, "snapshot database file")
	cmd.MarkFlagRequired("data")
	cmd.MarkFlagRequired("members")
	return cmd
}

func reportCmd(log *zap.SugaredLogger) *cobra.Command {
	var dbFile, outDir string
	var seed int64
	var iters int
	var alpha float64
	var debug bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the analysis over a snapshot and write the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, found, err := dataset.LoadIfExists(dbFile)
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no database found at %s, run `worldstats create` first", dbFile)
			}
			db.Info()

			table, err := derive.BuildAnalysisTable(db.Rows, db.Membership)
			if err != nil {
				return err
			}
			log.Infow("analysis table built", "countries", len(table), "dropped", len(db.Rows)-len(table))

			rep, err := report.Run(table, report.Config{Seed: seed, Iterations: iters, Alpha: alpha})
			if err != nil {
				return err
			}

			if err := report.PrintSummary(os.Stdout, table); err != nil {
				return err
			}
			rep.Print(os.Stdout)

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating %s: %w", outDir, err)
			}
			if err := report.WriteCSV(table, filepath.Join(outDir, "analysis.csv")); err != nil {
				return err
			}
			if err := report.SavePlots(table, outDir); err != nil {
				return err
			}
			log.Infow("report written", "dir", outDir)

			if debug {
				spew.Dump(rep.FinalModel)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbFile, "db", defaultDatabase, "snapshot database file")
	cmd.Flags().StringVar(&outDir, "out", "report", "output directory for CSV and plots")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed for bootstrap and permutation")
	cmd.Flags().IntVar(&iters, "iters", analysis.DefaultIterations, "resampling iterations")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "significance threshold for backward elimination")
	cmd.Flags().BoolVar(&debug, "debug", false, "dump the final fitted model")
	return cmd
}
