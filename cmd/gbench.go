package cmd

import (
	"fmt"

	"github.com/cx-miguel-neiva/bench-report/internal/config"
	"github.com/cx-miguel-neiva/bench-report/internal/handler/gbench"
	"github.com/cx-miguel-neiva/bench-report/internal/model"
	"github.com/cx-miguel-neiva/bench-report/internal/pipeline"
	"github.com/cx-miguel-neiva/bench-report/internal/preview"
	"github.com/spf13/cobra"
)

func gbenchCmd() *cobra.Command {
	var path, reportPath, timeUnit string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "gbench",
		Short: "Convert a Google Benchmark JSON report into CSV",
		Example: `  bench-report gbench --path benchmark_results.json
  bench-report gbench --path bench.json --time-unit us --report-path out/bench.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				return fmt.Errorf("report path is required (use --path)")
			}

			unit, err := model.ParseTimeUnit(timeUnit)
			if err != nil {
				return err
			}
			if err := ensureParentDir(reportPath); err != nil {
				return err
			}

			records, err := pipeline.ConvertBenchmarks(path, reportPath, gbench.Options{TimeUnit: unit})
			if err != nil {
				return err
			}

			if !quiet {
				printBenchmarks(cmd, unit, records)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Path to the JSON benchmark report (.gz and .zst are decompressed)")
	cmd.Flags().StringVar(&reportPath, "report-path", config.DefaultBenchmarksOutput, "Path to save the CSV table")
	cmd.Flags().StringVar(&timeUnit, "time-unit", string(model.DefaultTimeUnit), "Unit of real_time in the report (ns, us, ms, s)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Do not print the converted table")

	return cmd
}

func printBenchmarks(cmd *cobra.Command, unit model.TimeUnit, records []model.BenchmarkRecord) {
	fmt.Fprintln(cmd.OutOrStdout(), "Google Benchmark Data:")
	fmt.Fprintln(cmd.OutOrStdout(), preview.Render(model.BenchmarkColumns(unit), preview.BenchmarkRows(records)))
}
