package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cx-miguel-neiva/bench-report/internal/chart"
	"github.com/cx-miguel-neiva/bench-report/internal/normalized"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func chartCmd() *cobra.Command {
	var testsPath, benchmarksPath, outDir, assetsHost string

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render HTML charts from converted CSV tables",
		Long: `Read the CSV tables written by gtest, gbench or convert and render them as
standalone HTML pages: a bar chart of test execution times coloured by status and
a line chart of benchmark time per iteration.`,
		Example: `  bench-report chart --tests gtest_processed.csv --benchmarks benchmark_processed.csv --out-dir charts`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if testsPath == "" && benchmarksPath == "" {
				return fmt.Errorf("at least one of --tests or --benchmarks is required")
			}
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			o := chart.Options{AssetsHost: assetsHost}

			if testsPath != "" {
				records, err := normalized.ReadTestRecords(testsPath)
				if err != nil {
					return err
				}
				out := filepath.Join(outDir, chart.DefaultTestsFile)
				if err := chart.WriteTestsFile(out, records, o); err != nil {
					return err
				}
				log.Info().Str("source", testsPath).Str("output", out).Msg("Test chart written")
			}

			if benchmarksPath != "" {
				records, err := normalized.ReadBenchmarkRecords(benchmarksPath)
				if err != nil {
					return err
				}
				out := filepath.Join(outDir, chart.DefaultBenchmarksFile)
				if err := chart.WriteBenchmarksFile(out, records, o); err != nil {
					return err
				}
				log.Info().Str("source", benchmarksPath).Str("output", out).Msg("Benchmark chart written")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&testsPath, "tests", "", "Path to the test CSV table")
	cmd.Flags().StringVar(&benchmarksPath, "benchmarks", "", "Path to the benchmark CSV table")
	cmd.Flags().StringVar(&outDir, "out-dir", ".", "Directory to write the HTML pages into")
	cmd.Flags().StringVar(&assetsHost, "assets-host", "", "Host the chart pages load echarts from")

	return cmd
}
