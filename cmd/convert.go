package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cx-miguel-neiva/bench-report/internal/chart"
	"github.com/cx-miguel-neiva/bench-report/internal/config"
	"github.com/cx-miguel-neiva/bench-report/internal/handler/gbench"
	"github.com/cx-miguel-neiva/bench-report/internal/model"
	"github.com/cx-miguel-neiva/bench-report/internal/pipeline"
	"github.com/cx-miguel-neiva/bench-report/internal/upload"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// conversion holds what one convert run produced.
type conversion struct {
	unit       model.TimeUnit
	tests      []model.TestRecord
	benchmarks []model.BenchmarkRecord
	outputs    []string
}

func convertCmd() *cobra.Command {
	var parallel, quiet bool
	var runID string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Run both report conversions and optionally chart, store and publish the results",
		Long: `Convert the test report and the benchmark report configured in the config file,
environment or flags. Tests are converted first, then benchmarks; a failure stops the run.

Examples:
  # Convert both reports with the default file names
  bench-report convert --tests test_results.xml --benchmarks benchmark_results.json

  # Also render charts and store a snapshot in SQLite
  bench-report convert --config bench-report.yaml --charts-dir out/charts --db out/bench.db

  # Publish every output to S3 under a run id
  bench-report convert --config bench-report.yaml --upload --run-id nightly-42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(vConfig)
			if err != nil {
				return err
			}

			var uploader upload.Uploader
			if cfg.Upload.Enabled {
				uploader, err = upload.NewS3Uploader(&cfg.Upload.S3)
				if err != nil {
					return fmt.Errorf("failed to create uploader: %w", err)
				}
				if err := uploader.Preflight(cmd.Context()); err != nil {
					return fmt.Errorf("upload preflight failed: %w", err)
				}
			}

			result, err := runConversions(cmd.Context(), cfg, parallel)
			if err != nil {
				return err
			}

			if !quiet {
				if cfg.GTest.Path != "" {
					printTests(cmd, result.tests)
				}
				if cfg.GBench.Path != "" {
					printBenchmarks(cmd, result.unit, result.benchmarks)
				}
			}

			if cfg.Chart.Dir != "" {
				files, err := writeCharts(cfg, result)
				if err != nil {
					return err
				}
				result.outputs = append(result.outputs, files...)
			}

			if cfg.DB != "" {
				if err := storeSnapshot(cfg, result); err != nil {
					return err
				}
				result.outputs = append(result.outputs, cfg.DB)
			}

			if uploader != nil {
				if runID == "" {
					runID = time.Now().UTC().Format("20060102T150405Z")
				}
				keys, err := uploader.Upload(cmd.Context(), runID, result.outputs)
				if err != nil {
					return fmt.Errorf("failed to upload outputs: %w", err)
				}
				for _, key := range keys {
					log.Debug().Str("key", key).Msg("Uploaded")
				}
			}

			return nil
		},
	}

	cmd.Flags().String("tests", "", "Path to the XML test report")
	cmd.Flags().String("tests-out", config.DefaultTestsOutput, "Path to save the test CSV table")
	cmd.Flags().String("benchmarks", "", "Path to the JSON benchmark report")
	cmd.Flags().String("benchmarks-out", config.DefaultBenchmarksOutput, "Path to save the benchmark CSV table")
	cmd.Flags().String("time-unit", string(model.DefaultTimeUnit), "Unit of real_time in the benchmark report (ns, us, ms, s)")
	cmd.Flags().String("charts-dir", "", "Directory to write HTML charts into (disabled when empty)")
	cmd.Flags().String("assets-host", "", "Host the chart pages load echarts from")
	cmd.Flags().String("db", "", "SQLite file to store the converted records in (disabled when empty)")
	cmd.Flags().Bool("upload", false, "Publish the outputs to the configured S3 bucket")
	cmd.Flags().StringVar(&runID, "run-id", "", "Key segment for uploaded outputs (defaults to a UTC timestamp)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Run both conversions concurrently")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Do not print the converted tables")

	for key, flag := range map[string]string{
		"gtest.path":         "tests",
		"gtest.report_path":  "tests-out",
		"gbench.path":        "benchmarks",
		"gbench.report_path": "benchmarks-out",
		"gbench.time_unit":   "time-unit",
		"chart.dir":          "charts-dir",
		"chart.assets_host":  "assets-host",
		"db":                 "db",
		"upload.enabled":     "upload",
	} {
		cobra.CheckErr(vConfig.BindPFlag(key, cmd.Flags().Lookup(flag)))
	}

	return cmd
}

// runConversions runs the configured pipelines, one at a time unless parallel is set.
func runConversions(ctx context.Context, cfg *config.Config, parallel bool) (*conversion, error) {
	unit, err := cfg.TimeUnit()
	if err != nil {
		return nil, err
	}
	result := &conversion{unit: unit}

	for _, path := range []string{cfg.GTest.ReportPath, cfg.GBench.ReportPath} {
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(1)
	if parallel {
		g.SetLimit(2)
	}

	if cfg.GTest.Path != "" {
		g.Go(func() error {
			records, err := pipeline.ConvertTests(cfg.GTest.Path, cfg.GTest.ReportPath)
			if err != nil {
				return err
			}
			result.tests = records
			return nil
		})
	}

	if cfg.GBench.Path != "" {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, err := pipeline.ConvertBenchmarks(cfg.GBench.Path, cfg.GBench.ReportPath, gbench.Options{TimeUnit: unit})
			if err != nil {
				return err
			}
			result.benchmarks = records
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if cfg.GTest.Path != "" {
		result.outputs = append(result.outputs, cfg.GTest.ReportPath)
	}
	if cfg.GBench.Path != "" {
		result.outputs = append(result.outputs, cfg.GBench.ReportPath)
	}

	return result, nil
}

func writeCharts(cfg *config.Config, result *conversion) ([]string, error) {
	if err := os.MkdirAll(cfg.Chart.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create charts directory: %w", err)
	}
	o := chart.Options{AssetsHost: cfg.Chart.AssetsHost}

	var files []string
	if cfg.GTest.Path != "" {
		path := filepath.Join(cfg.Chart.Dir, chart.DefaultTestsFile)
		if err := chart.WriteTestsFile(path, result.tests, o); err != nil {
			return nil, err
		}
		files = append(files, path)
	}
	if cfg.GBench.Path != "" {
		path := filepath.Join(cfg.Chart.Dir, chart.DefaultBenchmarksFile)
		if err := chart.WriteBenchmarksFile(path, result.benchmarks, o); err != nil {
			return nil, err
		}
		files = append(files, path)
	}

	log.Info().Str("dir", cfg.Chart.Dir).Int("charts", len(files)).Msg("Charts written")
	return files, nil
}

func storeSnapshot(cfg *config.Config, result *conversion) error {
	conn, err := openDatabase(cfg.DB)
	if err != nil {
		return err
	}
	defer conn.Close()

	if cfg.GTest.Path != "" {
		n, err := conn.SeedTests(result.tests)
		if err != nil {
			return fmt.Errorf("failed to store test results: %w", err)
		}
		log.Info().Str("db", cfg.DB).Int("records", n).Msg("Stored test results")
	}
	if cfg.GBench.Path != "" {
		n, err := conn.SeedBenchmarks(result.benchmarks)
		if err != nil {
			return fmt.Errorf("failed to store benchmark results: %w", err)
		}
		log.Info().Str("db", cfg.DB).Int("records", n).Msg("Stored benchmark results")
	}

	return nil
}
