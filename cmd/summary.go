package cmd

import (
	"fmt"
	"os"

	"github.com/cx-miguel-neiva/bench-report/internal/config"
	"github.com/cx-miguel-neiva/bench-report/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	var dbPath, reportPath string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Export a JSON summary of the stored snapshot",
		Long: `Export pass/fail counts, total test time and benchmark extremes of the snapshot
stored by convert --db or db:seed.

Examples:
  # Print to stdout
  bench-report summary --db data/bench-report.db

  # Save to a file
  bench-report summary --db data/bench-report.db --report-path summary.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(dbPath); os.IsNotExist(err) {
				return fmt.Errorf("database file does not exist at path: %s", dbPath)
			}

			conn, err := openDatabase(dbPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			tests, err := conn.GetTestSummary()
			if err != nil {
				return fmt.Errorf("failed to summarize test results: %w", err)
			}
			benchmarks, err := conn.GetBenchmarkSummary()
			if err != nil {
				return fmt.Errorf("failed to summarize benchmark results: %w", err)
			}

			jsonData, err := model.SummaryToJson(model.Summary{Tests: tests, Benchmarks: benchmarks})
			if err != nil {
				return err
			}

			if reportPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
				return nil
			}

			if err := ensureParentDir(reportPath); err != nil {
				return err
			}
			if err := os.WriteFile(reportPath, jsonData, 0644); err != nil {
				return fmt.Errorf("failed to write JSON to file: %w", err)
			}
			log.Info().Str("output", reportPath).Msg("Summary saved successfully.")
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", config.DefaultDBPath, "Path to the SQLite database file")
	cmd.Flags().StringVar(&reportPath, "report-path", "", "Path to save the JSON output (if empty, prints to stdout)")

	return cmd
}
