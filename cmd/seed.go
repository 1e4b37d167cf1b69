package cmd

import (
	"fmt"

	"github.com/cx-miguel-neiva/bench-report/internal/config"
	"github.com/cx-miguel-neiva/bench-report/internal/normalized"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// dbSeedCmd returns the command that loads converted CSV tables into the snapshot database
func dbSeedCmd() *cobra.Command {
	var dbPath, testsPath, benchmarksPath string
	var clean bool

	cmd := &cobra.Command{
		Use:   "db:seed",
		Short: "Seeds the database from converted CSV tables.",
		Long: `This command reads the CSV tables written by gtest and gbench and stores their rows,
in order, in a SQLite database. Each table replaces the previously stored snapshot of the same kind.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if testsPath == "" && benchmarksPath == "" {
				return fmt.Errorf("at least one of --tests or --benchmarks is required")
			}

			conn, err := openDatabase(dbPath)
			if err != nil {
				return err
			}
			defer conn.Close()

			if clean {
				if err := conn.ClearAllData(); err != nil {
					return fmt.Errorf("failed to clear database: %w", err)
				}
			}

			if testsPath != "" {
				records, err := normalized.ReadTestRecords(testsPath)
				if err != nil {
					return err
				}
				n, err := conn.SeedTests(records)
				if err != nil {
					return fmt.Errorf("failed to seed test results: %w", err)
				}
				log.Info().Str("source", testsPath).Int("records", n).Msg("Seeded test results")
			}

			if benchmarksPath != "" {
				records, err := normalized.ReadBenchmarkRecords(benchmarksPath)
				if err != nil {
					return err
				}
				n, err := conn.SeedBenchmarks(records)
				if err != nil {
					return fmt.Errorf("failed to seed benchmark results: %w", err)
				}
				log.Info().Str("source", benchmarksPath).Int("records", n).Msg("Seeded benchmark results")
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", config.DefaultDBPath, "Path to the SQLite database file")
	cmd.Flags().StringVar(&testsPath, "tests", "", "Path to the test CSV table")
	cmd.Flags().StringVar(&benchmarksPath, "benchmarks", "", "Path to the benchmark CSV table")
	cmd.Flags().BoolVar(&clean, "clean", true, "Clear all data from the database before seeding")

	return cmd
}
