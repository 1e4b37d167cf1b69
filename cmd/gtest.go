package cmd

import (
	"fmt"

	"github.com/cx-miguel-neiva/bench-report/internal/config"
	"github.com/cx-miguel-neiva/bench-report/internal/model"
	"github.com/cx-miguel-neiva/bench-report/internal/pipeline"
	"github.com/cx-miguel-neiva/bench-report/internal/preview"
	"github.com/spf13/cobra"
)

func gtestCmd() *cobra.Command {
	var path, reportPath string
	var quiet bool

	cmd := &cobra.Command{
		Use:   "gtest",
		Short: "Convert a Google Test XML report into CSV",
		Example: `  bench-report gtest --path test_results.xml
  bench-report gtest --path build/test_results.xml.gz --report-path out/gtest.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				return fmt.Errorf("report path is required (use --path)")
			}
			if err := ensureParentDir(reportPath); err != nil {
				return err
			}

			records, err := pipeline.ConvertTests(path, reportPath)
			if err != nil {
				return err
			}

			if !quiet {
				printTests(cmd, records)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Path to the XML test report (.gz and .zst are decompressed)")
	cmd.Flags().StringVar(&reportPath, "report-path", config.DefaultTestsOutput, "Path to save the CSV table")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Do not print the converted table")

	return cmd
}

func printTests(cmd *cobra.Command, records []model.TestRecord) {
	fmt.Fprintln(cmd.OutOrStdout(), "Google Test Data:")
	fmt.Fprintln(cmd.OutOrStdout(), preview.Render(model.TestColumns(), preview.TestRows(records)))
}
