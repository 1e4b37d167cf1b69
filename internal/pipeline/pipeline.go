// Package pipeline wires the extract, normalize and write stages for each
// report format. Each stage fails fast; nothing is written unless every
// record of the report normalized cleanly.
package pipeline

import (
	"fmt"

	"github.com/cx-miguel-neiva/bench-report/internal/handler"
	"github.com/cx-miguel-neiva/bench-report/internal/handler/gbench"
	"github.com/cx-miguel-neiva/bench-report/internal/handler/gtest"
	"github.com/cx-miguel-neiva/bench-report/internal/model"
	"github.com/cx-miguel-neiva/bench-report/internal/normalized"
	"github.com/cx-miguel-neiva/bench-report/plugins"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ConvertTests converts the unit-test XML report at src into the CSV at dst.
func ConvertTests(src, dst string) ([]model.TestRecord, error) {
	item, err := handler.ReadSource(src)
	if err != nil {
		return nil, err
	}

	logger := reportLogger(item)

	records, err := gtest.ParseReport(item)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize test report %s: %w", src, err)
	}
	logger.Debug().Int("records", len(records)).Msg("Normalized test report")

	if err := normalized.WriteTestRecords(dst, records); err != nil {
		return nil, err
	}
	logger.Info().Str("output", dst).Int("records", len(records)).Msg("Test report converted")

	return records, nil
}

// ConvertBenchmarks converts the benchmark JSON report at src into the CSV at dst.
func ConvertBenchmarks(src, dst string, opts gbench.Options) ([]model.BenchmarkRecord, error) {
	unit := opts.TimeUnit
	if unit == "" {
		unit = model.DefaultTimeUnit
	}

	item, err := handler.ReadSource(src)
	if err != nil {
		return nil, err
	}

	logger := reportLogger(item)

	records, err := gbench.ParseReport(item, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize benchmark report %s: %w", src, err)
	}
	logger.Debug().Int("records", len(records)).Msg("Normalized benchmark report")

	if err := normalized.WriteBenchmarkRecords(dst, unit, records); err != nil {
		return nil, err
	}
	logger.Info().Str("output", dst).Str("unit", string(unit)).Int("records", len(records)).Msg("Benchmark report converted")

	return records, nil
}

// reportLogger tags log lines with the report name and the path it came from.
func reportLogger(item plugins.ISourceItem) zerolog.Logger {
	return log.With().Str("report", item.GetID()).Str("source", item.GetSource()).Logger()
}
