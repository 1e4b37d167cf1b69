// Package chart renders the normalized CSV tables as standalone HTML charts.
package chart

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cx-miguel-neiva/bench-report/internal/model"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	// DefaultTestsFile and DefaultBenchmarksFile are the file names written
	// into the chart output directory.
	DefaultTestsFile      = "gtest_visualization.html"
	DefaultBenchmarksFile = "benchmark_visualization.html"

	testsTitle      = "Google Test Execution Times"
	benchmarksTitle = "Google Benchmark Performance"

	// missing marks a category with no value in a series.
	missing = "-"
)

var statusColors = opts.Colors{"#2ca02c", "#d62728"}

// Options tweak the generated documents.
type Options struct {
	// AssetsHost overrides where the echarts script is loaded from.
	AssetsHost string
}

func (o Options) initialization(title string) opts.Initialization {
	init := opts.Initialization{PageTitle: title, Width: "1200px", Height: "600px"}
	if o.AssetsHost != "" {
		init.AssetsHost = o.AssetsHost
	}
	return init
}

// RenderTests writes a bar chart of test durations. Passed and Failed are
// separate series so bars are coloured by status.
func RenderTests(w io.Writer, records []model.TestRecord, o Options) error {
	names := make([]string, 0, len(records))
	passed := make([]opts.BarData, 0, len(records))
	failed := make([]opts.BarData, 0, len(records))

	for _, r := range records {
		names = append(names, r.Name)
		value := opts.BarData{Name: r.Name, Value: round2(r.DurationMs)}
		gap := opts.BarData{Name: r.Name, Value: missing}
		if r.Status == model.StatusFailed {
			passed = append(passed, gap)
			failed = append(failed, value)
		} else {
			passed = append(passed, value)
			failed = append(failed, gap)
		}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(o.initialization(testsTitle)),
		charts.WithTitleOpts(opts.Title{Title: testsTitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Test Case"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Execution Time (ms)"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithColorsOpts(statusColors),
	)
	bar.SetXAxis(names).
		AddSeries(string(model.StatusPassed), passed).
		AddSeries(string(model.StatusFailed), failed).
		SetSeriesOptions(
			charts.WithBarChartOpts(opts.BarChart{Stack: "status", BarGap: "20%"}),
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "inside"}),
		)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render test chart: %w", err)
	}
	return nil
}

// RenderBenchmarks writes a line chart of time per iteration by benchmark.
func RenderBenchmarks(w io.Writer, records []model.BenchmarkRecord, o Options) error {
	unit := model.DefaultTimeUnit
	if len(records) > 0 {
		unit = records[0].Unit
	}

	names := make([]string, 0, len(records))
	points := make([]opts.LineData, 0, len(records))
	for _, r := range records {
		names = append(names, r.Name)
		points = append(points, opts.LineData{Name: r.Name, Value: r.RealTime})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(o.initialization(benchmarksTitle)),
		charts.WithTitleOpts(opts.Title{Title: benchmarksTitle}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Benchmark"}),
		charts.WithYAxisOpts(opts.YAxis{Name: fmt.Sprintf("Time per Iteration (%s)", unit)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	line.SetXAxis(names).
		AddSeries(model.BenchmarkTimeColumn(unit), points).
		SetSeriesOptions(charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(true)}))

	if err := line.Render(w); err != nil {
		return fmt.Errorf("failed to render benchmark chart: %w", err)
	}
	return nil
}

// WriteTestsFile renders the test chart into the file at path.
func WriteTestsFile(path string, records []model.TestRecord, o Options) error {
	return writeFile(path, func(w io.Writer) error { return RenderTests(w, records, o) })
}

// WriteBenchmarksFile renders the benchmark chart into the file at path.
func WriteBenchmarksFile(path string, records []model.BenchmarkRecord, o Options) error {
	return writeFile(path, func(w io.Writer) error { return RenderBenchmarks(w, records, o) })
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close chart file: %w", err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
