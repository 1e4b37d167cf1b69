package model

import (
	"strconv"
	"strings"
)

// Column headers the chart layer binds to.
const (
	ColumnTestName      = "Test Name"
	ColumnTestTime      = "Time (ms)"
	ColumnStatus        = "Status"
	ColumnBenchmarkName = "Benchmark Name"
	ColumnIterations    = "Iterations"
)

// TestColumns returns the fixed header of the test CSV.
func TestColumns() []string {
	return []string{ColumnTestName, ColumnTestTime, ColumnStatus}
}

// BenchmarkTimeColumn returns the time header for unit, e.g. "Time (ns)".
func BenchmarkTimeColumn(unit TimeUnit) string {
	return "Time (" + string(unit) + ")"
}

// BenchmarkColumns returns the header of the benchmark CSV.
func BenchmarkColumns(unit TimeUnit) []string {
	return []string{ColumnBenchmarkName, BenchmarkTimeColumn(unit), ColumnIterations}
}

// FormatFloat renders v with the shortest representation that parses back to
// the same value, keeping at least one fractional digit (2 -> "2.0").
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// FormatRealTime renders a benchmark time as its shortest round-trip text,
// without forcing a fractional digit, so integral source values stay
// integral (100 -> "100", 123.4 -> "123.4").
func FormatRealTime(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
