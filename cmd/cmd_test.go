package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cx-miguel-neiva/bench-report/internal/chart"
	"github.com/cx-miguel-neiva/bench-report/internal/config"
	"github.com/cx-miguel-neiva/bench-report/internal/db"
	"github.com/cx-miguel-neiva/bench-report/internal/handler"
	"github.com/cx-miguel-neiva/bench-report/internal/model"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testReport = `<?xml version="1.0" encoding="UTF-8"?>
<testsuites>
  <testsuite name="Math">
    <testcase name="T1" time="0.002"/>
    <testcase name="T2" time="0.001"><failure message="boom"/></testcase>
  </testsuite>
</testsuites>`

	benchmarkReport = `{"benchmarks": [{"name": "BM_Sum", "real_time": 123.4, "iterations": 1000, "time_unit": "ns"}]}`

	testsCSV      = "Test Name,Time (ms),Status\nT1,2.0,Passed\nT2,1.0,Failed\n"
	benchmarksCSV = "Benchmark Name,Time (ns),Iterations\nBM_Sum,123.4,1000\n"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGTestCmd(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "test_results.xml", testReport)
	dst := filepath.Join(dir, "out", "gtest.csv")

	out, err := run(gtestCmd(), "--path", src, "--report-path", dst)
	require.NoError(t, err)

	assert.Equal(t, testsCSV, readFile(t, dst))
	assert.Contains(t, out, "Google Test Data:")
	assert.Contains(t, out, "Test Name")
	assert.Contains(t, out, "Failed")
}

func TestGTestCmd_RequiresPath(t *testing.T) {
	_, err := run(gtestCmd(), "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--path")
}

func TestGBenchCmd(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "benchmark_results.json", benchmarkReport)
	dst := filepath.Join(dir, "bench.csv")

	out, err := run(gbenchCmd(), "--path", src, "--report-path", dst)
	require.NoError(t, err)

	assert.Equal(t, benchmarksCSV, readFile(t, dst))
	assert.Contains(t, out, "Google Benchmark Data:")
}

func TestGBenchCmd_TimeUnit(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "benchmark_results.json", benchmarkReport)
	dst := filepath.Join(dir, "bench.csv")

	_, err := run(gbenchCmd(), "--path", src, "--report-path", dst, "--time-unit", "lightyears")
	assert.ErrorIs(t, err, model.ErrUnknownTimeUnit)

	_, err = run(gbenchCmd(), "--path", src, "--report-path", dst, "--time-unit", "us", "--quiet")
	var mismatch *handler.UnitMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.NoFileExists(t, dst)
}

func TestConvertCmd(t *testing.T) {
	config.SetDefaults(vConfig)

	dir := t.TempDir()
	tests := writeFile(t, dir, "test_results.xml", testReport)
	benchmarks := writeFile(t, dir, "benchmark_results.json", benchmarkReport)
	chartsDir := filepath.Join(dir, "charts")
	dbPath := filepath.Join(dir, "data", "snapshot.db")

	for _, parallel := range []string{"false", "true"} {
		t.Run("parallel="+parallel, func(t *testing.T) {
			out, err := run(convertCmd(),
				"--tests", tests,
				"--tests-out", filepath.Join(dir, "gtest.csv"),
				"--benchmarks", benchmarks,
				"--benchmarks-out", filepath.Join(dir, "bench.csv"),
				"--charts-dir", chartsDir,
				"--db", dbPath,
				"--parallel="+parallel,
			)
			require.NoError(t, err)

			assert.Equal(t, testsCSV, readFile(t, filepath.Join(dir, "gtest.csv")))
			assert.Equal(t, benchmarksCSV, readFile(t, filepath.Join(dir, "bench.csv")))
			assert.FileExists(t, filepath.Join(chartsDir, chart.DefaultTestsFile))
			assert.FileExists(t, filepath.Join(chartsDir, chart.DefaultBenchmarksFile))

			assert.Contains(t, out, "Google Test Data:")
			assert.Contains(t, out, "Google Benchmark Data:")

			conn, err := db.NewConnection(dbPath)
			require.NoError(t, err)
			defer conn.Close()

			stored, err := conn.GetTestResults()
			require.NoError(t, err)
			assert.Len(t, stored, 2)

			benches, err := conn.GetBenchmarkResults()
			require.NoError(t, err)
			assert.Len(t, benches, 1)
		})
	}
}

func TestConvertCmd_FailureStopsRun(t *testing.T) {
	config.SetDefaults(vConfig)

	dir := t.TempDir()
	tests := writeFile(t, dir, "test_results.xml", `<testsuite><testcase time="0.1"/></testsuite>`)
	benchmarks := writeFile(t, dir, "benchmark_results.json", benchmarkReport)

	_, err := run(convertCmd(),
		"--tests", tests,
		"--tests-out", filepath.Join(dir, "gtest.csv"),
		"--benchmarks", benchmarks,
		"--benchmarks-out", filepath.Join(dir, "bench.csv"),
		"--quiet",
	)

	var missing *handler.MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "name", missing.Field)
	assert.NoFileExists(t, filepath.Join(dir, "gtest.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "bench.csv"))
}

func TestChartCmd(t *testing.T) {
	dir := t.TempDir()
	tests := writeFile(t, dir, "gtest.csv", testsCSV)
	benchmarks := writeFile(t, dir, "bench.csv", benchmarksCSV)
	outDir := filepath.Join(dir, "charts")

	_, err := run(chartCmd(), "--tests", tests, "--benchmarks", benchmarks, "--out-dir", outDir)
	require.NoError(t, err)

	page := readFile(t, filepath.Join(outDir, chart.DefaultTestsFile))
	assert.Contains(t, page, "Google Test Execution Times")
	page = readFile(t, filepath.Join(outDir, chart.DefaultBenchmarksFile))
	assert.Contains(t, page, "Google Benchmark Performance")
}

func TestChartCmd_BadTable(t *testing.T) {
	dir := t.TempDir()
	tests := writeFile(t, dir, "gtest.csv", "Name,Seconds\nT1,1\n")

	_, err := run(chartCmd(), "--tests", tests, "--out-dir", dir)
	var malformed *handler.MalformedDocumentError
	assert.ErrorAs(t, err, &malformed)
}

func TestSeedAndSummaryCmd(t *testing.T) {
	dir := t.TempDir()
	tests := writeFile(t, dir, "gtest.csv", testsCSV)
	benchmarks := writeFile(t, dir, "bench.csv", benchmarksCSV)
	dbPath := filepath.Join(dir, "data", "snapshot.db")

	_, err := run(dbSeedCmd(), "--db", dbPath, "--tests", tests, "--benchmarks", benchmarks)
	require.NoError(t, err)

	out, err := run(summaryCmd(), "--db", dbPath)
	require.NoError(t, err)

	var summary model.Summary
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.Equal(t, 2, summary.Tests.Total)
	assert.Equal(t, 1, summary.Tests.Passed)
	assert.InDelta(t, 50.0, summary.Tests.PassPercentage, 1e-9)
	assert.InDelta(t, 3.0, summary.Tests.TotalDurationMs, 1e-9)
	assert.Equal(t, "BM_Sum", summary.Benchmarks.Fastest)
	assert.Equal(t, int64(1000), summary.Benchmarks.TotalIterations)

	reportPath := filepath.Join(dir, "reports", "summary.json")
	_, err = run(summaryCmd(), "--db", dbPath, "--report-path", reportPath)
	require.NoError(t, err)
	assert.JSONEq(t, out, readFile(t, reportPath))
}

func TestSummaryCmd_MissingDatabase(t *testing.T) {
	_, err := run(summaryCmd(), "--db", filepath.Join(t.TempDir(), "absent.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestListFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", "")
	writeFile(t, dir, "a.html", "")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0755))

	files, err := listFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.html"), filepath.Join(dir, "b.csv")}, files)

	_, err = listFiles(filepath.Join(dir, "absent"))
	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	assert.NoError(t, setupLogging("debug", true))
	assert.NoError(t, setupLogging("info", false))
	assert.Error(t, setupLogging("chatty", false))
}

func TestRenderSettings(t *testing.T) {
	out, err := renderSettings(map[string]any{
		"db": "data/bench.db",
		"upload": map[string]any{
			"enabled": true,
			"s3": map[string]any{
				"bucket":            "ci",
				"access_key_id":     "AKIAEXAMPLE",
				"secret_access_key": "wJalrXUtnFEMI",
			},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, out, "bucket: ci")
	assert.Contains(t, out, "db: data/bench.db")
	assert.Contains(t, out, "secret_access_key:")
	assert.Contains(t, out, masked)
	assert.NotContains(t, out, "AKIAEXAMPLE")
	assert.NotContains(t, out, "wJalrXUtnFEMI")
}

func TestVersionCmd(t *testing.T) {
	out, err := run(versionCmd())
	require.NoError(t, err)
	assert.Equal(t, "bench-report "+Version+"\n", out)
}
