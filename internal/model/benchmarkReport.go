package model

import (
	"encoding/json"
	"fmt"
)

// Summary is the snapshot overview exported by the summary command.
type Summary struct {
	Tests      TestSummary      `json:"tests"`
	Benchmarks BenchmarkSummary `json:"benchmarks"`
}

// TestSummary aggregates the stored test results of the latest conversion.
type TestSummary struct {
	Total           int     `json:"total"`
	Passed          int     `json:"passed"`
	Failed          int     `json:"failed"`
	PassPercentage  float64 `json:"passPercentage"`
	TotalDurationMs float64 `json:"totalDurationMs"`
	SlowestTest     string  `json:"slowestTest,omitempty"`
}

// BenchmarkSummary aggregates the stored benchmark results of the latest conversion.
type BenchmarkSummary struct {
	Total           int      `json:"total"`
	Unit            TimeUnit `json:"unit,omitempty"`
	Fastest         string   `json:"fastest,omitempty"`
	Slowest         string   `json:"slowest,omitempty"`
	MeanTime        float64  `json:"meanTime"`
	TotalIterations int64    `json:"totalIterations"`
}

// SummaryToJson renders a summary the way it is written to disk.
func SummaryToJson(s Summary) ([]byte, error) {
	jsonData, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal summary to JSON: %w", err)
	}

	return jsonData, nil
}
