package model

import (
	"errors"
	"fmt"
)

// Status is the outcome of a single test case.
type Status string

const (
	StatusPassed Status = "Passed"
	StatusFailed Status = "Failed"
)

// Record construction errors.
var (
	ErrEmptyName        = errors.New("name must not be empty")
	ErrNegativeDuration = errors.New("duration must be non-negative")
	ErrUnknownStatus    = errors.New("unknown status")
	ErrUnknownTimeUnit  = errors.New("unknown time unit")
)

// ParseStatus converts the textual status written to the CSV back into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPassed, StatusFailed:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// TimeUnit is the unit a benchmark's real_time is expressed in.
type TimeUnit string

const (
	Nanoseconds  TimeUnit = "ns"
	Microseconds TimeUnit = "us"
	Milliseconds TimeUnit = "ms"
	Seconds      TimeUnit = "s"
)

// DefaultTimeUnit is what Google Benchmark emits unless told otherwise.
const DefaultTimeUnit = Nanoseconds

// ParseTimeUnit validates a unit name.
func ParseTimeUnit(s string) (TimeUnit, error) {
	switch TimeUnit(s) {
	case Nanoseconds, Microseconds, Milliseconds, Seconds:
		return TimeUnit(s), nil
	}
	return "", fmt.Errorf("%w: %q (expected ns, us, ms or s)", ErrUnknownTimeUnit, s)
}

// TestRecord is one normalized test case.
type TestRecord struct {
	Name       string  `json:"name"`
	DurationMs float64 `json:"durationMs"`
	Status     Status  `json:"status"`
}

// NewTestRecord builds a TestRecord from a duration in seconds.
func NewTestRecord(name string, seconds float64, status Status) (TestRecord, error) {
	if name == "" {
		return TestRecord{}, ErrEmptyName
	}
	if seconds < 0 {
		return TestRecord{}, fmt.Errorf("%w: %v", ErrNegativeDuration, seconds)
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return TestRecord{}, err
	}

	return TestRecord{
		Name:       name,
		DurationMs: seconds * 1000,
		Status:     status,
	}, nil
}

// BenchmarkRecord is one normalized benchmark case. RealTime is kept in
// whatever Unit the report was produced with.
type BenchmarkRecord struct {
	Name       string   `json:"name"`
	RealTime   float64  `json:"realTime"`
	Unit       TimeUnit `json:"unit"`
	Iterations int64    `json:"iterations"`
}

// NewBenchmarkRecord builds a BenchmarkRecord. Iterations are not range
// checked.
func NewBenchmarkRecord(name string, realTime float64, unit TimeUnit, iterations int64) (BenchmarkRecord, error) {
	if name == "" {
		return BenchmarkRecord{}, ErrEmptyName
	}
	if _, err := ParseTimeUnit(string(unit)); err != nil {
		return BenchmarkRecord{}, err
	}

	return BenchmarkRecord{
		Name:       name,
		RealTime:   realTime,
		Unit:       unit,
		Iterations: iterations,
	}, nil
}
