package gbench

import (
	"fmt"

	"github.com/cx-miguel-neiva/bench-report/internal/handler"
	"github.com/cx-miguel-neiva/bench-report/internal/model"
	"github.com/cx-miguel-neiva/bench-report/plugins"
	"github.com/valyala/fastjson"
)

const (
	fieldBenchmarks = "benchmarks"
	fieldName       = "name"
	fieldRealTime   = "real_time"
	fieldIterations = "iterations"
	fieldTimeUnit   = "time_unit"
)

// Options controls benchmark normalization.
type Options struct {
	// TimeUnit is the unit real_time values are expected in. Benchmarks that
	// declare a different time_unit are rejected. Defaults to nanoseconds.
	TimeUnit model.TimeUnit
}

func (o Options) unit() (model.TimeUnit, error) {
	if o.TimeUnit == "" {
		return model.DefaultTimeUnit, nil
	}
	return model.ParseTimeUnit(string(o.TimeUnit))
}

// ParseReport parses a benchmark JSON report and normalizes every benchmark.
func ParseReport(item plugins.ISourceItem, opts Options) ([]model.BenchmarkRecord, error) {
	doc, err := ParseDocument(item)
	if err != nil {
		return nil, err
	}

	return Normalize(doc, opts)
}

// ParseDocument parses the item's content as JSON.
func ParseDocument(item plugins.ISourceItem) (*fastjson.Value, error) {
	doc, err := fastjson.ParseBytes(item.GetContent())
	if err != nil {
		return nil, &handler.MalformedDocumentError{Source: item.GetSource(), Err: err}
	}

	return doc, nil
}

// Normalize maps every entry of the top-level "benchmarks" array to a
// BenchmarkRecord, preserving order. real_time is not converted.
func Normalize(doc *fastjson.Value, opts Options) ([]model.BenchmarkRecord, error) {
	unit, err := opts.unit()
	if err != nil {
		return nil, fmt.Errorf("invalid time unit option: %w", err)
	}

	benchmarks := doc.Get(fieldBenchmarks)
	if benchmarks == nil {
		return nil, &handler.MissingFieldError{Record: "document", Field: fieldBenchmarks}
	}
	entries, err := benchmarks.Array()
	if err != nil {
		return nil, &handler.MalformedDocumentError{Record: fieldBenchmarks, Err: err}
	}

	records := make([]model.BenchmarkRecord, 0, len(entries))
	for i, entry := range entries {
		rec, err := normalizeBenchmark(fmt.Sprintf("benchmarks[%d]", i), entry, unit)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, nil
}

func normalizeBenchmark(id string, entry *fastjson.Value, unit model.TimeUnit) (model.BenchmarkRecord, error) {
	if entry.Type() != fastjson.TypeObject {
		return model.BenchmarkRecord{}, &handler.MalformedDocumentError{Record: id, Err: fmt.Errorf("expected object, got %s", entry.Type())}
	}

	nameVal, err := required(id, entry, fieldName)
	if err != nil {
		return model.BenchmarkRecord{}, err
	}
	realTimeVal, err := required(id, entry, fieldRealTime)
	if err != nil {
		return model.BenchmarkRecord{}, err
	}
	iterationsVal, err := required(id, entry, fieldIterations)
	if err != nil {
		return model.BenchmarkRecord{}, err
	}

	name, err := nameVal.StringBytes()
	if err != nil {
		return model.BenchmarkRecord{}, invalidField(id, fieldName, err)
	}
	realTime, err := realTimeVal.Float64()
	if err != nil {
		return model.BenchmarkRecord{}, invalidField(id, fieldRealTime, err)
	}
	iterations, err := iterationsVal.Int64()
	if err != nil {
		return model.BenchmarkRecord{}, invalidField(id, fieldIterations, err)
	}

	if declared := entry.Get(fieldTimeUnit); declared != nil {
		got, err := declared.StringBytes()
		if err != nil {
			return model.BenchmarkRecord{}, invalidField(id, fieldTimeUnit, err)
		}
		if model.TimeUnit(got) != unit {
			return model.BenchmarkRecord{}, &handler.UnitMismatchError{Record: id, Want: string(unit), Got: string(got)}
		}
	}

	rec, err := model.NewBenchmarkRecord(string(name), realTime, unit, iterations)
	if err != nil {
		return model.BenchmarkRecord{}, &handler.MalformedDocumentError{Record: id, Err: err}
	}

	return rec, nil
}

func required(id string, entry *fastjson.Value, field string) (*fastjson.Value, error) {
	v := entry.Get(field)
	if v == nil {
		return nil, &handler.MissingFieldError{Record: id, Field: field}
	}
	return v, nil
}

func invalidField(id, field string, err error) error {
	return &handler.MalformedDocumentError{Record: id, Err: fmt.Errorf("invalid %s: %w", field, err)}
}
