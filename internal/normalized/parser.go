package normalized

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/cx-miguel-neiva/bench-report/internal/handler"
	"github.com/cx-miguel-neiva/bench-report/internal/model"
)

var errHeader = errors.New("unexpected header")

// ReadTestRecords reads a table written by WriteTestRecords.
func ReadTestRecords(path string) ([]model.TestRecord, error) {
	header, rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	if !slices.Equal(header, model.TestColumns()) {
		return nil, &handler.MalformedDocumentError{Source: path, Err: fmt.Errorf("%w: %v", errHeader, header)}
	}

	records := make([]model.TestRecord, 0, len(rows))
	for i, row := range rows {
		id := fmt.Sprintf("row[%d]", i)
		if row[0] == "" {
			return nil, &handler.MissingFieldError{Record: id, Field: model.ColumnTestName}
		}
		duration, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, &handler.MalformedDocumentError{Source: path, Record: id, Err: err}
		}
		status, err := model.ParseStatus(row[2])
		if err != nil {
			return nil, &handler.MalformedDocumentError{Source: path, Record: id, Err: err}
		}
		records = append(records, model.TestRecord{Name: row[0], DurationMs: duration, Status: status})
	}

	return records, nil
}

// ReadBenchmarkRecords reads a table written by WriteBenchmarkRecords. The
// time unit is recovered from the header.
func ReadBenchmarkRecords(path string) ([]model.BenchmarkRecord, error) {
	header, rows, err := readTable(path)
	if err != nil {
		return nil, err
	}
	unit, err := benchmarkUnit(header)
	if err != nil {
		return nil, &handler.MalformedDocumentError{Source: path, Err: err}
	}

	records := make([]model.BenchmarkRecord, 0, len(rows))
	for i, row := range rows {
		id := fmt.Sprintf("row[%d]", i)
		realTime, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, &handler.MalformedDocumentError{Source: path, Record: id, Err: err}
		}
		iterations, err := strconv.ParseInt(row[2], 10, 64)
		if err != nil {
			return nil, &handler.MalformedDocumentError{Source: path, Record: id, Err: err}
		}
		rec, err := model.NewBenchmarkRecord(row[0], realTime, unit, iterations)
		if err != nil {
			return nil, &handler.MalformedDocumentError{Source: path, Record: id, Err: err}
		}
		records = append(records, rec)
	}

	return records, nil
}

func readTable(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &handler.SourceNotFoundError{Path: path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3
	all, err := r.ReadAll()
	if err != nil {
		return nil, nil, &handler.MalformedDocumentError{Source: path, Err: err}
	}
	if len(all) == 0 {
		return nil, nil, &handler.MalformedDocumentError{Source: path, Err: fmt.Errorf("%w: empty file", errHeader)}
	}

	return all[0], all[1:], nil
}

func benchmarkUnit(header []string) (model.TimeUnit, error) {
	if header[0] != model.ColumnBenchmarkName || header[2] != model.ColumnIterations {
		return "", fmt.Errorf("%w: %v", errHeader, header)
	}
	raw, ok := strings.CutPrefix(header[1], "Time (")
	if !ok || !strings.HasSuffix(raw, ")") {
		return "", fmt.Errorf("%w: %v", errHeader, header)
	}

	return model.ParseTimeUnit(strings.TrimSuffix(raw, ")"))
}
