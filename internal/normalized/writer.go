package normalized

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cx-miguel-neiva/bench-report/internal/handler"
	"github.com/cx-miguel-neiva/bench-report/internal/model"
)

// WriteTestRecords writes records to path as "Test Name,Time (ms),Status",
// replacing any existing file.
func WriteTestRecords(path string, records []model.TestRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Name, model.FormatFloat(r.DurationMs), string(r.Status)})
	}

	return writeTable(path, model.TestColumns(), rows)
}

// WriteBenchmarkRecords writes records to path as
// "Benchmark Name,Time (<unit>),Iterations", replacing any existing file.
func WriteBenchmarkRecords(path string, unit model.TimeUnit, records []model.BenchmarkRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		if r.Unit != unit {
			return &handler.SinkWriteError{Path: path, Err: fmt.Errorf("record %q is in %s, table is in %s", r.Name, r.Unit, unit)}
		}
		rows = append(rows, []string{r.Name, model.FormatRealTime(r.RealTime), strconv.FormatInt(r.Iterations, 10)})
	}

	return writeTable(path, model.BenchmarkColumns(unit), rows)
}

// writeTable writes to a temporary file next to path and renames it into
// place, so readers never observe a partially written table.
func writeTable(path string, header []string, rows [][]string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &handler.SinkWriteError{Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	w := csv.NewWriter(tmp)
	if err = w.Write(header); err != nil {
		return &handler.SinkWriteError{Path: path, Err: err}
	}
	if err = w.WriteAll(rows); err != nil {
		return &handler.SinkWriteError{Path: path, Err: err}
	}
	if err = tmp.Sync(); err != nil {
		return &handler.SinkWriteError{Path: path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &handler.SinkWriteError{Path: path, Err: err}
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return &handler.SinkWriteError{Path: path, Err: err}
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return &handler.SinkWriteError{Path: path, Err: err}
	}

	return nil
}
