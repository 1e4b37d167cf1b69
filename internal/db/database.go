package db

import (
	"database/sql"
	"fmt"

	"github.com/cx-miguel-neiva/bench-report/internal/model"
	_ "modernc.org/sqlite"
)

type Connection struct {
	*sql.DB
}

// NewConnection creates and initializes a new database connection with schema
func NewConnection(dbPath string) (*Connection, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	schema := `
    CREATE TABLE IF NOT EXISTS test_results (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        position INTEGER NOT NULL UNIQUE,
        name TEXT NOT NULL,
        duration_ms REAL NOT NULL,
        status TEXT NOT NULL CHECK (status IN ('Passed', 'Failed'))
    );
    CREATE TABLE IF NOT EXISTS benchmark_results (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        position INTEGER NOT NULL UNIQUE,
        name TEXT NOT NULL,
        real_time REAL NOT NULL,
        time_unit TEXT NOT NULL,
        iterations INTEGER NOT NULL
    );`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Connection{db}, nil
}

// ClearAllData removes all data from the database tables
func (c *Connection) ClearAllData() error {
	_, err := c.Exec("DELETE FROM test_results; DELETE FROM benchmark_results;")
	return err
}

// SeedTests replaces the stored test results with records.
func (c *Connection) SeedTests(records []model.TestRecord) (int, error) {
	tx, err := c.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM test_results"); err != nil {
		return 0, fmt.Errorf("failed to clear test results: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO test_results(position, name, duration_ms, status) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(i, r.Name, r.DurationMs, string(r.Status)); err != nil {
			return 0, fmt.Errorf("failed to insert test %q: %w", r.Name, err)
		}
	}

	return len(records), tx.Commit()
}

// SeedBenchmarks replaces the stored benchmark results with records.
func (c *Connection) SeedBenchmarks(records []model.BenchmarkRecord) (int, error) {
	tx, err := c.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM benchmark_results"); err != nil {
		return 0, fmt.Errorf("failed to clear benchmark results: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO benchmark_results(position, name, real_time, time_unit, iterations) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(i, r.Name, r.RealTime, string(r.Unit), r.Iterations); err != nil {
			return 0, fmt.Errorf("failed to insert benchmark %q: %w", r.Name, err)
		}
	}

	return len(records), tx.Commit()
}

// GetTestResults returns the stored test results in report order.
func (c *Connection) GetTestResults() ([]model.TestRecord, error) {
	rows, err := c.Query("SELECT name, duration_ms, status FROM test_results ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.TestRecord{}
	for rows.Next() {
		var r model.TestRecord
		var status string
		if err := rows.Scan(&r.Name, &r.DurationMs, &status); err != nil {
			return nil, err
		}
		r.Status = model.Status(status)
		records = append(records, r)
	}

	return records, rows.Err()
}

// GetBenchmarkResults returns the stored benchmark results in report order.
func (c *Connection) GetBenchmarkResults() ([]model.BenchmarkRecord, error) {
	rows, err := c.Query("SELECT name, real_time, time_unit, iterations FROM benchmark_results ORDER BY position")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.BenchmarkRecord{}
	for rows.Next() {
		var r model.BenchmarkRecord
		var unit string
		if err := rows.Scan(&r.Name, &r.RealTime, &unit, &r.Iterations); err != nil {
			return nil, err
		}
		r.Unit = model.TimeUnit(unit)
		records = append(records, r)
	}

	return records, rows.Err()
}

// GetTestSummary aggregates the stored test results.
func (c *Connection) GetTestSummary() (model.TestSummary, error) {
	var s model.TestSummary
	err := c.QueryRow(`
        SELECT
            COUNT(*),
            COALESCE(SUM(CASE WHEN status = 'Passed' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN status = 'Failed' THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(duration_ms), 0)
        FROM test_results
    `).Scan(&s.Total, &s.Passed, &s.Failed, &s.TotalDurationMs)
	if err != nil {
		return model.TestSummary{}, err
	}

	if s.Total == 0 {
		return s, nil
	}
	s.PassPercentage = float64(s.Passed) / float64(s.Total) * 100

	err = c.QueryRow("SELECT name FROM test_results ORDER BY duration_ms DESC, position LIMIT 1").Scan(&s.SlowestTest)
	if err != nil {
		return model.TestSummary{}, err
	}

	return s, nil
}

// GetBenchmarkSummary aggregates the stored benchmark results.
func (c *Connection) GetBenchmarkSummary() (model.BenchmarkSummary, error) {
	var s model.BenchmarkSummary
	err := c.QueryRow(`
        SELECT COUNT(*), COALESCE(AVG(real_time), 0), COALESCE(SUM(iterations), 0)
        FROM benchmark_results
    `).Scan(&s.Total, &s.MeanTime, &s.TotalIterations)
	if err != nil {
		return model.BenchmarkSummary{}, err
	}

	if s.Total == 0 {
		return s, nil
	}

	var unit string
	err = c.QueryRow("SELECT name, time_unit FROM benchmark_results ORDER BY real_time ASC, position LIMIT 1").Scan(&s.Fastest, &unit)
	if err != nil {
		return model.BenchmarkSummary{}, err
	}
	s.Unit = model.TimeUnit(unit)

	err = c.QueryRow("SELECT name FROM benchmark_results ORDER BY real_time DESC, position LIMIT 1").Scan(&s.Slowest)
	if err != nil {
		return model.BenchmarkSummary{}, err
	}

	return s, nil
}
