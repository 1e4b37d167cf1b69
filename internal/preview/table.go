// Package preview renders normalized records as aligned plain-text tables for
// the terminal.
package preview

import (
	"strconv"
	"strings"

	"github.com/cx-miguel-neiva/bench-report/internal/model"
	"github.com/mattn/go-runewidth"
)

// Render lays out rows under columns with a leading row-number column.
// Widths are measured in terminal cells so wide runes stay aligned.
func Render(columns []string, rows [][]string) string {
	table := make([][]string, 0, len(rows)+1)
	table = append(table, append([]string{""}, columns...))
	for i, row := range rows {
		table = append(table, append([]string{strconv.Itoa(i)}, row...))
	}

	widths := make([]int, len(columns)+1)
	for _, row := range table {
		for j := 0; j < len(row) && j < len(widths); j++ {
			if w := runewidth.StringWidth(row[j]); w > widths[j] {
				widths[j] = w
			}
		}
	}

	var sb strings.Builder
	for _, row := range table {
		cells := make([]string, 0, len(widths))
		for j := range widths {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			if j == 0 {
				cells = append(cells, runewidth.FillLeft(cell, widths[j]))
			} else {
				cells = append(cells, runewidth.FillRight(cell, widths[j]))
			}
		}
		sb.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		sb.WriteByte('\n')
	}

	return sb.String()
}

// TestRows formats records the way they appear in the CSV.
func TestRows(records []model.TestRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Name, model.FormatFloat(r.DurationMs), string(r.Status)})
	}
	return rows
}

// BenchmarkRows formats records the way they appear in the CSV.
func BenchmarkRows(records []model.BenchmarkRecord) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Name, model.FormatRealTime(r.RealTime), strconv.FormatInt(r.Iterations, 10)})
	}
	return rows
}
