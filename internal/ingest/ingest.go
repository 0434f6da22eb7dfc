// Package ingest turns raw CSV text into an in-memory catalog of typed
// records. It owns the only type-inference rule in the system: each cell
// is tried as an integer, then as a float, and otherwise kept as a
// string; an empty cell becomes a null value.
package ingest

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/siftdb/sift/internal/row"
)

// ParseCatalog parses CSV text into a catalog holding a single table.
// The first line is the header; header names and the table name are
// canonicalized (NFC, lower-cased). Rows whose width does not match the
// header are skipped with a warning rather than failing the whole load.
//
// Returns an error when the input has no header plus at least one data
// row, or when every data row was skipped.
func ParseCatalog(csvData, tableName string) (row.Catalog, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(csvData)))
	reader.FieldsPerRecord = -1 // width mismatches are handled per row

	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("csv data must contain a header row and at least one data row")
	}

	headers := make([]string, len(lines[0]))
	for i, h := range lines[0] {
		headers[i] = row.CanonicalName(strings.TrimSpace(h))
	}

	records := make([]row.Record, 0, len(lines)-1)
	for i, values := range lines[1:] {
		if len(values) != len(headers) {
			slog.Warn("skipping csv row with mismatched width",
				"row", i+1,
				"columns", len(values),
				"expected", len(headers))
			continue
		}

		rec := make(row.Record, len(headers))
		for j, header := range headers {
			rec[header] = inferValue(strings.TrimSpace(values[j]))
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no valid data rows found in csv")
	}

	return row.Catalog{row.CanonicalName(tableName): records}, nil
}

// inferValue types a raw cell: integer, then float, then string.
// Empty cells are null.
func inferValue(cell string) row.Value {
	if cell == "" {
		return row.Null{}
	}
	if n, err := strconv.ParseInt(cell, 10, 64); err == nil {
		return row.Int(n)
	}
	if f, err := strconv.ParseFloat(cell, 64); err == nil {
		return row.Float(f)
	}
	return row.Str(cell)
}
