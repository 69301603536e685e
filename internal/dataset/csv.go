// Package dataset reads numeric training data from CSV files and
// command-line arguments.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/born-ml/simpleai/internal/matrix"
)

// ErrNoRows is returned when a source contains no usable numeric rows.
var ErrNoRows = errors.New("no valid data rows")

// CSVOptions controls how LoadCSV reads a file.
type CSVOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune

	// DetectHeader treats the first row as a header when any of its
	// fields is not a number.
	DetectHeader bool
}

// Table is the numeric content of a CSV source.
type Table struct {
	Header  []string    // Header fields, nil if none was detected.
	Rows    [][]float64 // Every fully numeric row, in file order.
	Skipped int         // Rows dropped for containing a non-numeric field.
}

// LoadCSV reads every numeric row of the CSV file at path.
//
// Rows with any non-numeric field are dropped and counted in
// Table.Skipped. Returns ErrNoRows if nothing numeric remains.
func LoadCSV(path string, opts CSVOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	table, err := ReadCSV(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ReadCSV is LoadCSV over an arbitrary reader.
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	table := &Table{}
	first := true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}

		row, ok := parseRow(record)
		if first && opts.DetectHeader && !ok {
			table.Header = record
			first = false
			continue
		}
		first = false

		if !ok {
			table.Skipped++
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 {
		return nil, ErrNoRows
	}
	return table, nil
}

// Split separates rows into inputs (every column but the last) and
// single-value targets (the last column).
//
// Returns matrix.ErrShapeMismatch if rows differ in width or have fewer
// than two columns.
func Split(rows [][]float64) (inputs, targets [][]float64, err error) {
	if len(rows) == 0 {
		return nil, nil, ErrNoRows
	}
	width := len(rows[0])
	if width < 2 {
		return nil, nil, fmt.Errorf("%w: need at least one input column and a target column, got %d columns",
			matrix.ErrShapeMismatch, width)
	}

	inputs = make([][]float64, len(rows))
	targets = make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != width {
			return nil, nil, fmt.Errorf("%w: row %d has %d columns, want %d",
				matrix.ErrShapeMismatch, i+1, len(row), width)
		}
		inputs[i] = row[:width-1:width-1]
		targets[i] = []float64{row[width-1]}
	}
	return inputs, targets, nil
}

// parseRow converts every field of record, reporting false if any field
// is not a number.
func parseRow(record []string) ([]float64, bool) {
	row := make([]float64, len(record))
	for i, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, false
		}
		row[i] = v
	}
	return row, true
}
