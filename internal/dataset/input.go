package dataset

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ErrInvalidInput is returned when a literal sample is not a list of
// comma-separated numbers.
var ErrInvalidInput = errors.New("input must be numeric values separated by commas")

// ParseInput turns a prediction argument into samples.
//
// If arg names an existing file it is read as CSV without header
// detection, one sample per row. Otherwise arg is a single sample written
// as comma-separated numbers, e.g. "0.5,1,0".
func ParseInput(arg string) ([][]float64, error) {
	if info, err := os.Stat(arg); err == nil && info.Mode().IsRegular() {
		table, err := LoadCSV(arg, CSVOptions{})
		if err != nil {
			return nil, err
		}
		return table.Rows, nil
	}

	fields := strings.Split(arg, ",")
	sample := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidInput, arg)
		}
		sample[i] = v
	}
	return [][]float64{sample}, nil
}
