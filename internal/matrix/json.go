package matrix

import (
	"encoding/json"
	"fmt"
)

// record is the persisted form of a Matrix.
type record struct {
	Rows int         `json:"rows"`
	Cols int         `json:"cols"`
	Data [][]float64 `json:"data"`
}

// MarshalJSON encodes m as {"rows": r, "cols": c, "data": [[...], ...]}.
//
// encoding/json writes the shortest representation that parses back to the
// same float64, so a round trip preserves every finite value bit for bit.
func (m *Matrix) MarshalJSON() ([]byte, error) {
	rows, cols := m.Dims()
	return json.Marshal(record{Rows: rows, Cols: cols, Data: m.ToRows()})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
//
// Returns ErrShapeMismatch if rows/cols disagree with the data.
func (m *Matrix) UnmarshalJSON(b []byte) error {
	var rec record
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}
	if rec.Rows <= 0 || rec.Cols <= 0 {
		return fmt.Errorf("%w: invalid dimensions %d×%d", ErrShapeMismatch, rec.Rows, rec.Cols)
	}
	if len(rec.Data) != rec.Rows {
		return fmt.Errorf("%w: %d rows declared, %d present", ErrShapeMismatch, rec.Rows, len(rec.Data))
	}
	for i, row := range rec.Data {
		if len(row) != rec.Cols {
			return fmt.Errorf("%w: row %d has %d columns, want %d", ErrShapeMismatch, i, len(row), rec.Cols)
		}
	}
	decoded, err := FromRows(rec.Data)
	if err != nil {
		return err
	}
	*m = *decoded
	return nil
}
