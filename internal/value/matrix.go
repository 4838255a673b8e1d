package value

import (
	"errors"
	"strings"
)

// Matrix is a 2-D rectangular grid of values with uniform row width.
type Matrix struct {
	Rows [][]Value
}

// NewMatrix validates rectangularity and returns a Matrix, or an error
// if the rows are not uniform width.
func NewMatrix(rows [][]Value) (Matrix, error) {
	if len(rows) == 0 {
		return Matrix{Rows: rows}, nil
	}
	width := len(rows[0])
	for _, row := range rows {
		if len(row) != width {
			return Matrix{}, errors.New("matrix rows must have uniform length")
		}
	}
	return Matrix{Rows: rows}, nil
}

func (Matrix) Kind() Kind { return KindMatrix }

func (m Matrix) NumRows() int { return len(m.Rows) }

func (m Matrix) NumCols() int {
	if len(m.Rows) == 0 {
		return 0
	}
	return len(m.Rows[0])
}

func (m Matrix) String() string {
	rows := make([]string, len(m.Rows))
	for i, row := range m.Rows {
		parts := make([]string, len(row))
		for j, e := range row {
			parts[j] = e.String()
		}
		rows[i] = "[" + strings.Join(parts, ", ") + "]"
	}
	return "[" + strings.Join(rows, ", ") + "]"
}

// Row returns the i-th row as a Vector (negative indices count from
// the end).
func (m Matrix) Row(i int) (Vector, bool) {
	n := len(m.Rows)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return Vector{}, false
	}
	row := make([]Value, len(m.Rows[i]))
	copy(row, m.Rows[i])
	return Vector{Elements: row}, true
}

// Col returns the j-th column as a Vector (negative indices count from
// the end).
func (m Matrix) Col(j int) (Vector, bool) {
	cols := m.NumCols()
	if j < 0 {
		j += cols
	}
	if j < 0 || j >= cols {
		return Vector{}, false
	}
	col := make([]Value, len(m.Rows))
	for i, row := range m.Rows {
		col[i] = row[j]
	}
	return Vector{Elements: col}, true
}
