package search

import (
	"errors"
	"fmt"
)

// ErrRowOutOfRange is returned for row indices outside the table.
var ErrRowOutOfRange = errors.New("row index out of range")

// Table is an editable list of drug rows, seeded from a search result.
type Table struct {
	rows []Drug
}

// NewTable returns a table holding a copy of rows.
func NewTable(rows []Drug) *Table {
	t := &Table{rows: make([]Drug, len(rows))}
	copy(t.rows, rows)
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the rows.
func (t *Table) Rows() []Drug {
	out := make([]Drug, len(t.rows))
	copy(out, t.rows)
	return out
}

// AddRow appends an empty row and returns its index.
func (t *Table) AddRow() int {
	t.rows = append(t.rows, Drug{})
	return len(t.rows) - 1
}

// SetRow replaces row i.
func (t *Table) SetRow(i int, d Drug) error {
	if i < 0 || i >= len(t.rows) {
		return fmt.Errorf("row %d: %w", i, ErrRowOutOfRange)
	}
	t.rows[i] = d
	return nil
}

// DeleteRow removes row i.
func (t *Table) DeleteRow(i int) error {
	if i < 0 || i >= len(t.rows) {
		return fmt.Errorf("row %d: %w", i, ErrRowOutOfRange)
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}
