// Package reference holds the reference tables a quote is priced from.
//
// Tables are loaded once at process start and never mutated afterwards,
// so a *Store may be shared by any number of concurrent readers.
package reference

import (
	"strings"
)

// Table is a header row plus data rows, as read from one tabular file.
type Table struct {
	name   string
	header []string
	rows   [][]string
	blank  []bool
	index  map[string]int
}

// NewTable builds a table from a grid whose first row is the header.
// Header names are trimmed. When a name repeats, the first column wins.
// Rows whose cells are all blank keep their position, so Cell(i, col) always
// addresses the i-th data row of the file, but Each and Values skip them.
func NewTable(name string, grid [][]string) *Table {
	t := &Table{
		name:  name,
		index: make(map[string]int),
	}
	if len(grid) == 0 {
		return t
	}

	t.header = make([]string, len(grid[0]))
	for i, h := range grid[0] {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		t.header[i] = h
		if _, seen := t.index[h]; !seen && h != "" {
			t.index[h] = i
		}
	}

	for _, row := range grid[1:] {
		cp := make([]string, len(row))
		copy(cp, row)
		t.rows = append(t.rows, cp)
		t.blank = append(t.blank, isBlankRow(row))
	}
	return t
}

// Name returns the table name
func (t *Table) Name() string {
	return t.name
}

// Header returns a copy of the header row
func (t *Table) Header() []string {
	out := make([]string, len(t.header))
	copy(out, t.header)
	return out
}

// Len returns the number of data rows, blank rows included
func (t *Table) Len() int {
	return len(t.rows)
}

// Column returns the index of the column with exactly this name.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Row returns a copy of data row i, or nil when i is out of range.
func (t *Table) Row(i int) Row {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	out := make(Row, len(t.rows[i]))
	copy(out, t.rows[i])
	return out
}

// Cell returns the raw cell at data row i, column col. Cells past the end of
// a short row read as blank.
func (t *Table) Cell(i, col int) string {
	if i < 0 || i >= len(t.rows) || col < 0 || col >= len(t.rows[i]) {
		return ""
	}
	return t.rows[i][col]
}

// Values returns the trimmed, non-blank cells of a column in row order.
func (t *Table) Values(column string) []string {
	col, ok := t.Column(column)
	if !ok {
		return nil
	}
	var out []string
	t.Each(func(i int) bool {
		if v := strings.TrimSpace(t.Cell(i, col)); v != "" {
			out = append(out, v)
		}
		return true
	})
	return out
}

// Each calls fn for every non-blank data row until fn returns false.
func (t *Table) Each(fn func(i int) bool) {
	for i := range t.rows {
		if t.blank[i] {
			continue
		}
		if !fn(i) {
			return
		}
	}
}

// Row is a single data row detached from its table.
type Row []string

// Get returns cell col, or blank when the row is shorter.
func (r Row) Get(col int) string {
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
