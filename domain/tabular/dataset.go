// Package tabular defines the in-memory representation of spreadsheet
// data: normalized cells, row records, and ordered datasets. Rows have no
// identity beyond their content and position; every transformation over
// them is functional.
package tabular

import "strings"

// Row maps column name to cell value. Column order belongs to the
// enclosing Dataset; looking up a column absent from the row yields the
// empty cell.
type Row map[string]Cell

// Get returns the cell for a column, or the empty cell when the row does
// not carry it.
func (r Row) Get(column string) Cell {
	return r[column]
}

// Dataset is an ordered sequence of rows sharing one column schema.
type Dataset struct {
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the schema contains the named column.
func (d Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// MissingColumns returns the subset of names absent from the schema, in
// the order given.
func (d Dataset) MissingColumns(names []string) []string {
	var missing []string
	for _, n := range names {
		if !d.HasColumn(n) {
			missing = append(missing, n)
		}
	}
	return missing
}

// FindColumn locates a column whose header contains any of the keywords,
// case-insensitively, and returns its name. The search order follows the
// schema. Returns false when no header matches.
func (d Dataset) FindColumn(keywords ...string) (string, bool) {
	for _, c := range d.Columns {
		lower := strings.ToLower(c)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return c, true
			}
		}
	}
	return "", false
}

// Append adds a row to the end of the dataset.
func (d *Dataset) Append(row Row) {
	d.Rows = append(d.Rows, row)
}
