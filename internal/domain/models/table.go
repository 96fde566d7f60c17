// internal/domain/models/table.go
package models

// Table is the sheet contents as rows of text cells.
//
// Rows are not guaranteed to be the same length: the Sheets API drops
// trailing empty cells, and people edit the sheet by hand. Callers must
// read cells through Cell rather than indexing directly.
type Table [][]string

// Cell returns the text at (row, col) and whether that cell exists.
// Out-of-range coordinates report false; they never panic.
func (t Table) Cell(row, col int) (string, bool) {
	if row < 0 || row >= len(t) || col < 0 {
		return "", false
	}
	r := t[row]
	if col >= len(r) {
		return "", false
	}
	return r[col], true
}

// Header returns row 0, or nil for an empty table.
func (t Table) Header() []string {
	if len(t) == 0 {
		return nil
	}
	return t[0]
}

// Width returns the length of the widest row.
func (t Table) Width() int {
	w := 0
	for _, r := range t {
		if len(r) > w {
			w = len(r)
		}
	}
	return w
}
