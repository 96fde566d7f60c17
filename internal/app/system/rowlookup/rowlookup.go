// Package rowlookup finds rows and columns in a sheet table.
//
// All lookups are linear scans. The table is fetched fresh for every
// request, so there is nothing to gain from building an index.
package rowlookup

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dalemusser/twindash/internal/domain/models"
)

var (
	// ErrNotFound is returned when no data row carries the key.
	ErrNotFound = errors.New("row not found")

	// ErrColumnNotFound is returned when a header name is not in row 0.
	ErrColumnNotFound = errors.New("column not found")
)

// Find returns the index of the first data row whose keyCol cell equals key.
//
// The first headerRows rows are skipped. Rows too short to have a keyCol
// cell never match. When the key appears more than once, the first row wins
// and later duplicates are ignored.
func Find(t models.Table, headerRows, keyCol int, key string) (int, error) {
	for i := max(headerRows, 0); i < len(t); i++ {
		if v, ok := t.Cell(i, keyCol); ok && v == key {
			return i, nil
		}
	}
	return -1, ErrNotFound
}

// ListColumn returns col for every data row, in row order, duplicates kept.
// A row without the cell contributes an empty string so positions line up
// with the sheet.
func ListColumn(t models.Table, headerRows, col int) []string {
	start := max(headerRows, 0)
	if start >= len(t) {
		return []string{}
	}
	out := make([]string, 0, len(t)-start)
	for i := start; i < len(t); i++ {
		v, _ := t.Cell(i, col)
		out = append(out, v)
	}
	return out
}

// ColumnIndex returns the position of name in header. Surrounding
// whitespace is ignored on both sides; the comparison is otherwise exact.
func ColumnIndex(header []string, name string) (int, error) {
	want := strings.TrimSpace(name)
	for i, h := range header {
		if strings.TrimSpace(h) == want {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// DistinctValues resolves name against the header row (row 0) and returns
// the unique non-empty values of the data rows, sorted ascending. Data
// starts at headerRows, and never above row 1.
func DistinctValues(t models.Table, headerRows int, name string) ([]string, error) {
	col, err := ColumnIndex(t.Header(), name)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	out := []string{}
	for i := max(headerRows, 1); i < len(t); i++ {
		v, ok := t.Cell(i, col)
		if !ok || v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out, nil
}
