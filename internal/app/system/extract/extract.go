// Package extract turns a sheet row into a MetricsRecord.
//
// Extraction never fails. A sheet that people edit by hand loses and gains
// columns; each missing cell degrades to the default value on its own
// instead of failing the whole lookup.
package extract

import (
	"github.com/dalemusser/twindash/internal/app/system/rowlookup"
	"github.com/dalemusser/twindash/internal/domain/models"
)

// Extract reads row of t through mapping. Cells that are out of range,
// or named columns missing from the header, take def.
func Extract(t models.Table, row int, mapping Mapping, def string) models.MetricsRecord {
	rec := models.NewMetricsRecord(def)
	header := t.Header()

	for _, field := range models.MetricFields {
		refs := mapping[field]
		switch len(refs) {
		case 1:
			rec.Set(field, cell(t, header, row, refs[0], def))
		case 2:
			a := cell(t, header, row, refs[0], def)
			b := cell(t, header, row, refs[1], def)
			rec.Set(field, models.Value{
				Text:    a.Text + " / " + b.Text,
				Present: a.Present && b.Present,
			})
		}
	}
	return rec
}

func cell(t models.Table, header []string, row int, ref ColumnRef, def string) models.Value {
	col := ref.Index
	if ref.Name != "" {
		i, err := rowlookup.ColumnIndex(header, ref.Name)
		if err != nil {
			return models.Value{Text: def}
		}
		col = i
	}
	v, ok := t.Cell(row, col)
	if !ok {
		return models.Value{Text: def}
	}
	return models.Value{Text: v, Present: true}
}
