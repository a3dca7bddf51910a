// Package export projects a filtered journal into a table and writes it
// as an Excel workbook or CSV for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/HendryAvila/azimut/internal/journal"
)

// SheetName is the worksheet holding the exported entries.
const SheetName = "Respuestas"

// Supported formats.
const (
	FormatXLSX = "xlsx"
	FormatCSV  = "csv"
)

// Columns is the fixed header of every export.
var Columns = []string{"recorded_at", "category", "effective_date", "label", "value", "annotations"}

// Table is a read-only tabular projection of entries.
type Table struct {
	Header []string
	Rows   [][]string
}

// NewTable builds the projection of entries, in the order given.
func NewTable(entries []journal.Entry) Table {
	t := Table{
		Header: slices.Clone(Columns),
		Rows:   make([][]string, 0, len(entries)),
	}
	for _, e := range entries {
		date := ""
		if e.EffectiveDate != nil {
			date = *e.EffectiveDate
		}
		t.Rows = append(t.Rows, []string{
			e.RecordedAt.UTC().Format(time.RFC3339Nano),
			strconv.Itoa(int(e.Category)),
			date,
			e.Label,
			e.Value,
			FormatAnnotations(e.Annotations),
		})
	}
	return t
}

// FormatAnnotations renders annotations as "k=v; k=v" sorted by key.
func FormatAnnotations(ann map[string]string) string {
	if len(ann) == 0 {
		return ""
	}
	keys := make([]string, 0, len(ann))
	for k := range ann {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+ann[k])
	}
	return strings.Join(parts, "; ")
}

// Write encodes t in the named format.
func Write(w io.Writer, format string, t Table) error {
	switch format {
	case FormatXLSX:
		return WriteXLSX(w, t)
	case FormatCSV:
		return WriteCSV(w, t)
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// WriteXLSX writes t as a single-sheet workbook.
func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	rows := append([][]string{t.Header}, t.Rows...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing row %d: %w", i+1, err)
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freezing header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// WriteCSV writes t as RFC 4180 CSV.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	return nil
}
