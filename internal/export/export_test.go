package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/HendryAvila/azimut/internal/journal"
)

func sample(t *testing.T) []journal.Entry {
	t.Helper()
	at := time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)
	a, err := journal.NewEntry(at, 3, "2026-03-01", "Marcador somático — Pecho", "nudo, presión", map[string]string{"zona": "pecho", "contexto": "trabajo"})
	require.NoError(t, err)
	b, err := journal.NewEntry(at.Add(time.Minute), 9, "", "Reflexión final", "línea 1\nlínea 2", nil)
	require.NoError(t, err)
	return []journal.Entry{a, b}
}

func TestNewTable(t *testing.T) {
	tbl := NewTable(sample(t))

	assert.Equal(t, Columns, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, []string{
		"2026-03-02T09:15:00Z", "3", "2026-03-01", "Marcador somático — Pecho", "nudo, presión", "contexto=trabajo; zona=pecho",
	}, tbl.Rows[0])
	assert.Equal(t, "", tbl.Rows[1][2], "absent date exports blank")
	assert.Equal(t, "", tbl.Rows[1][5])
}

func TestNewTable_Empty(t *testing.T) {
	tbl := NewTable(nil)
	assert.Equal(t, Columns, tbl.Header)
	assert.Empty(t, tbl.Rows)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(sample(t))
	require.NoError(t, WriteCSV(&buf, tbl))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, Columns, records[0])
	assert.Equal(t, "línea 1\nlínea 2", records[2][4])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(sample(t))
	require.NoError(t, WriteXLSX(&buf, tbl))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())
	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, tbl.Rows[0], rows[1])
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, "pdf", NewTable(nil)))
	assert.NoError(t, Write(&buf, FormatCSV, NewTable(nil)))
}
