package tablenorm

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/tablenorm-go/pkg/tablenorm/models"
	"github.com/ukaji3/tablenorm-go/pkg/tablenorm/parser"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		expected models.Format
	}{
		{"data.xlsx", models.FormatSpreadsheet},
		{"DATA.XLSX", models.FormatSpreadsheet},
		{"macro.xlsm", models.FormatSpreadsheet},
		{"template.Xltx", models.FormatSpreadsheet},
		{"template.xltm", models.FormatSpreadsheet},
		{"dir.xlsx/data.csv", models.FormatDelimitedText},
		{"data.csv", models.FormatDelimitedText},
		{"data.txt", models.FormatDelimitedText},
		{"legacy.xls", models.FormatDelimitedText},
		{"", models.FormatDelimitedText},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DetectFormat(tt.filename), tt.filename)
	}
}

func TestExtractSpreadsheetScenario(t *testing.T) {
	content := workbookBytes(t, [][]interface{}{
		{nil, nil, nil},
		{"Name", "Age", nil},
		{"Ann", 30, nil},
		{nil, nil, nil},
	})

	table, err := Extract(content, "people.xlsx", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, models.FormatSpreadsheet, table.Format)
	assert.Equal(t, []string{"Name", "Age"}, table.Headers)
	assert.Equal(t, []models.Row{{models.Text("Ann"), models.Number(30)}}, table.Rows)
}

func TestExtractDelimitedScenario(t *testing.T) {
	table, err := Extract([]byte("a,b,c\n1,2,3\n,,\n"), "data.csv", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, models.FormatDelimitedText, table.Format)
	assert.Equal(t, []string{"a", "b", "c"}, table.Headers)
	assert.Equal(t, []models.Row{models.TextRow([]string{"1", "2", "3"})}, table.Rows)
}

func TestExtractFallsBackToDelimitedText(t *testing.T) {
	var logs bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	table, err := Extract([]byte("x,y\n1,2\n"), "data.xlsx", opts)
	require.NoError(t, err)

	assert.Equal(t, models.FormatDelimitedText, table.Format)
	assert.Equal(t, []string{"x", "y"}, table.Headers)
	assert.Equal(t, []models.Row{models.TextRow([]string{"1", "2"})}, table.Rows)
	assert.Contains(t, logs.String(), "falling back")
}

func TestExtractSpreadsheetDisabled(t *testing.T) {
	content := workbookBytes(t, [][]interface{}{{"h"}, {"v"}})

	opts := DefaultOptions()
	opts.Spreadsheet = false

	// Workbook bytes are a zip archive, which is not valid UTF-8 text.
	_, err := Extract(content, "book.xlsx", opts)
	require.Error(t, err)

	var strategyErr *StrategyError
	require.ErrorAs(t, err, &strategyErr)
	assert.Equal(t, models.FormatDelimitedText, strategyErr.Format)

	table, err := Extract([]byte("h\nv\n"), "book.xlsx", opts)
	require.NoError(t, err)
	assert.Equal(t, models.FormatDelimitedText, table.Format)
}

func TestExtractInvalidUTF8(t *testing.T) {
	_, err := Extract([]byte("a,b\n\xff\xfe\n"), "data.txt", DefaultOptions())
	require.Error(t, err)

	var unparseable *UnparseableFileError
	require.ErrorAs(t, err, &unparseable)
	assert.Equal(t, "data.txt", unparseable.Filename)
	assert.ErrorIs(t, err, parser.ErrInvalidText)
	assert.Contains(t, err.Error(), "could not parse uploaded file")
	assert.Contains(t, err.Error(), parser.ErrInvalidText.Error())
}

func TestExtractMalformedDelimitedText(t *testing.T) {
	_, err := Extract([]byte("a,b\n\"open\n"), "data.xlsx", DefaultOptions())
	require.Error(t, err)

	assert.ErrorIs(t, err, parser.ErrDelimitedParse)
	assert.False(t, errors.Is(err, parser.ErrInvalidWorkbook), "spreadsheet failure must not surface")
}

func TestExtractEmptyInput(t *testing.T) {
	table, err := Extract(nil, "empty.csv", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, models.EmptyTable(models.FormatDelimitedText), table)

	content := workbookBytes(t, [][]interface{}{{nil, ""}, {" "}})
	table, err = Extract(content, "empty.xlsx", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, models.EmptyTable(models.FormatSpreadsheet), table)
}

func TestExtractUnevenRows(t *testing.T) {
	content := workbookBytes(t, [][]interface{}{
		{"a", "b"},
		{1, 2, 3, 4},
		{"x"},
	})

	table, err := Extract(content, "uneven.xlsx", DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "", ""}, table.Headers)
	assert.Equal(t, []models.Row{
		{models.Number(1), models.Number(2), models.Number(3), models.Number(4)},
		{models.Text("x"), models.Null(), models.Null(), models.Null()},
	}, table.Rows)
}

func TestExtractIsIdempotent(t *testing.T) {
	inputs := []struct {
		filename string
		content  []byte
	}{
		{"a.csv", []byte(" , \nh1,h2,\n1,,\n,,\n2,3,\n")},
		{"b.xlsx", workbookBytes(t, [][]interface{}{{nil}, {"k", true}, {1.5, nil}})},
	}

	for _, in := range inputs {
		first, err := Extract(in.content, in.filename, DefaultOptions())
		require.NoError(t, err)
		second, err := Extract(in.content, in.filename, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, first, second, in.filename)

		for i, row := range first.Rows {
			assert.Len(t, row, len(first.Headers), "%s row %d", in.filename, i)
			empty := true
			for _, cell := range row {
				if !cell.IsEmpty() {
					empty = false
				}
			}
			assert.False(t, empty, "%s row %d is empty", in.filename, i)
		}
	}
}

func TestExtractFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.csv")
	require.NoError(t, os.WriteFile(path, []byte("id\n7\n"), 0644))

	table, err := ExtractFile(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, table.Headers)

	_, err = ExtractFile(filepath.Join(dir, "missing.csv"), DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)
}
