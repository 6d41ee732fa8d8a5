package parser

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ukaji3/tablenorm-go/pkg/tablenorm/models"
	"github.com/xuri/excelize/v2"
)

// ExtractSpreadsheet reads the active sheet of an xlsx workbook into a
// normalized table. Data cells keep their native type; headers are
// stringified.
func ExtractSpreadsheet(content []byte) (*models.Table, error) {
	grid, err := ReadWorkbook(content)
	if err != nil {
		return nil, err
	}

	header, rows := Normalize(grid, models.Value.IsEmpty, models.Null())
	if header == nil {
		return models.EmptyTable(models.FormatSpreadsheet), nil
	}

	headers := make([]string, len(header))
	for i, cell := range header {
		headers[i] = cell.String()
	}

	return &models.Table{
		Format:  models.FormatSpreadsheet,
		Headers: headers,
		Rows:    rows,
	}, nil
}

// ReadWorkbook returns the cached cell values of the active sheet.
// Formula cells yield their last computed value.
func ReadWorkbook(content []byte) (models.Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	sheetName := activeSheet(f)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidWorkbook)
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %q: %w", ErrInvalidWorkbook, sheetName, err)
	}

	grid := make(models.Grid, 0, len(rows))
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		values := make(models.Row, len(row))

		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidWorkbook, err)
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, fmt.Errorf("%w: cell %s: %w", ErrInvalidWorkbook, cellName, err)
			}
			values[colIdx] = cellValue(raw, cellType)
		}

		grid = append(grid, values)
	}

	return grid, nil
}

// activeSheet returns the active sheet name, or the first sheet when the
// active index does not resolve.
func activeSheet(f *excelize.File) string {
	if name := f.GetSheetName(f.GetActiveSheetIndex()); name != "" {
		return name
	}
	if sheets := f.GetSheetList(); len(sheets) > 0 {
		return sheets[0]
	}
	return ""
}

// cellValue converts a raw cell value to a typed Value using the cell's
// stored type.
func cellValue(raw string, cellType excelize.CellType) models.Value {
	switch cellType {
	case excelize.CellTypeBool:
		return models.Bool(raw == "1" || strings.EqualFold(raw, "TRUE"))
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeError, excelize.CellTypeDate:
		return models.Text(raw)
	default:
		return parseNumber(raw)
	}
}

// parseNumber returns a Number for numeric text, or the original text.
func parseNumber(s string) models.Value {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return models.Text(s)
	}
	return models.Number(f)
}
