// Package parser reads spreadsheet and delimited-text sources into
// normalized tables.
package parser

// Normalize trims a ragged grid to its used rectangle.
//
// Rows whose cells are all empty are dropped, the remainder is padded with
// pad to the widest row, and every row is cut after the last column that
// holds a non-empty cell anywhere in the grid. The first remaining row is
// returned as the header; data rows that became empty after the cut are
// dropped. A nil header means the grid had no content.
func Normalize[C any](grid [][]C, empty func(C) bool, pad C) (header []C, rows [][]C) {
	nonEmpty := dropEmptyRows(grid, empty)
	if len(nonEmpty) == 0 {
		return nil, nil
	}

	padded := padRows(nonEmpty, pad)

	lastCol := lastNonEmptyColumn(padded, empty)
	if lastCol < 0 {
		return nil, nil
	}

	header = padded[0][:lastCol+1]
	rows = make([][]C, 0, len(padded)-1)
	for _, row := range padded[1:] {
		rows = append(rows, row[:lastCol+1])
	}

	return header, dropEmptyRows(rows, empty)
}

// dropEmptyRows returns the rows that have at least one non-empty cell.
func dropEmptyRows[C any](rows [][]C, empty func(C) bool) [][]C {
	result := make([][]C, 0, len(rows))
	for _, row := range rows {
		if !rowIsEmpty(row, empty) {
			result = append(result, row)
		}
	}
	return result
}

func rowIsEmpty[C any](row []C, empty func(C) bool) bool {
	for _, cell := range row {
		if !empty(cell) {
			return false
		}
	}
	return true
}

// padRows right-pads every row to the width of the widest row.
// The input rows are not modified.
func padRows[C any](rows [][]C, pad C) [][]C {
	maxCols := 0
	for _, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}

	result := make([][]C, len(rows))
	for i, row := range rows {
		padded := make([]C, maxCols)
		n := copy(padded, row)
		for j := n; j < maxCols; j++ {
			padded[j] = pad
		}
		result[i] = padded
	}
	return result
}

// lastNonEmptyColumn returns the greatest column index holding a non-empty
// cell in any row, or -1. Rows must share one width.
func lastNonEmptyColumn[C any](rows [][]C, empty func(C) bool) int {
	if len(rows) == 0 {
		return -1
	}

	last := -1
	for col := 0; col < len(rows[0]); col++ {
		for _, row := range rows {
			if !empty(row[col]) {
				last = col
				break
			}
		}
	}
	return last
}
