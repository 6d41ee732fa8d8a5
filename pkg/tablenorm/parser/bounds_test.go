package parser

import (
	"reflect"
	"strings"
	"testing"
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name           string
		grid           [][]string
		expectedHeader []string
		expectedRows   [][]string
	}{
		{
			name:           "empty grid",
			grid:           nil,
			expectedHeader: nil,
			expectedRows:   nil,
		},
		{
			name:           "only blank rows",
			grid:           [][]string{{"", " "}, {}, {"\t"}},
			expectedHeader: nil,
			expectedRows:   nil,
		},
		{
			name:           "leading and trailing blank rows",
			grid:           [][]string{{"", "", ""}, {"Name", "Age", ""}, {"Ann", "30", ""}, {"", "", ""}},
			expectedHeader: []string{"Name", "Age"},
			expectedRows:   [][]string{{"Ann", "30"}},
		},
		{
			name:           "ragged rows are padded before trimming",
			grid:           [][]string{{"a", "b"}, {"1", "2", "3", ""}, {"x"}},
			expectedHeader: []string{"a", "b", ""},
			expectedRows:   [][]string{{"1", "2", "3"}, {"x", "", ""}},
		},
		{
			name:           "value beyond header widens the table",
			grid:           [][]string{{"h1"}, {"", "", "late"}},
			expectedHeader: []string{"h1", "", ""},
			expectedRows:   [][]string{{"", "", "late"}},
		},
		{
			name:           "header only",
			grid:           [][]string{{"a", "b", ""}},
			expectedHeader: []string{"a", "b"},
			expectedRows:   [][]string{},
		},
		{
			name:           "interior blank column is kept",
			grid:           [][]string{{"a", "", "c"}, {"1", "", "3"}},
			expectedHeader: []string{"a", "", "c"},
			expectedRows:   [][]string{{"1", "", "3"}},
		},
		{
			name:           "interior blank rows are dropped",
			grid:           [][]string{{"a"}, {""}, {"1"}, {" "}, {"2"}},
			expectedHeader: []string{"a"},
			expectedRows:   [][]string{{"1"}, {"2"}},
		},
	}

	for _, tt := range tests {
		header, rows := Normalize(tt.grid, blank, "")
		if !reflect.DeepEqual(header, tt.expectedHeader) {
			t.Errorf("%s: header = %q, expected %q", tt.name, header, tt.expectedHeader)
		}
		if tt.expectedRows == nil {
			if rows != nil {
				t.Errorf("%s: rows = %q, expected nil", tt.name, rows)
			}
			continue
		}
		if !reflect.DeepEqual(rows, tt.expectedRows) {
			t.Errorf("%s: rows = %q, expected %q", tt.name, rows, tt.expectedRows)
		}
	}
}

func TestNormalizeRowWidths(t *testing.T) {
	grid := [][]string{{"", "h"}, {"1"}, {"1", "2", "", "", ""}, {"", "", "", "", "", ""}}

	header, rows := Normalize(grid, blank, "")
	for i, row := range rows {
		if len(row) != len(header) {
			t.Errorf("row %d has %d cells, header has %d", i, len(row), len(header))
		}
		if rowIsEmpty(row, blank) {
			t.Errorf("row %d is empty: %q", i, row)
		}
	}
}

func TestNormalizeDoesNotModifyInput(t *testing.T) {
	grid := [][]string{{"a", "b"}, {"1"}}

	Normalize(grid, blank, "-")
	if len(grid[1]) != 1 {
		t.Errorf("input row was modified: %q", grid[1])
	}
}

func TestLastNonEmptyColumn(t *testing.T) {
	tests := []struct {
		rows     [][]string
		expected int
	}{
		{nil, -1},
		{[][]string{{"", ""}}, -1},
		{[][]string{{"a", ""}, {"", ""}}, 0},
		{[][]string{{"", ""}, {"", "b"}}, 1},
		{[][]string{{"a", "", ""}, {"", "", "c"}}, 2},
	}

	for _, tt := range tests {
		if got := lastNonEmptyColumn(tt.rows, blank); got != tt.expected {
			t.Errorf("lastNonEmptyColumn(%q) = %d, expected %d", tt.rows, got, tt.expected)
		}
	}
}
