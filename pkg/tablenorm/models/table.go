package models

// Format tags the strategy that produced a Table.
type Format string

const (
	// FormatSpreadsheet is an OOXML workbook.
	FormatSpreadsheet Format = "spreadsheet"
	// FormatDelimitedText is comma-delimited text.
	FormatDelimitedText Format = "delimited-text"
)

// Row is an ordered sequence of cells.
type Row = []Value

// Grid is the raw rows read from a source before normalization.
// Rows may have differing lengths.
type Grid = []Row

// Table is a normalized rectangular table.
type Table struct {
	// Format is the strategy that produced the table.
	Format Format `json:"type"`
	// Headers is the first non-empty source row, stringified.
	Headers []string `json:"headers"`
	// Rows holds data rows, each exactly len(Headers) wide.
	Rows []Row `json:"rows"`
}

// EmptyTable returns a table with no headers and no rows.
func EmptyTable(format Format) *Table {
	return &Table{
		Format:  format,
		Headers: []string{},
		Rows:    []Row{},
	}
}

// TextRow converts string cells to a Row of text values.
func TextRow(cells []string) Row {
	row := make(Row, len(cells))
	for i, c := range cells {
		row[i] = Text(c)
	}
	return row
}
