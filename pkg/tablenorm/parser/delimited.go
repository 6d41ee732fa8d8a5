package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/tablenorm-go/pkg/tablenorm/models"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ExtractDelimited parses comma-delimited UTF-8 text into a normalized table.
// All cells of the result are text.
func ExtractDelimited(content []byte) (*models.Table, error) {
	records, err := ReadDelimited(content)
	if err != nil {
		return nil, err
	}

	header, rows := Normalize(records, isBlank, "")
	if header == nil {
		return models.EmptyTable(models.FormatDelimitedText), nil
	}

	table := &models.Table{
		Format:  models.FormatDelimitedText,
		Headers: header,
		Rows:    make([]models.Row, 0, len(rows)),
	}
	for _, row := range rows {
		table.Rows = append(table.Rows, models.TextRow(row))
	}
	return table, nil
}

// ReadDelimited decodes content as UTF-8 and returns its comma-delimited
// records. Records may have differing lengths.
func ReadDelimited(content []byte) ([][]string, error) {
	text, err := decodeText(content)
	if err != nil {
		return nil, err
	}

	if err := checkQuotesClosed(text); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDelimitedParse, err)
	}

	reader := csv.NewReader(bytes.NewReader(text))
	reader.FieldsPerRecord = -1 // allow variable field counts
	reader.LazyQuotes = true

	var records [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDelimitedParse, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// decodeText validates UTF-8 and strips a leading byte order mark.
func decodeText(content []byte) ([]byte, error) {
	if !utf8.Valid(content) {
		return nil, fmt.Errorf("%w: invalid byte sequence at offset %d", ErrInvalidText, invalidOffset(content))
	}

	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	text, _, err := transform.Bytes(decoder, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidText, err)
	}
	return text, nil
}

// checkQuotesClosed fails when the text ends inside a quoted field.
// It follows the lazy quoting rules of csv.Reader: a field is quoted only
// when it starts with a quote, "" is an escaped quote, and a quote closes
// the field only when followed by a comma, a line break or the end of
// input. Any other quote is literal.
func checkQuotesClosed(text []byte) error {
	line, col := 1, 0
	startLine, startCol := 0, 0
	inQuotes, fieldStart := false, true

	for i := 0; i < len(text); i++ {
		c := text[i]
		col++

		if inQuotes {
			if c == '"' {
				switch {
				case i+1 < len(text) && text[i+1] == '"':
					i++
					col++
				case closesField(text[i+1:]):
					inQuotes = false
				}
			} else if c == '\n' {
				line++
				col = 0
			}
			continue
		}

		switch c {
		case '"':
			if fieldStart {
				inQuotes = true
				startLine, startCol = line, col
			}
			fieldStart = false
		case ',':
			fieldStart = true
		case '\n':
			fieldStart = true
			line++
			col = 0
		case '\r':
			fieldStart = true
		default:
			fieldStart = false
		}
	}

	if inQuotes {
		return &csv.ParseError{StartLine: startLine, Line: line, Column: startCol, Err: csv.ErrQuote}
	}
	return nil
}

// closesField reports whether a quote followed by rest ends its field.
func closesField(rest []byte) bool {
	return len(rest) == 0 || rest[0] == ',' || rest[0] == '\n' || bytes.HasPrefix(rest, []byte("\r\n"))
}

// invalidOffset returns the byte offset of the first invalid UTF-8 sequence.
func invalidOffset(content []byte) int {
	offset := 0
	for offset < len(content) {
		r, size := utf8.DecodeRune(content[offset:])
		if r == utf8.RuneError && size == 1 {
			return offset
		}
		offset += size
	}
	return -1
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
