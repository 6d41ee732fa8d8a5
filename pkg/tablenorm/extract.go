package tablenorm

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ukaji3/tablenorm-go/pkg/tablenorm/models"
	"github.com/ukaji3/tablenorm-go/pkg/tablenorm/parser"
)

// strategy is one way of reading the input. A recoverable strategy that
// fails hands over to the next one in the list.
type strategy struct {
	format      models.Format
	recoverable bool
	extract     func(content []byte) (*models.Table, error)
}

// Extract normalizes an uploaded file, choosing the format from its name.
func Extract(content []byte, filename string, opts Options) (*models.Table, error) {
	table, err := ExtractFormat(content, DetectFormat(filename), opts)
	if err != nil {
		var unparseable *UnparseableFileError
		if errors.As(err, &unparseable) {
			unparseable.Filename = filename
		}
		return nil, err
	}
	return table, nil
}

// ExtractFile normalizes a file on disk.
func ExtractFile(path string, opts Options) (*models.Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return Extract(content, filepath.Base(path), opts)
}

// ExtractFormat normalizes content using the strategies for the given
// format. Spreadsheet input that cannot be read as a workbook is parsed as
// delimited text instead.
func ExtractFormat(content []byte, format models.Format, opts Options) (*models.Table, error) {
	log := opts.logger()

	var lastErr error
	for _, s := range strategies(format, opts) {
		table, err := s.extract(content)
		if err == nil {
			return table, nil
		}

		lastErr = &StrategyError{
			Format:      s.format,
			Recoverable: s.recoverable,
			Err:         err,
		}
		if !s.recoverable {
			break
		}
		log.Debug("extraction strategy failed, falling back",
			slog.String("format", string(s.format)),
			slog.Any("error", err),
		)
	}

	return nil, NewUnparseableFileError("", lastErr)
}

// strategies returns the ordered strategies for a format. Delimited text is
// always last and its failure is final.
func strategies(format models.Format, opts Options) []strategy {
	var list []strategy
	if format == models.FormatSpreadsheet {
		list = append(list, strategy{
			format:      models.FormatSpreadsheet,
			recoverable: true,
			extract:     spreadsheetExtractor(opts.Spreadsheet),
		})
	}
	return append(list, strategy{
		format:  models.FormatDelimitedText,
		extract: parser.ExtractDelimited,
	})
}

func spreadsheetExtractor(available bool) func([]byte) (*models.Table, error) {
	if !available {
		return func([]byte) (*models.Table, error) {
			return nil, ErrSpreadsheetUnavailable
		}
	}
	return parser.ExtractSpreadsheet
}
