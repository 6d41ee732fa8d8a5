// Package tablenorm turns uploaded spreadsheets and delimited text of
// arbitrary shape into rectangular tables.
package tablenorm

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ukaji3/tablenorm-go/pkg/tablenorm/models"
)

// spreadsheetExtensions select the spreadsheet strategy.
var spreadsheetExtensions = []string{"xlsx", "xlsm", "xltx", "xltm"}

// Options configures extraction behavior.
type Options struct {
	// Spreadsheet reports whether the spreadsheet engine may be used.
	// When false, spreadsheet inputs go straight to delimited-text parsing.
	Spreadsheet bool
	// Logger receives diagnostics for recovered failures.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Spreadsheet: true,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// DetectFormat selects a format from a filename. Names ending in xlsx,
// xlsm, xltx or xltm (any case) are spreadsheets; everything else is
// delimited text.
func DetectFormat(filename string) models.Format {
	name := strings.ToLower(filepath.Base(filename))
	for _, ext := range spreadsheetExtensions {
		if strings.HasSuffix(name, ext) {
			return models.FormatSpreadsheet
		}
	}
	return models.FormatDelimitedText
}
