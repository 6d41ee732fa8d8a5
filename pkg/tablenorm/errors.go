package tablenorm

import (
	"errors"
	"fmt"

	"github.com/ukaji3/tablenorm-go/pkg/tablenorm/models"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrSpreadsheetUnavailable indicates the spreadsheet engine is disabled.
var ErrSpreadsheetUnavailable = errors.New("spreadsheet engine unavailable")

// StrategyError represents a failure of one extraction strategy.
type StrategyError struct {
	Format models.Format
	// Recoverable is true when the next strategy may still succeed.
	Recoverable bool
	Err         error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("%s extraction failed: %v", e.Format, e.Err)
}

func (e *StrategyError) Unwrap() error {
	return e.Err
}

// UnparseableFileError is returned when no strategy could read the input.
type UnparseableFileError struct {
	Filename string
	Err      error
}

func (e *UnparseableFileError) Error() string {
	return fmt.Sprintf("could not parse uploaded file: %v", e.Cause())
}

func (e *UnparseableFileError) Unwrap() error {
	return e.Err
}

// Cause returns the underlying parse failure without the strategy prefix.
func (e *UnparseableFileError) Cause() error {
	var strategyErr *StrategyError
	if errors.As(e.Err, &strategyErr) {
		return strategyErr.Err
	}
	return e.Err
}

// NewUnparseableFileError creates a new UnparseableFileError.
func NewUnparseableFileError(filename string, err error) *UnparseableFileError {
	return &UnparseableFileError{
		Filename: filename,
		Err:      err,
	}
}
