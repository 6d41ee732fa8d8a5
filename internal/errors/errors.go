package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context, keeping the code of a wrapped AppError
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode attaches an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// GetCode returns the code of the outermost AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// Predefined error codes
const (
	CodeConfigInvalid        = "CONFIG_INVALID"
	CodeInvalidInput         = "INVALID_INPUT"
	CodeValidationError      = "VALIDATION_ERROR"
	CodeUnparseableFile      = "UNPARSEABLE_FILE"
	CodePayloadTooLarge      = "PAYLOAD_TOO_LARGE"
	CodeUnsupportedOperation = "UNSUPPORTED_OPERATION"
	CodeDivisionByZero       = "DIVISION_BY_ZERO"
	CodeInternalError        = "INTERNAL_ERROR"
)

// HTTPStatus maps an error code to a response status
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case CodeInvalidInput, CodeUnparseableFile, CodeUnsupportedOperation, CodeDivisionByZero:
		return http.StatusBadRequest
	case CodeValidationError:
		return http.StatusUnprocessableEntity
	case CodePayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func UnparseableFile(cause error) *AppError {
	return &AppError{
		Code:    CodeUnparseableFile,
		Message: "Could not parse uploaded file",
		Cause:   cause,
	}
}

func PayloadTooLarge(limit int64) *AppError {
	return New(CodePayloadTooLarge, fmt.Sprintf("Uploaded file exceeds the %d byte limit", limit))
}

func UnsupportedOperation() *AppError {
	return New(CodeUnsupportedOperation, "Unsupported operation")
}

func DivisionByZero() *AppError {
	return New(CodeDivisionByZero, "Division by zero")
}
