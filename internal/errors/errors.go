package errors

import (
	stderrors "errors"
	"fmt"
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

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   appErr,
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

// GetCode returns the error code if it's an AppError, otherwise "UNKNOWN"
func GetCode(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}

// HasCode reports whether err carries the given code anywhere in its chain
func HasCode(err error, code string) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Predefined error codes
const (
	CodeSchemaMissing = "SCHEMA_MISSING"
	CodeEmptyKey      = "EMPTY_KEY"
	CodeDerivation    = "DERIVATION_FAILED"
	CodeConfigInvalid = "CONFIG_INVALID"
	CodeIOFailure     = "IO_FAILURE"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInternalError = "INTERNAL_ERROR"
)

// SchemaMissing signals that a required column is absent from a dataset.
// The column name and the dataset it was expected in are carried verbatim
// in the message.
func SchemaMissing(column, dataset string) *AppError {
	return New(CodeSchemaMissing, fmt.Sprintf("column %q missing from %s", column, dataset))
}

// EmptyKey signals that no identity columns were supplied to a diff.
func EmptyKey() *AppError {
	return New(CodeEmptyKey, "identity key must name at least one column")
}

// Derivation signals that a user-supplied key function failed on a row.
func Derivation(rowIndex int, cause error) *AppError {
	return &AppError{
		Code:    CodeDerivation,
		Message: fmt.Sprintf("group key derivation failed at row %d", rowIndex),
		Cause:   cause,
	}
}

// ConfigInvalid signals a bad configuration value.
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

// InvalidInput signals a malformed request from the caller.
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// IsSchemaMissing reports whether err is a missing-column failure.
func IsSchemaMissing(err error) bool { return HasCode(err, CodeSchemaMissing) }

// IsEmptyKey reports whether err is an empty identity key failure.
func IsEmptyKey(err error) bool { return HasCode(err, CodeEmptyKey) }

// IsDerivation reports whether err is a key derivation failure.
func IsDerivation(err error) bool { return HasCode(err, CodeDerivation) }
