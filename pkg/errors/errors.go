// Package errors defines the structured error drip returns from every
// package.
//
// A DripError carries a stable Code, a human Message, the inputs of the
// failed operation in Details, and optionally the error it wraps. Callers
// and tests branch on the code, never on the message:
//
//   - RECIPE_READ, RECIPE_PARSE: the recipe file could not be read or decoded
//   - TAP_FAILED, FORMULA_FAILED, CASK_FAILED: Homebrew rejected a package
//   - COMMAND_FAILED: a process could not be started, or a fish step failed
//   - DIR_CREATE, FILE_COPY, DOWNLOAD_FAILED, READ_WRITE: postinstall I/O
//   - CONFIG_LOAD, INVALID_INPUT, INTERNAL: configuration and CLI usage
//
// The install failures are built through the constructors in install.go so
// that each one records a "reason" detail.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a failure category
type ErrorCode string

const (
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrConfigLoad   ErrorCode = "CONFIG_LOAD"

	ErrRecipeRead  ErrorCode = "RECIPE_READ"
	ErrRecipeParse ErrorCode = "RECIPE_PARSE"

	ErrTapFailed     ErrorCode = "TAP_FAILED"
	ErrFormulaFailed ErrorCode = "FORMULA_FAILED"
	ErrCaskFailed    ErrorCode = "CASK_FAILED"
	ErrCommandFailed ErrorCode = "COMMAND_FAILED"

	ErrDirCreate      ErrorCode = "DIR_CREATE"
	ErrFileCopy       ErrorCode = "FILE_COPY"
	ErrDownloadFailed ErrorCode = "DOWNLOAD_FAILED"
	ErrReadWrite      ErrorCode = "READ_WRITE"
)

// DripError is the error type returned across drip
type DripError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error renders "[CODE] message", followed by the wrapped error if any.
// The CLI strips the code before showing it to a user.
func (e *DripError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *DripError) Unwrap() error {
	return e.Wrapped
}

// Is matches any DripError with the same code
func (e *DripError) Is(target error) bool {
	var other *DripError
	if errors.As(target, &other) {
		return e.Code == other.Code
	}
	return false
}

func build(wrapped error, code ErrorCode, message string) *DripError {
	return &DripError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: wrapped,
	}
}

// New creates a DripError
func New(code ErrorCode, message string) *DripError {
	return build(nil, code, message)
}

// Newf creates a DripError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DripError {
	return build(nil, code, fmt.Sprintf(format, args...))
}

// Wrap attaches code and message to err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *DripError {
	if err == nil {
		return nil
	}
	return build(err, code, message)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DripError {
	if err == nil {
		return nil
	}
	return build(err, code, fmt.Sprintf(format, args...))
}

// WithDetail records key on the error and returns it for chaining
func (e *DripError) WithDetail(key string, value interface{}) *DripError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func asDrip(err error) (*DripError, bool) {
	var de *DripError
	ok := errors.As(err, &de)
	return de, ok
}

// IsErrorCode reports whether the outermost DripError in err's chain has code
func IsErrorCode(err error, code ErrorCode) bool {
	de, ok := asDrip(err)
	return ok && de.Code == code
}

// GetErrorCode returns err's code, or ErrUnknown for foreign errors
func GetErrorCode(err error) ErrorCode {
	if de, ok := asDrip(err); ok {
		return de.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns err's details, or nil for foreign errors
func GetErrorDetails(err error) map[string]interface{} {
	if de, ok := asDrip(err); ok {
		return de.Details
	}
	return nil
}
