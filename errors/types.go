package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Figure errors
	ErrCodeMissingAxis   ErrorCode = "MISSING_AXIS"
	ErrCodeInvalidFigure ErrorCode = "INVALID_FIGURE"

	// Colour and table errors
	ErrCodeInvalidColor ErrorCode = "INVALID_COLOR"
	ErrCodeTableLoad    ErrorCode = "TABLE_LOAD"

	// NoUpdate tells the host to leave its current value untouched.
	ErrCodeNoUpdate ErrorCode = "NO_UPDATE"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Error represents a structured error with context
type Error struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *Error) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new Error
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an Error
func Wrap(err error, code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is reports whether any covview error in err's chain carries code.
func Is(err error, code ErrorCode) bool {
	for err != nil {
		var covErr *Error
		if !stderrors.As(err, &covErr) {
			return false
		}
		if covErr.Code == code {
			return true
		}
		err = covErr.Cause
	}
	return false
}

// GetCode returns the code of the outermost covview error in err's chain,
// or "" when there is none.
func GetCode(err error) ErrorCode {
	var covErr *Error
	if stderrors.As(err, &covErr) {
		return covErr.Code
	}
	return ""
}
