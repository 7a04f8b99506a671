package errors

import (
	"fmt"
)

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *Error {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *Error {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// MissingAxis reports a tracked axis key that the figure layout does not define.
func MissingAxis(axis string) *Error {
	return New(ErrCodeMissingAxis, fmt.Sprintf("layout has no axis '%s'", axis)).
		WithDetail("axis", axis)
}

// InvalidFigure reports a figure that cannot be processed at all.
func InvalidFigure(reason string) *Error {
	return New(ErrCodeInvalidFigure, fmt.Sprintf("invalid figure: %s", reason))
}

// InvalidColor reports a colour string or opacity that cannot be converted.
func InvalidColor(color string, reason string) *Error {
	return New(ErrCodeInvalidColor, fmt.Sprintf("invalid color '%s': %s", color, reason)).
		WithDetail("color", color)
}

// TableLoad wraps a failure to read table rows from a file.
func TableLoad(path string, err error) *Error {
	return Wrap(err, ErrCodeTableLoad, fmt.Sprintf("failed to load table: %s", path)).
		WithDetail("path", path)
}

// NoUpdate creates the sentinel that tells the host to keep its current value.
func NoUpdate(reason string) *Error {
	return New(ErrCodeNoUpdate, reason)
}

// IsNoUpdate reports whether err is the no-update sentinel.
func IsNoUpdate(err error) bool {
	return Is(err, ErrCodeNoUpdate)
}

// IsRecoverable reports whether a callback error should degrade to a
// no-update instead of failing the dispatcher.
func IsRecoverable(err error) bool {
	switch GetCode(err) {
	case ErrCodeNoUpdate, ErrCodeMissingAxis, ErrCodeInvalidColor, ErrCodeInvalidFigure:
		return true
	}
	return false
}
