package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/covview/errors"
)

// ErrorHandler prints user-friendly messages for covview error codes.
type ErrorHandler struct {
	Verbose bool
	Out     io.Writer
}

// NewErrorHandler creates an error handler writing to stderr.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{
		Verbose: verbose,
		Out:     os.Stderr,
	}
}

func detail(err error, key string) interface{} {
	if e, ok := err.(*errors.Error); ok {
		return e.Details[key]
	}
	return nil
}

// Handle prints a message for err and returns it unchanged. NO_UPDATE is
// not a failure: it is reported and nil is returned.
func (h *ErrorHandler) Handle(err error) error {
	if err == nil {
		return nil
	}
	out := h.Out
	if out == nil {
		out = os.Stderr
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeNoUpdate:
		fmt.Fprintf(out, "Nothing to update: %v\n", err)
		return nil

	case errors.ErrCodeConfigNotFound:
		fmt.Fprintf(out, "❌ Configuration not found. Create covview.yml or pass --config.\n")

	case errors.ErrCodeConfigValidation, errors.ErrCodeConfigInvalid:
		fmt.Fprintf(out, "❌ Invalid configuration: %v\n", err)
		fmt.Fprintf(out, "Run 'covview config schema' to see the expected format.\n")

	case errors.ErrCodeMissingAxis:
		fmt.Fprintf(out, "❌ Figure has no layout axis '%v'\n", detail(err, "axis"))
		fmt.Fprintf(out, "Check axes.groups in covview.yml against the figure layout.\n")

	case errors.ErrCodeInvalidColor:
		fmt.Fprintf(out, "❌ Cannot parse colour '%v'\n", detail(err, "color"))
		fmt.Fprintf(out, "Use #rgb, #rrggbb, rgb(r, g, b) or hsl(h, s%%, l%%).\n")

	case errors.ErrCodeTableLoad:
		fmt.Fprintf(out, "❌ Cannot load feature table '%v'\n", detail(err, "path"))

	default:
		fmt.Fprintf(out, "❌ Error: %v\n", err)
	}

	if h.Verbose {
		if e, ok := err.(*errors.Error); ok {
			fmt.Fprintf(out, "\nError details:\n%s\n", e.ToJSON())
		}
	}
	return err
}
