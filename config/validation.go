package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/grovetools/covview/errors"
)

var (
	traceAxisRegex  = regexp.MustCompile(`^x\d*$`)
	layoutAxisRegex = regexp.MustCompile(`^yaxis\d*$`)
)

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Axes.Groups))
	for i, g := range c.Axes.Groups {
		if !traceAxisRegex.MatchString(g.X) {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("axes.groups[%d].x must be a trace x-axis reference like 'x' or 'x3', got '%s'", i, g.X)).
				WithDetail("group", i)
		}
		if !layoutAxisRegex.MatchString(g.Y) {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("axes.groups[%d].y must be a layout y-axis key like 'yaxis' or 'yaxis3', got '%s'", i, g.Y)).
				WithDetail("group", i)
		}
		if seen[g.Y] {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("axis '%s' appears in more than one group", g.Y)).
				WithDetail("axis", g.Y)
		}
		seen[g.Y] = true
	}

	if c.Axes.Floor < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "axes.floor cannot be negative")
	}
	if c.Axes.Padding < 0 || c.Axes.Padding >= 1 {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("axes.padding must be in [0, 1), got %g", c.Axes.Padding))
	}

	if c.Highlight.HeaderRows < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "highlight.header_rows cannot be negative")
	}

	if c.Colors.FillOpacity < 0 || c.Colors.FillOpacity > 1 {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("colors.fill_opacity must be in [0, 1], got %g", c.Colors.FillOpacity))
	}
	for name, color := range c.Colors.Traces {
		if color == "" {
			return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("colors.traces.%s cannot be empty", name)).
				WithDetail("trace", name)
		}
	}

	if c.Relayout.PanMargin < 0 || c.Relayout.PanMargin > 0.5 {
		return errors.New(errors.ErrCodeConfigValidation, fmt.Sprintf("relayout.pan_margin must be in [0, 0.5], got %g", c.Relayout.PanMargin))
	}
	if c.Relayout.WindowPadding < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "relayout.window_padding cannot be negative")
	}
	if c.Relayout.DefaultWindow < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "relayout.default_window cannot be negative")
	}

	if c.Table.FocusPadding < 0 {
		return errors.New(errors.ErrCodeConfigValidation, "table.focus_padding cannot be negative")
	}

	if err := validateServer(&c.Server); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigValidation, "invalid server configuration")
	}

	return nil
}

func validateServer(s *ServerConfig) error {
	if s.Port < 0 || s.Port > 65535 {
		return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("port %d is out of range", s.Port)).
			WithDetail("port", s.Port)
	}
	if s.ReadTimeout != "" {
		d, err := time.ParseDuration(s.ReadTimeout)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInvalidInput, fmt.Sprintf("invalid read_timeout '%s'", s.ReadTimeout))
		}
		if d < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "read_timeout cannot be negative")
		}
	}
	return nil
}

// ReadTimeoutDuration returns the parsed read timeout, or the default when
// the value is empty or malformed.
func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	if d, err := time.ParseDuration(s.ReadTimeout); err == nil {
		return d
	}
	d, _ := time.ParseDuration(DefaultReadTimeout)
	return d
}
