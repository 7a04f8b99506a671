// Package sanitize turns free-form labels into safe file names.
package sanitize

import (
	"regexp"
	"strings"
)

var (
	separatorReplacer = strings.NewReplacer(
		" ", "-",
		"_", "-",
		":", "-",
		".", "-",
		"/", "-",
	)

	invalidRegex   = regexp.MustCompile(`[^a-z0-9-]+`)
	multiDashRegex = regexp.MustCompile(`-+`)
)

const maxFilenameLen = 50

// ForFilename sanitizes a string for use in a filename (kebab-case).
func ForFilename(s string) string {
	s = strings.ToLower(s)
	s = separatorReplacer.Replace(s)
	s = invalidRegex.ReplaceAllString(s, "")
	s = multiDashRegex.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxFilenameLen {
		s = strings.TrimRight(s[:maxFilenameLen], "-")
	}
	return s
}
