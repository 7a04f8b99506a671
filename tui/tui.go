// Package tui holds terminal setup shared by covview's interactive commands.
package tui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/grovetools/covview/config"
	"github.com/grovetools/covview/tui/keymap"
)

// Config is the `tui` section of covview.yml.
type Config struct {
	Theme string           `yaml:"theme" json:"theme,omitempty"`
	Keys  keymap.Overrides `yaml:"keys" json:"keys,omitempty"`
}

// LoadConfig decodes the `tui` section of cfg. A missing or malformed
// section yields the zero Config.
func LoadConfig(cfg *config.Config) Config {
	var c Config
	if cfg != nil {
		_ = cfg.UnmarshalExtension("tui", &c)
	}
	return c
}

// InitializeTUI sets the lipgloss colour profile. CLICOLOR_FORCE=1 or
// COLORTERM=truecolor force full colour; otherwise output that is not a
// terminal is rendered without escape codes.
func InitializeTUI() {
	switch {
	case os.Getenv("CLICOLOR_FORCE") == "1" || os.Getenv("COLORTERM") == "truecolor":
		lipgloss.SetColorProfile(termenv.TrueColor)
	case !IsTerminal(os.Stdout):
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
