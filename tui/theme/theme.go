// Package theme holds the lipgloss styles shared by the covview terminal
// views and log output.
package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/grovetools/covview/config"
)

const defaultThemeName = "kanagawa"

// --- Kanagawa palette (dark / light) ---
const (
	kanagawaDarkGreen       = "#98BB6C"
	kanagawaDarkYellow      = "#FF9E3B"
	kanagawaDarkRed         = "#FF5D62"
	kanagawaDarkOrange      = "#FFA066"
	kanagawaDarkCyan        = "#7E9CD8"
	kanagawaDarkViolet      = "#957FB8"
	kanagawaDarkLightText   = "#DCD7BA"
	kanagawaDarkMutedText   = "#727169"
	kanagawaDarkBorder      = "#363646"
	kanagawaDarkVisibleEven = "#223249"
	kanagawaDarkVisibleOdd  = "#2D4F67"
	kanagawaDarkNeutralEven = "#1F1F28"
	kanagawaDarkNeutralOdd  = "#2A2A37"

	kanagawaLightGreen       = "#4E7C5A"
	kanagawaLightYellow      = "#A68A64"
	kanagawaLightRed         = "#C34043"
	kanagawaLightOrange      = "#CC6B4E"
	kanagawaLightCyan        = "#5B8BBE"
	kanagawaLightViolet      = "#674D7A"
	kanagawaLightLightText   = "#2B2F42"
	kanagawaLightMutedText   = "#6C7086"
	kanagawaLightBorder      = "#B5BDC5"
	kanagawaLightVisibleEven = "#D7E3F4"
	kanagawaLightVisibleOdd  = "#C3D5EE"
	kanagawaLightNeutralEven = "#F7F7FB"
	kanagawaLightNeutralOdd  = "#EFF1F8"
)

// --- Terminal (ANSI-friendly) palette ---
const (
	terminalGreen       = "2"
	terminalYellow      = "3"
	terminalRed         = "1"
	terminalOrange      = "208"
	terminalCyan        = "6"
	terminalViolet      = "5"
	terminalLightText   = "7"
	terminalMutedText   = "8"
	terminalBorder      = "8"
	terminalVisibleEven = "4"
	terminalVisibleOdd  = "12"
	terminalNeutralEven = "0"
	terminalNeutralOdd  = "236"
)

// Colors encapsulates the palette used by a theme.
type Colors struct {
	Green     lipgloss.TerminalColor
	Yellow    lipgloss.TerminalColor
	Red       lipgloss.TerminalColor
	Orange    lipgloss.TerminalColor
	Cyan      lipgloss.TerminalColor
	Violet    lipgloss.TerminalColor
	LightText lipgloss.TerminalColor
	MutedText lipgloss.TerminalColor
	Border    lipgloss.TerminalColor

	// Feature table row backgrounds, by visibility and row parity.
	VisibleEven lipgloss.TerminalColor
	VisibleOdd  lipgloss.TerminalColor
	NeutralEven lipgloss.TerminalColor
	NeutralOdd  lipgloss.TerminalColor
}

// Theme holds the pre-configured styles.
type Theme struct {
	Colors Colors

	Header lipgloss.Style
	Title  lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	Bold   lipgloss.Style
	Normal lipgloss.Style
	Muted  lipgloss.Style

	TableHeader lipgloss.Style
	TableBorder lipgloss.Style

	// Row styles for the feature table.
	VisibleEven lipgloss.Style
	VisibleOdd  lipgloss.Style
	NeutralEven lipgloss.Style
	NeutralOdd  lipgloss.Style

	Box       lipgloss.Style
	Highlight lipgloss.Style
	Accent    lipgloss.Style
}

var themeRegistry = map[string]func() Colors{
	"kanagawa": newKanagawaColors,
	"terminal": newTerminalColors,
}

// DefaultTheme is the theme selected by COVVIEW_THEME or the `tui.theme`
// config key.
var DefaultTheme = newThemeFromName(getThemeName())

// NewThemeWithName constructs a theme from a specific palette name.
// Unknown names fall back to the default palette.
func NewThemeWithName(name string) *Theme {
	return newThemeFromName(name)
}

// RenderHeader renders a header with the default styling.
func RenderHeader(title string) string {
	return DefaultTheme.Header.Render(title)
}

// RenderStatus renders text with the appropriate status style.
func RenderStatus(status, text string) string {
	switch status {
	case "success":
		return DefaultTheme.Success.Render(text)
	case "error":
		return DefaultTheme.Error.Render(text)
	case "warning":
		return DefaultTheme.Warning.Render(text)
	case "info":
		return DefaultTheme.Info.Render(text)
	default:
		return text
	}
}

// RowStyle returns the feature table style for a row.
func (t *Theme) RowStyle(visible bool, rowIndex int) lipgloss.Style {
	even := rowIndex%2 == 0
	switch {
	case visible && even:
		return t.VisibleEven
	case visible:
		return t.VisibleOdd
	case even:
		return t.NeutralEven
	default:
		return t.NeutralOdd
	}
}

func newThemeFromName(name string) *Theme {
	key := normalizeThemeName(name)
	builder, ok := themeRegistry[key]
	if !ok {
		builder = themeRegistry[defaultThemeName]
	}
	return newThemeFromColors(builder())
}

func newThemeFromColors(colors Colors) *Theme {
	return &Theme{
		Colors: colors,

		Header: lipgloss.NewStyle().
			Bold(true).
			MarginTop(1).
			MarginBottom(1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Underline(true),

		Success: lipgloss.NewStyle().Foreground(colors.Green).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(colors.Red).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(colors.Yellow).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(colors.Cyan).Bold(true),

		Bold:   lipgloss.NewStyle().Bold(true),
		Normal: lipgloss.NewStyle(),
		Muted:  lipgloss.NewStyle().Faint(true),

		TableHeader: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1),

		TableBorder: lipgloss.NewStyle().
			Foreground(colors.Border),

		VisibleEven: lipgloss.NewStyle().Background(colors.VisibleEven).Foreground(colors.LightText).Padding(0, 1),
		VisibleOdd:  lipgloss.NewStyle().Background(colors.VisibleOdd).Foreground(colors.LightText).Padding(0, 1),
		NeutralEven: lipgloss.NewStyle().Background(colors.NeutralEven).Padding(0, 1),
		NeutralOdd:  lipgloss.NewStyle().Background(colors.NeutralOdd).Padding(0, 1),

		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1),

		Highlight: lipgloss.NewStyle().
			Foreground(colors.Orange).
			Bold(true),

		Accent: lipgloss.NewStyle().
			Foreground(colors.Violet).
			Bold(true),
	}
}

func normalizeThemeName(name string) string {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.ReplaceAll(normalized, "_", "-")
	return normalized
}

func getThemeName() string {
	if theme := normalizeThemeName(os.Getenv("COVVIEW_THEME")); theme != "" {
		return theme
	}

	cfg, err := config.LoadDefault()
	if err != nil || cfg == nil {
		return defaultThemeName
	}

	var tuiCfg struct {
		Theme string `yaml:"theme"`
	}
	if err := cfg.UnmarshalExtension("tui", &tuiCfg); err == nil {
		if theme := normalizeThemeName(tuiCfg.Theme); theme != "" {
			return theme
		}
	}

	return defaultThemeName
}

func newKanagawaColors() Colors {
	return Colors{
		Green:       lipgloss.AdaptiveColor{Light: kanagawaLightGreen, Dark: kanagawaDarkGreen},
		Yellow:      lipgloss.AdaptiveColor{Light: kanagawaLightYellow, Dark: kanagawaDarkYellow},
		Red:         lipgloss.AdaptiveColor{Light: kanagawaLightRed, Dark: kanagawaDarkRed},
		Orange:      lipgloss.AdaptiveColor{Light: kanagawaLightOrange, Dark: kanagawaDarkOrange},
		Cyan:        lipgloss.AdaptiveColor{Light: kanagawaLightCyan, Dark: kanagawaDarkCyan},
		Violet:      lipgloss.AdaptiveColor{Light: kanagawaLightViolet, Dark: kanagawaDarkViolet},
		LightText:   lipgloss.AdaptiveColor{Light: kanagawaLightLightText, Dark: kanagawaDarkLightText},
		MutedText:   lipgloss.AdaptiveColor{Light: kanagawaLightMutedText, Dark: kanagawaDarkMutedText},
		Border:      lipgloss.AdaptiveColor{Light: kanagawaLightBorder, Dark: kanagawaDarkBorder},
		VisibleEven: lipgloss.AdaptiveColor{Light: kanagawaLightVisibleEven, Dark: kanagawaDarkVisibleEven},
		VisibleOdd:  lipgloss.AdaptiveColor{Light: kanagawaLightVisibleOdd, Dark: kanagawaDarkVisibleOdd},
		NeutralEven: lipgloss.AdaptiveColor{Light: kanagawaLightNeutralEven, Dark: kanagawaDarkNeutralEven},
		NeutralOdd:  lipgloss.AdaptiveColor{Light: kanagawaLightNeutralOdd, Dark: kanagawaDarkNeutralOdd},
	}
}

func newTerminalColors() Colors {
	return Colors{
		Green:       lipgloss.Color(terminalGreen),
		Yellow:      lipgloss.Color(terminalYellow),
		Red:         lipgloss.Color(terminalRed),
		Orange:      lipgloss.Color(terminalOrange),
		Cyan:        lipgloss.Color(terminalCyan),
		Violet:      lipgloss.Color(terminalViolet),
		LightText:   lipgloss.Color(terminalLightText),
		MutedText:   lipgloss.Color(terminalMutedText),
		Border:      lipgloss.Color(terminalBorder),
		VisibleEven: lipgloss.Color(terminalVisibleEven),
		VisibleOdd:  lipgloss.Color(terminalVisibleOdd),
		NeutralEven: lipgloss.Color(terminalNeutralEven),
		NeutralOdd:  lipgloss.Color(terminalNeutralOdd),
	}
}
