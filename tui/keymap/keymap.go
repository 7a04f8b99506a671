// Package keymap defines the key bindings of the covview terminal viewer.
package keymap

import "github.com/charmbracelet/bubbles/key"

// Viewer holds the bindings of the interactive viewer. Field names double
// as override keys in snake_case (PanLeft is pan_left).
type Viewer struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	PanLeft    key.Binding
	PanRight   key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	NextContig key.Binding

	Select    key.Binding
	Autorange key.Binding

	ToggleLogs key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultViewer returns the vim-style viewer bindings.
func DefaultViewer() Viewer {
	return Viewer{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("C-u", "previous page"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("C-d", "next page"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/left", "pan left"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/right", "pan right"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		NextContig: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "next contig"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "focus feature"),
		),
		Autorange: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle y autorange"),
		),
		ToggleLogs: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "toggle logs"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Sections implements SectionedKeyMap.
func (k Viewer) Sections() []Section {
	return []Section{
		NewSection(SectionNavigation, k.Up, k.Down, k.PageUp, k.PageDown),
		NewSection(SectionWindow, k.PanLeft, k.PanRight, k.ZoomIn, k.ZoomOut, k.NextContig),
		NewSection(SectionActions, k.Select, k.Autorange),
		NewSection(SectionSystem, k.ToggleLogs, k.Help, k.Quit),
	}
}

// ShortHelp implements help.KeyMap.
func (k Viewer) ShortHelp() []key.Binding {
	return []key.Binding{k.PanLeft, k.PanRight, k.ZoomIn, k.ZoomOut, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k Viewer) FullHelp() [][]key.Binding {
	return FullHelp(k)
}
