package keymap

import "github.com/charmbracelet/bubbles/key"

// Standard section names.
const (
	SectionNavigation = "Navigation"
	SectionWindow     = "Window"
	SectionActions    = "Actions"
	SectionSystem     = "System"
)

// Section groups bindings under a heading for the help view.
type Section struct {
	Name     string
	Bindings []key.Binding
}

// SectionedKeyMap is implemented by keymaps that group their bindings.
type SectionedKeyMap interface {
	Sections() []Section
}

// NewSection creates a section with a custom name.
func NewSection(name string, bindings ...key.Binding) Section {
	return Section{Name: name, Bindings: bindings}
}

// FullHelp flattens sections into the columns bubbles/help expects,
// dropping disabled bindings and empty sections.
func FullHelp(km SectionedKeyMap) [][]key.Binding {
	var columns [][]key.Binding
	for _, s := range km.Sections() {
		var col []key.Binding
		for _, b := range s.Bindings {
			if b.Enabled() {
				col = append(col, b)
			}
		}
		if len(col) > 0 {
			columns = append(columns, col)
		}
	}
	return columns
}
