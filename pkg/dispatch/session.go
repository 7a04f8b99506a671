package dispatch

import (
	"github.com/grovetools/covview/pkg/colormap"
	"github.com/grovetools/covview/pkg/figure"
	"github.com/grovetools/covview/pkg/relayout"
	"github.com/grovetools/covview/pkg/table"
)

// Session is everything one dashboard view knows between events. It is
// passed explicitly to every handler; nothing is kept globally.
type Session struct {
	Figure    *figure.Figure `json:"figure,omitempty"`
	Colors    colormap.Map   `json:"colors,omitempty"`
	Autorange bool           `json:"autorange"`
	Rows      []table.Row    `json:"rows,omitempty"`
	// Contigs maps each contig to its length in bases.
	Contigs map[string]int `json:"contigs,omitempty"`
	Contig  string         `json:"contig,omitempty"`
	// Visible is the window the user sees.
	Visible table.Region `json:"visible"`
	// Window is the padded window loaded into the figure.
	Window relayout.Window `json:"window"`
	// Relayout is the last relayout event seen.
	Relayout relayout.Event `json:"relayout"`
}

// NewSession returns an empty session with auto-ranging on.
func NewSession() *Session {
	return &Session{
		Colors:    colormap.Map{},
		Autorange: true,
		Contigs:   map[string]int{},
	}
}
