// Package highlight picks a background for every displayed feature table row
// depending on whether the feature lies in the visible genomic window.
package highlight

import (
	"github.com/grovetools/covview/pkg/table"
)

// DefaultHeaderRows is the number of rendered rows above the first data row
// (column names and the filter row).
const DefaultHeaderRows = 2

// Palette holds the background tokens. Even and odd refer to the parity of
// the rendered row index.
type Palette struct {
	VisibleEven string `json:"visible_even" yaml:"visible_even"`
	VisibleOdd  string `json:"visible_odd" yaml:"visible_odd"`
	NeutralEven string `json:"neutral_even" yaml:"neutral_even"`
	NeutralOdd  string `json:"neutral_odd" yaml:"neutral_odd"`
}

// DefaultPalette uses the Bootstrap theme variables.
var DefaultPalette = Palette{
	VisibleEven: "rgba(var(--bs-primary-rgb), 0.2)",
	VisibleOdd:  "rgba(var(--bs-primary-rgb), 0.3)",
	NeutralEven: "var(--bs-tertiary-bg)",
	NeutralOdd:  "var(--bs-secondary-bg)",
}

// RowStyle is the render instruction for one displayed row.
type RowStyle struct {
	// Position is the index into the displayed list.
	Position int `json:"position"`
	// RowIndex is the rendered row, Position plus the header height.
	RowIndex int `json:"row_index"`
	// DataIndex is the index into the table data.
	DataIndex int    `json:"data_index"`
	Visible   bool   `json:"visible"`
	Color     string `json:"color"`
}

// Highlighter maps displayed rows to background colours.
type Highlighter struct {
	palette    Palette
	headerRows int
}

// New creates a Highlighter. Empty palette entries fall back to
// DefaultPalette and a negative header height to DefaultHeaderRows.
func New(palette Palette, headerRows int) *Highlighter {
	if palette.VisibleEven == "" {
		palette.VisibleEven = DefaultPalette.VisibleEven
	}
	if palette.VisibleOdd == "" {
		palette.VisibleOdd = DefaultPalette.VisibleOdd
	}
	if palette.NeutralEven == "" {
		palette.NeutralEven = DefaultPalette.NeutralEven
	}
	if palette.NeutralOdd == "" {
		palette.NeutralOdd = DefaultPalette.NeutralOdd
	}
	if headerRows < 0 {
		headerRows = DefaultHeaderRows
	}
	return &Highlighter{palette: palette, headerRows: headerRows}
}

// Default returns a Highlighter with the default palette and header height.
func Default() *Highlighter {
	return New(DefaultPalette, DefaultHeaderRows)
}

// Palette returns the active palette.
func (h *Highlighter) Palette() Palette {
	return h.palette
}

// HighlightVisible returns exactly one RowStyle per entry of displayed. A
// record is visible when it lies on visible.Contig and overlaps
// [visible.Start, visible.End]. Indices outside rows are neutral.
func (h *Highlighter) HighlightVisible(displayed []int, visible table.Region, rows []table.Row) []RowStyle {
	styles := make([]RowStyle, len(displayed))
	for pos, idx := range displayed {
		matched := idx >= 0 && idx < len(rows) && visible.Overlaps(rows[idx])
		rowIndex := pos + h.headerRows
		styles[pos] = RowStyle{
			Position:  pos,
			RowIndex:  rowIndex,
			DataIndex: idx,
			Visible:   matched,
			Color:     h.color(rowIndex, matched),
		}
	}
	return styles
}

func (h *Highlighter) color(rowIndex int, visible bool) string {
	even := rowIndex%2 == 0
	switch {
	case visible && even:
		return h.palette.VisibleEven
	case visible:
		return h.palette.VisibleOdd
	case even:
		return h.palette.NeutralEven
	default:
		return h.palette.NeutralOdd
	}
}

// VisibleMask reports, per row of rows, whether it overlaps visible.
func VisibleMask(rows []table.Row, visible table.Region) []bool {
	mask := make([]bool, len(rows))
	for i, r := range rows {
		mask[i] = visible.Overlaps(r)
	}
	return mask
}
