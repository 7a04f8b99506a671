package dispatch

import (
	"github.com/grovetools/covview/pkg/colormap"
	"github.com/grovetools/covview/pkg/figure"
	"github.com/grovetools/covview/pkg/highlight"
	"github.com/grovetools/covview/pkg/relayout"
	"github.com/grovetools/covview/pkg/table"
)

// EventType names a dashboard interaction.
type EventType string

const (
	EventLoad        EventType = "load"
	EventRelayout    EventType = "relayout"
	EventAutorange   EventType = "autorange"
	EventTraceColor  EventType = "trace-color"
	EventTablePage   EventType = "table-page"
	EventSelectRow   EventType = "select-row"
	EventVisibleRows EventType = "visible-rows"
	EventContig      EventType = "contig"
)

// Event is one interaction. Only the fields used by Type are read.
type Event struct {
	Type EventType `json:"type"`

	// load
	Figure  *figure.Figure `json:"figure,omitempty"`
	Rows    []table.Row    `json:"rows,omitempty"`
	Colors  colormap.Map   `json:"colors,omitempty"`
	Contigs map[string]int `json:"contigs,omitempty"`

	// relayout
	Relayout map[string]interface{} `json:"relayout,omitempty"`

	// autorange
	Enabled *bool `json:"enabled,omitempty"`

	// trace-color
	Trace string `json:"trace,omitempty"`
	Color string `json:"color,omitempty"`

	// table-page
	Displayed []int `json:"displayed,omitempty"`

	// select-row
	RowID *int `json:"row_id,omitempty"`

	// visible-rows: recompute even when the window is unchanged
	Force bool `json:"force,omitempty"`

	// contig, load and visible-rows
	Contig string `json:"contig,omitempty"`
	Start  *int   `json:"start,omitempty"`
	End    *int   `json:"end,omitempty"`
}

// Response carries whatever the handler changed. NoUpdate means the host
// keeps every current value.
type Response struct {
	NoUpdate bool   `json:"no_update,omitempty"`
	Reason   string `json:"reason,omitempty"`

	Figure    *figure.Figure       `json:"figure,omitempty"`
	Colors    colormap.Map         `json:"colors,omitempty"`
	Autorange *bool                `json:"autorange,omitempty"`
	Styles    []highlight.RowStyle `json:"styles,omitempty"`
	Rows      []table.Row          `json:"rows,omitempty"`
	Region    *table.Region        `json:"region,omitempty"`
	Outcome   *relayout.Outcome    `json:"outcome,omitempty"`
}
