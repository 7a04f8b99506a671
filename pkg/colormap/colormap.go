// Package colormap keeps the user's per-trace colour choices and applies
// them to coverage figures.
package colormap

import (
	"sort"

	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/pkg/figure"
)

// Map associates a trace identifier (the legend group) with a CSS colour.
type Map map[string]string

// DefaultCycle is the Plotly qualitative palette used for new traces.
var DefaultCycle = []string{
	"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A",
	"#19D3F3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

// SetColor returns a copy of m with trace set to color. m itself is never
// modified and may be nil.
func SetColor(m Map, trace, color string) Map {
	out := make(Map, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[trace] = color
	return out
}

// Lookup returns the colour stored for trace.
func Lookup(m Map, trace string) (string, bool) {
	c, ok := m[trace]
	return c, ok
}

// Traces returns the mapped trace names in sorted order.
func (m Map) Traces() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Defaults assigns DefaultCycle colours to traces in order, wrapping around.
func Defaults(traces []string) Map {
	m := make(Map, len(traces))
	for i, t := range traces {
		m[t] = DefaultCycle[i%len(DefaultCycle)]
	}
	return m
}

// Merge returns base overlaid with override.
func Merge(base, override Map) Map {
	out := make(Map, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		out[k] = v
	}
	return out
}

// ApplyOptions controls how colours are written into traces.
type ApplyOptions struct {
	// LineTraces are trace names coloured through line.color.
	LineTraces []string
	// FillOpacity is the alpha of the fill colour of every other trace.
	FillOpacity float64
}

// DefaultApplyOptions colours the summary traces by line and the
// per-sample bands with a translucent fill.
func DefaultApplyOptions() ApplyOptions {
	return ApplyOptions{
		LineTraces:  []string{"Mean", "Median"},
		FillOpacity: 0.4,
	}
}

// Apply returns a copy of fig with the colours from m written into every
// trace whose legend group is mapped. Traces without a legend group or
// without a mapping are unchanged.
func Apply(fig *figure.Figure, m Map, opts ApplyOptions) (*figure.Figure, error) {
	if fig == nil {
		return nil, errors.NoUpdate("no figure to recolour")
	}
	out, err := fig.Clone()
	if err != nil {
		return nil, err
	}

	lines := make(map[string]bool, len(opts.LineTraces))
	for _, name := range opts.LineTraces {
		lines[name] = true
	}

	for _, trace := range out.Data {
		if trace == nil || trace.LegendGroup == "" {
			continue
		}
		color, ok := m[trace.LegendGroup]
		if !ok {
			continue
		}
		if lines[trace.Name] {
			if trace.Line == nil {
				trace.Line = &figure.Line{}
			}
			trace.Line.Color = color
			continue
		}
		fill, err := ToRGBA(color, opts.FillOpacity)
		if err != nil {
			return nil, err
		}
		trace.FillColor = fill
	}
	return out, nil
}
