// Package plot renders one axis group of a coverage figure to PNG or SVG.
package plot

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/logging"
	"github.com/grovetools/covview/pkg/axissync"
	"github.com/grovetools/covview/pkg/colormap"
	"github.com/grovetools/covview/pkg/figure"
)

// Format is an output image format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// FormatForPath picks the format from a file extension, defaulting to PNG.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return FormatSVG
	}
	return FormatPNG
}

// Options controls rendering.
type Options struct {
	Group  axissync.Group
	Title  string
	Width  int
	Height int
	Format Format
}

// DefaultOptions renders the coverage panel at 1024x400.
func DefaultOptions() Options {
	return Options{
		Group:  axissync.DefaultGroups[0],
		Width:  1024,
		Height: 400,
		Format: FormatPNG,
	}
}

// Render draws every trace bound to opts.Group.XAxis, clipped to the
// figure's x window and framed by the group's y axis range.
func Render(w io.Writer, fig *figure.Figure, opts Options) error {
	if fig == nil {
		return errors.InvalidFigure("figure is nil")
	}
	if opts.Group.XAxis == "" {
		opts.Group = axissync.DefaultGroups[0]
	}
	if opts.Width <= 0 {
		opts.Width = DefaultOptions().Width
	}
	if opts.Height <= 0 {
		opts.Height = DefaultOptions().Height
	}

	xr, hasX := axissync.VisibleXRange(fig)
	if hasX && !(xr.Max > xr.Min) {
		hasX = false
	}

	var series []chart.Series
	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMax := 0.0
	for i, trace := range fig.Data {
		if trace == nil || trace.XAxisRef() != opts.Group.XAxis {
			continue
		}
		xs, ys := points(trace, xr, hasX)
		if len(xs) == 0 {
			continue
		}
		if len(xs) == 1 {
			// go-chart needs two points to draw a segment.
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		for j := range xs {
			xMin = math.Min(xMin, xs[j])
			xMax = math.Max(xMax, xs[j])
			yMax = math.Max(yMax, ys[j])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    traceName(trace, i),
			XValues: xs,
			YValues: ys,
			Style:   traceStyle(trace, i),
		})
	}
	if len(series) == 0 {
		return errors.InvalidFigure("no plottable traces on "+opts.Group.XAxis).
			WithDetail("xaxis", opts.Group.XAxis)
	}

	xRange := &chart.ContinuousRange{Min: xMin, Max: xMax}
	if hasX {
		xRange = &chart.ContinuousRange{Min: xr.Min, Max: xr.Max}
	}
	yRange := &chart.ContinuousRange{Min: -yMax * axissync.DefaultPadding, Max: math.Max(yMax, axissync.DefaultFloor) * (1 + axissync.DefaultPadding)}
	if axis, ok := fig.Axis(opts.Group.YAxis); ok && len(axis.Range) == 2 && axis.Range[1] > axis.Range[0] {
		yRange = &chart.ContinuousRange{Min: axis.Range[0], Max: axis.Range[1]}
	}

	ch := chart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 16, Right: 12, Bottom: 12}},
		XAxis:      chart.XAxis{Name: "Position", Range: xRange},
		YAxis:      chart.YAxis{Name: "Coverage", Range: yRange},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	provider := chart.PNG
	if opts.Format == FormatSVG {
		provider = chart.SVG
	}

	logging.NewLogger("plot").WithField("series", len(series)).Debug("Rendering chart")
	if err := ch.Render(provider, w); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to render chart")
	}
	return nil
}

// points returns the finite samples of trace, restricted to r when clip is set.
func points(trace *figure.Trace, r axissync.XRange, clip bool) ([]float64, []float64) {
	n := len(trace.X)
	if len(trace.Y) < n {
		n = len(trace.Y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x, y := trace.X[i], trace.Y[i]
		if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
			continue
		}
		if clip && (x < r.Min || x > r.Max) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}

func traceName(trace *figure.Trace, i int) string {
	switch {
	case trace.Name != "":
		return trace.Name
	case trace.LegendGroup != "":
		return trace.LegendGroup
	default:
		return fmt.Sprintf("trace %d", i)
	}
}

// traceStyle uses the line colour when set, then the fill colour, then the
// default cycle.
func traceStyle(trace *figure.Trace, i int) chart.Style {
	var css string
	fill := false
	switch {
	case trace.Line != nil && trace.Line.Color != "":
		css = trace.Line.Color
	case trace.FillColor != "":
		css = trace.FillColor
		fill = true
	}

	rgb, err := colormap.Parse(css)
	if err != nil {
		rgb, _ = colormap.Parse(colormap.DefaultCycle[i%len(colormap.DefaultCycle)])
	}
	c := drawing.Color{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}

	style := chart.Style{StrokeColor: c, StrokeWidth: 1.5}
	if fill {
		style.FillColor = c.WithAlpha(100)
	}
	return style
}
