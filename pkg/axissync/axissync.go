// Package axissync locks coverage y axes and re-frames them around the data
// visible in the current x window.
package axissync

import (
	"math"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/logging"
	"github.com/grovetools/covview/pkg/figure"
)

// Group pairs a trace x-axis reference with the layout y axis it scales.
type Group struct {
	// XAxis is the trace reference, e.g. "x" or "x3".
	XAxis string `yaml:"x" toml:"x" json:"x"`
	// YAxis is the layout key, e.g. "yaxis" or "yaxis3".
	YAxis string `yaml:"y" toml:"y" json:"y"`
}

// Options configures a Syncer.
type Options struct {
	Groups  []Group
	Floor   float64
	Padding float64
}

// DefaultGroups are the coverage panel (row 1) and the per-sample panel (row 3).
// Row 2 carries feature glyphs and is never rescaled.
var DefaultGroups = []Group{
	{XAxis: "x", YAxis: "yaxis"},
	{XAxis: "x3", YAxis: "yaxis3"},
}

const (
	DefaultFloor   = 10.0
	DefaultPadding = 0.01
)

// DefaultOptions returns the coverage page settings.
func DefaultOptions() Options {
	groups := make([]Group, len(DefaultGroups))
	copy(groups, DefaultGroups)
	return Options{
		Groups:  groups,
		Floor:   DefaultFloor,
		Padding: DefaultPadding,
	}
}

// XRange is a visible x window in data coordinates.
type XRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Syncer applies axis locking and auto-ranging to figures.
type Syncer struct {
	opts   Options
	logger *logrus.Entry
}

// New creates a Syncer. Zero-valued options fall back to the defaults.
func New(opts Options) *Syncer {
	if len(opts.Groups) == 0 {
		opts.Groups = DefaultOptions().Groups
	}
	if opts.Floor <= 0 {
		opts.Floor = DefaultFloor
	}
	if opts.Padding <= 0 {
		opts.Padding = DefaultPadding
	}
	return &Syncer{
		opts:   opts,
		logger: logging.NewLogger("axissync"),
	}
}

// Options returns the active options.
func (s *Syncer) Options() Options {
	return s.opts
}

// LockAxes turns off autorange on every tracked y axis and sets fixedrange
// to locked. The input figure is not modified.
func (s *Syncer) LockAxes(locked bool, fig *figure.Figure) (*figure.Figure, error) {
	out, err := fig.Clone()
	if err != nil {
		return nil, err
	}
	for _, g := range s.opts.Groups {
		axis, ok := out.Axis(g.YAxis)
		if !ok {
			return nil, errors.MissingAxis(g.YAxis)
		}
		axis.Autorange = figure.Bool(false)
		axis.Fixedrange = figure.Bool(locked)
	}
	s.logger.WithField("locked", locked).Debug("Set fixedrange on tracked axes")
	return out, nil
}

// Recompute frames every tracked y axis around the maximum y value inside
// the visible x window and pins it there. When autoEnabled is false it
// returns the NO_UPDATE sentinel so the host keeps its figure.
func (s *Syncer) Recompute(visible XRange, fig *figure.Figure, autoEnabled bool) (*figure.Figure, error) {
	if !autoEnabled {
		return nil, errors.NoUpdate("y autorange is disabled")
	}
	out, err := fig.Clone()
	if err != nil {
		return nil, err
	}

	lo, hi, ok := indexWindow(visible, out)
	if !ok {
		s.logger.Debug("No usable reference trace, using floor range")
	}

	for _, g := range s.opts.Groups {
		axis, exists := out.Axis(g.YAxis)
		if !exists {
			return nil, errors.MissingAxis(g.YAxis)
		}

		yMax := 0.0
		if ok {
			for _, trace := range out.Data {
				if trace == nil || trace.XAxisRef() != g.XAxis {
					continue
				}
				if m, found := trace.Y.Window(lo, hi).Max(); found && m > yMax {
					yMax = m
				}
			}
		}
		if yMax < s.opts.Floor {
			yMax = s.opts.Floor
		}

		axis.Range = []float64{-yMax * s.opts.Padding, yMax * (1 + s.opts.Padding)}
		axis.Autorange = figure.Bool(false)
		axis.Fixedrange = figure.Bool(true)

		s.logger.WithFields(logrus.Fields{
			"axis": g.YAxis,
			"min":  axis.Range[0],
			"max":  axis.Range[1],
		}).Debug("Recomputed y range")
	}
	return out, nil
}

// indexWindow converts a visible x window to a half-open index window over
// the first trace's x samples, which are assumed uniformly spaced. The upper
// bound is clamped to the sample count.
func indexWindow(visible XRange, fig *figure.Figure) (int, int, bool) {
	if len(fig.Data) == 0 || fig.Data[0] == nil {
		return 0, 0, false
	}
	x := fig.Data[0].X
	if len(x) < 2 {
		return 0, 0, false
	}
	step := x[1] - x[0]
	if !isFinite(step) || step <= 0 || !isFinite(visible.Min) || !isFinite(visible.Max) || !isFinite(x[0]) {
		return 0, 0, false
	}

	lo := math.Max(math.Floor((visible.Min-x[0])/step), 0)
	hi := math.Min(math.Ceil((visible.Max-x[0])/step), float64(len(x)))
	if hi < 0 {
		hi = 0
	}
	if lo > float64(len(x)) {
		lo = float64(len(x))
	}
	return int(lo), int(hi), true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// VisibleXRange reads the x window from the figure's primary x axis.
func VisibleXRange(fig *figure.Figure) (XRange, bool) {
	axis, ok := fig.Axis("xaxis")
	if !ok || len(axis.Range) < 2 {
		return XRange{}, false
	}
	return XRange{Min: axis.Range[0], Max: axis.Range[1]}, true
}

// SetXRange returns a copy of fig whose primary x axis shows r.
func SetXRange(fig *figure.Figure, r XRange) (*figure.Figure, error) {
	out, err := fig.Clone()
	if err != nil {
		return nil, err
	}
	axis, ok := out.Axis("xaxis")
	if !ok {
		axis = &figure.Axis{}
		out.SetAxis("xaxis", axis)
	}
	axis.Range = []float64{r.Min, r.Max}
	return out, nil
}
