// Package figure models the subset of a Plotly figure the coverage callbacks
// read and write. Keys the callbacks do not understand are preserved so a
// figure round-trips through the service unchanged.
package figure

import (
	"regexp"
	"sort"

	"github.com/tiendc/go-deepcopy"

	"github.com/grovetools/covview/errors"
)

// DefaultXAxis and DefaultYAxis are the axis references Plotly assumes when a
// trace does not name one.
const (
	DefaultXAxis = "x"
	DefaultYAxis = "y"
)

var axisKeyRegex = regexp.MustCompile(`^[xy]axis[0-9]*$`)

// Figure is a chart description: traces plus layout.
type Figure struct {
	Data   []*Trace
	Layout *Layout
	Extra  map[string]RawValue
}

// Layout holds the figure axes by layout key ("xaxis", "yaxis3", ...) and
// every other layout attribute untouched.
type Layout struct {
	Axes  map[string]*Axis
	Extra map[string]RawValue
}

// Axis is a single layout axis.
type Axis struct {
	Range      []float64
	Autorange  *bool
	Fixedrange *bool
	Extra      map[string]RawValue
}

// Trace is one plotted series.
type Trace struct {
	Name        string
	LegendGroup string
	X           Series
	Y           Series
	XAxis       string
	YAxis       string
	Line        *Line
	FillColor   string
	Extra       map[string]RawValue
}

// Line is the trace line style.
type Line struct {
	Color string
	Extra map[string]RawValue
}

// Bool returns a pointer to b, for the optional axis flags.
func Bool(b bool) *bool {
	return &b
}

// IsAxisKey reports whether key names a layout axis.
func IsAxisKey(key string) bool {
	return axisKeyRegex.MatchString(key)
}

// Clone returns a deep copy of the figure. Callbacks never mutate their input.
func (f *Figure) Clone() (*Figure, error) {
	if f == nil {
		return nil, errors.InvalidFigure("figure is nil")
	}
	var out Figure
	if err := deepcopy.Copy(&out, f); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to copy figure")
	}
	return &out, nil
}

// Axis returns the layout axis stored under key.
func (f *Figure) Axis(key string) (*Axis, bool) {
	if f == nil || f.Layout == nil || f.Layout.Axes == nil {
		return nil, false
	}
	axis, ok := f.Layout.Axes[key]
	return axis, ok && axis != nil
}

// SetAxis stores axis under key, creating the layout if needed.
func (f *Figure) SetAxis(key string, axis *Axis) {
	if f.Layout == nil {
		f.Layout = &Layout{}
	}
	if f.Layout.Axes == nil {
		f.Layout.Axes = make(map[string]*Axis)
	}
	f.Layout.Axes[key] = axis
}

// AxisKeys returns the layout axis keys in sorted order.
func (f *Figure) AxisKeys() []string {
	if f == nil || f.Layout == nil {
		return nil
	}
	keys := make([]string, 0, len(f.Layout.Axes))
	for k := range f.Layout.Axes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// XAxisRef returns the trace's x-axis reference, defaulting to "x".
func (t *Trace) XAxisRef() string {
	if t.XAxis == "" {
		return DefaultXAxis
	}
	return t.XAxis
}

// YAxisRef returns the trace's y-axis reference, defaulting to "y".
func (t *Trace) YAxisRef() string {
	if t.YAxis == "" {
		return DefaultYAxis
	}
	return t.YAxis
}

// LayoutKey converts an axis reference ("x3") to its layout key ("xaxis3").
func LayoutKey(ref string) string {
	if len(ref) == 0 {
		return ""
	}
	return ref[:1] + "axis" + ref[1:]
}
