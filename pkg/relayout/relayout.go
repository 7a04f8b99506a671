// Package relayout interprets chart relayout events: it tells zooms from
// pans, decides when the loaded data window must be rebuilt and computes
// the window to load.
package relayout

import (
	"math"

	"github.com/mitchellh/mapstructure"

	"github.com/grovetools/covview/errors"
)

const (
	// DefaultPanMargin is the fraction of the visible width that may come
	// within the loaded window's edge before a pan triggers a redraw.
	DefaultPanMargin = 0.25
	// DefaultWindowPadding is the fraction of the visible width loaded on
	// each side of it.
	DefaultWindowPadding = 0.5
	// DefaultWindow is the visible width after a contig change.
	DefaultWindow = 2000
	// AnnotationLimit is the widest window that still shows feature labels.
	AnnotationLimit = 5000
	// FeatureLimit is the widest window that still shows feature glyphs.
	FeatureLimit = 100000
)

// Event is a decoded relayout payload. Only the x axis keys are modelled;
// everything else is kept in Extra.
type Event struct {
	R0        *float64               `mapstructure:"xaxis.range[0]" json:"xaxis.range[0],omitempty"`
	R1        *float64               `mapstructure:"xaxis.range[1]" json:"xaxis.range[1],omitempty"`
	Range     []float64              `mapstructure:"xaxis.range" json:"xaxis.range,omitempty"`
	Autorange *bool                  `mapstructure:"xaxis.autorange" json:"xaxis.autorange,omitempty"`
	Extra     map[string]interface{} `mapstructure:",remain" json:"-"`
}

// Decode converts a raw relayout map into an Event.
func Decode(raw map[string]interface{}) (Event, error) {
	var ev Event
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &ev,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return Event{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to create relayout decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return Event{}, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid relayout event")
	}
	return ev, nil
}

// NewEvent builds an event for an explicit x range.
func NewEvent(r0, r1 float64) Event {
	return Event{R0: &r0, R1: &r1}
}

// XRange returns the x range carried by the event, from either the split
// keys or the array form.
func (e Event) XRange() (float64, float64, bool) {
	if e.R0 != nil && e.R1 != nil {
		return *e.R0, *e.R1, true
	}
	if len(e.Range) == 2 {
		return e.Range[0], e.Range[1], true
	}
	return 0, 0, false
}

// Width is the x extent of the event, or NaN when it has none.
func (e Event) Width() float64 {
	r0, r1, ok := e.XRange()
	if !ok {
		return math.NaN()
	}
	return r1 - r0
}

// IsZoom reports whether the window width changed between two events. The
// comparison uses a relative tolerance of 1e-5 and an absolute one of 1e-8.
func IsZoom(prev, next Event) bool {
	a, b := prev.Width(), next.Width()
	if math.IsNaN(a) || math.IsNaN(b) {
		return true
	}
	return !isClose(a, b)
}

func isClose(a, b float64) bool {
	return math.Abs(a-b) <= 1e-8+1e-5*math.Abs(b)
}

// Window is a loaded or displayed x interval in bases.
type Window struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Width is End - Start.
func (w Window) Width() float64 {
	return w.End - w.Start
}

// Outcome is the result of resolving a relayout.
type Outcome struct {
	// Start and End are the new visible window in whole bases.
	Start int `json:"start"`
	End   int `json:"end"`
	// Redraw is set when the figure must be rebuilt around the new window.
	Redraw bool `json:"redraw"`
	Zoom   bool `json:"zoom"`
	// Event is the event to store as the last seen relayout.
	Event Event `json:"event"`
}

// Resolver applies the pan and padding policy.
type Resolver struct {
	PanMargin     float64
	WindowPadding float64
}

// NewResolver creates a Resolver. Non-positive values take the defaults.
func NewResolver(panMargin, windowPadding float64) *Resolver {
	if panMargin <= 0 {
		panMargin = DefaultPanMargin
	}
	if windowPadding <= 0 {
		windowPadding = DefaultWindowPadding
	}
	return &Resolver{PanMargin: panMargin, WindowPadding: windowPadding}
}

// Resolve compares a new relayout against the previous one and the loaded
// window. Events without an x range yield NO_UPDATE. A zoom always redraws;
// a pan redraws when the visible range comes within PanMargin widths of the
// loaded window's edge.
func (r *Resolver) Resolve(next, prev Event, internal Window) (Outcome, error) {
	r0, r1, ok := next.XRange()
	if !ok {
		return Outcome{}, errors.NoUpdate("relayout carries no x range")
	}
	if math.IsNaN(r0) || math.IsNaN(r1) || math.IsInf(r0, 0) || math.IsInf(r1, 0) {
		return Outcome{}, errors.New(errors.ErrCodeInvalidInput, "relayout x range is not finite")
	}

	start := int(r0)
	if start < 0 {
		start = 0
	}
	end := int(r1)
	margin := float64(end-start) * r.PanMargin

	out := Outcome{Start: start, End: end, Event: NewEvent(r0, r1)}
	if IsZoom(prev, next) {
		out.Zoom = true
		out.Redraw = true
		return out, nil
	}
	if r1 > internal.End-margin || r0 < internal.Start+margin {
		out.Redraw = true
	}
	return out, nil
}

// InternalWindow is the window loaded around [start, end] and the sampling
// step used for it: WindowPadding widths on each side and one sample per
// 0.5% of the loaded width.
func (r *Resolver) InternalWindow(start, end float64) (Window, int) {
	pad := (end - start) * r.WindowPadding
	w := Window{Start: start - pad, End: end + pad}
	step := int(w.Width() * 0.005)
	if step < 1 {
		step = 1
	}
	return w, step
}

// NeedsRedraw reports whether a requested window differs from what is shown.
// forced skips every check, as does a contig change. Otherwise an unset,
// inverted or unchanged request yields NO_UPDATE.
func NeedsRedraw(start, end *int, displayed Window, oldContig, contig string, forced bool) error {
	if forced || oldContig != contig {
		return nil
	}
	if start == nil || end == nil {
		return errors.NoUpdate("window is not set")
	}
	if int(displayed.Start) == *start && int(displayed.End) == *end {
		return errors.NoUpdate("window is unchanged")
	}
	if *start >= *end {
		return errors.NoUpdate("window is empty")
	}
	return nil
}

// ResetForContig returns the window to show after switching to a contig of
// the given size. An unset end or one past the contig resets the window to
// [0, min(size, width)].
func ResetForContig(size int, start, end *int, width int) (int, int) {
	if width <= 0 {
		width = DefaultWindow
	}
	if end == nil || *end >= size {
		if size < width {
			return 0, size
		}
		return 0, width
	}
	s := 0
	if start != nil {
		s = *start
	}
	return s, *end
}

// Detail reports which feature layers are drawn for a window width.
func Detail(width float64) (annotations, features bool) {
	return width <= AnnotationLimit, width <= FeatureLimit
}
