// Package dispatch routes dashboard events to the axis, highlight, colour
// and relayout handlers and threads the session through them.
package dispatch

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/covview/config"
	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/logging"
	"github.com/grovetools/covview/pkg/axissync"
	"github.com/grovetools/covview/pkg/colormap"
	"github.com/grovetools/covview/pkg/highlight"
	"github.com/grovetools/covview/pkg/profiling"
	"github.com/grovetools/covview/pkg/relayout"
	"github.com/grovetools/covview/pkg/table"
)

// Options configures a Dispatcher.
type Options struct {
	Axes          axissync.Options
	Palette       highlight.Palette
	HeaderRows    int
	Apply         colormap.ApplyOptions
	PanMargin     float64
	WindowPadding float64
	DefaultWindow int
	FocusPadding  int
	// Colors seeds the colour map of every loaded session.
	Colors colormap.Map
}

// OptionsFromConfig maps the loaded configuration onto dispatcher options.
func OptionsFromConfig(cfg *config.Config) Options {
	groups := make([]axissync.Group, len(cfg.Axes.Groups))
	for i, g := range cfg.Axes.Groups {
		groups[i] = axissync.Group{XAxis: g.X, YAxis: g.Y}
	}
	return Options{
		Axes: axissync.Options{
			Groups:  groups,
			Floor:   cfg.Axes.Floor,
			Padding: cfg.Axes.Padding,
		},
		Palette: highlight.Palette{
			VisibleEven: cfg.Highlight.Palette.VisibleEven,
			VisibleOdd:  cfg.Highlight.Palette.VisibleOdd,
			NeutralEven: cfg.Highlight.Palette.NeutralEven,
			NeutralOdd:  cfg.Highlight.Palette.NeutralOdd,
		},
		HeaderRows: cfg.Highlight.HeaderRows,
		Apply: colormap.ApplyOptions{
			LineTraces:  cfg.Colors.LineTraces,
			FillOpacity: cfg.Colors.FillOpacity,
		},
		PanMargin:     cfg.Relayout.PanMargin,
		WindowPadding: cfg.Relayout.WindowPadding,
		DefaultWindow: cfg.Relayout.DefaultWindow,
		FocusPadding:  cfg.Table.FocusPadding,
		Colors:        colormap.Map(cfg.Colors.Traces),
	}
}

// DefaultOptions mirrors the configuration defaults.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default())
}

// Dispatcher handles events for any number of sessions. It holds no session
// state itself and is safe for concurrent use.
type Dispatcher struct {
	opts        Options
	syncer      *axissync.Syncer
	highlighter *highlight.Highlighter
	resolver    *relayout.Resolver
	logger      *logrus.Entry
}

// New creates a Dispatcher.
func New(opts Options) *Dispatcher {
	if opts.FocusPadding < 0 {
		opts.FocusPadding = 0
	}
	if opts.Apply.FillOpacity == 0 && len(opts.Apply.LineTraces) == 0 {
		opts.Apply = colormap.DefaultApplyOptions()
	}
	return &Dispatcher{
		opts:        opts,
		syncer:      axissync.New(opts.Axes),
		highlighter: highlight.New(opts.Palette, opts.HeaderRows),
		resolver:    relayout.NewResolver(opts.PanMargin, opts.WindowPadding),
		logger:      logging.NewLogger("dispatch"),
	}
}

// Options returns the active options.
func (d *Dispatcher) Options() Options {
	return d.opts
}

type handlerFunc func(d *Dispatcher, s *Session, ev Event) (Response, error)

var handlers = map[EventType]handlerFunc{
	EventLoad:        (*Dispatcher).handleLoad,
	EventRelayout:    (*Dispatcher).handleRelayout,
	EventAutorange:   (*Dispatcher).handleAutorange,
	EventTraceColor:  (*Dispatcher).handleTraceColor,
	EventTablePage:   (*Dispatcher).handleTablePage,
	EventSelectRow:   (*Dispatcher).handleSelectRow,
	EventVisibleRows: (*Dispatcher).handleVisibleRows,
	EventContig:      (*Dispatcher).handleContig,
}

// Handle applies ev to s. NO_UPDATE and recoverable errors (missing axes,
// bad colours, unusable figures) are returned as a no-update Response with
// a nil error; the session is left as it was. Other errors are returned.
func (d *Dispatcher) Handle(ctx context.Context, s *Session, ev Event) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	if s == nil {
		return Response{}, errors.New(errors.ErrCodeInvalidInput, "no session")
	}
	h, ok := handlers[ev.Type]
	if !ok {
		return Response{}, errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown event type '%s'", ev.Type)).
			WithDetail("type", string(ev.Type))
	}

	defer profiling.Start("dispatch." + string(ev.Type)).Stop()

	log := d.logger.WithField("event", ev.Type)
	resp, err := h(d, s, ev)
	if err != nil {
		if errors.IsNoUpdate(err) {
			log.WithError(err).Debug("No update")
			return Response{NoUpdate: true, Reason: reason(err)}, nil
		}
		if errors.IsRecoverable(err) {
			log.WithError(err).Warn("Event could not be applied, keeping current state")
			return Response{NoUpdate: true, Reason: reason(err)}, nil
		}
		log.WithError(err).Error("Event failed")
		return Response{}, err
	}
	log.Debug("Event handled")
	return resp, nil
}

func reason(err error) string {
	if e, ok := err.(*errors.Error); ok {
		return e.Message
	}
	return err.Error()
}

func (d *Dispatcher) handleLoad(s *Session, ev Event) (Response, error) {
	colors := colormap.Merge(d.opts.Colors, s.Colors)
	colors = colormap.Merge(colors, ev.Colors)

	fig := s.Figure
	if ev.Figure != nil {
		fig = ev.Figure
	}
	if fig != nil && len(colors) > 0 {
		applied, err := colormap.Apply(fig, colors, d.opts.Apply)
		if err != nil {
			d.logger.WithError(err).Warn("Could not apply stored colours, loading figure as is")
		} else {
			fig = applied
		}
	}

	s.Figure = fig
	s.Colors = colors
	if ev.Rows != nil {
		s.Rows = ev.Rows
	}
	if ev.Contigs != nil {
		s.Contigs = ev.Contigs
	}
	if ev.Contig != "" {
		s.Contig = ev.Contig
		s.Visible.Contig = ev.Contig
	}
	if ev.Start != nil && ev.End != nil {
		d.moveTo(s, *ev.Start, *ev.End)
	} else if fig != nil {
		if r, ok := axissync.VisibleXRange(fig); ok {
			d.moveTo(s, int(r.Min), int(r.Max))
			s.Relayout = relayout.NewEvent(r.Min, r.Max)
		}
	}

	return Response{Figure: s.Figure, Colors: s.Colors}, nil
}

// moveTo sets the visible and loaded windows around [start, end].
func (d *Dispatcher) moveTo(s *Session, start, end int) {
	s.Visible = table.Region{Contig: s.Contig, Start: start, End: end}
	s.Window, _ = d.resolver.InternalWindow(float64(start), float64(end))
}

func (d *Dispatcher) handleRelayout(s *Session, ev Event) (Response, error) {
	next, err := relayout.Decode(ev.Relayout)
	if err != nil {
		return Response{}, err
	}
	outcome, err := d.resolver.Resolve(next, s.Relayout, s.Window)
	if err != nil {
		return Response{}, err
	}

	window := s.Window
	if outcome.Redraw {
		window, _ = d.resolver.InternalWindow(float64(outcome.Start), float64(outcome.End))
	}

	fig := s.Figure
	if fig != nil {
		r0, r1, _ := next.XRange()
		visible := axissync.XRange{Min: r0, Max: r1}
		if fig, err = axissync.SetXRange(fig, visible); err != nil {
			return Response{}, err
		}
		framed, err := d.syncer.Recompute(visible, fig, s.Autorange)
		switch {
		case errors.IsNoUpdate(err):
			// Auto-ranging is off; only the x window moves.
		case err != nil:
			return Response{}, err
		default:
			fig = framed
		}
	}

	// Nothing is committed until every step above has succeeded.
	s.Relayout = outcome.Event
	s.Visible = table.Region{Contig: s.Contig, Start: outcome.Start, End: outcome.End}
	s.Window = window
	s.Figure = fig
	return Response{Outcome: &outcome, Figure: fig}, nil
}

func (d *Dispatcher) handleAutorange(s *Session, ev Event) (Response, error) {
	if ev.Enabled == nil {
		return Response{}, errors.New(errors.ErrCodeInvalidInput, "autorange event needs 'enabled'")
	}
	enabled := *ev.Enabled

	if s.Figure == nil {
		s.Autorange = enabled
		return Response{Autorange: &enabled}, nil
	}

	fig, err := d.syncer.LockAxes(enabled, s.Figure)
	if err != nil {
		return Response{}, err
	}
	if enabled {
		if r, ok := axissync.VisibleXRange(fig); ok {
			if fig, err = d.syncer.Recompute(r, fig, true); err != nil {
				return Response{}, err
			}
		}
	}

	s.Autorange = enabled
	s.Figure = fig
	return Response{Figure: fig, Autorange: &enabled}, nil
}

func (d *Dispatcher) handleTraceColor(s *Session, ev Event) (Response, error) {
	if ev.Trace == "" {
		return Response{}, errors.NoUpdate("no trace selected")
	}
	if ev.Color == "" {
		return Response{}, errors.NoUpdate("no colour picked")
	}
	if _, err := colormap.Parse(ev.Color); err != nil {
		return Response{}, err
	}

	colors := colormap.SetColor(s.Colors, ev.Trace, ev.Color)
	resp := Response{Colors: colors}
	if s.Figure != nil {
		fig, err := colormap.Apply(s.Figure, colors, d.opts.Apply)
		if err != nil {
			return Response{}, err
		}
		s.Figure = fig
		resp.Figure = fig
	}
	s.Colors = colors
	return resp, nil
}

func (d *Dispatcher) handleTablePage(s *Session, ev Event) (Response, error) {
	styles := d.highlighter.HighlightVisible(ev.Displayed, s.Visible, s.Rows)
	return Response{Styles: styles}, nil
}

func (d *Dispatcher) handleSelectRow(s *Session, ev Event) (Response, error) {
	if ev.RowID == nil {
		return Response{}, errors.NoUpdate("no row selected")
	}
	row, ok := table.ByID(s.Rows, *ev.RowID)
	if !ok {
		return Response{}, errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("no row with id %d", *ev.RowID)).
			WithDetail("row_id", *ev.RowID)
	}

	region := table.FocusWindow(row, s.Contigs[row.SeqID], d.opts.FocusPadding)
	s.Contig = region.Contig
	d.moveTo(s, region.Start, region.End)
	s.Relayout = relayout.NewEvent(float64(region.Start), float64(region.End))

	resp := Response{Region: &region}
	if s.Figure != nil {
		fig, err := axissync.SetXRange(s.Figure, axissync.XRange{Min: float64(region.Start), Max: float64(region.End)})
		if err != nil {
			return Response{}, err
		}
		s.Figure = fig
		resp.Figure = fig
	}
	return resp, nil
}

func (d *Dispatcher) handleVisibleRows(s *Session, ev Event) (Response, error) {
	if ev.Start == nil && ev.End == nil && !ev.Force {
		return Response{Rows: table.FilterVisible(s.Rows, s.Visible)}, nil
	}

	contig := s.Contig
	if ev.Contig != "" {
		contig = ev.Contig
	}
	shown := relayout.Window{Start: float64(s.Visible.Start), End: float64(s.Visible.End)}
	if err := relayout.NeedsRedraw(ev.Start, ev.End, shown, s.Contig, contig, ev.Force); err != nil {
		return Response{}, err
	}

	region := s.Visible
	region.Contig = contig
	if ev.Start != nil && ev.End != nil {
		region.Start, region.End = *ev.Start, *ev.End
	}
	return Response{Rows: table.FilterVisible(s.Rows, region)}, nil
}

func (d *Dispatcher) handleContig(s *Session, ev Event) (Response, error) {
	if ev.Contig == "" {
		return Response{}, errors.NoUpdate("no contig selected")
	}
	size, ok := s.Contigs[ev.Contig]
	if !ok {
		return Response{}, errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("unknown contig '%s'", ev.Contig)).
			WithDetail("contig", ev.Contig)
	}

	start, end := relayout.ResetForContig(size, ev.Start, ev.End, d.opts.DefaultWindow)
	s.Contig = ev.Contig
	d.moveTo(s, start, end)
	s.Relayout = relayout.NewEvent(float64(start), float64(end))

	region := s.Visible
	resp := Response{Region: &region}
	if s.Figure != nil {
		fig, err := axissync.SetXRange(s.Figure, axissync.XRange{Min: float64(start), Max: float64(end)})
		if err != nil {
			return Response{}, err
		}
		s.Figure = fig
		resp.Figure = fig
	}
	return resp, nil
}
