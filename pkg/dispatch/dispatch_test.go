package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/covview/config"
	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/pkg/colormap"
	"github.com/grovetools/covview/pkg/figure"
	"github.com/grovetools/covview/pkg/highlight"
	"github.com/grovetools/covview/pkg/table"
)

func boolp(b bool) *bool { return &b }
func intp(i int) *int    { return &i }

func seq(n int, scale float64) figure.Series {
	s := make(figure.Series, n)
	for i := range s {
		s[i] = float64(i) * scale
	}
	return s
}

// coverage builds a figure with x in [0, 4000) and a peak of 500 at x=100.
func coverage() *figure.Figure {
	y := make(figure.Series, 4000)
	y[100] = 500
	return &figure.Figure{
		Data: []*figure.Trace{
			{Name: "Mean", LegendGroup: "ctrl", X: seq(4000, 1), Y: y, XAxis: "x"},
			{Name: "ctrl", LegendGroup: "ctrl", X: seq(4000, 1), Y: seq(4000, 0), XAxis: "x3"},
		},
		Layout: &figure.Layout{Axes: map[string]*figure.Axis{
			"xaxis":  {Range: []float64{0, 2000}},
			"yaxis":  {Range: []float64{0, 1}, Autorange: figure.Bool(true)},
			"yaxis3": {Range: []float64{0, 1}, Autorange: figure.Bool(true)},
		}},
	}
}

var features = []table.Row{
	{ID: 0, SeqID: "chr1", Type: "gene", Start: 50, End: 150},
	{ID: 1, SeqID: "chr1", Type: "gene", Start: 2500, End: 2600},
	{ID: 2, SeqID: "chr2", Type: "gene", Start: 10, End: 20},
}

func loaded(t *testing.T, d *Dispatcher) *Session {
	t.Helper()
	s := NewSession()
	resp, err := d.Handle(context.Background(), s, Event{
		Type:    EventLoad,
		Figure:  coverage(),
		Rows:    features,
		Contigs: map[string]int{"chr1": 4000, "chr2": 500},
		Contig:  "chr1",
	})
	require.NoError(t, err)
	require.False(t, resp.NoUpdate)
	return s
}

func TestLoad(t *testing.T) {
	opts := DefaultOptions()
	opts.Colors = colormap.Map{"ctrl": "#ff0000"}
	d := New(opts)
	s := loaded(t, d)

	assert.Equal(t, "#ff0000", s.Colors["ctrl"])
	assert.Equal(t, "#ff0000", s.Figure.Data[0].Line.Color)
	assert.Equal(t, "rgba(255, 0, 0, 0.4)", s.Figure.Data[1].FillColor)
	assert.Equal(t, table.Region{Contig: "chr1", Start: 0, End: 2000}, s.Visible)
	assert.Equal(t, -1000.0, s.Window.Start)
	assert.Equal(t, 3000.0, s.Window.End)
}

func TestRelayoutRecomputesAxes(t *testing.T) {
	d := New(DefaultOptions())
	s := loaded(t, d)

	resp, err := d.Handle(context.Background(), s, Event{
		Type:     EventRelayout,
		Relayout: map[string]interface{}{"xaxis.range[0]": 50.0, "xaxis.range[1]": 150.0},
	})
	require.NoError(t, err)
	require.False(t, resp.NoUpdate)
	require.NotNil(t, resp.Outcome)
	assert.True(t, resp.Outcome.Zoom)
	assert.True(t, resp.Outcome.Redraw)

	xaxis, _ := resp.Figure.Axis("xaxis")
	assert.Equal(t, []float64{50, 150}, xaxis.Range)
	yaxis, _ := resp.Figure.Axis("yaxis")
	assert.InDelta(t, -5, yaxis.Range[0], 1e-9)
	assert.InDelta(t, 505, yaxis.Range[1], 1e-9)
	yaxis3, _ := resp.Figure.Axis("yaxis3")
	assert.InDelta(t, 10.1, yaxis3.Range[1], 1e-9)

	assert.Equal(t, table.Region{Contig: "chr1", Start: 50, End: 150}, s.Visible)
	assert.Same(t, resp.Figure, s.Figure)
}

func TestRelayoutWithoutAutorange(t *testing.T) {
	d := New(DefaultOptions())
	s := loaded(t, d)
	s.Autorange = false
	before := s.Figure

	resp, err := d.Handle(context.Background(), s, Event{
		Type:     EventRelayout,
		Relayout: map[string]interface{}{"xaxis.range[0]": 10.0, "xaxis.range[1]": 2010.0},
	})
	require.NoError(t, err)
	assert.False(t, resp.NoUpdate)
	require.NotNil(t, resp.Figure)
	assert.Same(t, resp.Figure, s.Figure)
	assert.Equal(t, 10, s.Visible.Start)

	xaxis, _ := s.Figure.Axis("xaxis")
	assert.Equal(t, []float64{10, 2010}, xaxis.Range)
	yaxis, _ := s.Figure.Axis("yaxis")
	assert.Equal(t, []float64{0, 1}, yaxis.Range)

	// The previous figure is not modified in place.
	xaxis, _ = before.Axis("xaxis")
	assert.Equal(t, []float64{0, 2000}, xaxis.Range)
}

func TestRelayoutThenAutorangeFramesNewWindow(t *testing.T) {
	d := New(DefaultOptions())
	s := loaded(t, d)

	resp, err := d.Handle(context.Background(), s, Event{
		Type:     EventRelayout,
		Relayout: map[string]interface{}{"xaxis.range[0]": 2500.0, "xaxis.range[1]": 3000.0},
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Figure)
	xaxis, _ := resp.Figure.Axis("xaxis")
	assert.Equal(t, []float64{2500, 3000}, xaxis.Range)
	yaxis, _ := resp.Figure.Axis("yaxis")
	assert.InDelta(t, -0.1, yaxis.Range[0], 1e-9)
	assert.InDelta(t, 10.1, yaxis.Range[1], 1e-9)

	_, err = d.Handle(context.Background(), s, Event{Type: EventAutorange, Enabled: boolp(false)})
	require.NoError(t, err)
	resp, err = d.Handle(context.Background(), s, Event{Type: EventAutorange, Enabled: boolp(true)})
	require.NoError(t, err)
	require.NotNil(t, resp.Figure)

	xaxis, _ = resp.Figure.Axis("xaxis")
	assert.Equal(t, []float64{2500, 3000}, xaxis.Range)
	yaxis, _ = resp.Figure.Axis("yaxis")
	assert.InDelta(t, -0.1, yaxis.Range[0], 1e-9)
	assert.InDelta(t, 10.1, yaxis.Range[1], 1e-9)
}

func TestRelayoutMissingAxisKeepsSession(t *testing.T) {
	d := New(DefaultOptions())
	s := loaded(t, d)
	delete(s.Figure.Layout.Axes, "yaxis3")
	fig, visible, window, last := s.Figure, s.Visible, s.Window, s.Relayout

	resp, err := d.Handle(context.Background(), s, Event{
		Type:     EventRelayout,
		Relayout: map[string]interface{}{"xaxis.range[0]": 2500.0, "xaxis.range[1]": 3000.0},
	})
	require.NoError(t, err)
	assert.True(t, resp.NoUpdate)
	assert.Same(t, fig, s.Figure)
	assert.Equal(t, visible, s.Visible)
	assert.Equal(t, window, s.Window)
	assert.Equal(t, last, s.Relayout)

	xaxis, _ := s.Figure.Axis("xaxis")
	assert.Equal(t, []float64{0, 2000}, xaxis.Range)
}

func TestRelayoutWithoutRangeIsNoUpdate(t *testing.T) {
	d := New(DefaultOptions())
	s := loaded(t, d)
	resp, err := d.Handle(context.Background(), s, Event{
		Type:     EventRelayout,
		Relayout: map[string]interface{}{"dragmode": "zoom"},
	})
	require.NoError(t, err)
	assert.True(t, resp.NoUpdate)
}

func TestMissingAxisIsRecoverable(t *testing.T) {
	d := New(DefaultOptions())
	s := loaded(t, d)
	delete(s.Figure.Layout.Axes, "yaxis3")
	before := s.Visible

	resp, err := d.Handle(context.Background(), s, Event{Type: EventAutorange, Enabled: boolp(false)})
	require.NoError(t, err)
	assert.True(t, resp.NoUpdate)
	assert.True(t, s.Autorange)
	assert.Equal(t, before, s.Visible)
}

func TestAutorangeToggle(t *testing.T) {
	d := New(DefaultOptions())
	s := loaded(t, d)

	resp, err := d.Handle(context.Background(), s, Event{Type: EventAutorange, Enabled: boolp(false)})
	require.NoError(t, err)
	require.NotNil(t, resp.Autorange)
	assert.False(t, *resp.Autorange)
	assert.False(t, s.Autorange)
	yaxis, _ := s.Figure.Axis("yaxis")
	assert.False(t, *yaxis.Fixedrange)
	assert.False(t, *yaxis.Autorange)

	_, err = d.Handle(context.Background(), s, Event{Type: EventAutorange, Enabled: boolp(true)})
	require.NoError(t, err)
	yaxis, _ = s.Figure.Axis("yaxis")
	assert.True(t, *yaxis.Fixedrange)
	assert.InDelta(t, 505, yaxis.Range[1], 1e-9)

	_, err = d.Handle(context.Background(), s, Event{Type: EventAutorange})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestTraceColor(t *testing.T) {
	d := New(DefaultOptions())
	s := loaded(t, d)

	resp, err := d.Handle(context.Background(), s, Event{Type: EventTraceColor, Trace: "ctrl", Color: "#00ff00"})
	require.NoError(t, err)
	assert.Equal(t, "#00ff00", resp.Colors["ctrl"])
	assert.Equal(t, "#00ff00", s.Figure.Data[0].Line.Color)
	assert.Equal(t, "rgba(0, 255, 0, 0.4)", s.Figure.Data[1].FillColor)

	resp, err = d.Handle(context.Background(), s, Event{Type: EventTraceColor, Trace: "ctrl", Color: "chartreuse-ish"})
	require.NoError(t, err)
	assert.True(t, resp.NoUpdate)
	assert.Equal(t, "#00ff00", s.Colors["ctrl"])

	resp, err = d.Handle(context.Background(), s, Event{Type: EventTraceColor, Color: "#000"})
	require.NoError(t, err)
	assert.True(t, resp.NoUpdate)
}

func TestTablePage(t *testing.T) {
	d := New(DefaultOptions())
	s := loaded(t, d)

	resp, err := d.Handle(context.Background(), s, Event{Type: EventTablePage, Displayed: []int{0, 1, 2}})
	require.NoError(t, err)
	require.Len(t, resp.Styles, 3)
	assert.True(t, resp.Styles[0].Visible)
	assert.Equal(t, highlight.DefaultPalette.VisibleEven, resp.Styles[0].Color)
	assert.False(t, resp.Styles[1].Visible)
	assert.False(t, resp.Styles[2].Visible)
}

func TestSelectRow(t *testing.T) {
	d := New(DefaultOptions())
	s := loaded(t, d)

	resp, err := d.Handle(context.Background(), s, Event{Type: EventSelectRow, RowID: intp(1)})
	require.NoError(t, err)
	require.NotNil(t, resp.Region)
	assert.Equal(t, table.Region{Contig: "chr1", Start: 2250, End: 2850}, *resp.Region)

	xaxis, _ := s.Figure.Axis("xaxis")
	assert.Equal(t, []float64{2250, 2850}, xaxis.Range)

	resp, err = d.Handle(context.Background(), s, Event{Type: EventSelectRow, RowID: intp(2)})
	require.NoError(t, err)
	assert.Equal(t, table.Region{Contig: "chr2", Start: 0, End: 270}, *resp.Region)
	assert.Equal(t, "chr2", s.Contig)

	_, err = d.Handle(context.Background(), s, Event{Type: EventSelectRow, RowID: intp(99)})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestVisibleRows(t *testing.T) {
	d := New(DefaultOptions())
	s := loaded(t, d)

	resp, err := d.Handle(context.Background(), s, Event{Type: EventVisibleRows})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, 0, resp.Rows[0].ID)

	resp, err = d.Handle(context.Background(), s, Event{Type: EventVisibleRows, Start: intp(2000), End: intp(3000)})
	require.NoError(t, err)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, 1, resp.Rows[0].ID)

	// Restating the shown window is a no-update unless forced.
	resp, err = d.Handle(context.Background(), s, Event{Type: EventVisibleRows, Start: intp(0), End: intp(2000)})
	require.NoError(t, err)
	assert.True(t, resp.NoUpdate)

	resp, err = d.Handle(context.Background(), s, Event{Type: EventVisibleRows, Start: intp(0), End: intp(2000), Force: true})
	require.NoError(t, err)
	assert.Len(t, resp.Rows, 1)
}

func TestContig(t *testing.T) {
	d := New(DefaultOptions())
	s := loaded(t, d)

	resp, err := d.Handle(context.Background(), s, Event{Type: EventContig, Contig: "chr2", Start: intp(0), End: intp(1800)})
	require.NoError(t, err)
	assert.Equal(t, table.Region{Contig: "chr2", Start: 0, End: 500}, *resp.Region)
	assert.Equal(t, "chr2", s.Contig)

	_, err = d.Handle(context.Background(), s, Event{Type: EventContig, Contig: "chrZ"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestHandleErrors(t *testing.T) {
	d := New(DefaultOptions())

	_, err := d.Handle(context.Background(), NewSession(), Event{Type: "explode"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	_, err = d.Handle(context.Background(), nil, Event{Type: EventLoad})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = d.Handle(ctx, NewSession(), Event{Type: EventLoad})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Axes.Groups = []config.AxisGroup{{X: "x2", Y: "yaxis2"}}
	cfg.Colors.Traces = map[string]string{"ctrl": "#123456"}

	opts := OptionsFromConfig(cfg)
	require.Len(t, opts.Axes.Groups, 1)
	assert.Equal(t, "yaxis2", opts.Axes.Groups[0].YAxis)
	assert.Equal(t, "#123456", opts.Colors["ctrl"])
	assert.Equal(t, 250, opts.FocusPadding)
	assert.Equal(t, 2, opts.HeaderRows)
}
