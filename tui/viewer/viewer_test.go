package viewer

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/covview/pkg/dispatch"
	"github.com/grovetools/covview/pkg/figure"
	"github.com/grovetools/covview/pkg/table"
	"github.com/grovetools/covview/tui/components/logviewer"
	"github.com/grovetools/covview/tui/keymap"
)

func coverage() *figure.Figure {
	x := make(figure.Series, 4000)
	y := make(figure.Series, 4000)
	for i := range x {
		x[i] = float64(i)
	}
	y[1500] = 250
	return &figure.Figure{
		Data: []*figure.Trace{{Name: "Mean", X: x, Y: y, XAxis: "x"}},
		Layout: &figure.Layout{Axes: map[string]*figure.Axis{
			"xaxis":  {Range: []float64{0, 1000}},
			"yaxis":  {Range: []float64{0, 1}},
			"yaxis3": {Range: []float64{0, 1}},
		}},
	}
}

func newModel(t *testing.T) Model {
	t.Helper()
	d := dispatch.New(dispatch.DefaultOptions())
	s := dispatch.NewSession()
	_, err := d.Handle(context.Background(), s, dispatch.Event{
		Type:   dispatch.EventLoad,
		Figure: coverage(),
		Rows: []table.Row{
			{ID: 0, SeqID: "chr1", Type: "gene", Start: 100, End: 200},
			{ID: 1, SeqID: "chr1", Type: "gene", Start: 1400, End: 1600},
			{ID: 2, SeqID: "chr2", Type: "gene", Start: 10, End: 20},
		},
		Contigs: map[string]int{"chr1": 4000, "chr2": 500},
		Contig:  "chr1",
	})
	require.NoError(t, err)
	return New(d, s, keymap.DefaultViewer())
}

func press(m Model, keys string) Model {
	out, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	return out.(Model)
}

func TestInitialHighlight(t *testing.T) {
	m := newModel(t)
	require.Len(t, m.styles, 3)
	assert.True(t, m.styles[0].Visible)
	assert.False(t, m.styles[1].Visible)
	assert.False(t, m.styles[2].Visible)
}

func TestPanRecomputesAxesAndHighlight(t *testing.T) {
	m := newModel(t)
	for i := 0; i < 4; i++ {
		m = press(m, "l")
	}

	v := m.Session().Visible
	assert.Equal(t, 1000, v.Start)
	assert.Equal(t, 2000, v.End)
	assert.False(t, m.styles[0].Visible)
	assert.True(t, m.styles[1].Visible)

	yaxis, ok := m.Session().Figure.Axis("yaxis")
	require.True(t, ok)
	assert.InDelta(t, 252.5, yaxis.Range[1], 1e-9)

	m = press(m, "h")
	assert.Equal(t, 750, m.Session().Visible.Start)
}

func TestZoom(t *testing.T) {
	m := newModel(t)
	m = press(m, "+")
	v := m.Session().Visible
	assert.Equal(t, 250, v.Start)
	assert.Equal(t, 750, v.End)

	m = press(m, "-")
	m = press(m, "-")
	assert.Equal(t, 2000, m.Session().Visible.End-m.Session().Visible.Start)
}

func TestAutorangeToggle(t *testing.T) {
	m := newModel(t)
	m = press(m, "a")
	assert.False(t, m.Session().Autorange)

	yaxis, _ := m.Session().Figure.Axis("yaxis")
	require.NotNil(t, yaxis.Fixedrange)
	assert.False(t, *yaxis.Fixedrange)

	m = press(m, "a")
	assert.True(t, m.Session().Autorange)
}

func TestSelectAndContig(t *testing.T) {
	m := newModel(t)
	m = press(m, "j")
	out, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = out.(Model)

	v := m.Session().Visible
	assert.Equal(t, 1150, v.Start)
	assert.Equal(t, 1850, v.End)

	m = press(m, "c")
	assert.Equal(t, "chr2", m.Session().Contig)
	m = press(m, "c")
	assert.Equal(t, "chr1", m.Session().Contig)
}

func TestViewAndLogs(t *testing.T) {
	m := newModel(t)
	out, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = out.(Model)
	m = press(m, "o")
	out, _ = m.Update(logviewer.LogLineMsg{Source: "dispatch", Line: "hello from the log"})
	m = out.(Model)

	view := m.View()
	assert.Contains(t, view, "chr1:0-1000")
	assert.Contains(t, view, "gene")
	assert.Contains(t, view, "hello from the log")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
