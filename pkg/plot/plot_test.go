package plot

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/pkg/axissync"
	"github.com/grovetools/covview/pkg/figure"
)

func coverage() *figure.Figure {
	return &figure.Figure{
		Data: []*figure.Trace{
			{Name: "Mean", X: figure.Series{0, 1, 2, 3}, Y: figure.Series{1, 4, 2, 8}, XAxis: "x", Line: &figure.Line{Color: "#1f77b4"}},
			{Name: "ctrl", X: figure.Series{0, 1, 2, 3}, Y: figure.Series{0, 2, 1, 3}, XAxis: "x", FillColor: "rgba(255, 0, 0, 0.4)"},
			{Name: "glyphs", X: figure.Series{0, 1}, Y: figure.Series{0, 0}, XAxis: "x2"},
		},
		Layout: &figure.Layout{Axes: map[string]*figure.Axis{
			"xaxis": {Range: []float64{0, 3}},
			"yaxis": {Range: []float64{-0.1, 10.1}},
		}},
	}
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, coverage(), DefaultOptions()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Format = FormatSVG
	opts.Title = "chr1"
	require.NoError(t, Render(&buf, coverage(), opts))
	assert.Contains(t, buf.String(), "<svg")
}

func TestRenderNoTraces(t *testing.T) {
	opts := DefaultOptions()
	opts.Group = axissync.Group{XAxis: "x3", YAxis: "yaxis3"}
	err := Render(&bytes.Buffer{}, coverage(), opts)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFigure))

	err = Render(&bytes.Buffer{}, nil, DefaultOptions())
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFigure))
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatSVG, FormatForPath("out/cov.SVG"))
	assert.Equal(t, FormatPNG, FormatForPath("cov.png"))
	assert.Equal(t, FormatPNG, FormatForPath("cov"))
}
