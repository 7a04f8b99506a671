package figure

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coverageFigure = `{
  "data": [
    {"name": "Mean", "legendgroup": "ctrl", "x": [0, 1, 2], "y": [1, null, 3], "xaxis": "x", "yaxis": "y", "line": {"color": "#1f77b4", "width": 2}, "type": "scatter"},
    {"name": "ctrl", "legendgroup": "ctrl", "x": [0, 1, 2], "y": [0, 2, 1], "xaxis": "x3", "yaxis": "y3", "fill": "toself"}
  ],
  "layout": {
    "xaxis": {"range": [0, 2], "showline": true},
    "yaxis": {"range": [-1, 4], "autorange": true, "fixedrange": false},
    "yaxis3": {"range": [0, 5], "autorange": "reversed"},
    "dragmode": "pan",
    "uirevision": true
  },
  "frames": []
}`

func TestDecodePreservesUnknownKeys(t *testing.T) {
	fig, err := Decode([]byte(coverageFigure))
	require.NoError(t, err)

	require.Len(t, fig.Data, 2)
	assert.Equal(t, "Mean", fig.Data[0].Name)
	assert.Equal(t, "#1f77b4", fig.Data[0].Line.Color)
	assert.True(t, math.IsNaN(fig.Data[0].Y[1]))
	assert.Equal(t, "x3", fig.Data[1].XAxisRef())

	yaxis, ok := fig.Axis("yaxis")
	require.True(t, ok)
	assert.Equal(t, []float64{-1, 4}, yaxis.Range)
	require.NotNil(t, yaxis.Autorange)
	assert.True(t, *yaxis.Autorange)

	// A non-boolean autorange stays in the passthrough set.
	yaxis3, ok := fig.Axis("yaxis3")
	require.True(t, ok)
	assert.Nil(t, yaxis3.Autorange)
	assert.Contains(t, yaxis3.Extra, "autorange")

	out, err := json.Marshal(fig)
	require.NoError(t, err)

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &generic))
	layout := generic["layout"].(map[string]interface{})
	assert.Equal(t, "pan", layout["dragmode"])
	assert.Equal(t, "reversed", layout["yaxis3"].(map[string]interface{})["autorange"])
	assert.Contains(t, generic, "frames")

	traces := generic["data"].([]interface{})
	first := traces[0].(map[string]interface{})
	assert.Equal(t, "scatter", first["type"])
	assert.Nil(t, first["y"].([]interface{})[1])
	assert.Equal(t, float64(2), first["line"].(map[string]interface{})["width"])
}

func TestCloneIsDeep(t *testing.T) {
	fig, err := Decode([]byte(coverageFigure))
	require.NoError(t, err)

	clone, err := fig.Clone()
	require.NoError(t, err)

	axis, _ := clone.Axis("yaxis")
	axis.Range[1] = 99
	*axis.Autorange = false
	clone.Data[0].Y[0] = 42

	original, _ := fig.Axis("yaxis")
	assert.Equal(t, float64(4), original.Range[1])
	assert.True(t, *original.Autorange)
	assert.Equal(t, float64(1), fig.Data[0].Y[0])
}

func TestCloneNil(t *testing.T) {
	var fig *Figure
	_, err := fig.Clone()
	assert.Error(t, err)
}

func TestSeriesTypedArray(t *testing.T) {
	// float64 little-endian [1.5, 2.0]
	raw := `{"dtype": "f8", "bdata": "AAAAAAAA+D8AAAAAAAAAQA=="}`
	var s Series
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, Series{1.5, 2}, s)

	// int16 little-endian [1, -1]
	require.NoError(t, json.Unmarshal([]byte(`{"dtype": "i2", "bdata": "AQD//w=="}`), &s))
	assert.Equal(t, Series{1, -1}, s)

	assert.Error(t, json.Unmarshal([]byte(`{"dtype": "c16", "bdata": ""}`), &s))
}

func TestSeriesMaxAndWindow(t *testing.T) {
	s := Series{1, math.NaN(), 7, 3}

	max, ok := s.Max()
	assert.True(t, ok)
	assert.Equal(t, float64(7), max)

	_, ok = Series{math.NaN()}.Max()
	assert.False(t, ok)

	assert.Equal(t, Series{7, 3}, s.Window(2, 10))
	assert.Nil(t, s.Window(3, 2))
	assert.Equal(t, Series{1}, s.Window(-5, 1))
}

func TestLayoutKey(t *testing.T) {
	assert.Equal(t, "xaxis", LayoutKey("x"))
	assert.Equal(t, "yaxis3", LayoutKey("y3"))
	assert.True(t, IsAxisKey("yaxis12"))
	assert.False(t, IsAxisKey("yaxis_title"))
}
