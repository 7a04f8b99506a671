package relayout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/covview/errors"
)

func intp(v int) *int { return &v }

func TestDecode(t *testing.T) {
	ev, err := Decode(map[string]interface{}{
		"xaxis.range[0]":  100.5,
		"xaxis.range[1]":  "300",
		"yaxis2.range[0]": -0.5,
	})
	require.NoError(t, err)
	r0, r1, ok := ev.XRange()
	require.True(t, ok)
	assert.Equal(t, 100.5, r0)
	assert.Equal(t, 300.0, r1)
	assert.Contains(t, ev.Extra, "yaxis2.range[0]")

	ev, err = Decode(map[string]interface{}{"xaxis.range": []interface{}{1.0, 2.0}})
	require.NoError(t, err)
	assert.Equal(t, 1.0, ev.Width())

	ev, err = Decode(map[string]interface{}{"xaxis.autorange": true})
	require.NoError(t, err)
	_, _, ok = ev.XRange()
	assert.False(t, ok)
	require.NotNil(t, ev.Autorange)
	assert.True(t, *ev.Autorange)

	_, err = Decode(map[string]interface{}{"xaxis.range[0]": "left"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestIsZoom(t *testing.T) {
	assert.False(t, IsZoom(NewEvent(0, 1000), NewEvent(500, 1500)))
	assert.False(t, IsZoom(NewEvent(0, 1000), NewEvent(0.001, 1000.0015)))
	assert.True(t, IsZoom(NewEvent(0, 1000), NewEvent(0, 900)))
	assert.True(t, IsZoom(Event{}, NewEvent(0, 900)))
}

func TestResolve(t *testing.T) {
	r := NewResolver(0, 0)
	internal := Window{Start: -500, End: 3000}

	t.Run("no x range", func(t *testing.T) {
		_, err := r.Resolve(Event{}, NewEvent(0, 2000), internal)
		assert.True(t, errors.IsNoUpdate(err))
	})

	t.Run("zoom redraws", func(t *testing.T) {
		out, err := r.Resolve(NewEvent(100, 600), NewEvent(0, 2000), internal)
		require.NoError(t, err)
		assert.True(t, out.Zoom)
		assert.True(t, out.Redraw)
		assert.Equal(t, 100, out.Start)
		assert.Equal(t, 600, out.End)
	})

	t.Run("small pan keeps figure", func(t *testing.T) {
		out, err := r.Resolve(NewEvent(100, 2100), NewEvent(0, 2000), internal)
		require.NoError(t, err)
		assert.False(t, out.Zoom)
		assert.False(t, out.Redraw)
	})

	t.Run("pan near right edge redraws", func(t *testing.T) {
		// margin is 500, so r1 > 2500 triggers.
		out, err := r.Resolve(NewEvent(600, 2600), NewEvent(0, 2000), internal)
		require.NoError(t, err)
		assert.True(t, out.Redraw)
	})

	t.Run("pan near left edge redraws", func(t *testing.T) {
		out, err := r.Resolve(NewEvent(-100, 1900), NewEvent(0, 2000), internal)
		require.NoError(t, err)
		assert.True(t, out.Redraw)
		assert.Equal(t, 0, out.Start)
	})

	t.Run("non-finite range", func(t *testing.T) {
		_, err := r.Resolve(Event{Range: []float64{0, math.Inf(1)}}, NewEvent(0, 2000), internal)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	})
}

func TestInternalWindow(t *testing.T) {
	r := NewResolver(0, 0)
	w, step := r.InternalWindow(1000, 3000)
	assert.Equal(t, Window{Start: 0, End: 4000}, w)
	assert.Equal(t, 20, step)

	_, step = r.InternalWindow(0, 10)
	assert.Equal(t, 1, step)
}

func TestNeedsRedraw(t *testing.T) {
	shown := Window{Start: 0, End: 2000}

	assert.NoError(t, NeedsRedraw(nil, nil, shown, "chr1", "chr1", true))
	assert.NoError(t, NeedsRedraw(nil, nil, shown, "chr1", "chr2", false))
	assert.NoError(t, NeedsRedraw(intp(10), intp(500), shown, "chr1", "chr1", false))

	assert.True(t, errors.IsNoUpdate(NeedsRedraw(nil, intp(5), shown, "chr1", "chr1", false)))
	assert.True(t, errors.IsNoUpdate(NeedsRedraw(intp(0), intp(2000), shown, "chr1", "chr1", false)))
	assert.True(t, errors.IsNoUpdate(NeedsRedraw(intp(50), intp(50), shown, "chr1", "chr1", false)))
}

func TestResetForContig(t *testing.T) {
	s, e := ResetForContig(10000, intp(5), nil, 0)
	assert.Equal(t, 0, s)
	assert.Equal(t, 2000, e)

	s, e = ResetForContig(1500, intp(5), intp(1800), 0)
	assert.Equal(t, 0, s)
	assert.Equal(t, 1500, e)

	s, e = ResetForContig(10000, intp(5), intp(800), 0)
	assert.Equal(t, 5, s)
	assert.Equal(t, 800, e)
}

func TestDetail(t *testing.T) {
	ann, feat := Detail(4000)
	assert.True(t, ann)
	assert.True(t, feat)

	ann, feat = Detail(50000)
	assert.False(t, ann)
	assert.True(t, feat)

	ann, feat = Detail(200000)
	assert.False(t, ann)
	assert.False(t, feat)
}
