package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/covview/pkg/table"
)

var rows = []table.Row{
	{ID: 0, SeqID: "chr1", Start: 100, End: 200},
	{ID: 1, SeqID: "chr1", Start: 500, End: 600},
	{ID: 2, SeqID: "chr2", Start: 100, End: 200},
	{ID: 3, SeqID: "chr1", Start: 150, End: 180},
}

func TestHighlightVisible(t *testing.T) {
	h := Default()
	visible := table.Region{Contig: "chr1", Start: 120, End: 300}

	styles := h.HighlightVisible([]int{0, 1, 2, 3}, visible, rows)
	require.Len(t, styles, 4)

	want := []struct {
		rowIndex int
		visible  bool
		color    string
	}{
		{2, true, DefaultPalette.VisibleEven},
		{3, false, DefaultPalette.NeutralOdd},
		{4, false, DefaultPalette.NeutralEven},
		{5, true, DefaultPalette.VisibleOdd},
	}
	for i, w := range want {
		assert.Equal(t, i, styles[i].Position)
		assert.Equal(t, w.rowIndex, styles[i].RowIndex)
		assert.Equal(t, w.visible, styles[i].Visible)
		assert.Equal(t, w.color, styles[i].Color)
	}
}

func TestHighlightVisibleIsTotal(t *testing.T) {
	h := Default()
	displayed := []int{3, -1, 99, 0, 0}
	styles := h.HighlightVisible(displayed, table.Region{Contig: "chr1", Start: 0, End: 1000}, rows)

	require.Len(t, styles, len(displayed))
	for i, s := range styles {
		assert.Equal(t, displayed[i], s.DataIndex)
		assert.NotEmpty(t, s.Color)
	}
	assert.True(t, styles[0].Visible)
	assert.False(t, styles[1].Visible)
	assert.False(t, styles[2].Visible)
	assert.True(t, styles[3].Visible)
	assert.True(t, styles[4].Visible)
}

func TestHighlightVisibleEmpty(t *testing.T) {
	styles := Default().HighlightVisible(nil, table.Region{}, rows)
	assert.Empty(t, styles)
}

func TestNewFallsBack(t *testing.T) {
	h := New(Palette{VisibleEven: "yellow"}, -1)
	assert.Equal(t, "yellow", h.Palette().VisibleEven)
	assert.Equal(t, DefaultPalette.NeutralOdd, h.Palette().NeutralOdd)

	styles := h.HighlightVisible([]int{0}, table.Region{Contig: "chr1", Start: 0, End: 1000}, rows)
	assert.Equal(t, 2, styles[0].RowIndex)
	assert.Equal(t, "yellow", styles[0].Color)

	// Zero header rows is allowed.
	styles = New(DefaultPalette, 0).HighlightVisible([]int{0}, table.Region{Contig: "chr1", Start: 0, End: 1000}, rows)
	assert.Equal(t, 0, styles[0].RowIndex)
}

func TestVisibleMask(t *testing.T) {
	assert.Equal(t, []bool{true, false, false, true}, VisibleMask(rows, table.Region{Contig: "chr1", Start: 120, End: 300}))
}
