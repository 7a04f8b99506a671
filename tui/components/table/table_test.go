package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grovetools/covview/pkg/highlight"
	features "github.com/grovetools/covview/pkg/table"
	"github.com/grovetools/covview/tui/theme"
)

func TestFeatureRowTruncatesAttributes(t *testing.T) {
	r := features.Row{ID: 3, SeqID: "chr1", Type: "gene", Start: 10, End: 20, Strand: "+", Attributes: strings.Repeat("a", 60)}
	cells := FeatureRow(r)
	assert.Equal(t, []string{"3", "chr1", "gene", "10", "20", "+"}, cells[:6])
	assert.Equal(t, MaxAttributeWidth, len([]rune(cells[6])))
}

func TestFeatureTableRendersDisplayedRows(t *testing.T) {
	rows := []features.Row{
		{ID: 0, SeqID: "chr1", Type: "gene", Start: 100, End: 200},
		{ID: 1, SeqID: "chr2", Type: "exon", Start: 5, End: 9},
	}
	styles := highlight.Default().HighlightVisible([]int{1, 0}, features.Region{Contig: "chr1", Start: 0, End: 500}, rows)

	out := FeatureTable(rows, styles, Options{Theme: theme.NewThemeWithName("terminal"), Selected: 0})
	assert.Contains(t, out, "seqid")
	assert.Contains(t, out, "exon")
	assert.Contains(t, out, "gene")
	assert.Less(t, strings.Index(out, "exon"), strings.Index(out, "gene"))
}

func TestStatusTable(t *testing.T) {
	out := StatusTable([][]string{{"ctrl", "#ff0000"}, {"skipped"}})
	assert.Contains(t, out, "ctrl:")
	assert.Contains(t, out, "#ff0000")
	assert.NotContains(t, out, "skipped")
}
