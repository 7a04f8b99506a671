package table

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/grovetools/covview/pkg/highlight"
	features "github.com/grovetools/covview/pkg/table"
	"github.com/grovetools/covview/tui/theme"
)

// FeatureHeaders are the columns shown for feature rows.
var FeatureHeaders = []string{"id", "seqid", "type", "start", "end", "strand", "attributes"}

// MaxAttributeWidth truncates the attributes column.
const MaxAttributeWidth = 40

// Options configures FeatureTable.
type Options struct {
	Theme *theme.Theme
	// Selected is the position of the selected row, or -1.
	Selected int
	Width    int
}

// DefaultOptions returns options with the default theme and no selection.
func DefaultOptions() Options {
	return Options{Theme: theme.DefaultTheme, Selected: -1}
}

// FeatureRow formats a feature as table cells.
func FeatureRow(r features.Row) []string {
	attrs := r.Attributes
	if len(attrs) > MaxAttributeWidth {
		attrs = attrs[:MaxAttributeWidth-1] + "…"
	}
	return []string{
		strconv.Itoa(r.ID),
		r.SeqID,
		r.Type,
		strconv.Itoa(r.Start),
		strconv.Itoa(r.End),
		r.Strand,
		attrs,
	}
}

// FeatureTable renders the displayed rows with the backgrounds chosen by
// the highlighter. styles[i] describes the i-th displayed row and its
// DataIndex points into rows.
func FeatureTable(rows []features.Row, styles []highlight.RowStyle, opts Options) string {
	t := opts.Theme
	if t == nil {
		t = theme.DefaultTheme
	}

	tbl := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(t.TableBorder).
		Headers(FeatureHeaders...)

	for _, s := range styles {
		if s.DataIndex < 0 || s.DataIndex >= len(rows) {
			tbl = tbl.Row(make([]string, len(FeatureHeaders))...)
			continue
		}
		tbl = tbl.Row(FeatureRow(rows[s.DataIndex])...)
	}

	// With Headers set, StyleFunc sees the header as HeaderRow and data
	// rows from 0.
	tbl = tbl.StyleFunc(func(row, col int) lipgloss.Style {
		if row == ltable.HeaderRow {
			return t.TableHeader
		}
		if row < 0 || row >= len(styles) {
			return t.Normal
		}
		style := t.RowStyle(styles[row].Visible, styles[row].RowIndex)
		if row == opts.Selected {
			style = style.Bold(true).Foreground(t.Colors.Orange)
		}
		return style
	})

	if opts.Width > 0 {
		tbl = tbl.Width(opts.Width)
	}
	return tbl.String()
}

// StatusTable renders label/value pairs without borders.
func StatusTable(items [][]string) string {
	t := theme.DefaultTheme
	tbl := ltable.New().
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return t.Muted.Padding(0, 1)
			}
			return t.Normal.Padding(0, 1)
		})

	for _, item := range items {
		if len(item) >= 2 {
			tbl = tbl.Row(item[0]+":", strings.Join(item[1:], " "))
		}
	}
	return tbl.String()
}
