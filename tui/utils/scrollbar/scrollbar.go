// Package scrollbar renders position indicators: a horizontal track
// showing the visible window on a contig and a vertical bar for paged lists.
package scrollbar

import (
	"strings"

	"github.com/grovetools/covview/tui/theme"
)

const (
	thumb = "█"
	track = "░"
)

// span returns the thumb start and size for a window [offset, offset+visible)
// out of total, scaled to length cells.
func span(offset, visible, total, length int) (int, int) {
	if total <= 0 || visible >= total {
		return 0, length
	}
	size := max(1, length*visible/total)
	maxStart := length - size

	start := int(float64(maxStart)*float64(offset)/float64(total-visible) + 0.5)
	if offset <= 0 {
		start = 0
	}
	return min(max(start, 0), maxStart), size
}

// Track renders the window [start, end] on a contig of total bases as a
// horizontal bar of width cells.
func Track(start, end, total, width int) string {
	if width <= 0 {
		return ""
	}
	if end < start {
		start, end = end, start
	}
	from, size := span(start, end-start, total, width)

	var b strings.Builder
	for i := 0; i < width; i++ {
		if i >= from && i < from+size {
			b.WriteString(theme.DefaultTheme.Accent.Render(thumb))
		} else {
			b.WriteString(theme.DefaultTheme.Muted.Render(track))
		}
	}
	return b.String()
}

// Vertical returns one scrollbar cell per line for a list showing visible
// of total items from offset.
func Vertical(offset, visible, total, height int) []string {
	if height <= 0 {
		return []string{}
	}
	from, size := span(offset, visible, total, height)

	bar := make([]string, height)
	for i := range bar {
		if i >= from && i < from+size {
			bar[i] = theme.DefaultTheme.Muted.Render(thumb)
		} else {
			bar[i] = theme.DefaultTheme.Muted.Render(track)
		}
	}
	return bar
}

// Overlay appends the vertical bar to each line of content.
func Overlay(content string, offset, visible, total int) string {
	lines := strings.Split(content, "\n")
	bar := Vertical(offset, visible, total, len(lines))
	for i := range lines {
		lines[i] += " " + bar[i]
	}
	return strings.Join(lines, "\n")
}
