package scrollbar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpan(t *testing.T) {
	start, size := span(0, 100, 1000, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 1, size)

	start, size = span(900, 100, 1000, 10)
	assert.Equal(t, 9, start)
	assert.Equal(t, 1, size)

	start, size = span(0, 2000, 1000, 10)
	assert.Equal(t, 0, start)
	assert.Equal(t, 10, size)
}

func TestTrack(t *testing.T) {
	out := Track(500, 1000, 1000, 10)
	assert.Equal(t, 10, strings.Count(out, thumb)+strings.Count(out, track))
	assert.Equal(t, 5, strings.Count(out, thumb))
	assert.Equal(t, "", Track(0, 1, 10, 0))
}

func TestOverlay(t *testing.T) {
	out := Overlay("a\nb\nc\nd", 0, 2, 4)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasSuffix(lines[0], thumb))
	assert.True(t, strings.HasSuffix(lines[3], track))
}
