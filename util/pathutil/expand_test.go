package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("COVVIEW_TEST_DIR", "/srv/covview")

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/logs/covview.log", filepath.Join(home, "logs", "covview.log")},
		{"$COVVIEW_TEST_DIR/logs", "/srv/covview/logs"},
		{"/var/log/covview.log", "/var/log/covview.log"},
	}
	for _, tt := range tests {
		got, err := Expand(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}

	cwd, err := os.Getwd()
	require.NoError(t, err)
	got, err := Expand("relative.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "relative.log"), got)
}
