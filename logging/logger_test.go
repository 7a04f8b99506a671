package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestBuildLevelFromConfig(t *testing.T) {
	t.Setenv("COVVIEW_LOG_LEVEL", "")
	var buf bytes.Buffer

	entry := build("axissync", Config{Level: "debug"}, &buf, true)
	assert.Equal(t, logrus.DebugLevel, entry.Logger.GetLevel())

	entry = build("axissync", Config{Level: "nonsense"}, &buf, true)
	assert.Equal(t, logrus.InfoLevel, entry.Logger.GetLevel())
}

func TestBuildEnvOverridesLevel(t *testing.T) {
	t.Setenv("COVVIEW_LOG_LEVEL", "error")
	entry := build("server", Config{Level: "debug"}, &bytes.Buffer{}, true)
	assert.Equal(t, logrus.ErrorLevel, entry.Logger.GetLevel())
}

func TestBuildStderrModes(t *testing.T) {
	t.Setenv("COVVIEW_LOG_LEVEL", "")
	t.Setenv("COVVIEW_DEBUG", "")

	tests := []struct {
		name        string
		cfg         Config
		interactive bool
		wantOutput  bool
	}{
		{"auto interactive info is quiet", Config{}, true, false},
		{"auto piped logs", Config{}, false, true},
		{"auto interactive debug logs", Config{Level: "debug"}, true, true},
		{"always", Config{Format: FormatConfig{StructuredToStderr: "always"}}, true, true},
		{"never", Config{Format: FormatConfig{StructuredToStderr: "never"}}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			entry := build("test", tt.cfg, &buf, tt.interactive)
			entry.Info("hello")
			assert.Equal(t, tt.wantOutput, buf.Len() > 0)
		})
	}
}

func TestBuildJSONPreset(t *testing.T) {
	t.Setenv("COVVIEW_LOG_LEVEL", "")
	var buf bytes.Buffer
	cfg := Config{Format: FormatConfig{Preset: "json", StructuredToStderr: "always"}}

	build("dispatch", cfg, &buf, true).WithField("event", "relayout").Info("handled")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "dispatch", line["component"])
	assert.Equal(t, "relayout", line["event"])
	assert.Equal(t, "handled", line["msg"])
}

func TestBuildFileSink(t *testing.T) {
	t.Setenv("COVVIEW_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "logs", "covview.log")
	cfg := Config{
		File:   FileSinkConfig{Enabled: true, Path: path},
		Format: FormatConfig{StructuredToStderr: "never"},
	}

	build("server", cfg, &bytes.Buffer{}, true).Warn("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &line))
	assert.Equal(t, "written to file", line["msg"])
	assert.Equal(t, "server", line["component"])
	assert.Equal(t, "warning", line["level"])
}

func TestBuildFileSinkRespectsLevel(t *testing.T) {
	t.Setenv("COVVIEW_LOG_LEVEL", "")
	path := filepath.Join(t.TempDir(), "covview.log")
	cfg := Config{
		Level:  "warn",
		File:   FileSinkConfig{Enabled: true, Path: path},
		Format: FormatConfig{StructuredToStderr: "never"},
	}

	entry := build("server", cfg, &bytes.Buffer{}, true)
	entry.Info("dropped")
	entry.Error("kept")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestRedirect(t *testing.T) {
	t.Setenv("COVVIEW_LOG_LEVEL", "")
	var buf bytes.Buffer
	entry := build("viewer", Config{Format: FormatConfig{StructuredToStderr: "always"}}, stderrOutput, true)

	restore := Redirect(&buf)
	entry.Info("captured")
	restore()

	assert.Contains(t, buf.String(), "captured")
	assert.Same(t, os.Stderr, stderrOutput.w)
}

func TestTextFormatter(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true, DisableComponent: true}}
	entry := logrus.NewEntry(logrus.New()).WithFields(logrus.Fields{
		"component": "axissync",
		"b":         2,
		"a":         1,
	})
	entry.Level = logrus.WarnLevel
	entry.Message = "recomputed"

	out, err := f.Format(entry)
	require.NoError(t, err)
	line := string(out)
	assert.True(t, strings.HasPrefix(line, "[WARN] recomputed"))
	assert.Contains(t, line, "a=1 b=2")
	assert.NotContains(t, line, "axissync")
}

func TestTextFormatterEvent(t *testing.T) {
	f := &TextFormatter{Config: FormatConfig{DisableTimestamp: true}}
	entry := logrus.NewEntry(logrus.New()).WithFields(logrus.Fields{
		"component": "dispatch",
		"event":     "relayout",
		"axis":      "yaxis3",
	})
	entry.Level = logrus.ErrorLevel
	entry.Message = "Event failed"

	out, err := f.Format(entry)
	require.NoError(t, err)
	assert.Equal(t, "[ERROR] [dispatch] relayout: Event failed axis=yaxis3\n", string(out))
}

func TestNewLoggerIsCached(t *testing.T) {
	assert.Same(t, NewLogger("cache-test"), NewLogger("cache-test"))
}
