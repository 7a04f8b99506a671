package profiling

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderAggregatesByName(t *testing.T) {
	r := NewRecorder()
	r.record("relayout", 2*time.Millisecond)
	r.record("relayout", 4*time.Millisecond)
	r.record("autorange", time.Millisecond)

	stats := r.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, "relayout", stats[0].Name)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, 6*time.Millisecond, stats[0].Total)
	assert.Equal(t, 4*time.Millisecond, stats[0].Max)
	assert.Equal(t, 3*time.Millisecond, stats[0].Mean())
	assert.Equal(t, "autorange", stats[1].Name)
}

func TestRecorderConcurrentSpans(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := r.Start("handle")
			s.Stop()
			s.Stop()
		}()
	}
	wg.Wait()

	stats := r.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, 20, stats[0].Count)
}

func TestDisabledRecorder(t *testing.T) {
	r := &Recorder{stats: make(map[string]*Stat)}
	r.Start("x").Stop()
	assert.Empty(t, r.Stats())

	var buf bytes.Buffer
	r.Summarize(&buf)
	assert.Empty(t, buf.String())
}

func TestSummarize(t *testing.T) {
	r := NewRecorder()
	r.record("highlight", time.Millisecond)

	var buf bytes.Buffer
	r.Summarize(&buf)
	assert.Contains(t, buf.String(), "Timing (wall")
	assert.Contains(t, buf.String(), "highlight")
	assert.Contains(t, buf.String(), "COUNT")
}

func TestCobraProfilerMemProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mem.pprof")

	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	NewCobraProfiler().AddFlags(cmd)
	cmd.SetArgs([]string{"--mem-profile", path})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	require.NoError(t, cmd.Execute())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
