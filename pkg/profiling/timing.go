// Package profiling records per-operation timings and wires pprof output
// into the command line.
package profiling

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Stopper ends a timed span.
type Stopper interface {
	Stop()
}

// Stat aggregates every span recorded under one name.
type Stat struct {
	Name  string
	Count int
	Total time.Duration
	Max   time.Duration
}

// Mean returns the average span duration.
func (s Stat) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Recorder collects spans. It is safe for concurrent use; spans from
// different goroutines may overlap.
type Recorder struct {
	mu      sync.Mutex
	enabled bool
	started time.Time
	stats   map[string]*Stat
}

// NewRecorder returns an enabled recorder.
func NewRecorder() *Recorder {
	return &Recorder{enabled: true, started: time.Now(), stats: make(map[string]*Stat)}
}

var defaultRecorder = &Recorder{stats: make(map[string]*Stat)}

// Enable turns on the package-level recorder.
func Enable() {
	defaultRecorder.mu.Lock()
	defer defaultRecorder.mu.Unlock()
	if defaultRecorder.enabled {
		return
	}
	defaultRecorder.enabled = true
	defaultRecorder.started = time.Now()
}

// Start begins a span on the package-level recorder, typically used as
// defer profiling.Start("name").Stop().
func Start(name string) Stopper {
	return defaultRecorder.Start(name)
}

// Summarize writes the package-level recorder's table to w.
func Summarize(w io.Writer) {
	defaultRecorder.Summarize(w)
}

// Start begins a span. It is a no-op when the recorder is disabled.
func (r *Recorder) Start(name string) Stopper {
	r.mu.Lock()
	enabled := r.enabled
	r.mu.Unlock()
	if !enabled {
		return noopStopper{}
	}
	return &span{recorder: r, name: name, start: time.Now()}
}

func (r *Recorder) record(name string, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.stats[name]
	if !ok {
		st = &Stat{Name: name}
		r.stats[name] = st
	}
	st.Count++
	st.Total += d
	if d > st.Max {
		st.Max = d
	}
}

// Stats returns the recorded stats, largest total first.
func (r *Recorder) Stats() []Stat {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Stat, 0, len(r.stats))
	for _, st := range r.stats {
		out = append(out, *st)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Summarize writes a table of the recorded stats to w. Nothing is written
// when the recorder is disabled.
func (r *Recorder) Summarize(w io.Writer) {
	r.mu.Lock()
	enabled, started := r.enabled, r.started
	r.mu.Unlock()
	if !enabled {
		return
	}

	wall := time.Since(started)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SPAN", "COUNT", "TOTAL", "MEAN", "MAX", "% WALL")
	for _, st := range r.Stats() {
		pct := 0.0
		if wall > 0 {
			pct = float64(st.Total) / float64(wall) * 100
		}
		t.Row(
			st.Name,
			fmt.Sprint(st.Count),
			round(st.Total).String(),
			round(st.Mean()).String(),
			round(st.Max).String(),
			fmt.Sprintf("%.1f%%", pct),
		)
	}

	fmt.Fprintf(w, "\nTiming (wall %v)\n", round(wall))
	fmt.Fprintln(w, t.Render())
}

func round(d time.Duration) time.Duration {
	return d.Round(100 * time.Microsecond)
}

type span struct {
	recorder *Recorder
	name     string
	start    time.Time
	once     sync.Once
}

// Stop records the span. Calling it again has no effect.
func (s *span) Stop() {
	s.once.Do(func() {
		s.recorder.record(s.name, time.Since(s.start))
	})
}

type noopStopper struct{}

func (noopStopper) Stop() {}
