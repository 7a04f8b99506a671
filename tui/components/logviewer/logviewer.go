// Package logviewer is a bubbletea component that tails covview log files.
package logviewer

import (
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hpcloud/tail"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/covview/tui/theme"
)

// LogLineMsg is sent when a new log line is received.
type LogLineMsg struct {
	Source string
	Line   string
	// tailed marks lines read by Start, which re-arm the channel reader.
	tailed bool
}

// levels are the minimum levels the `l` key cycles through.
var levels = []logrus.Level{logrus.DebugLevel, logrus.InfoLevel, logrus.WarnLevel, logrus.ErrorLevel}

type entry struct {
	level logrus.Level
	text  string
}

// Model is the TUI component for viewing logs.
type Model struct {
	viewport   viewport.Model
	tails      []*tail.Tail
	mu         *sync.Mutex
	follow     bool
	ready      bool
	logChannel chan LogLineMsg
	entries    []entry
	// minLevel indexes levels.
	minLevel int
}

// New creates a new log viewer model.
func New(width, height int) Model {
	return Model{
		viewport:   viewport.New(width, height),
		mu:         &sync.Mutex{},
		follow:     true,
		logChannel: make(chan LogLineMsg, 100),
	}
}

// Start tails the given files, keyed by source name. When fromStart is
// false only lines written after the call are shown.
func (m *Model) Start(files map[string]string, fromStart bool) tea.Cmd {
	m.Stop()
	m.mu.Lock()
	defer m.mu.Unlock()

	whence := io.SeekEnd
	if fromStart {
		whence = io.SeekStart
	}
	for source, path := range files {
		t, err := tail.TailFile(path, tail.Config{
			Follow:   true,
			ReOpen:   true,
			Location: &tail.SeekInfo{Offset: 0, Whence: whence},
			Logger:   stdlog.New(io.Discard, "", 0),
		})
		if err != nil {
			m.entries = append(m.entries, entry{
				level: logrus.ErrorLevel,
				text:  theme.DefaultTheme.Error.Render(fmt.Sprintf("cannot tail %s: %v", path, err)),
			})
			continue
		}
		m.tails = append(m.tails, t)

		go func(source string, t *tail.Tail) {
			for line := range t.Lines {
				m.logChannel <- LogLineMsg{Source: source, Line: line.Text, tailed: true}
			}
		}(source, t)
	}

	return m.waitForLogLine()
}

// Stop halts all tailing operations.
func (m *Model) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tails {
		_ = t.Stop()
	}
	m.tails = nil
}

// Lines returns the formatted lines at or above the minimum level.
func (m Model) Lines() []string {
	floor := levels[m.minLevel]
	var out []string
	for _, e := range m.entries {
		if e.level <= floor {
			out = append(out, e.text)
		}
	}
	return out
}

// MinLevel returns the least severe level shown.
func (m Model) MinLevel() logrus.Level {
	return levels[m.minLevel]
}

func (m *Model) setWrappedContent() {
	if !m.ready {
		return
	}
	width := m.viewport.Width
	if width < 1 {
		width = 1
	}
	wrap := lipgloss.NewStyle().Width(width)

	lines := m.Lines()
	wrapped := make([]string, len(lines))
	for i, line := range lines {
		wrapped[i] = wrap.Render(line)
	}
	m.viewport.SetContent(strings.Join(wrapped, "\n"))
}

func (m *Model) waitForLogLine() tea.Cmd {
	ch := m.logChannel
	return func() tea.Msg {
		return <-ch
	}
}

// Init initializes the component.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height
		m.ready = true
		m.setWrappedContent()
	case LogLineMsg:
		m.entries = append(m.entries, entry{level: lineLevel(msg.Line), text: FormatLine(msg.Source, msg.Line)})
		m.setWrappedContent()
		if m.follow {
			m.viewport.GotoBottom()
		}
		if msg.tailed {
			cmds = append(cmds, m.waitForLogLine())
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "f":
			m.follow = !m.follow
		case "l":
			m.minLevel = (m.minLevel + 1) % len(levels)
			m.setWrappedContent()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View renders the log viewer.
func (m Model) View() string {
	if !m.ready {
		return "Initializing log viewer..."
	}
	return m.viewport.View()
}

// IsFollowing returns whether the log viewer is in follow mode.
func (m Model) IsFollowing() bool {
	return m.follow
}

// lineLevel is the level of a JSON log line. Lines that are not JSON or
// carry no known level count as info.
func lineLevel(line string) logrus.Level {
	var e struct {
		Level string `json:"level"`
	}
	if json.Unmarshal([]byte(line), &e) != nil {
		return logrus.InfoLevel
	}
	level, err := logrus.ParseLevel(e.Level)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}

// FormatLine renders a JSON log line as "time [source] LEVEL: msg". Lines
// that are not JSON are prefixed with the source only.
func FormatLine(source, line string) string {
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		if source == "" {
			return line
		}
		return fmt.Sprintf("[%s] %s", theme.DefaultTheme.Accent.Render(source), line)
	}

	msg, _ := entry["msg"].(string)
	level, _ := entry["level"].(string)
	ts, _ := entry["time"].(string)
	if component, ok := entry["component"].(string); ok && component != "" {
		source = component
	}

	var timeStr string
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		parsed, _ = time.Parse(time.RFC3339, ts)
	}
	if !parsed.IsZero() {
		timeStr = parsed.Format("15:04:05")
	}

	var levelStyle lipgloss.Style
	switch strings.ToLower(level) {
	case "error", "fatal", "panic":
		levelStyle = theme.DefaultTheme.Error
	case "warning", "warn":
		levelStyle = theme.DefaultTheme.Warning
	default:
		levelStyle = theme.DefaultTheme.Info
	}

	var parts []string
	if timeStr != "" {
		parts = append(parts, timeStr)
	}
	if source != "" {
		parts = append(parts, fmt.Sprintf("[%s]", theme.DefaultTheme.Accent.Render(source)))
	}
	parts = append(parts, levelStyle.Render(strings.ToUpper(level))+":", msg)
	return strings.Join(parts, " ")
}
