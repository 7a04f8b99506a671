// Package viewer is the interactive terminal host for the dispatcher: it
// pans and zooms the coverage window, toggles y auto-ranging and shows the
// feature table with visible rows highlighted.
package viewer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/logging"
	"github.com/grovetools/covview/pkg/dispatch"
	"github.com/grovetools/covview/pkg/highlight"
	"github.com/grovetools/covview/tui/components/logviewer"
	ftable "github.com/grovetools/covview/tui/components/table"
	"github.com/grovetools/covview/tui/keymap"
	"github.com/grovetools/covview/tui/theme"
	"github.com/grovetools/covview/tui/utils/scrollbar"
)

const (
	// PanFraction is the share of the window moved by one pan step.
	PanFraction = 0.25
	// MinWindow is the narrowest window zooming in allows.
	MinWindow = 10
	// DefaultPageSize is the number of feature rows per page.
	DefaultPageSize = 10
	logsHeight      = 8
)

// Model is the viewer state. The Session is the only place the dashboard
// state lives; every action goes through the Dispatcher.
type Model struct {
	dispatcher *dispatch.Dispatcher
	session    *dispatch.Session
	keys       keymap.Viewer
	help       help.Model
	logs       logviewer.Model
	theme      *theme.Theme
	logger     *logrus.Entry

	styles   []highlight.RowStyle
	page     int
	cursor   int
	pageSize int
	showLogs bool
	status   string
	width    int
	height   int
}

// New creates a viewer over an already loaded session.
func New(d *dispatch.Dispatcher, s *dispatch.Session, keys keymap.Viewer) Model {
	m := Model{
		dispatcher: d,
		session:    s,
		keys:       keys,
		help:       help.New(),
		logs:       logviewer.New(80, logsHeight),
		theme:      theme.DefaultTheme,
		logger:     logging.NewLogger("viewer"),
		pageSize:   DefaultPageSize,
		width:      80,
	}
	m.refreshStyles()
	return m
}

// Session returns the session being viewed.
func (m Model) Session() *dispatch.Session {
	return m.session
}

// Status returns the last status line.
func (m Model) Status() string {
	return m.status
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(tea.WindowSizeMsg{Width: msg.Width, Height: logsHeight})
		return m, cmd

	case logviewer.LogLineMsg:
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.logs.Stop()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.ToggleLogs):
		m.showLogs = !m.showLogs
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.turnPage(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.turnPage(1)
	case key.Matches(msg, m.keys.PanLeft):
		m.pan(-1)
	case key.Matches(msg, m.keys.PanRight):
		m.pan(1)
	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(0.5)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(2)
	case key.Matches(msg, m.keys.Autorange):
		enabled := !m.session.Autorange
		m.dispatch(dispatch.Event{Type: dispatch.EventAutorange, Enabled: &enabled})
	case key.Matches(msg, m.keys.Select):
		m.selectRow()
	case key.Matches(msg, m.keys.NextContig):
		m.nextContig()
	case m.showLogs:
		var cmd tea.Cmd
		m.logs, cmd = m.logs.Update(msg)
		return m, cmd
	}
	return m, nil
}

// dispatch runs one event and records the outcome in the status line.
func (m *Model) dispatch(ev dispatch.Event) dispatch.Response {
	resp, err := m.dispatcher.Handle(context.Background(), m.session, ev)
	switch {
	case err != nil:
		m.status = m.theme.Error.Render(fmt.Sprintf("%s: %v", ev.Type, err))
	case resp.NoUpdate:
		m.status = m.theme.Muted.Render(fmt.Sprintf("%s: no update (%s)", ev.Type, resp.Reason))
	default:
		m.status = m.theme.Success.Render(string(ev.Type))
	}
	m.refreshStyles()
	return resp
}

func (m *Model) relayout(start, end int) {
	m.dispatch(dispatch.Event{
		Type: dispatch.EventRelayout,
		Relayout: map[string]interface{}{
			"xaxis.range[0]": float64(start),
			"xaxis.range[1]": float64(end),
		},
	})
}

func (m *Model) pan(dir int) {
	v := m.session.Visible
	width := v.End - v.Start
	step := max(1, int(float64(width)*PanFraction))

	start := max(0, v.Start+dir*step)
	end := start + width
	if size, ok := m.session.Contigs[m.session.Contig]; ok && size > 0 && end > size-1 {
		end = size - 1
		start = max(0, end-width)
	}
	m.relayout(start, end)
}

func (m *Model) zoom(factor float64) {
	v := m.session.Visible
	center := (v.Start + v.End) / 2
	width := max(MinWindow, int(float64(v.End-v.Start)*factor))

	start := max(0, center-width/2)
	end := start + width
	if size, ok := m.session.Contigs[m.session.Contig]; ok && size > 0 && end > size-1 {
		end = size - 1
	}
	m.relayout(start, end)
}

func (m *Model) selectRow() {
	idx := m.page*m.pageSize + m.cursor
	if idx < 0 || idx >= len(m.session.Rows) {
		return
	}
	id := m.session.Rows[idx].ID
	m.dispatch(dispatch.Event{Type: dispatch.EventSelectRow, RowID: &id})
}

func (m *Model) nextContig() {
	contigs := make([]string, 0, len(m.session.Contigs))
	for c := range m.session.Contigs {
		contigs = append(contigs, c)
	}
	if len(contigs) == 0 {
		m.status = m.theme.Muted.Render("no contigs loaded")
		return
	}
	sort.Strings(contigs)

	next := contigs[0]
	for i, c := range contigs {
		if c == m.session.Contig {
			next = contigs[(i+1)%len(contigs)]
			break
		}
	}
	m.dispatch(dispatch.Event{Type: dispatch.EventContig, Contig: next})
}

func (m *Model) pageCount() int {
	if len(m.session.Rows) == 0 {
		return 1
	}
	return (len(m.session.Rows) + m.pageSize - 1) / m.pageSize
}

func (m *Model) pageIndices() []int {
	var displayed []int
	for i := m.page * m.pageSize; i < len(m.session.Rows) && i < (m.page+1)*m.pageSize; i++ {
		displayed = append(displayed, i)
	}
	return displayed
}

func (m *Model) moveCursor(delta int) {
	n := len(m.pageIndices())
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
}

func (m *Model) turnPage(delta int) {
	m.page = min(max(m.page+delta, 0), m.pageCount()-1)
	m.cursor = 0
	m.refreshStyles()
}

// refreshStyles asks the dispatcher for the current page's backgrounds.
func (m *Model) refreshStyles() {
	resp, err := m.dispatcher.Handle(context.Background(), m.session, dispatch.Event{
		Type:      dispatch.EventTablePage,
		Displayed: m.pageIndices(),
	})
	if err != nil && !errors.IsNoUpdate(err) {
		m.logger.WithError(err).Warn("Could not highlight table page")
		return
	}
	m.styles = resp.Styles
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	s := m.session

	autorange := "off"
	if s.Autorange {
		autorange = "on"
	}
	yRange := "-"
	if s.Figure != nil {
		if axis, ok := s.Figure.Axis("yaxis"); ok && len(axis.Range) == 2 {
			yRange = fmt.Sprintf("[%.4g, %.4g]", axis.Range[0], axis.Range[1])
		}
	}

	b.WriteString(m.theme.Header.Render("covview"))
	b.WriteString("\n")
	b.WriteString(ftable.StatusTable([][]string{
		{"window", fmt.Sprintf("%s:%d-%d", s.Contig, s.Visible.Start, s.Visible.End)},
		{"y autorange", autorange},
		{"y range", yRange},
		{"page", fmt.Sprintf("%d/%d", m.page+1, m.pageCount())},
	}))
	b.WriteString("\n")

	if size, ok := s.Contigs[s.Contig]; ok && size > 0 {
		b.WriteString(scrollbar.Track(s.Visible.Start, s.Visible.End, size, max(10, m.width-2)))
		b.WriteString("\n")
	}

	opts := ftable.DefaultOptions()
	opts.Theme = m.theme
	opts.Selected = m.cursor
	tbl := ftable.FeatureTable(s.Rows, m.styles, opts)
	b.WriteString(scrollbar.Overlay(tbl, m.page*m.pageSize, m.pageSize, len(s.Rows)))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	if m.showLogs {
		b.WriteString(lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(m.theme.Colors.Border).Render(m.logs.View()))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Run starts the viewer full screen. Logs written through the logging
// package while it runs are shown in the log pane instead of the terminal.
func Run(d *dispatch.Dispatcher, s *dispatch.Session, keys keymap.Viewer) (*dispatch.Session, error) {
	p := tea.NewProgram(New(d, s, keys), tea.WithAltScreen())

	defer logging.Redirect(logviewer.NewStreamWriter(p, "covview"))()

	final, err := p.Run()
	if err != nil {
		return s, errors.Wrap(err, errors.ErrCodeInternal, "viewer failed")
	}
	return final.(Model).Session(), nil
}
