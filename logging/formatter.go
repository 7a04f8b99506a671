package logging

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/covview/tui/theme"
)

// TextFormatter renders console log lines:
//
//	15:04:05 [WARN] [dispatch] relayout: Event could not be applied axis=yaxis3
type TextFormatter struct {
	Config FormatConfig
}

// Format renders a single log entry.
func (f *TextFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	t := theme.DefaultTheme
	var b strings.Builder

	if !f.Config.DisableTimestamp {
		b.WriteString(t.Muted.Render(entry.Time.Format("2006-01-02 15:04:05")))
		b.WriteByte(' ')
	}

	b.WriteString(levelStyle(t, entry.Level).Render("[" + levelLabel(entry.Level) + "]"))

	if component, ok := entry.Data["component"]; ok && !f.Config.DisableComponent {
		fmt.Fprintf(&b, " [%s]", t.Accent.Render(fmt.Sprint(component)))
	}

	if entry.HasCaller() {
		fmt.Fprintf(&b, " [%s:%d %s]",
			filepath.Base(entry.Caller.File), entry.Caller.Line, filepath.Base(entry.Caller.Function))
	}

	b.WriteByte(' ')
	if event, ok := entry.Data["event"]; ok {
		b.WriteString(t.Bold.Render(fmt.Sprint(event)))
		b.WriteString(": ")
	}
	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for key := range entry.Data {
		if key != "component" && key != "event" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteByte(' ')
		b.WriteString(t.Muted.Render(key + "="))
		fmt.Fprint(&b, entry.Data[key])
	}

	b.WriteByte('\n')
	return []byte(b.String()), nil
}

func levelLabel(level logrus.Level) string {
	if level == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(level.String())
}

func levelStyle(t *theme.Theme, level logrus.Level) lipgloss.Style {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return t.Error
	case logrus.WarnLevel:
		return t.Warning
	case logrus.InfoLevel:
		return t.Info
	default:
		return t.Muted
	}
}
