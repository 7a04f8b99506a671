package logviewer

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// Sender is the part of *tea.Program used by StreamWriter.
type Sender interface {
	Send(msg tea.Msg)
}

// StreamWriter implements io.Writer and sends complete lines as LogLineMsg
// to a running program. Partial lines are buffered until their newline.
type StreamWriter struct {
	program Sender
	source  string
	buffer  strings.Builder
	mu      sync.Mutex
}

// NewStreamWriter creates a StreamWriter tagging lines with source.
func NewStreamWriter(program Sender, source string) *StreamWriter {
	return &StreamWriter{program: program, source: source}
}

// Write implements io.Writer.
func (w *StreamWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buffer.Write(p)
	lines := strings.Split(w.buffer.String(), "\n")

	w.buffer.Reset()
	w.buffer.WriteString(lines[len(lines)-1])

	for _, line := range lines[:len(lines)-1] {
		if w.program != nil {
			w.program.Send(LogLineMsg{Source: w.source, Line: line})
		}
	}
	return len(p), nil
}
