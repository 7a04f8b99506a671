package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// output is the shared stderr sink. Every logger writes to it, so
// redirecting it moves all console logging at once.
type output struct {
	mu sync.RWMutex
	w  io.Writer
}

func (o *output) Write(p []byte) (int, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.w.Write(p)
}

var stderrOutput = &output{w: os.Stderr}

// Console returns the shared console writer.
func Console() io.Writer {
	return stderrOutput
}

// Redirect sends the console output of every logger to w until the
// returned restore function is called.
func Redirect(w io.Writer) (restore func()) {
	stderrOutput.mu.Lock()
	prev := stderrOutput.w
	stderrOutput.w = w
	stderrOutput.mu.Unlock()

	return func() {
		stderrOutput.mu.Lock()
		stderrOutput.w = prev
		stderrOutput.mu.Unlock()
	}
}

// fileHook writes entries to the file sink as JSON lines regardless of
// the console format, so `covview logs` can filter them by component.
type fileHook struct {
	mu        sync.Mutex
	w         io.Writer
	formatter logrus.Formatter
}

func newFileHook(w io.Writer) *fileHook {
	return &fileHook{w: w, formatter: &logrus.JSONFormatter{}}
}

func (h *fileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *fileHook) Fire(entry *logrus.Entry) error {
	data, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(data)
	return err
}
