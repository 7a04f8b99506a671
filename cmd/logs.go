package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hpcloud/tail"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/covview/cli"
	"github.com/grovetools/covview/logging"
	"github.com/grovetools/covview/pkg/logging/logutil"
	"github.com/grovetools/covview/tui"
	"github.com/grovetools/covview/tui/components/logviewer"
)

// TailedLine is a line of log output from one log file.
type TailedLine struct {
	Source string
	Line   string
}

// NewLogsCmd creates the `logs` command.
func NewLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show covview log files",
		Long: `Prints the log files written by the file sink: logging.file.path when
set, otherwise every .log file under .covview/logs.

Examples:
  # Follow all logs
  covview logs -f

  # Last 50 lines from the server as JSON Lines
  covview logs --tail 50 --component server --json

  # Browse interactively (f toggles follow, l cycles the minimum level)
  covview logs -i`,
		Args: cobra.NoArgs,
		RunE: runLogsE,
	}

	cmd.Flags().BoolP("tui", "i", false, "Launch the interactive log viewer")
	cmd.Flags().BoolP("follow", "f", false, "Follow log output")
	cmd.Flags().Int("tail", -1, "Number of lines to show from the end of each file (default: all)")
	cmd.Flags().StringSlice("component", nil, "Only show lines from these components")

	return cmd
}

func runLogsE(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)
	opts := cli.GetOptions(cmd)

	var logCfg logging.Config
	if cfg, _, err := cli.LoadConfig(cmd); err == nil {
		_ = cfg.UnmarshalExtension("logging", &logCfg)
	}

	files, err := logutil.FindLogFiles(logCfg, logging.DefaultLogDir())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logger.Info("No log files found.")
		return nil
	}

	follow, _ := cmd.Flags().GetBool("follow")
	if tuiMode, _ := cmd.Flags().GetBool("tui"); tuiMode {
		return runLogsTUI(files)
	}

	tailLines, _ := cmd.Flags().GetInt("tail")
	components, _ := cmd.Flags().GetStringSlice("component")
	wanted := make(map[string]bool, len(components))
	for _, c := range components {
		wanted[c] = true
	}

	lineChan := make(chan TailedLine, 100)
	var wg sync.WaitGroup
	for source, path := range files {
		logger.WithFields(logrus.Fields{
			"source": source,
			"path":   path,
		}).Debug("Tailing log file")

		wg.Add(1)
		go tailFile(source, path, lineChan, &wg, follow, tailLines)
	}

	go func() {
		wg.Wait()
		close(lineChan)
	}()

	out := cmd.OutOrStdout()
	for tailed := range lineChan {
		if len(wanted) > 0 && !wanted[lineComponent(tailed.Line)] {
			continue
		}
		if opts.JSONOutput {
			printLogJSON(out, tailed)
		} else {
			fmt.Fprintln(out, logviewer.FormatLine(tailed.Source, tailed.Line))
		}
	}
	return nil
}

func lineComponent(line string) string {
	var entry struct {
		Component string `json:"component"`
	}
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return ""
	}
	return entry.Component
}

// tailFile sends the file's lines to lineChan: the last tailLines lines
// (all when negative), then new lines as they are written when following.
func tailFile(source, path string, lineChan chan<- TailedLine, wg *sync.WaitGroup, follow bool, tailLines int) {
	defer wg.Done()

	quiet := stdlog.New(io.Discard, "", 0)

	t, err := tail.TailFile(path, tail.Config{Logger: quiet})
	if err != nil {
		return
	}
	var backlog []string
	for line := range t.Lines {
		backlog = append(backlog, line.Text)
		if tailLines >= 0 && len(backlog) > tailLines {
			backlog = backlog[1:]
		}
	}
	for _, line := range backlog {
		if line != "" {
			lineChan <- TailedLine{Source: source, Line: line}
		}
	}

	if !follow {
		return
	}

	t, err = tail.TailFile(path, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Logger:   quiet,
	})
	if err != nil {
		return
	}
	defer t.Cleanup()
	for line := range t.Lines {
		if line.Text != "" {
			lineChan <- TailedLine{Source: source, Line: line.Text}
		}
	}
}

// printLogJSON prints a log line as JSON, tagged with its source.
func printLogJSON(w io.Writer, tailed TailedLine) {
	var logMap map[string]interface{}
	if err := json.Unmarshal([]byte(tailed.Line), &logMap); err != nil {
		logMap = map[string]interface{}{
			"raw_line": tailed.Line,
			"error":    "failed to parse original log line as JSON",
		}
	}
	logMap["source"] = tailed.Source

	jsonData, _ := json.Marshal(logMap)
	fmt.Fprintln(w, string(jsonData))
}

// logsModel wraps the log viewer with quit handling.
type logsModel struct {
	viewer logviewer.Model
	start  tea.Cmd
}

func (m logsModel) Init() tea.Cmd {
	return m.start
}

func (m logsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "q", "ctrl+c", "esc":
			m.viewer.Stop()
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.viewer, cmd = m.viewer.Update(msg)
	return m, cmd
}

func (m logsModel) View() string {
	return m.viewer.View()
}

func runLogsTUI(files map[string]string) error {
	tui.InitializeTUI()

	viewer := logviewer.New(80, 20)
	start := viewer.Start(files, true)
	p := tea.NewProgram(logsModel{viewer: viewer, start: start}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
