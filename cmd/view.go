package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/covview/cli"
	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/pkg/dispatch"
	"github.com/grovetools/covview/pkg/table"
	"github.com/grovetools/covview/state"
	"github.com/grovetools/covview/tui"
	"github.com/grovetools/covview/tui/keymap"
	"github.com/grovetools/covview/tui/theme"
	"github.com/grovetools/covview/tui/viewer"
)

// NewViewCmd creates the `view` command.
func NewViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [figure.json]",
		Short: "Browse a coverage figure and its feature table in the terminal",
		Long: `Opens the interactive viewer. Pan with h/l, zoom with +/-, page through
the feature table with j/k and enter to jump to a feature, c to switch
contig and a to toggle y auto-ranging.

Trace colours and the auto-ranging switch are saved to .covview/state.yml
on exit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runView,
	}

	cmd.Flags().String("table", "", "Feature table (.json, .yaml or .xlsx); defaults to table.path")
	cmd.Flags().String("contig", "", "Contig to open (default: first contig in the table)")
	cmd.Flags().StringToInt("contigs", nil, "Contig lengths as name=length (default: furthest feature end)")

	return cmd
}

func runView(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)
	tui.InitializeTUI()

	cfg, _, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	tuiCfg := tui.LoadConfig(cfg)
	if tuiCfg.Theme != "" {
		theme.DefaultTheme = theme.NewThemeWithName(tuiCfg.Theme)
	}
	keys := keymap.DefaultViewer()
	keymap.ApplyOverrides(&keys, tuiCfg.Keys)

	var rows []table.Row
	if path, _ := cmd.Flags().GetString("table"); path != "" || cfg.Table.Path != "" {
		if rows, err = loadRows(cmd, cfg.Table.Path); err != nil {
			return err
		}
	}
	var ev dispatch.Event
	if len(args) == 1 || stdinPiped(cmd) {
		if ev.Figure, err = readFigure(cmd, args); err != nil {
			return err
		}
	}
	if ev.Figure == nil && rows == nil {
		return errors.New(errors.ErrCodeInvalidInput, "nothing to view: pass a figure or a feature table")
	}

	st, err := state.Load()
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to load state")
	}

	d := dispatch.New(dispatch.OptionsFromConfig(cfg))
	session, err := loadSession(d, ev, rows, st, cmd)
	if err != nil {
		return err
	}

	final, err := viewer.Run(d, session, keys)
	if err != nil {
		return err
	}

	st.SetColors(final.Colors)
	st.SetAutorange(final.Autorange)
	st.SetContig(final.Contig)
	if err := state.Save(st); err != nil {
		logger.WithError(err).Warn("Could not save viewer state")
	}
	return nil
}

// loadSession builds the viewer session: the load event with the table,
// stored colours and last contig, then the stored auto-ranging switch.
func loadSession(d *dispatch.Dispatcher, ev dispatch.Event, rows []table.Row, st state.State, cmd *cobra.Command) (*dispatch.Session, error) {
	ctx := context.Background()
	session := dispatch.NewSession()

	ev.Type = dispatch.EventLoad
	ev.Rows = rows
	ev.Colors = st.Colors()
	ev.Contigs = contigSizes(rows)
	if sizes, _ := cmd.Flags().GetStringToInt("contigs"); len(sizes) > 0 {
		for name, size := range sizes {
			ev.Contigs[name] = size
		}
	}

	ev.Contig, _ = cmd.Flags().GetString("contig")
	if _, known := ev.Contigs[st.Contig()]; ev.Contig == "" && known {
		ev.Contig = st.Contig()
	}
	if ev.Contig == "" {
		if contigs := table.Contigs(rows); len(contigs) > 0 {
			ev.Contig = contigs[0]
		}
	}
	if ev.Figure == nil {
		start, end := 0, ev.Contigs[ev.Contig]
		if w := d.Options().DefaultWindow; w > 0 && end > w {
			end = w
		}
		ev.Start, ev.End = &start, &end
	}

	if _, err := d.Handle(ctx, session, ev); err != nil {
		return nil, err
	}

	enabled := st.Autorange()
	if _, err := d.Handle(ctx, session, dispatch.Event{Type: dispatch.EventAutorange, Enabled: &enabled}); err != nil {
		return nil, err
	}
	return session, nil
}

// stdinPiped reports whether the command input is something other than a
// terminal.
func stdinPiped(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return true
	}
	return !tui.IsTerminal(f)
}
