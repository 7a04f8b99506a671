package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/covview/cli"
	"github.com/grovetools/covview/config"
	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/pkg/colormap"
	"github.com/grovetools/covview/pkg/dispatch"
	"github.com/grovetools/covview/state"
	tuitable "github.com/grovetools/covview/tui/components/table"
)

// NewColorCmd creates the `color` command and its subcommands.
func NewColorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "color",
		Short: "Manage per-trace colours",
		Long: `Trace colours are stored in .covview/state.yml and layered over
colors.traces from covview.yml.`,
	}

	cmd.AddCommand(newColorSetCmd())
	cmd.AddCommand(newColorGetCmd())
	cmd.AddCommand(newColorApplyCmd())
	cmd.AddCommand(newColorResetCmd())

	return cmd
}

func newColorSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <trace> <color>",
		Short: "Store a colour for a trace",
		Long: `Stores the colour picked for a trace (legend group). Accepts #rgb,
#rrggbb, rgb(r, g, b) and hsl(h, s%, l%).

Examples:
  covview color set ctrl '#1f77b4'
  covview color set treated 'rgb(214, 39, 40)'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cli.GetLogger(cmd)
			trace, color := args[0], args[1]
			if _, err := colormap.Parse(color); err != nil {
				return err
			}

			store, err := state.Default()
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to open state")
			}
			err = store.Update(func(st state.State) error {
				st.SetColors(colormap.SetColor(st.Colors(), trace, color))
				return nil
			})
			if err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to save state")
			}

			logger.WithField("trace", trace).Debug("Stored trace colour")
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", trace, color)
			return nil
		},
	}
}

func newColorGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [trace]",
		Short: "Show stored trace colours",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			colors, err := effectiveColors(cfg)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				c, ok := colormap.Lookup(colors, args[0])
				if !ok {
					return errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("no colour stored for trace '%s'", args[0])).
						WithDetail("trace", args[0])
				}
				colors = colormap.Map{args[0]: c}
			}

			if cli.GetOptions(cmd).JSONOutput {
				return writeJSON(cmd, colors)
			}
			items := make([][]string, 0, len(colors))
			for _, trace := range colors.Traces() {
				items = append(items, []string{trace, colors[trace]})
			}
			fmt.Fprintln(cmd.OutOrStdout(), tuitable.StatusTable(items))
			return nil
		},
	}
}

func newColorApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply [figure.json]",
		Short: "Write the stored colours into a figure",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			fig, err := readFigure(cmd, args)
			if err != nil {
				return err
			}
			colors, err := effectiveColors(cfg)
			if err != nil {
				return err
			}

			out, err := colormap.Apply(fig, colors, dispatch.OptionsFromConfig(cfg).Apply)
			if err != nil {
				return err
			}
			return writeJSON(cmd, out)
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the figure to a file instead of stdout")
	return cmd
}

func newColorResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget every stored colour",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := state.Delete(state.KeyColors); err != nil {
				return errors.Wrap(err, errors.ErrCodeInternal, "failed to update state")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Stored colours cleared")
			return nil
		},
	}
}

// effectiveColors is colors.traces from the config overlaid with the
// colours stored in state.
func effectiveColors(cfg *config.Config) (colormap.Map, error) {
	st, err := state.Load()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to load state")
	}
	return colormap.Merge(colormap.Map(cfg.Colors.Traces), st.Colors()), nil
}
