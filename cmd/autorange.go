package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/covview/cli"
	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/pkg/axissync"
	"github.com/grovetools/covview/pkg/dispatch"
)

// NewAutorangeCmd creates the `autorange` command.
func NewAutorangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autorange [figure.json]",
		Short: "Fit the coverage y axes to the data in the visible window",
		Long: `Reads a figure, frames every tracked y axis around the largest value
inside the visible x window and pins the axes there.

The window defaults to the figure's xaxis range.

Examples:
  # Rescale to the window already set on the figure
  covview autorange figure.json -o scaled.json

  # Rescale for an explicit window
  covview autorange figure.json --min 1200 --max 3400`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAutorange,
	}

	cmd.Flags().Float64("min", 0, "Left edge of the visible window")
	cmd.Flags().Float64("max", 0, "Right edge of the visible window")
	cmd.Flags().Bool("disabled", false, "Treat auto-ranging as switched off")
	cmd.Flags().StringP("output", "o", "", "Write the figure to a file instead of stdout")

	return cmd
}

func runAutorange(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)

	cfg, _, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	fig, err := readFigure(cmd, args)
	if err != nil {
		return err
	}

	visible, ok := axissync.VisibleXRange(fig)
	minSet, maxSet := cmd.Flags().Changed("min"), cmd.Flags().Changed("max")
	if !ok && !(minSet && maxSet) {
		return errors.New(errors.ErrCodeInvalidInput, "figure has no xaxis range, pass both --min and --max")
	}
	if minSet {
		visible.Min, _ = cmd.Flags().GetFloat64("min")
	}
	if maxSet {
		visible.Max, _ = cmd.Flags().GetFloat64("max")
	}

	disabled, _ := cmd.Flags().GetBool("disabled")
	syncer := axissync.New(dispatch.OptionsFromConfig(cfg).Axes)
	out, err := syncer.Recompute(visible, fig, !disabled)
	if err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"min": visible.Min,
		"max": visible.Max,
	}).Debug("Recomputed y axes")
	return writeJSON(cmd, out)
}

// NewLockCmd creates the `lock` command.
func NewLockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lock [figure.json]",
		Short: "Lock or unlock the tracked y axes against user zoom",
		Long: `Switches off autorange on every tracked y axis and sets fixedrange.
With --off the axes stay manual but can be zoomed again.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := cli.LoadConfig(cmd)
			if err != nil {
				return err
			}
			fig, err := readFigure(cmd, args)
			if err != nil {
				return err
			}

			off, _ := cmd.Flags().GetBool("off")
			out, err := axissync.New(dispatch.OptionsFromConfig(cfg).Axes).LockAxes(!off, fig)
			if err != nil {
				return err
			}
			return writeJSON(cmd, out)
		},
	}

	cmd.Flags().Bool("off", false, "Unlock the axes")
	cmd.Flags().StringP("output", "o", "", "Write the figure to a file instead of stdout")

	return cmd
}
