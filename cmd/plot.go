package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/grovetools/covview/cli"
	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/pkg/axissync"
	"github.com/grovetools/covview/pkg/plot"
)

// NewPlotCmd creates the `plot` command.
func NewPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot [figure.json]",
		Short: "Render one panel of a coverage figure to PNG or SVG",
		Long: `Draws the traces of one axis group inside the figure's visible x
window. The format follows the output extension.

Examples:
  covview plot figure.json -o coverage.png
  covview plot figure.json --group x3:yaxis3 -o samples.svg`,
		Args: cobra.MaximumNArgs(1),
		RunE: runPlot,
	}

	cmd.Flags().StringP("output", "o", "", "Image file (.png or .svg); PNG to stdout when empty")
	cmd.Flags().String("group", "x:yaxis", "Axis group as <trace x axis>:<layout y axis>")
	cmd.Flags().String("title", "", "Chart title")
	cmd.Flags().Int("width", plot.DefaultOptions().Width, "Image width in pixels")
	cmd.Flags().Int("height", plot.DefaultOptions().Height, "Image height in pixels")

	return cmd
}

func runPlot(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)

	fig, err := readFigure(cmd, args)
	if err != nil {
		return err
	}

	opts := plot.DefaultOptions()
	groupFlag, _ := cmd.Flags().GetString("group")
	if opts.Group, err = parseGroup(groupFlag); err != nil {
		return err
	}
	opts.Title, _ = cmd.Flags().GetString("title")
	opts.Width, _ = cmd.Flags().GetInt("width")
	opts.Height, _ = cmd.Flags().GetInt("height")

	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return plot.Render(cmd.OutOrStdout(), fig, opts)
	}

	opts.Format = plot.FormatForPath(path)
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create image file").
			WithDetail("path", path)
	}
	defer f.Close()

	if err := plot.Render(f, fig, opts); err != nil {
		return err
	}
	logger.WithField("path", path).Info("Rendered plot")
	return nil
}

func parseGroup(s string) (axissync.Group, error) {
	x, y, ok := strings.Cut(s, ":")
	if !ok || x == "" || y == "" {
		return axissync.Group{}, errors.New(errors.ErrCodeInvalidInput, fmt.Sprintf("invalid axis group '%s', want x:yaxis", s))
	}
	return axissync.Group{XAxis: x, YAxis: y}, nil
}
