package cmd

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/covview/cli"
	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/pkg/relayout"
)

// relayoutResult is printed by the relayout command.
type relayoutResult struct {
	relayout.Outcome
	// Window is the window to load when Redraw is set.
	Window *relayout.Window `json:"window,omitempty"`
	Step   int              `json:"step,omitempty"`
}

// NewRelayoutCmd creates the `relayout` command.
func NewRelayoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relayout",
		Short: "Decide how a zoom or pan changes the loaded window",
		Long: `Compares a relayout event with the previous one and the window that
is loaded, and prints whether it was a zoom, whether the figure must be
rebuilt and the window to load.

Examples:
  covview relayout \
    --event '{"xaxis.range[0]": 1500, "xaxis.range[1]": 2500}' \
    --prev '{"xaxis.range[0]": 1000, "xaxis.range[1]": 2000}' \
    --window 500,2500`,
		Args: cobra.NoArgs,
		RunE: runRelayout,
	}

	cmd.Flags().String("event", "", "Relayout event as JSON")
	cmd.Flags().String("prev", "", "Previous relayout event as JSON")
	cmd.Flags().Float64Slice("window", nil, "Loaded window as start,end (default: padded around the previous event)")
	cmd.MarkFlagRequired("event")

	return cmd
}

func runRelayout(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)

	cfg, _, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	resolver := relayout.NewResolver(cfg.Relayout.PanMargin, cfg.Relayout.WindowPadding)

	raw, _ := cmd.Flags().GetString("event")
	next, err := decodeRelayout(raw)
	if err != nil {
		return err
	}
	var prev relayout.Event
	if raw, _ := cmd.Flags().GetString("prev"); raw != "" {
		if prev, err = decodeRelayout(raw); err != nil {
			return err
		}
	}

	var loaded relayout.Window
	bounds, _ := cmd.Flags().GetFloat64Slice("window")
	switch {
	case len(bounds) == 2:
		loaded = relayout.Window{Start: bounds[0], End: bounds[1]}
	case len(bounds) != 0:
		return errors.New(errors.ErrCodeInvalidInput, "--window takes exactly two values")
	default:
		if r0, r1, ok := prev.XRange(); ok {
			loaded, _ = resolver.InternalWindow(r0, r1)
		} else if r0, r1, ok := next.XRange(); ok {
			loaded, _ = resolver.InternalWindow(r0, r1)
		}
	}

	outcome, err := resolver.Resolve(next, prev, loaded)
	if err != nil {
		return err
	}

	result := relayoutResult{Outcome: outcome}
	if outcome.Redraw {
		w, step := resolver.InternalWindow(float64(outcome.Start), float64(outcome.End))
		result.Window = &w
		result.Step = step
	}

	logger.WithFields(logrus.Fields{
		"zoom":   outcome.Zoom,
		"redraw": outcome.Redraw,
	}).Debug("Resolved relayout")
	return writeJSON(cmd, result)
}

func decodeRelayout(raw string) (relayout.Event, error) {
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return relayout.Event{}, errors.Wrap(err, errors.ErrCodeInvalidInput, "relayout event is not a JSON object")
	}
	return relayout.Decode(m)
}
