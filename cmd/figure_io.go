package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/covview/errors"
	"github.com/grovetools/covview/pkg/figure"
)

// readFigure decodes a figure from the first argument, or from stdin when
// there is none or it is "-".
func readFigure(cmd *cobra.Command, args []string) (*figure.Figure, error) {
	if len(args) == 1 && args[0] != "-" {
		return figure.Load(args[0])
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "failed to read figure")
	}
	return figure.Decode(data)
}

// writeJSON writes v to the --output file, or to stdout.
func writeJSON(cmd *cobra.Command, v interface{}) error {
	out := cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, errors.ErrCodeInternal, "failed to create output file").
				WithDetail("path", path)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
