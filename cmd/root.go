// Package cmd holds the covview subcommands.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/grovetools/covview/cli"
	"github.com/grovetools/covview/pkg/profiling"
)

// NewRootCmd creates the covview command tree.
func NewRootCmd() *cobra.Command {
	root := cli.NewStandardCommand(
		"covview",
		"Coverage plot axis sync, feature highlighting and trace colours",
	)
	profiling.NewCobraProfiler().AddFlags(root)

	root.AddCommand(NewAutorangeCmd())
	root.AddCommand(NewLockCmd())
	root.AddCommand(NewHighlightCmd())
	root.AddCommand(NewColorCmd())
	root.AddCommand(NewRelayoutCmd())
	root.AddCommand(NewPlotCmd())
	root.AddCommand(NewServeCmd())
	root.AddCommand(NewViewCmd())
	root.AddCommand(NewLogsCmd())
	root.AddCommand(NewConfigCmd())
	root.AddCommand(cli.NewVersionCommand("covview"))

	return root
}
