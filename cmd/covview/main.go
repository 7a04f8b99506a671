package main

import (
	"os"

	"github.com/grovetools/covview/cli"
	"github.com/grovetools/covview/cmd"
	"github.com/grovetools/covview/errors"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	executed, err := rootCmd.ExecuteC()
	if err == nil {
		return
	}

	// Flag and argument errors from cobra carry no code.
	if errors.GetCode(err) == "" {
		cli.PrintError(executed, err)
		os.Exit(1)
	}

	verbose, _ := executed.Flags().GetBool("verbose")
	if cli.NewErrorHandler(verbose).Handle(err) != nil {
		os.Exit(1)
	}
}
