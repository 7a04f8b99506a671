package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/grovetools/covview/logging"
)

// GetLogger returns the covview CLI logger adjusted for the command flags.
func GetLogger(cmd *cobra.Command) *logrus.Entry {
	entry := logging.NewLogger("covview")
	applyOptions(entry.Logger, GetOptions(cmd))
	return entry
}

// applyOptions maps --verbose to debug level on the console and --json to
// JSON lines.
func applyOptions(logger *logrus.Logger, opts CommandOptions) {
	if opts.Verbose {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetOutput(logging.Console())
	}
	if opts.JSONOutput {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
}
