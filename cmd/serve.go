package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/covview/cli"
	"github.com/grovetools/covview/config"
	"github.com/grovetools/covview/internal/server"
)

// NewServeCmd creates the `serve` command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the event dispatcher over HTTP and WebSocket",
		Long: `Starts the callback server. Dashboards post events to /api/dispatch
with their session, or keep a WebSocket open on /api/ws and let the
server hold the session for the connection.

The config file is watched and reloaded on change.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("host", "", "Override server.host")
	cmd.Flags().Int("port", 0, "Override server.port")
	cmd.Flags().Bool("no-watch", false, "Do not reload the config file on change")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := cli.GetLogger(cmd)

	cfg, configFile, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	overrides := func(c *config.Config) {
		if host, _ := cmd.Flags().GetString("host"); host != "" {
			c.Server.Host = host
		}
		if port, _ := cmd.Flags().GetInt("port"); port != 0 {
			c.Server.Port = port
		}
	}
	overrides(cfg)

	srv := server.New(cfg, configFile, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	noWatch, _ := cmd.Flags().GetBool("no-watch")
	if configFile != "" && !noWatch {
		watcher, err := server.NewConfigWatcher(configFile, 0, func(c *config.Config) {
			overrides(c)
			srv.Reload(c)
		})
		if err != nil {
			logger.WithError(err).Warn("Config watching disabled")
		} else {
			go watcher.Start(ctx)
		}
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	go func() {
		select {
		case <-stop:
			logger.Info("Received stop signal")
		case <-ctx.Done():
			return
		}
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("Server shutdown error: %v", err)
		}
	}()

	return srv.ListenAndServe()
}
