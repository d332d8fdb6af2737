package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/localrivet/edmundson"
	"github.com/localrivet/edmundson/internal/errortypes"
)

var (
	configCmd = &cli.Command{
		Name:            "config",
		Usage:           "Manage the configuration file",
		HideHelpCommand: true,
		Commands: []*cli.Command{
			{
				Name:      "save",
				Usage:     "Write the effective configuration to a file (default: the loaded path)",
				ArgsUsage: "[path]",
				Action:    cmdSaveConfig,
			},
		},
	}

	serveCmd = &cli.Command{
		Name:   "serve",
		Usage:  "Serve the summarizer and profile tools over MCP stdio",
		Action: cmdServe,
	}
)

func cmdSaveConfig(ctx context.Context, cmd *cli.Command) error {
	var err error
	if path := cmd.Args().First(); path != "" {
		err = app.Config.SaveToFile(path)
	} else {
		err = app.Config.Save()
	}
	if err != nil {
		return errortypes.ConfigError(err, "failed to save configuration")
	}
	app.Logger.Info("Configuration saved", "path", app.Config.GetConfigPath())
	return nil
}

func cmdServe(ctx context.Context, cmd *cli.Command) error {
	srv, err := edmundson.NewServer(edmundson.ServerOptions{
		Config: app.Config,
		Logger: app.Logger,
	})
	if err != nil {
		return err
	}

	setupSignalHandler(srv)

	// Start blocks until stdin is closed
	if err := srv.Start(); err != nil {
		srv.Stop()
		return errortypes.InternalError(err, "MCP server failed")
	}
	return srv.Stop()
}

// setupSignalHandler closes the profile store and exits on SIGINT or SIGTERM.
func setupSignalHandler(srv *edmundson.Server) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		app.Logger.Info("Received shutdown signal, terminating gracefully...")

		if err := srv.Stop(); err != nil {
			errortypes.LogError(app.Logger, errortypes.DatabaseError(err, "Error closing store during shutdown"))
			os.Exit(1)
		}

		app.Logger.Info("Shutdown complete")
		os.Exit(0)
	}()
}
