package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/localrivet/edmundson/internal/config"
	"github.com/localrivet/edmundson/internal/errortypes"
	"github.com/localrivet/edmundson/internal/logger"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"

	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the configuration file",
		Value:   config.DefaultConfigFilename,
		Sources: cli.EnvVars("EDMUNDSON_CONFIG"),
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	dbFilePathFlag = &cli.StringFlag{
		Name:  "db",
		Usage: "Path to the SQLite profile database (overrides the configuration)",
	}

	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Output format [text, json, yaml]",
		Value: formatText,
	}
)

// appConfig is resolved once per invocation in the root Before hook.
type appConfig struct {
	Config *config.Config
	Logger *slog.Logger
	Format string
}

var app *appConfig

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		errortypes.LogError(slog.Default(), err)
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:            "edmundson",
		Version:         version,
		Usage:           "Extractive text summarization with the Edmundson cue and key methods",
		HideHelpCommand: true,
		Flags: []cli.Flag{
			configFlag,
			debugFlag,
			dbFilePathFlag,
			formatFlag,
		},
		Commands: []*cli.Command{
			cueCmd,
			keyCmd,
			profileCmd,
			configCmd,
			serveCmd,
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := config.LoadConfigWithPath(cmd.String(configFlag.Name))
			if err != nil {
				return ctx, errortypes.ConfigError(err, "failed to load configuration")
			}

			if path := cmd.String(dbFilePathFlag.Name); path != "" {
				cfg.Store.SQLitePath = path
			}
			if cmd.Bool(debugFlag.Name) {
				cfg.Logging.Level = "debug"
			}

			// Logs always go to stderr so stdout carries only results and
			// the MCP stdio transport.
			log := logger.FromSettings(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)
			logger.SetDefaultLogger(log)

			app = &appConfig{
				Config: cfg,
				Logger: log,
				Format: cmd.String(formatFlag.Name),
			}
			return ctx, nil
		},
	}
}

func encode(v any) error {
	switch app.Format {
	case formatYAML, "yml":
		return yaml.NewEncoder(os.Stdout).Encode(v)
	default:
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "  ")
		return e.Encode(v)
	}
}
