package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/gatekeeper/internal/app"
	"github.com/allisson/gatekeeper/internal/config"
)

func getCommands(version string) []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getSystemCommands(version)...)
	cmds = append(cmds, getRBACCommands()...)
	cmds = append(cmds, getAuthCommands()...)
	return cmds
}

// containerAction loads and validates the configuration, builds a container for the duration of the
// command and hands both to fn.
func containerAction(
	fn func(ctx context.Context, cmd *cli.Command, cfg *config.Config, container *app.Container) error,
) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		cfg := config.Load()
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		container := app.NewContainer(cfg)
		defer func() { _ = container.Shutdown(ctx) }()

		return fn(ctx, cmd, cfg, container)
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

// retentionFlags are shared by the housekeeping commands.
func retentionFlags(noun string) []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:     "days",
			Aliases:  []string{"d"},
			Required: true,
			Usage:    "Delete " + noun + " older than this many days",
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Aliases: []string{"n"},
			Usage:   "Show how many " + noun + " would be deleted without deleting",
		},
		formatFlag(),
	}
}
