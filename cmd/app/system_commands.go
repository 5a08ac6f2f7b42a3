package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/gatekeeper/cmd/app/commands"
	"github.com/allisson/gatekeeper/internal/app"
	"github.com/allisson/gatekeeper/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP API (and the metrics server when enabled)",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Apply the principals, refresh token and audit log schema migrations",
			Action: containerAction(
				func(ctx context.Context, cmd *cli.Command, cfg *config.Config, container *app.Container) error {
					return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
				},
			),
		},
		{
			Name:  "clean-audit-logs",
			Usage: "Delete audit records older than the retention window",
			Flags: retentionFlags("audit records"),
			Action: containerAction(
				func(ctx context.Context, cmd *cli.Command, cfg *config.Config, container *app.Container) error {
					auditLogUseCase, err := container.AuditLogUseCase()
					if err != nil {
						return err
					}

					return commands.RunCleanAuditLogs(
						ctx,
						auditLogUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						int(cmd.Int("days")),
						cmd.Bool("dry-run"),
						cmd.String("format"),
					)
				},
			),
		},
		{
			Name:  "verify-audit-logs",
			Usage: "Check the HMAC signatures of audit records in a time window",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "start-date",
					Aliases:  []string{"s"},
					Required: true,
					Usage:    "Start date in YYYY-MM-DD or YYYY-MM-DD HH:MM:SS format",
				},
				&cli.StringFlag{
					Name:     "end-date",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "End date in YYYY-MM-DD or YYYY-MM-DD HH:MM:SS format",
				},
				formatFlag(),
			},
			Action: containerAction(
				func(ctx context.Context, cmd *cli.Command, cfg *config.Config, container *app.Container) error {
					auditLogUseCase, err := container.AuditLogUseCase()
					if err != nil {
						return err
					}

					return commands.RunVerifyAuditLogs(
						ctx,
						auditLogUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("start-date"),
						cmd.String("end-date"),
						cmd.String("format"),
					)
				},
			),
		},
	}
}
