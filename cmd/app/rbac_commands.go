package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/gatekeeper/cmd/app/commands"
	"github.com/allisson/gatekeeper/internal/app"
	"github.com/allisson/gatekeeper/internal/config"
	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

func getRBACCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "bootstrap",
			Usage: "Seed built-in roles, permissions and the initial administrator",
			Action: containerAction(
				func(ctx context.Context, cmd *cli.Command, cfg *config.Config, container *app.Container) error {
					bootstrapUseCase, err := container.BootstrapUseCase()
					if err != nil {
						return err
					}

					return commands.RunBootstrap(
						ctx,
						bootstrapUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						rbacDomain.CreatePrincipalInput{
							Username: cfg.BootstrapAdminUsername,
							Email:    cfg.BootstrapAdminEmail,
							Password: cfg.BootstrapAdminPassword,
						},
					)
				},
			),
		},
		{
			Name:  "create-admin",
			Usage: "Create a principal holding the ADMIN role",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "username",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Login name",
				},
				&cli.StringFlag{
					Name:     "email",
					Aliases:  []string{"e"},
					Required: true,
					Usage:    "Contact email",
				},
				&cli.StringFlag{
					Name:    "password",
					Aliases: []string{"p"},
					Usage:   "Password (omit to be prompted)",
				},
				formatFlag(),
			},
			Action: containerAction(
				func(ctx context.Context, cmd *cli.Command, cfg *config.Config, container *app.Container) error {
					principalUseCase, err := container.PrincipalUseCase()
					if err != nil {
						return err
					}

					return commands.RunCreateAdmin(
						ctx,
						principalUseCase,
						container.Logger(),
						cmd.String("username"),
						cmd.String("email"),
						cmd.String("password"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				},
			),
		},
	}
}
