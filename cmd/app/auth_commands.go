package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/gatekeeper/cmd/app/commands"
	"github.com/allisson/gatekeeper/internal/app"
	"github.com/allisson/gatekeeper/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "revoke-refresh-token",
			Usage: "Permanently invalidate a refresh token",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "token",
					Aliases:  []string{"t"},
					Required: true,
					Usage:    "Plain refresh token to revoke",
				},
			},
			Action: containerAction(
				func(ctx context.Context, cmd *cli.Command, cfg *config.Config, container *app.Container) error {
					refreshTokenUseCase, err := container.RefreshTokenUseCase()
					if err != nil {
						return err
					}

					return commands.RunRevokeRefreshToken(
						ctx,
						refreshTokenUseCase,
						container.Logger(),
						commands.DefaultIO().Writer,
						cmd.String("token"),
					)
				},
			),
		},
		{
			Name:  "clean-expired-tokens",
			Usage: "Delete refresh tokens that expired more than the specified days ago",
			Flags: retentionFlags("expired refresh tokens"),
			Action: containerAction(
				func(ctx context.Context, cmd *cli.Command, cfg *config.Config, container *app.Container) error {
					refreshTokenUseCase, err := container.RefreshTokenUseCase()
					if err != nil {
						return err
					}

					return commands.RunCleanExpiredTokens(
						ctx,
						refreshTokenUseCase,
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
			Name:  "seal-jwt-secret",
			Usage: "Encrypt a JWT signing secret with a KMS key for AUTH_JWT_SECRET",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "key-uri",
					Usage: "KMS key URI; defaults to AUTH_JWT_SECRET_KMS_KEY_URI",
				},
				&cli.BoolFlag{
					Name:  "generate",
					Usage: "Seal a freshly generated random secret instead of reading one from stdin",
				},
			},
			Action: containerAction(
				func(ctx context.Context, cmd *cli.Command, cfg *config.Config, container *app.Container) error {
					keyURI := cmd.String("key-uri")
					if keyURI == "" {
						keyURI = cfg.AuthJWTSecretKMSKeyURI
					}

					return commands.RunSealJWTSecret(
						ctx,
						container.KMSService(),
						container.Logger(),
						commands.DefaultIO(),
						keyURI,
						cmd.Bool("generate"),
					)
				},
			),
		},
	}
}
