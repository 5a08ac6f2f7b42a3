package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	authUseCase "github.com/allisson/gatekeeper/internal/auth/usecase"
)

// RunRevokeRefreshToken permanently invalidates a refresh token.
func RunRevokeRefreshToken(
	ctx context.Context,
	refreshTokenUseCase authUseCase.RefreshTokenUseCase,
	logger *slog.Logger,
	writer io.Writer,
	token string,
) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token is required")
	}

	if err := refreshTokenUseCase.Revoke(ctx, token); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	_, _ = fmt.Fprintln(writer, "Refresh token revoked")

	logger.Info("refresh token revoked")
	return nil
}
