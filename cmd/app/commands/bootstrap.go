package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
	rbacUseCase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// RunBootstrap seeds the built-in roles and permissions and the initial administrator.
// Safe to run repeatedly: rows that already exist are left untouched.
func RunBootstrap(
	ctx context.Context,
	bootstrapUseCase rbacUseCase.BootstrapUseCase,
	logger *slog.Logger,
	writer io.Writer,
	admin rbacDomain.CreatePrincipalInput,
) error {
	logger.Info("bootstrapping roles and permissions", slog.String("admin_username", admin.Username))

	if err := bootstrapUseCase.Seed(ctx, admin); err != nil {
		return fmt.Errorf("failed to bootstrap: %w", err)
	}

	_, _ = fmt.Fprintf(writer, "Bootstrap completed. Administrator: %s\n", admin.Username)

	logger.Info("bootstrap completed")
	return nil
}
