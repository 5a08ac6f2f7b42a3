package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
	rbacUseCase "github.com/allisson/gatekeeper/internal/rbac/usecase"
)

// RunCreateAdmin provisions a principal holding the ADMIN role.
// When password is empty it is read from io.Reader, so it stays out of shell history.
// The operation is audited with the new username as actor.
//
// Requirements: Database must be migrated and bootstrapped (roles must exist).
func RunCreateAdmin(
	ctx context.Context,
	principalUseCase rbacUseCase.PrincipalUseCase,
	logger *slog.Logger,
	username string,
	email string,
	password string,
	format string,
	io IOTuple,
) error {
	logger.Info("creating admin principal", slog.String("username", username))

	if password == "" {
		var err error
		password, err = promptForPassword(io)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
	}

	principal, err := principalUseCase.CreateAdmin(ctx, rbacDomain.CreatePrincipalInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	if format == "json" {
		if err := writeJSON(io.Writer, map[string]any{
			"id":       principal.ID.String(),
			"username": principal.Username,
			"email":    principal.Email,
		}); err != nil {
			return err
		}
	} else {
		outputCreateAdminText(io.Writer, principal)
	}

	logger.Info("admin principal created",
		slog.String("principal_id", principal.ID.String()),
		slog.String("username", principal.Username),
	)

	return nil
}

// promptForPassword reads a single non-empty line from io.Reader.
func promptForPassword(io IOTuple) (string, error) {
	if io.Reader == nil {
		return "", fmt.Errorf("password is required")
	}

	_, _ = fmt.Fprint(io.Writer, "Enter password: ")

	reader := bufio.NewReader(io.Reader)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}

	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	_, _ = fmt.Fprintln(io.Writer)
	return password, nil
}

func outputCreateAdminText(writer io.Writer, principal *rbacDomain.Principal) {
	_, _ = fmt.Fprintln(writer, "Admin created successfully!")
	_, _ = fmt.Fprintf(writer, "ID: %s\n", principal.ID.String())
	_, _ = fmt.Fprintf(writer, "Username: %s\n", principal.Username)
	_, _ = fmt.Fprintf(writer, "Email: %s\n", principal.Email)
}
