package commands

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	authService "github.com/allisson/gatekeeper/internal/auth/service"
)

// generatedSecretBytes matches the HS256 key size.
const generatedSecretBytes = 32

// RunSealJWTSecret encrypts a JWT signing secret with the KMS key at keyURI and prints the
// base64 ciphertext to use as AUTH_JWT_SECRET. With generate set a random secret is
// sealed; otherwise the secret is read as one line from io.Reader.
func RunSealJWTSecret(
	ctx context.Context,
	kmsService authService.KMSService,
	logger *slog.Logger,
	io IOTuple,
	keyURI string,
	generate bool,
) error {
	if keyURI == "" {
		return fmt.Errorf("key URI is required: set --key-uri or AUTH_JWT_SECRET_KMS_KEY_URI")
	}

	secret, err := jwtSecretInput(io, generate)
	if err != nil {
		return err
	}

	ciphertext, err := kmsService.EncryptSecret(ctx, keyURI, secret)
	if err != nil {
		return fmt.Errorf("failed to seal JWT secret: %w", err)
	}

	_, _ = fmt.Fprintln(io.Writer, ciphertext)
	logger.Info("jwt secret sealed", slog.Bool("generated", generate))
	return nil
}

func jwtSecretInput(io IOTuple, generate bool) ([]byte, error) {
	if generate {
		raw := make([]byte, generatedSecretBytes)
		if _, err := rand.Read(raw); err != nil {
			return nil, fmt.Errorf("failed to generate secret: %w", err)
		}
		return []byte(base64.RawURLEncoding.EncodeToString(raw)), nil
	}

	if io.Reader == nil {
		return nil, fmt.Errorf("secret is required")
	}
	line, err := bufio.NewReader(io.Reader).ReadString('\n')
	if err != nil && line == "" {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	secret := strings.TrimRight(line, "\r\n")
	if len(secret) < generatedSecretBytes {
		return nil, fmt.Errorf("secret must be at least %d bytes", generatedSecretBytes)
	}
	return []byte(secret), nil
}
