package service

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokenService_GenerateToken(t *testing.T) {
	service := NewRefreshTokenService()

	t.Run("Success_GenerateToken", func(t *testing.T) {
		plainToken, tokenHash, err := service.GenerateToken()
		require.NoError(t, err)

		decodedBytes, err := base64.URLEncoding.DecodeString(plainToken)
		require.NoError(t, err)
		assert.Len(t, decodedBytes, 32)
		assert.Len(t, tokenHash, 64)
		assert.Equal(t, service.HashToken(plainToken), tokenHash)
	})

	t.Run("Success_UniqueTokens", func(t *testing.T) {
		seen := make(map[string]struct{})
		for range 100 {
			plainToken, _, err := service.GenerateToken()
			require.NoError(t, err)
			_, duplicate := seen[plainToken]
			require.False(t, duplicate)
			seen[plainToken] = struct{}{}
		}
	})
}

func TestRefreshTokenService_HashToken(t *testing.T) {
	service := NewRefreshTokenService()
	expected := sha256.Sum256([]byte("token"))

	assert.Equal(t, hex.EncodeToString(expected[:]), service.HashToken("token"))
	assert.NotEqual(t, service.HashToken("token"), service.HashToken("Token"))
}
