package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordService(t *testing.T) {
	service := NewPasswordService()

	hash, err := service.Hash([]byte("changeme42"))
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")

	t.Run("Success_Matches", func(t *testing.T) {
		ok, err := service.Verify([]byte("changeme42"), hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Success_Mismatch", func(t *testing.T) {
		ok, err := service.Verify([]byte("changeme43"), hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Error_MalformedHash", func(t *testing.T) {
		ok, err := service.Verify([]byte("changeme42"), "not-a-phc-string")
		assert.Error(t, err)
		assert.False(t, ok)
	})

	t.Run("Success_SaltedHashesDiffer", func(t *testing.T) {
		other, err := service.Hash([]byte("changeme42"))
		require.NoError(t, err)
		assert.NotEqual(t, hash, other)
	})
}
