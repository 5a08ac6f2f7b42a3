package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateAdminRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request CreateAdminRequest
		wantErr bool
	}{
		{
			name:    "Valid",
			request: CreateAdminRequest{Username: "ops.admin", Email: "ops@example.com", Password: "changeme42"},
		},
		{
			name:    "MissingUsername",
			request: CreateAdminRequest{Email: "ops@example.com", Password: "changeme42"},
			wantErr: true,
		},
		{
			name:    "UsernameWithSpaces",
			request: CreateAdminRequest{Username: "ops admin", Email: "ops@example.com", Password: "changeme42"},
			wantErr: true,
		},
		{
			name:    "InvalidEmail",
			request: CreateAdminRequest{Username: "ops", Email: "not-an-email", Password: "changeme42"},
			wantErr: true,
		},
		{
			name:    "ShortPassword",
			request: CreateAdminRequest{Username: "ops", Email: "ops@example.com", Password: "abc1"},
			wantErr: true,
		},
		{
			name:    "PasswordWithoutDigit",
			request: CreateAdminRequest{Username: "ops", Email: "ops@example.com", Password: "changeme"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCreateAdminRequest_ToInput(t *testing.T) {
	request := CreateAdminRequest{Username: "ops", Email: "ops@example.com", Password: "changeme42"}

	input := request.ToInput()

	assert.Equal(t, "ops", input.Username)
	assert.Equal(t, "ops", input.GetUsername())
	assert.Equal(t, "changeme42", input.Password)
}
