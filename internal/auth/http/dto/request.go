// Package dto provides data transfer objects for the session endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

// LoginRequest contains the credentials of a login attempt.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"` //nolint:gosec // request payload
}

// Validate checks if the login request is valid.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 100),
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(1, 255),
		),
	)
}

// ToInput converts the request into the use case input.
func (r *LoginRequest) ToInput() authDomain.LoginInput {
	return authDomain.LoginInput{
		Username: r.Username,
		Password: r.Password,
	}
}

// RefreshTokenRequest carries a refresh token to exchange for a new access token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"` //nolint:gosec // request payload
}

// Validate checks if the refresh request is valid.
func (r *RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.RefreshToken,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
		),
	)
}
