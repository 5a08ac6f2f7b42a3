package dto

import (
	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
)

// TokenPairResponse is returned by login and refresh.
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`  //nolint:gosec // response payload
	RefreshToken string `json:"refresh_token"` //nolint:gosec // response payload
	TokenType    string `json:"token_type"`
}

// MapTokenPairToResponse converts a token pair into its response shape.
func MapTokenPairToResponse(pair *authDomain.TokenPair) TokenPairResponse {
	return TokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
	}
}

// MeResponse describes the authenticated principal.
type MeResponse struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	Roles       []string `json:"roles"`
	Permissions []string `json:"permissions"`
}

// MapMeToResponse converts the use case output into a response. Nil code lists are
// rendered as empty arrays.
func MapMeToResponse(output *authDomain.MeOutput) MeResponse {
	response := MeResponse{
		Username:    output.Username,
		Email:       output.Email,
		Roles:       output.Roles,
		Permissions: output.Permissions,
	}
	if response.Roles == nil {
		response.Roles = []string{}
	}
	if response.Permissions == nil {
		response.Permissions = []string{}
	}
	return response
}
