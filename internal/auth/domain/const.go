// Package domain defines the authentication model: access token claims, refresh tokens
// and the session payloads exchanged at login, refresh and me.
package domain

// TokenTypeBearer is the token type returned with every token pair.
const TokenTypeBearer = "Bearer"

// BearerPrefix is the scheme prefix expected in the Authorization header.
const BearerPrefix = "Bearer "

// RefreshTokenBytes is the amount of randomness behind an opaque refresh token.
const RefreshTokenBytes = 32
