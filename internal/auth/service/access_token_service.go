package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/gatekeeper/internal/auth/domain"
	apperrors "github.com/allisson/gatekeeper/internal/errors"
)

// minSecretLength is the HS256 key size in bytes.
const minSecretLength = 32

// reservedClaims are owned by the issuer and cannot be supplied by callers.
var reservedClaims = []string{"sub", "iat", "exp", "iss"}

// accessTokenService implements AccessTokenService with HMAC-SHA256 JWTs.
type accessTokenService struct {
	secret     []byte
	issuer     string
	expiration time.Duration
	now        func() time.Time
}

// NewAccessTokenService creates an HS256 token service. The secret must be at least 32 bytes.
func NewAccessTokenService(secret []byte, issuer string, expiration time.Duration) (AccessTokenService, error) {
	if len(secret) < minSecretLength {
		return nil, apperrors.Wrapf(
			apperrors.ErrInvalidInput,
			"jwt secret must be at least %d bytes",
			minSecretLength,
		)
	}
	if expiration <= 0 {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "access token expiration must be positive")
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	return &accessTokenService{
		secret:     key,
		issuer:     issuer,
		expiration: expiration,
		now:        time.Now,
	}, nil
}

// Issue signs a token for subject expiring after the configured duration.
func (a *accessTokenService) Issue(subject string, claims map[string]any) (string, error) {
	if strings.TrimSpace(subject) == "" {
		return "", apperrors.Wrap(apperrors.ErrInvalidInput, "token subject is required")
	}

	now := a.now().UTC()
	mapClaims := make(jwt.MapClaims, len(claims)+len(reservedClaims))
	for name, value := range claims {
		mapClaims[name] = value
	}
	for _, name := range reservedClaims {
		delete(mapClaims, name)
	}

	mapClaims["sub"] = subject
	mapClaims["iat"] = jwt.NewNumericDate(now)
	mapClaims["exp"] = jwt.NewNumericDate(now.Add(a.expiration))
	if a.issuer != "" {
		mapClaims["iss"] = a.issuer
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims).SignedString(a.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign access token")
	}
	return signed, nil
}

// Validate reports whether token passes signature, algorithm, issuer and expiry checks.
func (a *accessTokenService) Validate(token string) bool {
	_, err := a.parse(token)
	return err == nil
}

// Subject returns the sub claim of a valid token.
func (a *accessTokenService) Subject(token string) (string, error) {
	parsed, err := a.parse(token)
	if err != nil {
		return "", authDomain.ErrInvalidAccessToken
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", authDomain.ErrInvalidAccessToken
	}
	return subject, nil
}

func (a *accessTokenService) parse(token string) (*jwt.Token, error) {
	if token == "" {
		return nil, authDomain.ErrInvalidAccessToken
	}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	}
	if a.issuer != "" {
		options = append(options, jwt.WithIssuer(a.issuer))
	}

	return jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	}, options...)
}
