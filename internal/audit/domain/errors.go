package domain

import (
	"github.com/allisson/gatekeeper/internal/errors"
)

// Audit errors.
var (
	// ErrSignatureInvalid indicates an audit record signature does not match its content.
	ErrSignatureInvalid = errors.New("audit record signature is invalid")

	// ErrInvalidTimeRange indicates a listing window whose start is after its end.
	ErrInvalidTimeRange = errors.Wrap(errors.ErrInvalidInput, "from must be before or equal to to")
)
