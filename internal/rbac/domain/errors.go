package domain

import (
	"github.com/allisson/gatekeeper/internal/errors"
)

// RBAC errors.
var (
	// ErrPrincipalNotFound indicates no live principal matches the lookup.
	ErrPrincipalNotFound = errors.Wrap(errors.ErrNotFound, "principal not found")

	// ErrRoleNotFound indicates a role with the specified code was not found.
	ErrRoleNotFound = errors.Wrap(errors.ErrNotFound, "role not found")

	// ErrPermissionNotFound indicates a permission with the specified code was not found.
	ErrPermissionNotFound = errors.Wrap(errors.ErrNotFound, "permission not found")

	// ErrUsernameTaken indicates another principal already uses the username.
	ErrUsernameTaken = errors.Wrap(errors.ErrConflict, "username already exists")

	// ErrPrincipalExists indicates a unique index rejected a new principal.
	ErrPrincipalExists = errors.Wrap(errors.ErrConflict, "principal already exists")

	// ErrEmailTaken indicates another principal already uses the email.
	ErrEmailTaken = errors.Wrap(errors.ErrConflict, "email already exists")
)
