// Package domain defines the role-based access control model: principals, roles,
// permissions and the grants that connect them.
//
// A principal's effective authorities are the union, over every role granted to it,
// of the permissions granted to that role, plus one "ROLE_<code>" authority per role.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Principal is a user account that can authenticate and be granted roles.
type Principal struct {
	ID           uuid.UUID  // Unique identifier (UUIDv7)
	Username     string     // Unique, case-sensitive login name
	Email        string     // Unique contact address
	PasswordHash string     //nolint:gosec // hashed password (not plaintext)
	Enabled      bool       // Disabled principals cannot authenticate
	Locked       bool       // Locked principals cannot authenticate
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time // Soft-deletion marker (nil while the principal is live)
}

// IsDeleted reports whether the principal has been soft-deleted.
func (p *Principal) IsDeleted() bool {
	return p.DeletedAt != nil
}

// GetUsername returns the principal's username.
func (p *Principal) GetUsername() string {
	return p.Username
}

// CreatePrincipalInput contains the parameters for provisioning a new principal.
type CreatePrincipalInput struct {
	Username  string
	Email     string
	Password  string //nolint:gosec // plaintext only in transit to the hasher
	RoleCodes []string
}

// GetUsername exposes the requested username so the audit trail can name the actor
// when the caller is not authenticated.
func (i CreatePrincipalInput) GetUsername() string {
	return i.Username
}
