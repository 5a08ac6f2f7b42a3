package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is a named bundle of permissions assignable to principals.
type Role struct {
	ID          uuid.UUID
	Code        string
	Name        string
	Description string
	CreatedAt   time.Time
}

// Permission is an atomic authorization unit. Codes follow the <RESOURCE>_<ACTION> convention.
type Permission struct {
	ID          uuid.UUID
	Code        string
	Description string
	CreatedAt   time.Time
}

// RoleGrant associates a principal with a role.
type RoleGrant struct {
	PrincipalID uuid.UUID
	RoleID      uuid.UUID
	CreatedAt   time.Time
}

// RolePermissionGrant associates a role with a permission.
type RolePermissionGrant struct {
	RoleID       uuid.UUID
	PermissionID uuid.UUID
	CreatedAt    time.Time
}
