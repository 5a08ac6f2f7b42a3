package domain

import (
	"slices"
	"strings"
)

// RoleAuthorityPrefix is prepended to a role code to form its authority string.
const RoleAuthorityPrefix = "ROLE_"

// Authorities is the resolved role and permission set of a principal at a point in time.
// Roles and Permissions are deduplicated by code and sorted by code.
type Authorities struct {
	Roles       []Role
	Permissions []Permission
}

// NewAuthorities builds an Authorities value with set semantics from possibly duplicated
// and unordered role and permission lists.
func NewAuthorities(roles []Role, permissions []Permission) Authorities {
	return Authorities{
		Roles:       UniqueRoles(roles),
		Permissions: UniquePermissions(permissions),
	}
}

// UniqueRoles returns roles deduplicated by code and sorted by code.
func UniqueRoles(roles []Role) []Role {
	seen := make(map[string]struct{}, len(roles))
	out := make([]Role, 0, len(roles))
	for _, role := range roles {
		if _, ok := seen[role.Code]; ok {
			continue
		}
		seen[role.Code] = struct{}{}
		out = append(out, role)
	}
	slices.SortFunc(out, func(a, b Role) int { return strings.Compare(a.Code, b.Code) })
	return out
}

// UniquePermissions returns permissions deduplicated by code and sorted by code.
func UniquePermissions(permissions []Permission) []Permission {
	seen := make(map[string]struct{}, len(permissions))
	out := make([]Permission, 0, len(permissions))
	for _, permission := range permissions {
		if _, ok := seen[permission.Code]; ok {
			continue
		}
		seen[permission.Code] = struct{}{}
		out = append(out, permission)
	}
	slices.SortFunc(out, func(a, b Permission) int { return strings.Compare(a.Code, b.Code) })
	return out
}

// RoleCodes returns the bare role codes (without prefix).
func (a Authorities) RoleCodes() []string {
	codes := make([]string, 0, len(a.Roles))
	for _, role := range a.Roles {
		codes = append(codes, role.Code)
	}
	return codes
}

// PermissionCodes returns the permission codes.
func (a Authorities) PermissionCodes() []string {
	codes := make([]string, 0, len(a.Permissions))
	for _, permission := range a.Permissions {
		codes = append(codes, permission.Code)
	}
	return codes
}

// Codes returns the flat authority vocabulary: "ROLE_"+code for every role followed by
// every permission code.
func (a Authorities) Codes() []string {
	codes := make([]string, 0, len(a.Roles)+len(a.Permissions))
	for _, role := range a.Roles {
		codes = append(codes, RoleAuthorityPrefix+role.Code)
	}
	return append(codes, a.PermissionCodes()...)
}

// HasAuthority reports whether code is one of the principal's authorities.
func (a Authorities) HasAuthority(code string) bool {
	if code == "" {
		return false
	}
	if roleCode, ok := strings.CutPrefix(code, RoleAuthorityPrefix); ok {
		for _, role := range a.Roles {
			if role.Code == roleCode {
				return true
			}
		}
	}
	for _, permission := range a.Permissions {
		if permission.Code == code {
			return true
		}
	}
	return false
}
