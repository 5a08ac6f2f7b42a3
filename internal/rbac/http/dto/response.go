package dto

import (
	"time"

	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// PrincipalResponse represents a principal in API responses. The password hash is never exposed.
type PrincipalResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Enabled   bool      `json:"enabled"`
	Locked    bool      `json:"locked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MapPrincipalToResponse converts a domain principal to an API response.
func MapPrincipalToResponse(principal *rbacDomain.Principal) PrincipalResponse {
	return PrincipalResponse{
		ID:        principal.ID.String(),
		Username:  principal.Username,
		Email:     principal.Email,
		Enabled:   principal.Enabled,
		Locked:    principal.Locked,
		CreatedAt: principal.CreatedAt,
		UpdatedAt: principal.UpdatedAt,
	}
}

// ListPrincipalsResponse represents a page of principals.
type ListPrincipalsResponse struct {
	Data []PrincipalResponse `json:"data"`
}

// MapPrincipalsToListResponse converts domain principals to a list API response.
func MapPrincipalsToListResponse(principals []*rbacDomain.Principal) ListPrincipalsResponse {
	data := make([]PrincipalResponse, 0, len(principals))
	for _, principal := range principals {
		data = append(data, MapPrincipalToResponse(principal))
	}
	return ListPrincipalsResponse{Data: data}
}

// RoleResponse represents a role in API responses.
type RoleResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListRolesResponse represents a page of roles.
type ListRolesResponse struct {
	Data []RoleResponse `json:"data"`
}

// MapRolesToListResponse converts domain roles to a list API response.
func MapRolesToListResponse(roles []*rbacDomain.Role) ListRolesResponse {
	data := make([]RoleResponse, 0, len(roles))
	for _, role := range roles {
		data = append(data, RoleResponse{
			ID:          role.ID.String(),
			Code:        role.Code,
			Name:        role.Name,
			Description: role.Description,
			CreatedAt:   role.CreatedAt,
		})
	}
	return ListRolesResponse{Data: data}
}

// PermissionResponse represents a permission in API responses.
type PermissionResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListPermissionsResponse represents a page of permissions.
type ListPermissionsResponse struct {
	Data []PermissionResponse `json:"data"`
}

// MapPermissionsToListResponse converts domain permissions to a list API response.
func MapPermissionsToListResponse(permissions []*rbacDomain.Permission) ListPermissionsResponse {
	data := make([]PermissionResponse, 0, len(permissions))
	for _, permission := range permissions {
		data = append(data, PermissionResponse{
			ID:          permission.ID.String(),
			Code:        permission.Code,
			Description: permission.Description,
			CreatedAt:   permission.CreatedAt,
		})
	}
	return ListPermissionsResponse{Data: data}
}
