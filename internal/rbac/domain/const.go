package domain

import "strings"

// Built-in role codes.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Permission codes checked by the HTTP layer.
const (
	PermissionUserCreate     = "USER_CREATE"
	PermissionUserRead       = "USER_READ"
	PermissionUserDelete     = "USER_DELETE"
	PermissionUserHardDelete = "USER_HARD_DELETE"
	PermissionRoleRead       = "ROLE_READ"
	PermissionPermissionRead = "PERMISSION_READ"
	PermissionAuditLogRead   = "AUDIT_LOG_READ"
)

const (
	permissionActionRead       = "READ"
	permissionCodeSeparator    = "_"
	permissionAuditLogResource = "AUDIT_LOG"
)

// PermissionResources lists the resources that receive the full CRUD permission family.
var PermissionResources = []string{"USER", "ROLE", "PERMISSION", "ITEM"}

// PermissionActions lists the actions of the CRUD permission family.
var PermissionActions = []string{"CREATE", "READ", "UPDATE", "DELETE", "HARD_DELETE"}

// PermissionCode builds a permission code from a resource and an action.
func PermissionCode(resource, action string) string {
	return resource + permissionCodeSeparator + action
}

// BuiltinPermissionCodes returns every permission code seeded by bootstrap.
func BuiltinPermissionCodes() []string {
	codes := make([]string, 0, len(PermissionResources)*len(PermissionActions)+1)
	for _, resource := range PermissionResources {
		for _, action := range PermissionActions {
			codes = append(codes, PermissionCode(resource, action))
		}
	}
	return append(codes, PermissionCode(permissionAuditLogResource, permissionActionRead))
}

// IsReadPermission reports whether code grants a read action.
func IsReadPermission(code string) bool {
	suffix := permissionCodeSeparator + permissionActionRead
	return len(code) > len(suffix) && strings.HasSuffix(code, suffix)
}
