// Package mocks provides mock implementations of the rbac repositories and use cases for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
)

// MockPrincipalRepository is a mock implementation of PrincipalRepository.
type MockPrincipalRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockPrincipalRepository) Create(ctx context.Context, principal *rbacDomain.Principal) error {
	args := m.Called(ctx, principal)
	return args.Error(0)
}

// GetByID mocks the GetByID method.
func (m *MockPrincipalRepository) GetByID(ctx context.Context, principalID uuid.UUID) (*rbacDomain.Principal, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rbacDomain.Principal), args.Error(1)
}

// GetByUsername mocks the GetByUsername method.
func (m *MockPrincipalRepository) GetByUsername(ctx context.Context, username string) (*rbacDomain.Principal, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rbacDomain.Principal), args.Error(1)
}

// ExistsByUsername mocks the ExistsByUsername method.
func (m *MockPrincipalRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

// ExistsByEmail mocks the ExistsByEmail method.
func (m *MockPrincipalRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// List mocks the List method.
func (m *MockPrincipalRepository) List(ctx context.Context, offset, limit int) ([]*rbacDomain.Principal, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rbacDomain.Principal), args.Error(1)
}

// SoftDelete mocks the SoftDelete method.
func (m *MockPrincipalRepository) SoftDelete(ctx context.Context, principalID uuid.UUID) error {
	args := m.Called(ctx, principalID)
	return args.Error(0)
}

// HardDelete mocks the HardDelete method.
func (m *MockPrincipalRepository) HardDelete(ctx context.Context, principalID uuid.UUID) error {
	args := m.Called(ctx, principalID)
	return args.Error(0)
}

// MockRoleRepository is a mock implementation of RoleRepository.
type MockRoleRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockRoleRepository) Create(ctx context.Context, role *rbacDomain.Role) error {
	args := m.Called(ctx, role)
	return args.Error(0)
}

// GetByCode mocks the GetByCode method.
func (m *MockRoleRepository) GetByCode(ctx context.Context, code string) (*rbacDomain.Role, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rbacDomain.Role), args.Error(1)
}

// List mocks the List method.
func (m *MockRoleRepository) List(ctx context.Context, offset, limit int) ([]*rbacDomain.Role, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rbacDomain.Role), args.Error(1)
}

// ListByPrincipal mocks the ListByPrincipal method.
func (m *MockRoleRepository) ListByPrincipal(ctx context.Context, principalID uuid.UUID) ([]rbacDomain.Role, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rbacDomain.Role), args.Error(1)
}

// Grant mocks the Grant method.
func (m *MockRoleRepository) Grant(ctx context.Context, grant *rbacDomain.RoleGrant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

// GrantPermission mocks the GrantPermission method.
func (m *MockRoleRepository) GrantPermission(ctx context.Context, grant *rbacDomain.RolePermissionGrant) error {
	args := m.Called(ctx, grant)
	return args.Error(0)
}

// MockPermissionRepository is a mock implementation of PermissionRepository.
type MockPermissionRepository struct {
	mock.Mock
}

// Create mocks the Create method.
func (m *MockPermissionRepository) Create(ctx context.Context, permission *rbacDomain.Permission) error {
	args := m.Called(ctx, permission)
	return args.Error(0)
}

// GetByCode mocks the GetByCode method.
func (m *MockPermissionRepository) GetByCode(ctx context.Context, code string) (*rbacDomain.Permission, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rbacDomain.Permission), args.Error(1)
}

// List mocks the List method.
func (m *MockPermissionRepository) List(ctx context.Context, offset, limit int) ([]*rbacDomain.Permission, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rbacDomain.Permission), args.Error(1)
}

// ListByRoles mocks the ListByRoles method.
func (m *MockPermissionRepository) ListByRoles(
	ctx context.Context,
	roleIDs []uuid.UUID,
) ([]rbacDomain.Permission, error) {
	args := m.Called(ctx, roleIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rbacDomain.Permission), args.Error(1)
}

// MockPasswordHasher is a mock implementation of PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// Hash mocks the Hash method.
func (m *MockPasswordHasher) Hash(password []byte) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// Verify mocks the Verify method.
func (m *MockPasswordHasher) Verify(password []byte, hash string) (bool, error) {
	args := m.Called(password, hash)
	return args.Bool(0), args.Error(1)
}

// MockPermissionResolver is a mock implementation of PermissionResolver.
type MockPermissionResolver struct {
	mock.Mock
}

// RolesOf mocks the RolesOf method.
func (m *MockPermissionResolver) RolesOf(ctx context.Context, principalID uuid.UUID) ([]rbacDomain.Role, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rbacDomain.Role), args.Error(1)
}

// PermissionsOf mocks the PermissionsOf method.
func (m *MockPermissionResolver) PermissionsOf(
	ctx context.Context,
	roles []rbacDomain.Role,
) ([]rbacDomain.Permission, error) {
	args := m.Called(ctx, roles)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rbacDomain.Permission), args.Error(1)
}

// AuthorityCodes mocks the AuthorityCodes method.
func (m *MockPermissionResolver) AuthorityCodes(ctx context.Context, principalID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Resolve mocks the Resolve method.
func (m *MockPermissionResolver) Resolve(
	ctx context.Context,
	principalID uuid.UUID,
) (rbacDomain.Authorities, error) {
	args := m.Called(ctx, principalID)
	return args.Get(0).(rbacDomain.Authorities), args.Error(1)
}

// MockPrincipalUseCase is a mock implementation of PrincipalUseCase.
type MockPrincipalUseCase struct {
	mock.Mock
}

// CreateAdmin mocks the CreateAdmin method.
func (m *MockPrincipalUseCase) CreateAdmin(
	ctx context.Context,
	input rbacDomain.CreatePrincipalInput,
) (*rbacDomain.Principal, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rbacDomain.Principal), args.Error(1)
}

// Get mocks the Get method.
func (m *MockPrincipalUseCase) Get(ctx context.Context, principalID uuid.UUID) (*rbacDomain.Principal, error) {
	args := m.Called(ctx, principalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rbacDomain.Principal), args.Error(1)
}

// GetByUsername mocks the GetByUsername method.
func (m *MockPrincipalUseCase) GetByUsername(ctx context.Context, username string) (*rbacDomain.Principal, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rbacDomain.Principal), args.Error(1)
}

// List mocks the List method.
func (m *MockPrincipalUseCase) List(ctx context.Context, offset, limit int) ([]*rbacDomain.Principal, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rbacDomain.Principal), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockPrincipalUseCase) Delete(ctx context.Context, principalID uuid.UUID) error {
	args := m.Called(ctx, principalID)
	return args.Error(0)
}

// Purge mocks the Purge method.
func (m *MockPrincipalUseCase) Purge(ctx context.Context, principalID uuid.UUID) error {
	args := m.Called(ctx, principalID)
	return args.Error(0)
}

// MockRoleUseCase is a mock implementation of RoleUseCase.
type MockRoleUseCase struct {
	mock.Mock
}

// List mocks the List method.
func (m *MockRoleUseCase) List(ctx context.Context, offset, limit int) ([]*rbacDomain.Role, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rbacDomain.Role), args.Error(1)
}

// MockPermissionUseCase is a mock implementation of PermissionUseCase.
type MockPermissionUseCase struct {
	mock.Mock
}

// List mocks the List method.
func (m *MockPermissionUseCase) List(ctx context.Context, offset, limit int) ([]*rbacDomain.Permission, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rbacDomain.Permission), args.Error(1)
}
