// Package dto provides data transfer objects for the principal, role and permission endpoints.
package dto

import (
	validation "github.com/jellydator/validation"

	rbacDomain "github.com/allisson/gatekeeper/internal/rbac/domain"
	customValidation "github.com/allisson/gatekeeper/internal/validation"
)

// CreateAdminRequest contains the parameters for provisioning an administrator.
type CreateAdminRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"` //nolint:gosec // request payload
}

// Validate checks if the create admin request is valid.
func (r *CreateAdminRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Username,
			validation.Length(3, 100),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
			validation.Length(3, 255),
		),
		validation.Field(&r.Password,
			validation.Required,
			customValidation.AdminPassword,
		),
	)
}

// GetUsername returns the username the request is about.
func (r *CreateAdminRequest) GetUsername() string {
	return r.Username
}

// ToInput converts the request into the use case input.
func (r *CreateAdminRequest) ToInput() rbacDomain.CreatePrincipalInput {
	return rbacDomain.CreatePrincipalInput{
		Username: r.Username,
		Email:    r.Email,
		Password: r.Password,
	}
}
