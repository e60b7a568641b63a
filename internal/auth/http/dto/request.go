// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/authkit/internal/auth/domain"
	customValidation "github.com/allisson/authkit/internal/validation"
)

// PasswordGrantType is the only OAuth2 grant type the token endpoint accepts.
const PasswordGrantType = "password"

// IssueTokenRequest contains the credentials submitted to the token endpoint.
// GrantType is optional for JSON clients.
type IssueTokenRequest struct {
	GrantType string `json:"grant_type" form:"grant_type"`
	Username  string `json:"username"   form:"username"`
	Password  string `json:"password"   form:"password"` //nolint:gosec // request credential
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.GrantType, validation.In(PasswordGrantType)),
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Password, validation.Required),
	)
	return customValidation.WrapValidationError(err)
}

// ToCredential converts the request into a domain credential.
func (r *IssueTokenRequest) ToCredential() *authDomain.Credential {
	return &authDomain.Credential{
		Username: r.Username,
		Password: r.Password,
	}
}
