// Package usecase orchestrates authentication: credentials in, token out, and
// token in, user out.
package usecase

import (
	"context"

	authDomain "github.com/allisson/authkit/internal/auth/domain"
	userDomain "github.com/allisson/authkit/internal/user/domain"
)

// UserStore is the read side of the user repository that authentication needs.
type UserStore interface {
	// FindByUsername returns the user or ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*userDomain.User, error)
}

// AuthUseCase authenticates users and resolves tokens back to users.
type AuthUseCase interface {
	// Authenticate checks the credential and issues a token valid for the
	// default TTL the use case was built with.
	//
	// An unknown username, a wrong password and a nil credential all return
	// ErrInvalidCredentials. The first two take comparable time. A disabled
	// account returns ErrAccountDisabled. A non-positive default TTL returns
	// ErrInvalidTTL before the store is consulted.
	Authenticate(ctx context.Context, credential *authDomain.Credential) (*authDomain.IssuedToken, error)

	// Resolve verifies token and returns the user it was issued to.
	//
	// Token failures return ErrTokenMalformed, ErrSignatureInvalid or
	// ErrTokenExpired. A subject that no longer exists returns
	// ErrUnknownSubject and a disabled one ErrAccountDisabled.
	Resolve(ctx context.Context, token string) (*userDomain.User, error)
}
