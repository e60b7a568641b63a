// Package domain defines the user record that credentials are checked against.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/authkit/internal/errors"
)

// User is the stored account a username and password authenticate as.
// PasswordHash is an opaque PHC string produced by the password hasher and
// must never be compared for equality or leave the process.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Disabled     bool      `json:"disabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates no user exists for the given username.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates the username is already taken.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)
