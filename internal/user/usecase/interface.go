// Package usecase implements user management: creating accounts, toggling
// their disabled flag and removing them.
package usecase

import (
	"context"

	"github.com/allisson/authkit/internal/user/domain"
)

// UserRepository persists user records keyed by username.
type UserRepository interface {
	// Create stores a new user. Returns domain.ErrUserAlreadyExists if the username is taken.
	Create(ctx context.Context, user *domain.User) error

	// Update overwrites the mutable fields of an existing user. Returns domain.ErrUserNotFound if absent.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by username. Returns domain.ErrUserNotFound if absent.
	Delete(ctx context.Context, username string) error

	// FindByUsername returns the user with the given username or domain.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}

// PasswordHasher produces the stored hash for a new password.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// CreateUserInput contains the fields required to register a user.
type CreateUserInput struct {
	Username string
	Password string
	FullName string
	Email    string
	Disabled bool
}

// UserUseCase defines the user management operations.
type UserUseCase interface {
	// Create validates the input, hashes the password and stores the user.
	Create(ctx context.Context, input *CreateUserInput) (*domain.User, error)

	// Get returns the user with the given username.
	Get(ctx context.Context, username string) (*domain.User, error)

	// SetDisabled enables or disables a user and returns the updated record.
	SetDisabled(ctx context.Context, username string, disabled bool) (*domain.User, error)

	// Delete removes the user with the given username.
	Delete(ctx context.Context, username string) error
}
