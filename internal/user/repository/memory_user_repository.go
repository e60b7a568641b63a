package repository

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/allisson/authkit/internal/user/domain"

	apperrors "github.com/allisson/authkit/internal/errors"
)

// MemoryUserRepository keeps users in a map guarded by a RWMutex. Records are
// copied on the way in and out so callers never share state with the store.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

// NewMemoryUserRepository creates an empty in-memory repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: make(map[string]domain.User),
	}
}

// LoadMemoryUserRepository creates an in-memory repository seeded from a JSON
// file holding an array of users with precomputed password hashes.
func LoadMemoryUserRepository(path string) (*MemoryUserRepository, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read users file")
	}

	var users []domain.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse users file")
	}

	repo := NewMemoryUserRepository()
	for i := range users {
		if err := repo.Create(context.Background(), &users[i]); err != nil {
			return nil, apperrors.Wrapf(err, "user %q", users[i].Username)
		}
	}
	return repo, nil
}

// Create stores a copy of user.
func (r *MemoryUserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return domain.ErrUserAlreadyExists
	}
	r.users[user.Username] = *user
	return nil
}

// Update replaces the mutable fields of the stored user.
func (r *MemoryUserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.users[user.Username]
	if !ok {
		return domain.ErrUserNotFound
	}
	stored.PasswordHash = user.PasswordHash
	stored.FullName = user.FullName
	stored.Email = user.Email
	stored.Disabled = user.Disabled
	stored.UpdatedAt = user.UpdatedAt
	r.users[user.Username] = stored
	return nil
}

// Delete removes the user with the given username.
func (r *MemoryUserRepository) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[username]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, username)
	return nil
}

// FindByUsername returns a copy of the stored user.
func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &user, nil
}

// PingContext reports the store as reachable. It lets the memory store back the readiness check.
func (r *MemoryUserRepository) PingContext(_ context.Context) error {
	return nil
}
