// Package mocks provides testify mocks for the auth use case and its dependencies.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/authkit/internal/auth/domain"
	userDomain "github.com/allisson/authkit/internal/user/domain"
)

// MockAuthUseCase is a mock implementation of usecase.AuthUseCase.
type MockAuthUseCase struct {
	mock.Mock
}

// Authenticate mocks the Authenticate method.
func (m *MockAuthUseCase) Authenticate(
	ctx context.Context,
	credential *authDomain.Credential,
) (*authDomain.IssuedToken, error) {
	args := m.Called(ctx, credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssuedToken), args.Error(1)
}

// Resolve mocks the Resolve method.
func (m *MockAuthUseCase) Resolve(ctx context.Context, token string) (*userDomain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// MockUserStore is a mock implementation of usecase.UserStore.
type MockUserStore struct {
	mock.Mock
}

// FindByUsername mocks the FindByUsername method.
func (m *MockUserStore) FindByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.User), args.Error(1)
}

// MockPasswordHasher is a mock implementation of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// Hash mocks the Hash method.
func (m *MockPasswordHasher) Hash(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

// Verify mocks the Verify method.
func (m *MockPasswordHasher) Verify(plaintext string, hash string) (bool, error) {
	args := m.Called(plaintext, hash)
	return args.Bool(0), args.Error(1)
}

// MockTokenCodec is a mock implementation of service.TokenCodec.
type MockTokenCodec struct {
	mock.Mock
}

// Issue mocks the Issue method.
func (m *MockTokenCodec) Issue(subject string, ttl time.Duration) (*authDomain.IssuedToken, error) {
	args := m.Called(subject, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.IssuedToken), args.Error(1)
}

// Verify mocks the Verify method.
func (m *MockTokenCodec) Verify(token string) (*authDomain.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenClaims), args.Error(1)
}
