package usecase_test

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/authkit/internal/auth/domain"
	authService "github.com/allisson/authkit/internal/auth/service"
	"github.com/allisson/authkit/internal/auth/usecase"
	apperrors "github.com/allisson/authkit/internal/errors"
	userDomain "github.com/allisson/authkit/internal/user/domain"
	"github.com/allisson/authkit/internal/user/repository"
)

type flowClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *flowClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *flowClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type authFlow struct {
	ctx    context.Context
	clock  *flowClock
	repo   *repository.MemoryUserRepository
	hasher authService.PasswordHasher
	uc     usecase.AuthUseCase
}

func newAuthFlow(t *testing.T) *authFlow {
	t.Helper()

	hasher, err := authService.NewPasswordHasher(authService.PasswordHasherConfig{
		Algorithm:  "bcrypt",
		BcryptCost: 4,
	})
	require.NoError(t, err)

	key, err := authDomain.NewSigningKey("default", bytes.Repeat([]byte{0x5a}, 32))
	require.NoError(t, err)

	clock := &flowClock{now: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)}
	codec, err := authService.NewJWTTokenCodec(key, authService.JWTConfig{Clock: clock.Now})
	require.NoError(t, err)

	repo := repository.NewMemoryUserRepository()
	f := &authFlow{
		ctx:    context.Background(),
		clock:  clock,
		repo:   repo,
		hasher: hasher,
		uc:     usecase.NewAuthUseCase(repo, hasher, codec, 30*time.Minute),
	}
	f.addUser(t, "johndoe", "secret", false)
	return f
}

func (f *authFlow) addUser(t *testing.T, username, password string, disabled bool) {
	t.Helper()
	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)
	require.NoError(t, f.repo.Create(f.ctx, &userDomain.User{
		ID:           uuid.Must(uuid.NewV7()),
		Username:     username,
		PasswordHash: hash,
		FullName:     "John Doe",
		Disabled:     disabled,
	}))
}

func (f *authFlow) login(username, password string) (*authDomain.IssuedToken, error) {
	return f.uc.Authenticate(f.ctx, &authDomain.Credential{Username: username, Password: password})
}

func TestAuthFlow(t *testing.T) {
	t.Run("Success_LoginAndResolve", func(t *testing.T) {
		f := newAuthFlow(t)

		issued, err := f.login("johndoe", "secret")
		require.NoError(t, err)
		assert.Equal(t, "johndoe", issued.Claims.Subject)
		assert.Equal(t, 30*time.Minute, issued.Claims.ExpiresAt.Sub(issued.Claims.IssuedAt))

		user, err := f.uc.Resolve(f.ctx, issued.Token)
		require.NoError(t, err)
		assert.Equal(t, "johndoe", user.Username)
		assert.Equal(t, "John Doe", user.FullName)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		f := newAuthFlow(t)

		issued, err := f.login("johndoe", "wrong")
		assert.ErrorIs(t, err, authDomain.ErrInvalidCredentials)
		assert.Nil(t, issued)
	})

	t.Run("Error_UnknownUserMatchesWrongPassword", func(t *testing.T) {
		f := newAuthFlow(t)

		_, unknownErr := f.login("ghost", "secret")
		_, wrongErr := f.login("johndoe", "wrong")

		assert.ErrorIs(t, unknownErr, authDomain.ErrInvalidCredentials)
		assert.Equal(t, wrongErr, unknownErr)
	})

	t.Run("Error_DisabledAccount", func(t *testing.T) {
		f := newAuthFlow(t)
		f.addUser(t, "janedoe", "secret", true)

		_, err := f.login("janedoe", "secret")
		assert.ErrorIs(t, err, authDomain.ErrAccountDisabled)
	})

	t.Run("Error_DisabledAfterIssue", func(t *testing.T) {
		f := newAuthFlow(t)

		issued, err := f.login("johndoe", "secret")
		require.NoError(t, err)

		stored, err := f.repo.FindByUsername(f.ctx, "johndoe")
		require.NoError(t, err)
		stored.Disabled = true
		require.NoError(t, f.repo.Update(f.ctx, stored))

		_, err = f.uc.Resolve(f.ctx, issued.Token)
		assert.ErrorIs(t, err, authDomain.ErrAccountDisabled)
	})

	t.Run("Error_SubjectRemovedAfterIssue", func(t *testing.T) {
		f := newAuthFlow(t)

		issued, err := f.login("johndoe", "secret")
		require.NoError(t, err)
		require.NoError(t, f.repo.Delete(f.ctx, "johndoe"))

		_, err = f.uc.Resolve(f.ctx, issued.Token)
		assert.ErrorIs(t, err, authDomain.ErrUnknownSubject)
		assert.Equal(t, "unknown_subject", apperrors.Code(err))
	})

	t.Run("Error_Expired", func(t *testing.T) {
		f := newAuthFlow(t)

		issued, err := f.login("johndoe", "secret")
		require.NoError(t, err)

		f.clock.Advance(30*time.Minute + time.Second)
		_, err = f.uc.Resolve(f.ctx, issued.Token)
		assert.ErrorIs(t, err, authDomain.ErrTokenExpired)
	})

	t.Run("Error_Tampered", func(t *testing.T) {
		f := newAuthFlow(t)

		issued, err := f.login("johndoe", "secret")
		require.NoError(t, err)

		parts := strings.Split(issued.Token, ".")
		sig := []byte(parts[2])
		if sig[0] == 'A' {
			sig[0] = 'B'
		} else {
			sig[0] = 'A'
		}
		parts[2] = string(sig)

		_, err = f.uc.Resolve(f.ctx, strings.Join(parts, "."))
		assert.ErrorIs(t, err, authDomain.ErrSignatureInvalid)
	})

	t.Run("Error_Garbage", func(t *testing.T) {
		f := newAuthFlow(t)

		_, err := f.uc.Resolve(f.ctx, "not-a-token")
		assert.ErrorIs(t, err, authDomain.ErrTokenMalformed)
	})

	t.Run("Error_CorruptStoredHash", func(t *testing.T) {
		f := newAuthFlow(t)
		require.NoError(t, f.repo.Create(f.ctx, &userDomain.User{Username: "broken", PasswordHash: "plaintext"}))

		_, err := f.login("broken", "plaintext")
		assert.ErrorIs(t, err, authDomain.ErrCorruptHash)
	})

	t.Run("Error_InvalidTTL", func(t *testing.T) {
		f := newAuthFlow(t)

		key, err := authDomain.NewSigningKey("default", bytes.Repeat([]byte{0x5a}, 32))
		require.NoError(t, err)
		codec, err := authService.NewJWTTokenCodec(key, authService.JWTConfig{Clock: f.clock.Now})
		require.NoError(t, err)
		uc := usecase.NewAuthUseCase(f.repo, f.hasher, codec, 0)

		_, err = uc.Authenticate(f.ctx, &authDomain.Credential{Username: "johndoe", Password: "secret"})
		assert.ErrorIs(t, err, authDomain.ErrInvalidTTL)
	})
}
