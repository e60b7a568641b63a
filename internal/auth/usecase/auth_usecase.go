package usecase

import (
	"context"
	"sync"
	"time"

	authDomain "github.com/allisson/authkit/internal/auth/domain"
	authService "github.com/allisson/authkit/internal/auth/service"
	apperrors "github.com/allisson/authkit/internal/errors"
	userDomain "github.com/allisson/authkit/internal/user/domain"
)

// dummyPassword is hashed once to give lookups of unknown users a real hash to
// verify against.
const dummyPassword = "authkit-dummy-password"

type authUseCase struct {
	userStore      UserStore
	passwordHasher authService.PasswordHasher
	tokenCodec     authService.TokenCodec
	defaultTTL     time.Duration

	dummyOnce sync.Once
	dummyHash string
}

// Authenticate looks the user up, rejects disabled accounts, verifies the
// password and issues a token valid for the default TTL.
func (a *authUseCase) Authenticate(
	ctx context.Context,
	credential *authDomain.Credential,
) (*authDomain.IssuedToken, error) {
	if credential == nil {
		return nil, authDomain.ErrInvalidCredentials
	}
	if a.defaultTTL <= 0 {
		return nil, authDomain.ErrInvalidTTL
	}

	user, err := a.userStore.FindByUsername(ctx, credential.Username)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			// Spend the same work as a real verification so response time does
			// not reveal whether the username exists.
			a.verifyDummy(credential.Password)
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Disabled {
		return nil, authDomain.ErrAccountDisabled
	}

	ok, err := a.passwordHasher.Verify(credential.Password, user.PasswordHash)
	if err != nil {
		return nil, apperrors.Wrapf(err, "user %s", user.Username)
	}
	if !ok {
		return nil, authDomain.ErrInvalidCredentials
	}

	return a.tokenCodec.Issue(user.Username, a.defaultTTL)
}

// Resolve verifies the token, then loads and checks its subject.
func (a *authUseCase) Resolve(ctx context.Context, token string) (*userDomain.User, error) {
	claims, err := a.tokenCodec.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := a.userStore.FindByUsername(ctx, claims.Subject)
	if err != nil {
		if apperrors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrUnknownSubject
		}
		return nil, err
	}

	if user.Disabled {
		return nil, authDomain.ErrAccountDisabled
	}

	return user, nil
}

func (a *authUseCase) verifyDummy(password string) {
	a.dummyOnce.Do(func() {
		hash, err := a.passwordHasher.Hash(dummyPassword)
		if err == nil {
			a.dummyHash = hash
		}
	})
	if a.dummyHash == "" {
		return
	}
	_, _ = a.passwordHasher.Verify(password, a.dummyHash)
}

// NewAuthUseCase creates an AuthUseCase whose tokens are valid for defaultTTL.
func NewAuthUseCase(
	userStore UserStore,
	passwordHasher authService.PasswordHasher,
	tokenCodec authService.TokenCodec,
	defaultTTL time.Duration,
) AuthUseCase {
	return &authUseCase{
		userStore:      userStore,
		passwordHasher: passwordHasher,
		tokenCodec:     tokenCodec,
		defaultTTL:     defaultTTL,
	}
}
