package app

import (
	"fmt"
	"sync"

	authDomain "github.com/allisson/authkit/internal/auth/domain"
	authHTTP "github.com/allisson/authkit/internal/auth/http"
	authService "github.com/allisson/authkit/internal/auth/service"
	authUseCase "github.com/allisson/authkit/internal/auth/usecase"
)

type authComponents struct {
	kmsService       authService.KMSService
	signingKeyLoader *authService.SigningKeyLoader
	signingKey       *authDomain.SigningKey
	passwordHasher   authService.PasswordHasher
	tokenCodec       authService.TokenCodec
	authUseCase      authUseCase.AuthUseCase
	tokenHandler     *authHTTP.TokenHandler

	kmsServiceInit       sync.Once
	signingKeyLoaderInit sync.Once
	signingKeyInit       sync.Once
	passwordHasherInit   sync.Once
	tokenCodecInit       sync.Once
	authUseCaseInit      sync.Once
	tokenHandlerInit     sync.Once
}

// KMSService returns the KMS service used to decrypt the signing key.
func (c *Container) KMSService() authService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = authService.NewKMSService()
	})
	return c.kmsService
}

// SigningKeyLoader returns the loader that resolves TOKEN_SIGNING_KEY.
func (c *Container) SigningKeyLoader() *authService.SigningKeyLoader {
	c.signingKeyLoaderInit.Do(func() {
		c.signingKeyLoader = authService.NewSigningKeyLoader(c.KMSService())
	})
	return c.signingKeyLoader
}

// SigningKey returns the token signing key, decrypted through KMS when configured.
func (c *Container) SigningKey() (*authDomain.SigningKey, error) {
	var err error
	c.signingKeyInit.Do(func() {
		c.signingKey, err = c.initSigningKey()
		if err != nil {
			c.initErrors["signingKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signingKey"]; exists {
		return nil, storedErr
	}
	return c.signingKey, nil
}

// PasswordHasher returns the password hasher for the configured algorithm.
func (c *Container) PasswordHasher() (authService.PasswordHasher, error) {
	var err error
	c.passwordHasherInit.Do(func() {
		c.passwordHasher, err = c.initPasswordHasher()
		if err != nil {
			c.initErrors["passwordHasher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passwordHasher"]; exists {
		return nil, storedErr
	}
	return c.passwordHasher, nil
}

// TokenCodec returns the JWT codec bound to the signing key.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	var err error
	c.tokenCodecInit.Do(func() {
		c.tokenCodec, err = c.initTokenCodec()
		if err != nil {
			c.initErrors["tokenCodec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenCodec"]; exists {
		return nil, storedErr
	}
	return c.tokenCodec, nil
}

// AuthUseCase returns the authentication use case wrapped with metrics.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	var err error
	c.authUseCaseInit.Do(func() {
		c.authUseCase, err = c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// TokenHandler returns the HTTP handler for POST /v1/token.
func (c *Container) TokenHandler() (*authHTTP.TokenHandler, error) {
	var err error
	c.tokenHandlerInit.Do(func() {
		c.tokenHandler, err = c.initTokenHandler()
		if err != nil {
			c.initErrors["tokenHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenHandler"]; exists {
		return nil, storedErr
	}
	return c.tokenHandler, nil
}

func (c *Container) initSigningKey() (*authDomain.SigningKey, error) {
	key, err := c.SigningKeyLoader().Load(c.ctx, authService.SigningKeySource{
		KeyID:      c.config.TokenSigningKeyID,
		EncodedKey: c.config.TokenSigningKey,
		KMSKeyURI:  c.config.KMSKeyURI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load token signing key: %w", err)
	}

	c.Logger().Info("token signing key loaded",
		"key", key,
		"kms_provider", c.config.KMSProvider,
	)
	return key, nil
}

func (c *Container) initPasswordHasher() (authService.PasswordHasher, error) {
	hasher, err := authService.NewPasswordHasher(authService.PasswordHasherConfig{
		Algorithm:  c.config.PasswordHashAlgorithm,
		Policy:     c.config.PasswordHashPolicy,
		BcryptCost: c.config.PasswordBcryptCost,
		MaxBytes:   c.config.PasswordMaxBytes,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create password hasher: %w", err)
	}
	return hasher, nil
}

func (c *Container) initTokenCodec() (authService.TokenCodec, error) {
	key, err := c.SigningKey()
	if err != nil {
		return nil, err
	}

	codec, err := authService.NewJWTTokenCodec(key, authService.JWTConfig{
		Algorithm: c.config.TokenSigningAlgorithm,
		Purpose:   authDomain.TokenPurpose(c.config.TokenPurpose),
		Issuer:    c.config.TokenIssuer,
		Leeway:    c.config.TokenClockSkew,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create token codec: %w", err)
	}
	return codec, nil
}

func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	userStore, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	hasher, err := c.PasswordHasher()
	if err != nil {
		return nil, err
	}

	codec, err := c.TokenCodec()
	if err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
	}

	useCase := authUseCase.NewAuthUseCase(userStore, hasher, codec, c.config.TokenExpiration)
	return authUseCase.NewAuthUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initTokenHandler() (*authHTTP.TokenHandler, error) {
	useCase, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for token handler: %w", err)
	}
	return authHTTP.NewTokenHandler(useCase, c.Logger()), nil
}
