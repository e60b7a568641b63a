package service

import (
	"context"
	"encoding/base64"

	authDomain "github.com/allisson/authkit/internal/auth/domain"
	apperrors "github.com/allisson/authkit/internal/errors"
)

// SigningKeySource describes where the token signing key comes from.
type SigningKeySource struct {
	// KeyID is published in the kid header.
	KeyID string
	// EncodedKey is the base64 key, or the base64 KMS ciphertext when KMSKeyURI is set.
	EncodedKey string
	// KMSKeyURI is the KMS key that encrypted EncodedKey. Empty means plaintext.
	KMSKeyURI string
}

// SigningKeyLoader resolves a SigningKeySource into key material.
type SigningKeyLoader struct {
	kmsService KMSService
}

// NewSigningKeyLoader creates a loader that decrypts through kmsService when
// a KMS key URI is configured.
func NewSigningKeyLoader(kmsService KMSService) *SigningKeyLoader {
	return &SigningKeyLoader{kmsService: kmsService}
}

// Load decodes, and if needed decrypts, the signing key. Intermediate buffers
// are zeroed before returning.
func (l *SigningKeyLoader) Load(ctx context.Context, src SigningKeySource) (*authDomain.SigningKey, error) {
	if src.EncodedKey == "" {
		return nil, authDomain.ErrSigningKeyNotSet
	}

	decoded, err := base64.StdEncoding.DecodeString(src.EncodedKey)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token signing key is not valid base64")
	}
	defer authDomain.Zero(decoded)

	if src.KMSKeyURI == "" {
		return authDomain.NewSigningKey(src.KeyID, decoded)
	}

	keeper, err := l.kmsService.OpenKeeper(ctx, src.KMSKeyURI)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = keeper.Close()
	}()

	plaintext, err := keeper.Decrypt(ctx, decoded)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt token signing key")
	}
	defer authDomain.Zero(plaintext)

	return authDomain.NewSigningKey(src.KeyID, plaintext)
}

// Seal encrypts secret with the KMS key at keyURI and returns the base64
// ciphertext suitable for TOKEN_SIGNING_KEY. With an empty keyURI it returns
// the plain base64 encoding.
func (l *SigningKeyLoader) Seal(ctx context.Context, keyURI string, secret []byte) (string, error) {
	if keyURI == "" {
		return base64.StdEncoding.EncodeToString(secret), nil
	}

	keeper, err := l.kmsService.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = keeper.Close()
	}()

	ciphertext, err := keeper.Encrypt(ctx, secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to encrypt token signing key")
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
