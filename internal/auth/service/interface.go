// Package service provides the technical services behind authentication:
// password hashing, token encoding and signing key loading.
package service

import (
	"context"
	"time"

	authDomain "github.com/allisson/authkit/internal/auth/domain"
)

// PasswordHasher derives and verifies salted, slow password hashes.
type PasswordHasher interface {
	// Hash derives a self-describing hash of plaintext with a fresh random salt.
	// Hashing the same plaintext twice yields different hashes.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches hash. A mismatch is (false, nil);
	// a hash that cannot be parsed is ErrCorruptHash.
	Verify(plaintext string, hash string) (bool, error)
}

// TokenCodec issues and verifies signed access tokens.
type TokenCodec interface {
	// Issue mints a token for subject that expires ttl from now.
	Issue(subject string, ttl time.Duration) (*authDomain.IssuedToken, error)

	// Verify checks the signature first and the claims second, so a tampered
	// token reports ErrSignatureInvalid even when it is also expired.
	Verify(token string) (*authDomain.TokenClaims, error)
}

// KMSKeeper encrypts and decrypts key material with a KMS key.
// *secrets.Keeper satisfies it.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for a KMS key URI.
type KMSService interface {
	// OpenKeeper opens a keeper for keyURI. Supported schemes are gcpkms://,
	// awskms://, azurekeyvault://, hashivault:// and base64key://.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}
