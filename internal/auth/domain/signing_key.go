package domain

import (
	"fmt"
	"log/slog"
)

// SigningKey is the secret used to sign and verify tokens. ID is published in
// the kid header; Secret never leaves the process and is redacted when
// formatted or logged.
type SigningKey struct {
	ID     string
	Secret []byte
}

// NewSigningKey validates and copies key material into a SigningKey.
func NewSigningKey(id string, secret []byte) (*SigningKey, error) {
	if id == "" {
		return nil, ErrSigningKeyNotSet
	}
	if len(secret) < MinSigningKeyBytes {
		return nil, fmt.Errorf(
			"%w: key %s has %d bytes, need at least %d",
			ErrSigningKeyTooShort,
			id,
			len(secret),
			MinSigningKeyBytes,
		)
	}

	buf := make([]byte, len(secret))
	copy(buf, secret)
	return &SigningKey{ID: id, Secret: buf}, nil
}

// String implements fmt.Stringer without exposing the secret.
func (k *SigningKey) String() string {
	return fmt.Sprintf("SigningKey{ID:%s, Secret:[REDACTED]}", k.ID)
}

// LogValue implements slog.LogValuer without exposing the secret.
func (k *SigningKey) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", k.ID),
		slog.Int("bytes", len(k.Secret)),
	)
}

// Zero overwrites the secret in place.
func (k *SigningKey) Zero() {
	Zero(k.Secret)
}

// Zero overwrites a byte slice with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
