package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/authkit/internal/auth/domain"
	apperrors "github.com/allisson/authkit/internal/errors"
)

func newTestHasher(t *testing.T, algorithm string) PasswordHasher {
	t.Helper()
	hasher, err := NewPasswordHasher(PasswordHasherConfig{
		Algorithm:  algorithm,
		Policy:     "interactive",
		BcryptCost: 4,
		MaxBytes:   128,
	})
	require.NoError(t, err)
	return hasher
}

func TestNewPasswordHasher(t *testing.T) {
	t.Run("Success_Defaults", func(t *testing.T) {
		hasher, err := NewPasswordHasher(PasswordHasherConfig{Algorithm: "argon2id"})
		require.NoError(t, err)
		assert.IsType(t, &passwordHasher{}, hasher)
	})

	t.Run("Error_UnsupportedAlgorithm", func(t *testing.T) {
		hasher, err := NewPasswordHasher(PasswordHasherConfig{Algorithm: "md5"})
		assert.ErrorIs(t, err, authDomain.ErrUnsupportedAlgorithm)
		assert.Nil(t, hasher)
	})

	t.Run("Error_UnsupportedPolicy", func(t *testing.T) {
		hasher, err := NewPasswordHasher(PasswordHasherConfig{Algorithm: "argon2id", Policy: "paranoid"})
		assert.ErrorIs(t, err, authDomain.ErrUnsupportedAlgorithm)
		assert.Nil(t, hasher)
	})

	t.Run("Error_BcryptCostOutOfRange", func(t *testing.T) {
		hasher, err := NewPasswordHasher(PasswordHasherConfig{Algorithm: "bcrypt", BcryptCost: 99})
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		assert.Nil(t, hasher)
	})
}

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	for _, algorithm := range []string{"argon2id", "bcrypt"} {
		hasher := newTestHasher(t, algorithm)

		t.Run(algorithm+"/Success_RoundTrip", func(t *testing.T) {
			hash, err := hasher.Hash("secret")
			require.NoError(t, err)
			assert.NotContains(t, hash, "secret")

			ok, err := hasher.Verify("secret", hash)
			require.NoError(t, err)
			assert.True(t, ok)
		})

		t.Run(algorithm+"/Success_WrongPassword", func(t *testing.T) {
			hash, err := hasher.Hash("secret")
			require.NoError(t, err)

			ok, err := hasher.Verify("Secret", hash)
			require.NoError(t, err)
			assert.False(t, ok)
		})

		t.Run(algorithm+"/Success_UniqueSalt", func(t *testing.T) {
			first, err := hasher.Hash("secret")
			require.NoError(t, err)
			second, err := hasher.Hash("secret")
			require.NoError(t, err)

			assert.NotEqual(t, first, second)
		})

		t.Run(algorithm+"/Success_EmptyPassword", func(t *testing.T) {
			hash, err := hasher.Hash("")
			require.NoError(t, err)

			ok, err := hasher.Verify("", hash)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = hasher.Verify("x", hash)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestPasswordHasher_Prefixes(t *testing.T) {
	argon := newTestHasher(t, "argon2id")
	bc := newTestHasher(t, "bcrypt")

	argonHash, err := argon.Hash("secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(argonHash, "$argon2id$"))

	bcryptHash, err := bc.Hash("secret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(bcryptHash, "$2a$"))

	t.Run("Success_ArgonHasherVerifiesBcryptHash", func(t *testing.T) {
		ok, err := argon.Verify("secret", bcryptHash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Success_BcryptHasherVerifiesArgonHash", func(t *testing.T) {
		ok, err := bc.Verify("secret", argonHash)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestPasswordHasher_CorruptHash(t *testing.T) {
	hasher := newTestHasher(t, "argon2id")

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"plaintext", "secret"},
		{"unknown scheme", "$1$saltsalt$abcdefghijklmnop"},
		{"truncated bcrypt", "$2a$04$short"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := hasher.Verify("secret", tt.hash)
			assert.ErrorIs(t, err, authDomain.ErrCorruptHash)
			assert.False(t, ok)
		})
	}
}

func TestPasswordHasher_TooLong(t *testing.T) {
	t.Run("Error_BcryptOver72Bytes", func(t *testing.T) {
		hasher := newTestHasher(t, "bcrypt")
		_, err := hasher.Hash(strings.Repeat("a", 73))
		assert.ErrorIs(t, err, authDomain.ErrPasswordTooLong)
	})

	t.Run("Error_Argon2idOverMaxBytes", func(t *testing.T) {
		hasher := newTestHasher(t, "argon2id")
		_, err := hasher.Hash(strings.Repeat("a", 129))
		assert.ErrorIs(t, err, authDomain.ErrPasswordTooLong)
	})

	t.Run("Success_VerifyRejectsOverLongInput", func(t *testing.T) {
		hasher := newTestHasher(t, "bcrypt")
		password := strings.Repeat("a", 72)
		hash, err := hasher.Hash(password)
		require.NoError(t, err)

		ok, err := hasher.Verify(password+"b", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
