package service

import (
	"strings"

	"github.com/allisson/go-pwdhash"
	"golang.org/x/crypto/bcrypt"

	authDomain "github.com/allisson/authkit/internal/auth/domain"
	apperrors "github.com/allisson/authkit/internal/errors"
)

const (
	argon2idPrefix = "$argon2id$"

	// bcryptMaxBytes is the input length bcrypt silently truncates beyond.
	bcryptMaxBytes = 72
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// PasswordHasherConfig selects the algorithm used for new hashes.
type PasswordHasherConfig struct {
	// Algorithm is "argon2id" or "bcrypt".
	Algorithm string
	// Policy is the go-pwdhash policy for argon2id: "interactive" or "moderate".
	Policy string
	// BcryptCost is the bcrypt work factor.
	BcryptCost int
	// MaxBytes is the longest password accepted by the argon2id hasher.
	MaxBytes int
}

// passwordHasher hashes with the configured algorithm and verifies hashes of
// either algorithm, dispatching on the hash prefix. This lets a deployment
// switch algorithms without invalidating stored hashes.
type passwordHasher struct {
	algorithm  string
	argon2id   *pwdhash.PasswordHasher
	bcryptCost int
	maxBytes   int
}

// NewPasswordHasher creates a PasswordHasher for cfg.
func NewPasswordHasher(cfg PasswordHasherConfig) (PasswordHasher, error) {
	switch cfg.Algorithm {
	case "argon2id", "bcrypt":
	default:
		return nil, apperrors.Wrapf(authDomain.ErrUnsupportedAlgorithm, "password hash algorithm %q", cfg.Algorithm)
	}

	hasher, err := newArgon2idHasher(cfg.Policy)
	if err != nil {
		return nil, err
	}

	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "bcrypt cost %d out of range", cost)
	}

	maxBytes := cfg.MaxBytes
	if maxBytes == 0 {
		maxBytes = 128
	}

	return &passwordHasher{
		algorithm:  cfg.Algorithm,
		argon2id:   hasher,
		bcryptCost: cost,
		maxBytes:   maxBytes,
	}, nil
}

// Hash derives a hash with the configured algorithm.
func (p *passwordHasher) Hash(plaintext string) (string, error) {
	if p.algorithm == "bcrypt" {
		if len(plaintext) > bcryptMaxBytes {
			return "", authDomain.ErrPasswordTooLong
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.bcryptCost)
		if err != nil {
			return "", apperrors.Wrap(err, "failed to hash password")
		}
		return string(hash), nil
	}

	if len(plaintext) > p.maxBytes {
		return "", authDomain.ErrPasswordTooLong
	}
	hash, err := p.argon2id.Hash([]byte(plaintext))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Verify compares plaintext with hash in constant time.
func (p *passwordHasher) Verify(plaintext string, hash string) (bool, error) {
	switch {
	case strings.HasPrefix(hash, argon2idPrefix):
		if len(plaintext) > p.maxBytes {
			return false, nil
		}
		ok, err := p.argon2id.Verify([]byte(plaintext), hash)
		if err != nil {
			return false, apperrors.Wrap(authDomain.ErrCorruptHash, err.Error())
		}
		return ok, nil

	case hasBcryptPrefix(hash):
		if len(plaintext) > bcryptMaxBytes {
			return false, nil
		}
		err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
		switch {
		case err == nil:
			return true, nil
		case apperrors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, apperrors.Wrap(authDomain.ErrCorruptHash, err.Error())
		}

	default:
		return false, authDomain.ErrCorruptHash
	}
}

func newArgon2idHasher(policy string) (*pwdhash.PasswordHasher, error) {
	var (
		hasher *pwdhash.PasswordHasher
		err    error
	)
	switch policy {
	case "", "interactive":
		hasher, err = pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	case "moderate":
		hasher, err = pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	default:
		return nil, apperrors.Wrapf(authDomain.ErrUnsupportedAlgorithm, "password hash policy %q", policy)
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create argon2id hasher")
	}
	return hasher, nil
}

func hasBcryptPrefix(hash string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}
