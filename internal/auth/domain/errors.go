package domain

import (
	"github.com/allisson/authkit/internal/errors"
)

// Authentication errors. Each is distinct so the transport layer can report it
// with its own code, and each wraps a category for status mapping.
var (
	// ErrInvalidCredentials is returned for an unknown username and for a wrong
	// password alike, so callers cannot tell which one failed.
	ErrInvalidCredentials = errors.WithCode(
		errors.Wrap(errors.ErrUnauthorized, "invalid credentials"),
		"invalid_credentials",
	)

	// ErrAccountDisabled indicates the account exists but may not authenticate.
	ErrAccountDisabled = errors.WithCode(
		errors.Wrap(errors.ErrForbidden, "account disabled"),
		"account_disabled",
	)

	// ErrTokenMalformed indicates the token could not be parsed or its claims are unusable.
	ErrTokenMalformed = errors.WithCode(
		errors.Wrap(errors.ErrUnauthorized, "token malformed"),
		"token_malformed",
	)

	// ErrSignatureInvalid indicates the token signature does not verify under the signing key.
	ErrSignatureInvalid = errors.WithCode(
		errors.Wrap(errors.ErrUnauthorized, "token signature invalid"),
		"signature_invalid",
	)

	// ErrTokenExpired indicates a correctly signed token whose expiry has passed.
	ErrTokenExpired = errors.WithCode(
		errors.Wrap(errors.ErrUnauthorized, "token expired"),
		"token_expired",
	)

	// ErrUnknownSubject indicates a valid token whose user no longer exists.
	ErrUnknownSubject = errors.WithCode(
		errors.Wrap(errors.ErrUnauthorized, "unknown token subject"),
		"unknown_subject",
	)

	// ErrCorruptHash indicates a stored password hash that cannot be parsed.
	ErrCorruptHash = errors.New("corrupt password hash")

	// ErrInvalidTTL indicates a non-positive token lifetime.
	ErrInvalidTTL = errors.Wrap(errors.ErrInvalidInput, "token ttl must be positive")
)

// Configuration and input errors raised by the auth services.
var (
	// ErrPasswordTooLong indicates a password beyond what the hash algorithm accepts without truncation.
	ErrPasswordTooLong = errors.Wrap(errors.ErrInvalidInput, "password exceeds maximum length")

	// ErrEmptySubject indicates an attempt to issue a token without a subject.
	ErrEmptySubject = errors.Wrap(errors.ErrInvalidInput, "token subject is required")

	// ErrUnsupportedAlgorithm indicates a signing or hashing algorithm that is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrSigningKeyNotSet indicates the signing key or its ID is missing.
	ErrSigningKeyNotSet = errors.Wrap(errors.ErrInvalidInput, "token signing key is not set")

	// ErrSigningKeyTooShort indicates a signing key below MinSigningKeyBytes.
	ErrSigningKeyTooShort = errors.Wrap(errors.ErrInvalidInput, "token signing key is too short")
)
