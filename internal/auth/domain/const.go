// Package domain defines the authentication domain: credentials, token
// claims, the signing key and the error taxonomy returned to callers.
package domain

// TokenPurpose tags what a token may be used for. Verification rejects tokens
// whose purpose differs from the one the codec was configured with.
type TokenPurpose string

// AccessPurpose marks a token that grants access to protected endpoints.
const AccessPurpose TokenPurpose = "access"

// TokenTypeBearer is the OAuth2 token_type reported for issued tokens.
const TokenTypeBearer = "bearer"

// MinSigningKeyBytes is the shortest accepted HMAC signing key.
const MinSigningKeyBytes = 32
