package domain

import (
	"time"
)

// Credential is a username and plaintext password submitted for a single
// authentication attempt. It is never stored or logged.
type Credential struct {
	Username string
	Password string
}

// TokenClaims is the content of a signed token. Claims are readable by any
// holder of the token; only the signature protects them from modification.
type TokenClaims struct {
	ID        string
	Subject   string
	Purpose   TokenPurpose
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssuedToken is a freshly minted token together with the claims it carries.
type IssuedToken struct {
	Token  string
	Claims TokenClaims
}

// ExpiresIn returns the remaining lifetime relative to now, truncated to whole seconds.
func (t *IssuedToken) ExpiresIn(now time.Time) time.Duration {
	remaining := t.Claims.ExpiresAt.Sub(now).Truncate(time.Second)
	if remaining < 0 {
		return 0
	}
	return remaining
}
