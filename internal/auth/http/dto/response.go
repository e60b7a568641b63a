package dto

import (
	"time"

	authDomain "github.com/allisson/authkit/internal/auth/domain"
)

// BearerTokenType is the token_type reported for issued tokens.
const BearerTokenType = "bearer"

// IssueTokenResponse contains the result of issuing a token.
type IssueTokenResponse struct {
	AccessToken string    `json:"access_token"` //nolint:gosec // returned once on issuance
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// MapIssuedTokenToResponse converts an issued token to an API response.
// ExpiresIn is counted in whole seconds from now.
func MapIssuedTokenToResponse(issued *authDomain.IssuedToken, now time.Time) IssueTokenResponse {
	return IssueTokenResponse{
		AccessToken: issued.Token,
		TokenType:   BearerTokenType,
		ExpiresIn:   int64(issued.ExpiresIn(now) / time.Second),
		ExpiresAt:   issued.Claims.ExpiresAt,
	}
}
