package service

import (
	"encoding/base64"
	"strings"
	"sync/atomic"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/authkit/internal/auth/domain"
	apperrors "github.com/allisson/authkit/internal/errors"
)

// JWTConfig configures a JWT token codec.
type JWTConfig struct {
	// Algorithm is the HMAC algorithm: HS256, HS384 or HS512. Defaults to HS256.
	Algorithm string
	// Purpose is embedded in issued tokens and required on verification.
	Purpose authDomain.TokenPurpose
	// Issuer is the optional iss claim. When set it is also required on verification.
	Issuer string
	// Leeway tolerates clock skew when checking exp and iat.
	Leeway time.Duration
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// accessClaims is the JWT payload: the registered claims plus the token purpose.
type accessClaims struct {
	jwt.RegisteredClaims
	Purpose authDomain.TokenPurpose `json:"purpose"`
}

// jwtTokenCodec signs compact JWS tokens with a shared HMAC key.
type jwtTokenCodec struct {
	key     atomic.Pointer[authDomain.SigningKey]
	method  *jwt.SigningMethodHMAC
	purpose authDomain.TokenPurpose
	issuer  string
	clock   func() time.Time
	parser  *jwt.Parser
}

// NewJWTTokenCodec creates a TokenCodec that signs with key.
func NewJWTTokenCodec(key *authDomain.SigningKey, cfg JWTConfig) (TokenCodec, error) {
	if key == nil || key.ID == "" || len(key.Secret) == 0 {
		return nil, authDomain.ErrSigningKeyNotSet
	}
	if len(key.Secret) < authDomain.MinSigningKeyBytes {
		return nil, authDomain.ErrSigningKeyTooShort
	}

	var method *jwt.SigningMethodHMAC
	switch cfg.Algorithm {
	case "", "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, apperrors.Wrapf(authDomain.ErrUnsupportedAlgorithm, "signing algorithm %q", cfg.Algorithm)
	}

	purpose := cfg.Purpose
	if purpose == "" {
		purpose = authDomain.AccessPurpose
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(cfg.Leeway),
		jwt.WithTimeFunc(clock),
		jwt.WithStrictDecoding(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	codec := &jwtTokenCodec{
		method:  method,
		purpose: purpose,
		issuer:  cfg.Issuer,
		clock:   clock,
		parser:  jwt.NewParser(opts...),
	}
	codec.key.Store(key)
	return codec, nil
}

// Issue signs a token for subject carrying a fresh jti, iat of now and exp of now+ttl.
func (j *jwtTokenCodec) Issue(subject string, ttl time.Duration) (*authDomain.IssuedToken, error) {
	if ttl <= 0 {
		return nil, authDomain.ErrInvalidTTL
	}
	if subject == "" {
		return nil, authDomain.ErrEmptySubject
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to generate token id")
	}

	// JWT NumericDate has second precision; truncate so the returned claims
	// match what Verify will decode.
	now := j.clock().UTC().Truncate(time.Second)
	expiresAt := now.Add(ttl)

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id.String(),
			Subject:   subject,
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Purpose: j.purpose,
	}

	key := j.key.Load()
	token := jwt.NewWithClaims(j.method, claims)
	token.Header["kid"] = key.ID

	signed, err := token.SignedString(key.Secret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign token")
	}

	return &authDomain.IssuedToken{
		Token: signed,
		Claims: authDomain.TokenClaims{
			ID:        claims.ID,
			Subject:   subject,
			Purpose:   j.purpose,
			Issuer:    j.issuer,
			IssuedAt:  now,
			ExpiresAt: expiresAt,
		},
	}, nil
}

// Verify parses token, checking the signature before any claim.
func (j *jwtTokenCodec) Verify(token string) (*authDomain.TokenClaims, error) {
	if token == "" {
		return nil, authDomain.ErrTokenMalformed
	}

	if !canonicalSignature(token) {
		return nil, apperrors.Wrap(authDomain.ErrSignatureInvalid, "non-canonical signature encoding")
	}

	key := j.key.Load()
	claims := &accessClaims{}

	_, err := j.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if kid, ok := t.Header["kid"].(string); ok && kid != key.ID {
			return nil, apperrors.Wrapf(authDomain.ErrSignatureInvalid, "unknown key id %q", kid)
		}
		return key.Secret, nil
	})
	if err != nil {
		return nil, mapJWTError(err)
	}

	if claims.Subject == "" {
		return nil, apperrors.Wrap(authDomain.ErrTokenMalformed, "missing subject")
	}
	if claims.Purpose != j.purpose {
		return nil, apperrors.Wrapf(authDomain.ErrTokenMalformed, "unexpected purpose %q", claims.Purpose)
	}

	result := &authDomain.TokenClaims{
		ID:      claims.ID,
		Subject: claims.Subject,
		Purpose: claims.Purpose,
		Issuer:  claims.Issuer,
	}
	if claims.IssuedAt != nil {
		result.IssuedAt = claims.IssuedAt.UTC()
	}
	if claims.ExpiresAt != nil {
		result.ExpiresAt = claims.ExpiresAt.UTC()
	}
	return result, nil
}

// canonicalSignature reports false when the signature segment only decodes
// by ignoring its trailing padding bits. Such a segment was altered after
// signing even though it yields the original signature bytes.
func canonicalSignature(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return true
	}
	if _, err := base64.RawURLEncoding.DecodeString(parts[2]); err != nil {
		// Not base64 at all; the parser reports it as malformed.
		return true
	}
	_, err := base64.RawURLEncoding.Strict().DecodeString(parts[2])
	return err == nil
}

// mapJWTError translates parser errors into the auth error taxonomy. The
// parser verifies the signature before validating claims, so an expiry error
// implies an authentic token.
func mapJWTError(err error) error {
	switch {
	case apperrors.Is(err, jwt.ErrTokenMalformed):
		return apperrors.Wrap(authDomain.ErrTokenMalformed, err.Error())
	case apperrors.Is(err, jwt.ErrTokenSignatureInvalid),
		apperrors.Is(err, jwt.ErrTokenUnverifiable):
		return apperrors.Wrap(authDomain.ErrSignatureInvalid, err.Error())
	case apperrors.Is(err, jwt.ErrTokenExpired):
		return apperrors.Wrap(authDomain.ErrTokenExpired, err.Error())
	default:
		return apperrors.Wrap(authDomain.ErrTokenMalformed, err.Error())
	}
}
