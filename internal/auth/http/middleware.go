package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authUseCase "github.com/allisson/authkit/internal/auth/usecase"
	apperrors "github.com/allisson/authkit/internal/errors"
	"github.com/allisson/authkit/internal/httputil"
)

const (
	bearerPrefix = "bearer "
	bearerRealm  = "authkit"
)

// BearerAuthMiddleware authenticates requests carrying "Authorization: Bearer <token>".
//
// The token is resolved through AuthUseCase.Resolve and the resulting user is
// stored in the request context for GetUser.
//
// Error handling:
//   - Missing or non-bearer Authorization header → 401 with a bare Bearer challenge
//   - Malformed, tampered, expired or orphaned token → 401 with error="invalid_token"
//   - Disabled account → 403 Forbidden
//   - Store failures → 500 Internal Server Error
func BearerAuthMiddleware(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: missing bearer credentials")
			setChallenge(c, "")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		user, err := authUseCase.Resolve(c.Request.Context(), token)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrUnauthorized) {
				setChallenge(c, "invalid_token")
			}
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithUser(c.Request.Context(), user))

		logger.Debug("authentication successful", slog.String("username", user.Username))

		c.Next()
	}
}

// setChallenge writes the RFC 6750 WWW-Authenticate header.
func setChallenge(c *gin.Context, errorCode string) {
	challenge := `Bearer realm="` + bearerRealm + `"`
	if errorCode != "" {
		challenge += `, error="` + errorCode + `"`
	}
	c.Header("WWW-Authenticate", challenge)
}
