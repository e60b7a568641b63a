// Package http provides HTTP handlers for user-related operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/authkit/internal/auth/http"
	apperrors "github.com/allisson/authkit/internal/errors"
	"github.com/allisson/authkit/internal/httputil"
	"github.com/allisson/authkit/internal/user/http/dto"
)

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	logger *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(logger *slog.Logger) *UserHandler {
	return &UserHandler{logger: logger}
}

// MeHandler returns the profile of the authenticated user.
// GET /v1/users/me - requires BearerAuthMiddleware.
func (h *UserHandler) MeHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
