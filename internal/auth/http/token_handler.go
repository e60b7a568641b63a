package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/authkit/internal/auth/http/dto"
	authUseCase "github.com/allisson/authkit/internal/auth/usecase"
	"github.com/allisson/authkit/internal/httputil"
)

// TokenHandler handles HTTP requests for token issuance.
type TokenHandler struct {
	authUseCase authUseCase.AuthUseCase
	now         func() time.Time
	logger      *slog.Logger
}

// NewTokenHandler creates a new token handler.
func NewTokenHandler(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{
		authUseCase: authUseCase,
		now:         time.Now,
		logger:      logger,
	}
}

// IssueTokenHandler exchanges a username and password for an access token.
// POST /v1/token - accepts a JSON body or an OAuth2 password grant form.
// Returns 201 Created with the token and its lifetime.
func (h *TokenHandler) IssueTokenHandler(c *gin.Context) {
	var req dto.IssueTokenRequest

	// ShouldBind picks the JSON or form binding from Content-Type.
	if err := c.ShouldBind(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	issued, err := h.authUseCase.Authenticate(c.Request.Context(), req.ToCredential())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
	c.JSON(http.StatusCreated, dto.MapIssuedTokenToResponse(issued, h.now()))
}
