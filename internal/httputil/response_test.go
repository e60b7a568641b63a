package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/authkit/internal/errors"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		expectedCode int
		expectedBody ErrorResponse
	}{
		{
			name:         "not found",
			err:          apperrors.Wrap(apperrors.ErrNotFound, "user not found"),
			expectedCode: http.StatusNotFound,
			expectedBody: ErrorResponse{Error: "not_found", Message: "The requested resource was not found"},
		},
		{
			name:         "conflict",
			err:          apperrors.Wrap(apperrors.ErrConflict, "user already exists"),
			expectedCode: http.StatusConflict,
			expectedBody: ErrorResponse{Error: "conflict", Message: "A conflict occurred with existing data"},
		},
		{
			name:         "invalid input keeps message",
			err:          apperrors.Wrap(apperrors.ErrInvalidInput, "token ttl must be positive"),
			expectedCode: http.StatusUnprocessableEntity,
			expectedBody: ErrorResponse{
				Error:   "invalid_input",
				Message: "token ttl must be positive: invalid input",
			},
		},
		{
			name: "unauthorized carries code",
			err: apperrors.WithCode(
				apperrors.Wrap(apperrors.ErrUnauthorized, "token expired"),
				"token_expired",
			),
			expectedCode: http.StatusUnauthorized,
			expectedBody: ErrorResponse{
				Error:   "unauthorized",
				Message: "Authentication is required",
				Code:    "token_expired",
			},
		},
		{
			name:         "forbidden",
			err:          apperrors.Wrap(apperrors.ErrForbidden, "account disabled"),
			expectedCode: http.StatusForbidden,
			expectedBody: ErrorResponse{
				Error:   "forbidden",
				Message: "You don't have permission to access this resource",
			},
		},
		{
			name:         "unknown error hides details and code",
			err:          apperrors.WithCode(errors.New("corrupt password hash"), "corrupt_hash"),
			expectedCode: http.StatusInternalServerError,
			expectedBody: ErrorResponse{Error: "internal_error", Message: "An internal error occurred"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := MapError(tt.err)
			assert.Equal(t, tt.expectedCode, code)
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestHandleErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Success_WritesMappedResponse", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleErrorGin(c, apperrors.Wrap(apperrors.ErrForbidden, "account disabled"), logger)

		assert.Equal(t, http.StatusForbidden, w.Code)
		var response ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "forbidden", response.Error)
	})

	t.Run("Success_NilErrorWritesNothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		HandleErrorGin(c, nil, logger)

		assert.Empty(t, w.Body.String())
	})
}

func TestHandleBadRequestGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleBadRequestGin(c, errors.New("unexpected EOF"), nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"bad_request","message":"unexpected EOF"}`, w.Body.String())
}

func TestHandleValidationErrorGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleValidationErrorGin(c, errors.New("username: cannot be blank."), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(
		t,
		`{"error":"validation_error","message":"username: cannot be blank."}`,
		w.Body.String(),
	)
}
