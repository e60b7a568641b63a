package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/authkit/internal/auth/domain"
	apperrors "github.com/allisson/authkit/internal/errors"
	"github.com/allisson/authkit/internal/metrics"
	userDomain "github.com/allisson/authkit/internal/user/domain"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Authenticate records metrics for credential checks.
func (a *authUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	credential *authDomain.Credential,
) (*authDomain.IssuedToken, error) {
	start := time.Now()
	token, err := a.next.Authenticate(ctx, credential)
	a.record(ctx, "authenticate", start, err)
	return token, err
}

// Resolve records metrics for token resolution.
func (a *authUseCaseWithMetrics) Resolve(ctx context.Context, token string) (*userDomain.User, error) {
	start := time.Now()
	user, err := a.next.Resolve(ctx, token)
	a.record(ctx, "resolve", start, err)
	return user, err
}

func (a *authUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
		a.metrics.RecordAuthFailure(ctx, operation, apperrors.Code(err))
	}

	a.metrics.RecordOperation(ctx, "auth", operation, status)
	a.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
}
