package usecase

import (
	"context"
	"time"

	"github.com/allisson/authkit/internal/metrics"
	"github.com/allisson/authkit/internal/user/domain"
)

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) Create(ctx context.Context, input *CreateUserInput) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Create(ctx, input)
	u.record(ctx, "create", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Get(ctx context.Context, username string) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Get(ctx, username)
	u.record(ctx, "get", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) SetDisabled(
	ctx context.Context,
	username string,
	disabled bool,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.SetDisabled(ctx, username, disabled)
	u.record(ctx, "set_disabled", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Delete(ctx context.Context, username string) error {
	start := time.Now()
	err := u.next.Delete(ctx, username)
	u.record(ctx, "delete", start, err)
	return err
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, "user", operation, status)
	u.metrics.RecordDuration(ctx, "user", operation, time.Since(start), status)
}
