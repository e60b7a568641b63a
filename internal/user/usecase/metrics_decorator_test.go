package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/authkit/internal/user/domain"
	"github.com/allisson/authkit/internal/user/usecase"
	usecaseMocks "github.com/allisson/authkit/internal/user/usecase/mocks"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordAuthFailure(ctx context.Context, operation, reason string) {
	m.Called(ctx, operation, reason)
}

func expectRecord(ctx context.Context, m *mockBusinessMetrics, operation, status string) {
	m.On("RecordOperation", ctx, "user", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "user", operation, mock.AnythingOfType("time.Duration"), status).Return().Once()
}

func TestUserUseCaseWithMetrics(t *testing.T) {
	mockNext := &usecaseMocks.MockUserUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	uc := usecase.NewUserUseCaseWithMetrics(mockNext, mockMetrics)

	ctx := context.Background()
	user := &domain.User{Username: "johndoe"}

	t.Run("Create success", func(t *testing.T) {
		input := &usecase.CreateUserInput{Username: "johndoe"}
		mockNext.On("Create", ctx, input).Return(user, nil).Once()
		expectRecord(ctx, mockMetrics, "create", "success")

		res, err := uc.Create(ctx, input)
		assert.NoError(t, err)
		assert.Equal(t, user, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Get error", func(t *testing.T) {
		mockNext.On("Get", ctx, "ghost").Return(nil, domain.ErrUserNotFound).Once()
		expectRecord(ctx, mockMetrics, "get", "error")

		res, err := uc.Get(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Nil(t, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("SetDisabled success", func(t *testing.T) {
		mockNext.On("SetDisabled", ctx, "johndoe", true).Return(user, nil).Once()
		expectRecord(ctx, mockMetrics, "set_disabled", "success")

		res, err := uc.SetDisabled(ctx, "johndoe", true)
		assert.NoError(t, err)
		assert.Equal(t, user, res)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Delete error", func(t *testing.T) {
		deleteErr := errors.New("boom")
		mockNext.On("Delete", ctx, "johndoe").Return(deleteErr).Once()
		expectRecord(ctx, mockMetrics, "delete", "error")

		err := uc.Delete(ctx, "johndoe")
		assert.ErrorIs(t, err, deleteErr)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}
