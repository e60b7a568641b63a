package errors

import (
	"errors"
	"testing"
)

type customError struct {
	Msg string
}

func (e customError) Error() string { return e.Msg }

func TestNew(t *testing.T) {
	err := New("test error")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Error() != "test error" {
		t.Errorf("expected 'test error', got '%s'", err.Error())
	}
}

func TestWrap(t *testing.T) {
	baseErr := errors.New("base error")

	t.Run("wrap non-nil error", func(t *testing.T) {
		wrapped := Wrap(baseErr, "wrapped")
		if wrapped.Error() != "wrapped: base error" {
			t.Errorf("unexpected message '%s'", wrapped.Error())
		}
		if !errors.Is(wrapped, baseErr) {
			t.Error("expected wrapped error to wrap baseErr")
		}
	})

	t.Run("wrap nil error", func(t *testing.T) {
		if wrapped := Wrap(nil, "wrapped"); wrapped != nil {
			t.Errorf("expected nil, got %v", wrapped)
		}
	})
}

func TestWrapf(t *testing.T) {
	baseErr := errors.New("base error")

	wrapped := Wrapf(baseErr, "user %q", "johndoe")
	if wrapped.Error() != `user "johndoe": base error` {
		t.Errorf("unexpected message '%s'", wrapped.Error())
	}
	if !errors.Is(wrapped, baseErr) {
		t.Error("expected wrapped error to wrap baseErr")
	}
	if Wrapf(nil, "x %d", 1) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestWithCode(t *testing.T) {
	expired := WithCode(Wrap(ErrUnauthorized, "token expired"), "token_expired")

	t.Run("message is unchanged", func(t *testing.T) {
		if expired.Error() != "token expired: unauthorized" {
			t.Errorf("unexpected message '%s'", expired.Error())
		}
	})

	t.Run("category survives", func(t *testing.T) {
		if !Is(expired, ErrUnauthorized) {
			t.Error("expected coded error to match its category")
		}
	})

	t.Run("code survives further wrapping", func(t *testing.T) {
		wrapped := Wrap(expired, "resolve")
		if got := Code(wrapped); got != "token_expired" {
			t.Errorf("expected 'token_expired', got '%s'", got)
		}
		if !Is(wrapped, expired) {
			t.Error("expected wrapped error to match the coded sentinel")
		}
	})

	t.Run("no code", func(t *testing.T) {
		if got := Code(ErrNotFound); got != "" {
			t.Errorf("expected empty code, got '%s'", got)
		}
		if WithCode(nil, "x") != nil {
			t.Error("expected nil for nil error")
		}
	})
}

func TestIs(t *testing.T) {
	if !Is(Wrap(ErrNotFound, "context"), ErrNotFound) {
		t.Error("expected wrapped ErrNotFound to be ErrNotFound")
	}
	if Is(ErrNotFound, ErrConflict) {
		t.Error("expected ErrNotFound NOT to be ErrConflict")
	}
}

func TestAs(t *testing.T) {
	wrapped := Wrap(customError{Msg: "custom"}, "context")

	var target customError
	if !As(wrapped, &target) {
		t.Fatal("expected wrapped error to be able to extract target")
	}
	if target.Msg != "custom" {
		t.Errorf("expected 'custom', got '%s'", target.Msg)
	}
}

func TestJoin(t *testing.T) {
	joined := Join(ErrNotFound, ErrConflict)
	if !Is(joined, ErrNotFound) || !Is(joined, ErrConflict) {
		t.Error("expected joined error to match both members")
	}
}

func TestStandardErrors(t *testing.T) {
	tests := []struct {
		err  error
		text string
	}{
		{ErrNotFound, "not found"},
		{ErrConflict, "conflict"},
		{ErrInvalidInput, "invalid input"},
		{ErrUnauthorized, "unauthorized"},
		{ErrForbidden, "forbidden"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.text {
			t.Errorf("expected text '%s' for error, got '%s'", tt.text, tt.err.Error())
		}
	}
}
