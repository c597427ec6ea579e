package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Sentinel error identity ---

func TestSentinelErrors_AreDistinct(t *testing.T) {
	sentinels := []error{
		ErrNotFound, ErrAlreadyExists, ErrInvalidInput, ErrUnauthorized,
		ErrConflict, ErrInvalidTransition, ErrInternal,
	}

	for i := 0; i < len(sentinels); i++ {
		for j := i + 1; j < len(sentinels); j++ {
			assert.NotEqual(t, sentinels[i], sentinels[j],
				"sentinels %d and %d should be distinct", i, j)
		}
	}
}

// --- AppError behavior ---

func TestAppError_ErrorString_WithWrappedError(t *testing.T) {
	inner := fmt.Errorf("catalog corrupted")
	appErr := &AppError{Code: CodeInternal, Message: "something broke", Err: inner}
	assert.Contains(t, appErr.Error(), "INTERNAL_ERROR")
	assert.Contains(t, appErr.Error(), "something broke")
	assert.Contains(t, appErr.Error(), "catalog corrupted")
}

func TestAppError_ErrorString_WithoutWrappedError(t *testing.T) {
	appErr := &AppError{Code: CodeNotFound, Message: "product not found"}
	assert.Equal(t, "NOT_FOUND: product not found", appErr.Error())
}

func TestAppError_Unwrap(t *testing.T) {
	appErr := &AppError{Code: CodeNotFound, Message: "nope", Err: ErrNotFound}
	assert.True(t, errors.Is(appErr, ErrNotFound))
	assert.Nil(t, (&AppError{Code: "TEST"}).Unwrap())
}

// --- Constructor functions ---

func TestNew_WrapsCustomSentinel(t *testing.T) {
	sentinel := errors.New("cart is empty")
	err := New(CodeConflict, "cannot check out", sentinel)
	assert.True(t, errors.Is(err, sentinel))
	assert.Equal(t, CodeConflict, CodeOf(err))
	assert.Equal(t, "cannot check out", UserMessage(err))
}

func TestNotFound(t *testing.T) {
	err := NotFound("product", "ZZZ")
	require.NotNil(t, err)
	assert.Equal(t, CodeNotFound, err.Code)
	assert.Contains(t, err.Message, "product")
	assert.Contains(t, err.Message, "ZZZ")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAlreadyExists(t *testing.T) {
	err := AlreadyExists("product", "id", "ABC")
	require.NotNil(t, err)
	assert.Equal(t, CodeAlreadyExists, err.Code)
	assert.Contains(t, err.Message, `"ABC"`)
	assert.True(t, errors.Is(err, ErrAlreadyExists))
}

func TestInvalidInput(t *testing.T) {
	err := InvalidInput("quantity must be at least 1")
	assert.Equal(t, CodeInvalidInput, err.Code)
	assert.Equal(t, "quantity must be at least 1", err.Message)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestUnauthorized(t *testing.T) {
	err := Unauthorized("login required")
	assert.Equal(t, CodeUnauthorized, err.Code)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestConflict(t *testing.T) {
	err := Conflict("order already exists")
	assert.Equal(t, CodeConflict, err.Code)
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestInvalidTransition(t *testing.T) {
	err := InvalidTransition("order", "cancelled", "placed")
	assert.Equal(t, CodeInvalidTransition, err.Code)
	assert.Equal(t, "order cannot move from cancelled to placed", err.Message)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestInternal(t *testing.T) {
	inner := errors.New("boom")
	err := Internal(inner)
	assert.Equal(t, CodeInternal, err.Code)
	assert.True(t, errors.Is(err, inner))
}

func TestWrap(t *testing.T) {
	err := Wrap(ErrNotFound, "load order")
	assert.Equal(t, "load order: resource not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
}

// --- Classification ---

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"app error", InvalidInput("x"), CodeInvalidInput},
		{"wrapped app error", fmt.Errorf("ctx: %w", NotFound("order", "7")), CodeNotFound},
		{"bare not found", ErrNotFound, CodeNotFound},
		{"bare exists", ErrAlreadyExists, CodeAlreadyExists},
		{"bare invalid", ErrInvalidInput, CodeInvalidInput},
		{"bare unauthorized", ErrUnauthorized, CodeUnauthorized},
		{"bare conflict", ErrConflict, CodeConflict},
		{"bare transition", ErrInvalidTransition, CodeInvalidTransition},
		{"unknown", errors.New("mystery"), CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestUserMessage_PlainError(t *testing.T) {
	assert.Equal(t, "mystery", UserMessage(errors.New("mystery")))
}
