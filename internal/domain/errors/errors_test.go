package errors

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_IsMatchesByErrorCode(t *testing.T) {
	detailed := ErrInsufficientStock.WithDetails("Mezcal Joven: 1 available")

	assert.True(t, errors.Is(detailed, ErrInsufficientStock))
	assert.False(t, errors.Is(detailed, ErrProductNotFound))
	assert.Equal(t, "Mezcal Joven: 1 available", detailed.Details())

	// The predefined error itself carries no details.
	assert.Empty(t, ErrInsufficientStock.Details())
}

func TestBaseError_WrapMessageKeepsIdentity(t *testing.T) {
	err := ErrDuplicateAccount.WrapMessage("guest checkout email already registered")

	assert.True(t, errors.Is(err, ErrDuplicateAccount))

	var appErr AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "DUPLICATE_ACCOUNT", appErr.ErrorCode())
	assert.Equal(t, 409, appErr.HTTPCode())
}

func TestBaseError_WrappedThroughLayers(t *testing.T) {
	inner := ErrInvalidTransition.WithDetails("Completed").WrapMessage("request is already in a terminal state")
	outer := errors.Wrap(inner, "failed to execute request transition transaction")

	assert.True(t, errors.Is(outer, ErrInvalidTransition))

	var appErr AppError
	require.True(t, errors.As(outer, &appErr))
	assert.Equal(t, "Completed", appErr.Details())
}
