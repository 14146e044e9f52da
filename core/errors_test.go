package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelegationError_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewEngineError(cause)

	assert.Equal(t, ErrorKindEngine, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")

	// wrapping through fmt keeps the kind discoverable
	wrapped := fmt.Errorf("delegate: %w", err)
	assert.Equal(t, ErrorKindEngine, KindOf(wrapped))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(errors.New("plain")))
}

func TestErrorResult(t *testing.T) {
	res := ErrorResult(NewValidationError("missing instruction"))
	assert.False(t, res.Success)
	require.NotNil(t, res.Error)
	assert.Equal(t, ErrorKindValidation, res.Error.Kind)
	assert.Equal(t, "missing instruction", res.Error.Message)

	// plain errors render as engine-kind details rather than crashing the caller
	res = ErrorResult(errors.New("boom"))
	require.NotNil(t, res.Error)
	assert.Equal(t, ErrorKindEngine, res.Error.Kind)
}

func TestOKResult(t *testing.T) {
	res := OKResult(&DelegationResult{Response: "done", SessionID: "p-a-1"})
	assert.True(t, res.Success)
	assert.Equal(t, "done", res.Response)
	assert.Equal(t, "p-a-1", res.SessionID)
	assert.Nil(t, res.Error)
}
