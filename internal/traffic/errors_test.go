package traffic

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimError_Message(t *testing.T) {
	err := NewInvalidArgumentError("new deposits must be non-negative", map[string]string{
		"new_deposits": "-1",
	})

	assert.Equal(t, "INVALID_ARGUMENT: new deposits must be non-negative", err.Error())
	assert.Equal(t, "-1", err.Details["new_deposits"])
}

func TestIsInvalidArgument(t *testing.T) {
	err := NewInvalidArgumentError("bad input", nil)

	assert.True(t, IsInvalidArgument(err))
	assert.False(t, IsUndefinedEstimate(err))
}

func TestIsUndefinedEstimate(t *testing.T) {
	err := NewUndefinedEstimateError()

	assert.True(t, IsUndefinedEstimate(err))
	assert.False(t, IsInvalidArgument(err))
}

func TestErrorHelpers_WrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("advance hour 3: %w", NewInvalidArgumentError("bad input", nil))
	assert.True(t, IsInvalidArgument(wrapped), "helpers should unwrap")

	wrapped = fmt.Errorf("estimate: %w", NewUndefinedEstimateError())
	assert.True(t, IsUndefinedEstimate(wrapped), "helpers should unwrap")
}

func TestErrorHelpers_NonSimErrors(t *testing.T) {
	err := fmt.Errorf("something else")
	assert.False(t, IsInvalidArgument(err))
	assert.False(t, IsUndefinedEstimate(err))
}
