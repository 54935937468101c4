package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError_Error(t *testing.T) {
	err := NewExitError(ExitFailure, "threshold exceeded")
	assert.Equal(t, "threshold exceeded", err.Error())

	wrapped := WrapExitError(ExitCommandError, "bad config", errors.New("hours must be positive"))
	assert.Equal(t, "bad config: hours must be positive", wrapped.Error())
	assert.Equal(t, "hours must be positive", errors.Unwrap(wrapped).Error())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitFailure, GetExitCode(NewExitError(ExitFailure, "failed")))
	assert.Equal(t, ExitCommandError, GetExitCode(NewExitError(ExitCommandError, "bad flag")))

	// Wrapped ExitErrors are still found.
	inner := NewExitError(ExitCommandError, "bad flag")
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("outer: %w", inner)))

	// Plain errors default to failure.
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
}
