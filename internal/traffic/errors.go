package traffic

import (
	"errors"
	"fmt"
)

// SimError represents a contract violation detected by the simulation core.
//
// The core has exactly two failure modes:
//   - Invalid argument: a negative deposit count or negative construction
//     parameter. Never clamped silently; surfaced immediately.
//   - Undefined estimate: linkability requested for an empty anonymity set,
//     where the base probability is a division by zero.
//
// All SimErrors propagate directly to the caller; none are retried or
// recovered inside the core.
type SimError struct {
	// Code identifies the error category.
	Code SimErrorCode

	// Message is a human-readable description.
	Message string

	// Details contains additional context (offending values, parameter names).
	Details map[string]string
}

// SimErrorCode categorizes simulation errors.
type SimErrorCode string

const (
	// ErrCodeInvalidArgument indicates a negative deposit count or a negative
	// construction parameter.
	ErrCodeInvalidArgument SimErrorCode = "INVALID_ARGUMENT"

	// ErrCodeUndefinedEstimate indicates a linkability estimate was requested
	// while the anonymity set is empty.
	ErrCodeUndefinedEstimate SimErrorCode = "UNDEFINED_ESTIMATE"
)

// Error implements the error interface.
func (e *SimError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidArgument returns true if the error is an invalid-argument error.
// Uses errors.As to handle wrapped errors.
func IsInvalidArgument(err error) bool {
	var se *SimError
	if errors.As(err, &se) {
		return se.Code == ErrCodeInvalidArgument
	}
	return false
}

// IsUndefinedEstimate returns true if the error is an undefined-estimate error.
// Uses errors.As to handle wrapped errors.
func IsUndefinedEstimate(err error) bool {
	var se *SimError
	if errors.As(err, &se) {
		return se.Code == ErrCodeUndefinedEstimate
	}
	return false
}

// NewInvalidArgumentError creates a SimError for an out-of-range input.
func NewInvalidArgumentError(message string, details map[string]string) *SimError {
	return &SimError{
		Code:    ErrCodeInvalidArgument,
		Message: message,
		Details: details,
	}
}

// NewUndefinedEstimateError creates a SimError for an estimate over an empty
// anonymity set.
func NewUndefinedEstimateError() *SimError {
	return &SimError{
		Code:    ErrCodeUndefinedEstimate,
		Message: "linkability is undefined for an empty anonymity set",
	}
}
