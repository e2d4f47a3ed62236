package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewValidationError(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := NewValidationError("name cannot be empty", cause)

	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "VALIDATION_FAILED", err.Code)
	assert.Equal(t, "name cannot be empty", err.Message)
	assert.Equal(t, cause, err.Unwrap())
	assert.Contains(t, err.Error(), "validation")
	assert.Contains(t, err.Error(), "underlying")
}

func TestNewConflictError(t *testing.T) {
	err := NewConflictError("a session is already running")

	assert.Equal(t, ErrorTypeConflict, err.Type)
	assert.Equal(t, "CONFLICT", err.Code)
	assert.True(t, err.IsType(ErrorTypeConflict))
	assert.False(t, err.IsType(ErrorTypeNotFound))
}

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("job", "abc-123")

	assert.Equal(t, ErrorTypeNotFound, err.Type)
	assert.Equal(t, "NOT_FOUND", err.Code)
	assert.Equal(t, "job not found: abc-123", err.Message)

	resource, ok := err.GetContext("resource")
	assert.True(t, ok)
	assert.Equal(t, "job", resource)
}

func TestNewPersistenceError(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := NewPersistenceError("create session", cause)

	assert.Equal(t, ErrorTypePersistence, err.Type)
	assert.Equal(t, "PERSISTENCE_ERROR", err.Code)
	assert.ErrorIs(t, err, cause)
}

func TestErrorTypeString(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeValidation, "validation"},
		{ErrorTypeConflict, "conflict"},
		{ErrorTypeNotFound, "not_found"},
		{ErrorTypePersistence, "persistence"},
		{ErrorType(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.errorType.String())
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NewNotFoundError("client", "c1")
	wrapped := fmt.Errorf("loading view: %w", appErr)

	unwrapped, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, ErrorTypeNotFound, unwrapped.Type)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestIsErrorType(t *testing.T) {
	err := NewConflictError("busy")

	assert.True(t, IsErrorType(err, ErrorTypeConflict))
	assert.False(t, IsErrorType(err, ErrorTypeValidation))
	assert.False(t, IsErrorType(errors.New("plain"), ErrorTypeConflict))
	assert.False(t, IsErrorType(nil, ErrorTypeConflict))
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "validation errors surface their message",
			err:      NewValidationError("hourly rate cannot be negative", nil),
			expected: "hourly rate cannot be negative",
		},
		{
			name:     "conflict errors surface their message",
			err:      NewConflictError("a session is already running"),
			expected: "a session is already running",
		},
		{
			name:     "not found errors surface their message",
			err:      NewNotFoundError("invoice", "i1"),
			expected: "invoice not found: i1",
		},
		{
			name:     "persistence errors are masked",
			err:      NewPersistenceError("update job", fmt.Errorf("locked")),
			expected: "A storage error occurred. Please try again.",
		},
		{
			name:     "plain errors pass through",
			err:      errors.New("plain"),
			expected: "plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetUserMessage(tt.err))
		})
	}
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewValidationError("bad input", nil)))
	assert.False(t, ShouldLogError(NewConflictError("busy")))
	assert.False(t, ShouldLogError(NewNotFoundError("job", "j1")))
	assert.True(t, ShouldLogError(NewPersistenceError("write", fmt.Errorf("io"))))
	assert.True(t, ShouldLogError(errors.New("plain")))
}

func TestWithContext(t *testing.T) {
	err := NewConflictError("a session is already running").
		WithContext("active_job_id", "j-42")

	value, ok := err.GetContext("active_job_id")
	assert.True(t, ok)
	assert.Equal(t, "j-42", value)

	_, ok = err.GetContext("missing")
	assert.False(t, ok)
}

func TestWrapError(t *testing.T) {
	cause := errors.New("json: cannot unmarshal")
	err := WrapError(cause, ErrorTypeValidation, "invoice could not be decoded")

	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "invoice could not be decoded", err.Message)
}
