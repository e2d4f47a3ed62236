package cli

import (
	"fmt"

	"time-track-invoice/internal/errors"
)

// ErrorHandler provides centralized error handling for command handlers
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle provides user-friendly error messages with operation context
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("failed to %s: %s", operation, errors.GetUserMessage(err))
	}

	// Fallback for unknown errors
	return fmt.Errorf("failed to %s: %w", operation, err)
}

// HandleSimple provides user-friendly error messages without operation context
func (eh *ErrorHandler) HandleSimple(err error) error {
	if _, ok := errors.AsAppError(err); ok {
		return fmt.Errorf("%s", errors.GetUserMessage(err))
	}
	return err
}

// IsValidationError checks if an error is a validation error
func (eh *ErrorHandler) IsValidationError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeValidation)
}

// IsConflictError checks if an error is a conflict error
func (eh *ErrorHandler) IsConflictError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeConflict)
}

// IsNotFoundError checks if an error is a not found error
func (eh *ErrorHandler) IsNotFoundError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeNotFound)
}

// GetErrorCode returns the error code for structured errors
func (eh *ErrorHandler) GetErrorCode(err error) string {
	return errors.GetErrorCode(err)
}
