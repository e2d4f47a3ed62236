package validation

import (
	"regexp"

	"time-track-invoice/internal/errors"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ClientValidator validates client input
type ClientValidator struct {
	validator *Validator
}

// NewClientValidator creates a new ClientValidator instance
func NewClientValidator() *ClientValidator {
	return &ClientValidator{validator: NewValidator()}
}

// NewClientValidatorWithValidator creates a ClientValidator sharing an existing validator
func NewClientValidatorWithValidator(v *Validator) *ClientValidator {
	return &ClientValidator{validator: v}
}

// ValidateClientID validates a client identifier
func (cv *ClientValidator) ValidateClientID(id string) error {
	if !cv.validator.IsNonEmptyString(id) {
		return errors.NewValidationError("client id cannot be empty", nil)
	}
	return nil
}

// ValidateClientName validates a client name
func (cv *ClientValidator) ValidateClientName(name string) error {
	if !cv.validator.IsNonEmptyString(name) {
		return errors.NewValidationError("client name cannot be empty", nil)
	}
	if !cv.validator.IsValidNameLength(name) {
		return errors.NewValidationError("client name length is out of bounds", nil).
			WithContext("name", name)
	}
	return nil
}

// ValidateEmail validates a client email address. An empty email is
// allowed; the field is optional.
func (cv *ClientValidator) ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailPattern.MatchString(email) {
		return errors.NewValidationError("email address is malformed", nil).
			WithContext("email", email)
	}
	return nil
}
