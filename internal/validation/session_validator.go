package validation

import (
	"time"

	"time-track-invoice/internal/errors"
)

// SessionValidator validates session input
type SessionValidator struct {
	validator *Validator
}

// NewSessionValidator creates a new SessionValidator instance
func NewSessionValidator() *SessionValidator {
	return &SessionValidator{validator: NewValidator()}
}

// NewSessionValidatorWithValidator creates a SessionValidator sharing an existing validator
func NewSessionValidatorWithValidator(v *Validator) *SessionValidator {
	return &SessionValidator{validator: v}
}

// ValidateSessionID validates a session identifier
func (sv *SessionValidator) ValidateSessionID(id string) error {
	if !sv.validator.IsNonEmptyString(id) {
		return errors.NewValidationError("session id cannot be empty", nil)
	}
	return nil
}

// ValidateManualRange validates the time range of a manual entry. The
// end must be strictly after the start; equal times are rejected.
func (sv *SessionValidator) ValidateManualRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errors.NewValidationError("start and end times are required", nil)
	}
	if !sv.validator.IsValidTimeRange(start, end) {
		return errors.NewValidationError("end time must be after start time", nil).
			WithContext("start", start).
			WithContext("end", end)
	}
	if !sv.validator.IsValidSessionDuration(end.Sub(start)) {
		return errors.NewValidationError("session duration is out of bounds", nil).
			WithContext("duration", end.Sub(start).String())
	}
	if !sv.validator.IsReasonableDate(start) {
		return errors.NewValidationError("start time is outside the reasonable date range", nil).
			WithContext("start", start)
	}
	return nil
}
