package validation

import (
	"github.com/shopspring/decimal"

	"time-track-invoice/internal/errors"
)

// JobValidator validates job input
type JobValidator struct {
	validator *Validator
}

// NewJobValidator creates a new JobValidator instance
func NewJobValidator() *JobValidator {
	return &JobValidator{validator: NewValidator()}
}

// NewJobValidatorWithValidator creates a JobValidator sharing an existing validator
func NewJobValidatorWithValidator(v *Validator) *JobValidator {
	return &JobValidator{validator: v}
}

// ValidateJobName validates a job name for creation or update
func (jv *JobValidator) ValidateJobName(name string) error {
	if !jv.validator.IsNonEmptyString(name) {
		return errors.NewValidationError("job name cannot be empty", nil)
	}
	if !jv.validator.IsValidNameLength(name) {
		return errors.NewValidationError("job name length is out of bounds", nil).
			WithContext("name", name)
	}
	return nil
}

// ValidateHourlyRate validates a job hourly rate
func (jv *JobValidator) ValidateHourlyRate(rate decimal.Decimal) error {
	if rate.IsNegative() {
		return errors.NewValidationError("hourly rate cannot be negative", nil).
			WithContext("rate", rate.String())
	}
	return nil
}

// ValidateJobID validates a job identifier
func (jv *JobValidator) ValidateJobID(id string) error {
	if !jv.validator.IsNonEmptyString(id) {
		return errors.NewValidationError("job id cannot be empty", nil)
	}
	return nil
}

// ValidateJobForCreation validates all job creation input
func (jv *JobValidator) ValidateJobForCreation(name string, rate decimal.Decimal) error {
	if err := jv.ValidateJobName(name); err != nil {
		return err
	}
	return jv.ValidateHourlyRate(rate)
}
