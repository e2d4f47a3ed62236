package validation

import (
	"time"

	"time-track-invoice/internal/errors"
)

// InvoiceValidator validates invoice input
type InvoiceValidator struct {
	validator *Validator
}

// NewInvoiceValidator creates a new InvoiceValidator instance
func NewInvoiceValidator() *InvoiceValidator {
	return &InvoiceValidator{validator: NewValidator()}
}

// NewInvoiceValidatorWithValidator creates an InvoiceValidator sharing an existing validator
func NewInvoiceValidatorWithValidator(v *Validator) *InvoiceValidator {
	return &InvoiceValidator{validator: v}
}

// ValidateInvoiceID validates an invoice identifier
func (iv *InvoiceValidator) ValidateInvoiceID(id string) error {
	if !iv.validator.IsNonEmptyString(id) {
		return errors.NewValidationError("invoice id cannot be empty", nil)
	}
	return nil
}

// ValidatePeriod validates an invoice date range. Both bounds are
// inclusive; the end must not precede the start.
func (iv *InvoiceValidator) ValidatePeriod(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return errors.NewValidationError("period start and end are required", nil)
	}
	if end.Before(start) {
		return errors.NewValidationError("period end must not precede period start", nil).
			WithContext("start", start).
			WithContext("end", end)
	}
	return nil
}

// ValidateManualItemDescription validates a free-form line item description
func (iv *InvoiceValidator) ValidateManualItemDescription(description string) error {
	if !iv.validator.IsNonEmptyString(description) {
		return errors.NewValidationError("line item description cannot be empty", nil)
	}
	return nil
}
