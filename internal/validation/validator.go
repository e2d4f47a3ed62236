package validation

import (
	"strings"
	"time"

	"time-track-invoice/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance using defaults
func NewValidator() *Validator {
	return &Validator{config: nil}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsValidNameLength checks if a name length is within configured limits
func (v *Validator) IsValidNameLength(name string) bool {
	length := len(strings.TrimSpace(name))
	return length >= v.nameMinLength() && length <= v.nameMaxLength()
}

// IsValidTimeRange checks if start time is strictly before end time
func (v *Validator) IsValidTimeRange(startTime, endTime time.Time) bool {
	return startTime.Before(endTime)
}

// IsValidSessionDuration checks if a duration is within configured bounds
func (v *Validator) IsValidSessionDuration(duration time.Duration) bool {
	return duration > 0 && duration <= v.maxSessionDuration()
}

// IsReasonableDate checks if a date is within reasonable bounds
func (v *Validator) IsReasonableDate(t time.Time) bool {
	now := time.Now()
	// Allow dates from 10 years ago to 1 year in the future
	tenYearsAgo := now.AddDate(-10, 0, 0)
	oneYearFromNow := now.AddDate(1, 0, 0)

	return t.After(tenYearsAgo) && t.Before(oneYearFromNow)
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

func (v *Validator) nameMinLength() int {
	if v.config != nil {
		return v.config.Validation.NameMinLength
	}
	return 1
}

func (v *Validator) nameMaxLength() int {
	if v.config != nil {
		return v.config.Validation.NameMaxLength
	}
	return 255
}

func (v *Validator) maxSessionDuration() time.Duration {
	if v.config != nil {
		return v.config.Validation.MaxSessionDuration
	}
	return 24 * time.Hour
}
