package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateClientName(t *testing.T) {
	cv := NewClientValidator()

	assert.NoError(t, cv.ValidateClientName("Acme Ltd"))
	assert.Error(t, cv.ValidateClientName(""))
	assert.Error(t, cv.ValidateClientName("  "))
}

func TestValidateEmail(t *testing.T) {
	cv := NewClientValidator()

	tests := []struct {
		email   string
		wantErr bool
	}{
		{"", false}, // optional field
		{"billing@acme.example", false},
		{"a@b.co", false},
		{"no-at-sign", true},
		{"two@@signs.example", true},
		{"spaces in@addr.example", true},
		{"missing@tld", true},
	}

	for _, tt := range tests {
		err := cv.ValidateEmail(tt.email)
		if tt.wantErr {
			assert.Error(t, err, "email %q", tt.email)
		} else {
			assert.NoError(t, err, "email %q", tt.email)
		}
	}
}

func TestValidatePeriod(t *testing.T) {
	iv := NewInvoiceValidator()
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, iv.ValidatePeriod(start, start.AddDate(0, 1, 0)))
	// A single-day period is valid: both bounds are inclusive
	assert.NoError(t, iv.ValidatePeriod(start, start))
	assert.Error(t, iv.ValidatePeriod(start, start.AddDate(0, 0, -1)))
	assert.Error(t, iv.ValidatePeriod(time.Time{}, start))
	assert.Error(t, iv.ValidatePeriod(start, time.Time{}))
}

func TestValidateManualItemDescription(t *testing.T) {
	iv := NewInvoiceValidator()

	assert.NoError(t, iv.ValidateManualItemDescription("Hosting"))
	assert.Error(t, iv.ValidateManualItemDescription(""))
	assert.Error(t, iv.ValidateManualItemDescription("   "))
}
