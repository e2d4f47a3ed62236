package billing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundToNext15(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected time.Duration
	}{
		{
			name:     "should leave zero at zero",
			input:    0,
			expected: 0,
		},
		{
			name:     "should round one millisecond up to fifteen minutes",
			input:    time.Millisecond,
			expected: 15 * time.Minute,
		},
		{
			name:     "should round ten minutes up to fifteen minutes",
			input:    10 * time.Minute,
			expected: 15 * time.Minute,
		},
		{
			name:     "should keep exact fifteen minutes unchanged",
			input:    15 * time.Minute,
			expected: 15 * time.Minute,
		},
		{
			name:     "should round fifty minutes up to an hour",
			input:    50 * time.Minute,
			expected: time.Hour,
		},
		{
			name:     "should round just over an hour to the next quarter",
			input:    time.Hour + time.Second,
			expected: time.Hour + 15*time.Minute,
		},
		{
			name:     "should treat negative durations as zero",
			input:    -time.Minute,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RoundToNext15(tt.input))
		})
	}
}

func TestRoundToNext15_Properties(t *testing.T) {
	inputs := []time.Duration{
		time.Millisecond,
		time.Second,
		7 * time.Minute,
		14*time.Minute + 59*time.Second,
		15 * time.Minute,
		22 * time.Minute,
		50 * time.Minute,
		3*time.Hour + time.Minute,
		26 * time.Hour,
	}

	for _, d := range inputs {
		rounded := RoundToNext15(d)

		// Any positive duration bills at least one increment, always on a boundary.
		assert.GreaterOrEqual(t, rounded, BillingIncrement, "input %v", d)
		assert.Zero(t, rounded%BillingIncrement, "input %v", d)
		assert.GreaterOrEqual(t, rounded, d, "input %v", d)

		// Re-rounding is idempotent.
		assert.Equal(t, rounded, RoundToNext15(rounded), "input %v", d)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Duration
		expected string
	}{
		{
			name:     "should format zero",
			input:    0,
			expected: "0h 0m 0s",
		},
		{
			name:     "should format seconds only",
			input:    42 * time.Second,
			expected: "0h 0m 42s",
		},
		{
			name:     "should format a full decomposition",
			input:    2*time.Hour + 5*time.Minute + 9*time.Second,
			expected: "2h 5m 9s",
		},
		{
			name:     "should truncate sub-second remainders",
			input:    time.Minute + 500*time.Millisecond,
			expected: "0h 1m 0s",
		},
		{
			name:     "should not wrap hours into days",
			input:    26 * time.Hour,
			expected: "26h 0m 0s",
		},
		{
			name:     "should clamp negative durations to zero",
			input:    -time.Hour,
			expected: "0h 0m 0s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDuration(tt.input))
		})
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "GBP 20.00", FormatCurrency(decimal.NewFromInt(20)))
	assert.Equal(t, "GBP 0.00", FormatCurrency(decimal.Zero))
	assert.Equal(t, "GBP 12.50", FormatCurrency(decimal.RequireFromString("12.5")))
	assert.Equal(t, "GBP -3.75", FormatCurrency(decimal.RequireFromString("-3.75")))
	assert.Equal(t, "EUR 99.99", FormatCurrencyWith("EUR", decimal.RequireFromString("99.99")))
}

func TestEarnings(t *testing.T) {
	rate := decimal.NewFromInt(20)

	// A 50 minute session bills as a rounded hour.
	duration := RoundToNext15(50 * time.Minute)
	assert.Equal(t, time.Hour, duration)
	assert.True(t, Earnings(duration, rate).Equal(decimal.NewFromInt(20)),
		"one hour at GBP 20 should earn exactly 20")

	// A quarter hour earns a quarter of the rate, exactly.
	assert.True(t, Earnings(15*time.Minute, rate).Equal(decimal.NewFromInt(5)))

	// Zero duration earns exactly zero.
	assert.True(t, Earnings(0, rate).Equal(decimal.Zero))

	// Repeated decimal sums do not drift.
	sum := decimal.Zero
	for i := 0; i < 10; i++ {
		sum = sum.Add(Earnings(15*time.Minute, decimal.RequireFromString("0.1")))
	}
	assert.True(t, sum.Equal(decimal.RequireFromString("0.25")), "got %s", sum)
}
