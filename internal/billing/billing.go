package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BillingIncrement is the granularity tracked time is billed at.
const BillingIncrement = 15 * time.Minute

// DefaultCurrencyPrefix is used when no currency is configured.
const DefaultCurrencyPrefix = "GBP"

var msPerHour = decimal.NewFromInt(3_600_000)

// RoundToNext15 rounds a duration up to the next multiple of 15 minutes.
// A zero or negative duration rounds to 0; any positive duration rounds
// up to at least 15 minutes.
func RoundToNext15(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	blocks := (d + BillingIncrement - 1) / BillingIncrement
	return blocks * BillingIncrement
}

// FormatDuration decomposes a duration into whole hours, minutes and
// seconds for display. Truncates, never rounds; display only, not for
// billing math.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSeconds := int64(d / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}

// FormatCurrency formats a monetary amount with the default currency prefix.
func FormatCurrency(amount decimal.Decimal) string {
	return FormatCurrencyWith(DefaultCurrencyPrefix, amount)
}

// FormatCurrencyWith formats a monetary amount to fixed two decimal places
// with the given currency prefix.
func FormatCurrencyWith(prefix string, amount decimal.Decimal) string {
	return prefix + " " + amount.StringFixed(2)
}

// Hours converts a tracked duration to decimal hours.
func Hours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(d.Milliseconds()).Div(msPerHour)
}

// Earnings computes the amount owed for a tracked duration at an hourly rate.
// All arithmetic is decimal to avoid floating-point drift across sums.
func Earnings(d time.Duration, hourlyRate decimal.Decimal) decimal.Decimal {
	return Hours(d).Mul(hourlyRate)
}
