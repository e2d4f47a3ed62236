package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"time-track-invoice/internal/api"
	"time-track-invoice/internal/config"
	"time-track-invoice/internal/errors"
)

// timeNow is a variable that can be replaced in tests
var timeNow = time.Now

// dateLayouts accepted for command arguments, tried in order. The
// configured display format only affects output.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"02/01/2006",
	"02/01/2006 15:04",
}

// App carries the shared dependencies every command handler needs.
type App struct {
	api          api.API
	config       *config.Config
	errorHandler *ErrorHandler
	out          io.Writer
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance api.API, cfg *config.Config) *App {
	return &App{
		api:          apiInstance,
		config:       cfg,
		errorHandler: NewErrorHandler(),
		out:          os.Stdout,
	}
}

// SetOutput redirects command output, used by tests.
func (a *App) SetOutput(w io.Writer) {
	a.out = w
}

// parseDate parses a user-supplied date or date-time argument.
func parseDate(arg string) (time.Time, error) {
	trimmed := strings.TrimSpace(arg)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.NewValidationError(
		fmt.Sprintf("invalid date %q (expected YYYY-MM-DD or DD/MM/YYYY)", arg), nil)
}

// parseAmount parses a user-supplied decimal amount such as a rate or
// manual line-item value.
func parseAmount(arg string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(arg))
	if err != nil {
		return decimal.Zero, errors.NewValidationError(
			fmt.Sprintf("invalid amount %q", arg), err)
	}
	return d, nil
}

// endOfDay extends a bare date to the last instant of that day so that
// inclusive period filters cover the whole day.
func endOfDay(t time.Time) time.Time {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
		return t.Add(24*time.Hour - time.Nanosecond)
	}
	return t
}
