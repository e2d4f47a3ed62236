package cli

import (
	"context"
	"fmt"
	"strings"

	"time-track-invoice/internal/domain"
	"time-track-invoice/internal/errors"
)

// parseFieldArgs parses repeated "name=value" arguments.
func parseFieldArgs(args []string) (map[string]string, error) {
	fields := make(map[string]string, len(args))
	for _, arg := range args {
		idx := strings.Index(arg, "=")
		if idx <= 0 {
			return nil, errors.NewValidationError(
				fmt.Sprintf("invalid field %q (expected name=value)", arg), nil)
		}
		fields[strings.TrimSpace(arg[:idx])] = arg[idx+1:]
	}
	return fields, nil
}

// SettingsCommands handles the settings subcommands
type SettingsCommands struct {
	app *App
}

// NewSettingsCommands creates a new settings command handler
func NewSettingsCommands(app *App) *SettingsCommands {
	return &SettingsCommands{app: app}
}

// settingsFields maps CLI field names onto the settings record.
var settingsFields = map[string]func(*domain.Settings, string){
	"owner-name":     func(s *domain.Settings, v string) { s.OwnerName = v },
	"address":        func(s *domain.Settings, v string) { s.Address = v },
	"town":           func(s *domain.Settings, v string) { s.Town = v },
	"county":         func(s *domain.Settings, v string) { s.County = v },
	"postcode":       func(s *domain.Settings, v string) { s.Postcode = v },
	"phone":          func(s *domain.Settings, v string) { s.Phone = v },
	"email":          func(s *domain.Settings, v string) { s.Email = v },
	"vat-number":     func(s *domain.Settings, v string) { s.VATNumber = v },
	"terms":          func(s *domain.Settings, v string) { s.TermsConditions = v },
	"account-name":   func(s *domain.Settings, v string) { s.BankAccountName = v },
	"sort-code":      func(s *domain.Settings, v string) { s.SortCode = v },
	"account-number": func(s *domain.Settings, v string) { s.AccountNumber = v },
}

// Show prints the business-details record.
func (c *SettingsCommands) Show(ctx context.Context) error {
	settings, err := c.app.api.GetSettings(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("show settings", err)
	}

	rows := []struct {
		label string
		value string
	}{
		{"Owner name", settings.OwnerName},
		{"Address", settings.Address},
		{"Town", settings.Town},
		{"County", settings.County},
		{"Postcode", settings.Postcode},
		{"Phone", settings.Phone},
		{"Email", settings.Email},
		{"VAT number", settings.VATNumber},
		{"Terms", settings.TermsConditions},
		{"Account name", settings.BankAccountName},
		{"Sort code", settings.SortCode},
		{"Account number", settings.AccountNumber},
	}

	empty := true
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		empty = false
		fmt.Fprintf(c.app.out, "%-15s %s\n", row.label+":", row.value)
	}
	if empty {
		fmt.Fprintln(c.app.out, "No settings configured")
	}
	return nil
}

// Set updates individual settings fields, leaving the rest untouched.
func (c *SettingsCommands) Set(ctx context.Context, fields map[string]string) error {
	if len(fields) == 0 {
		return c.app.errorHandler.Handle("update settings",
			errors.NewValidationError("no fields to update", nil))
	}

	settings, err := c.app.api.GetSettings(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("update settings", err)
	}

	for name, value := range fields {
		setter, ok := settingsFields[name]
		if !ok {
			return c.app.errorHandler.Handle("update settings",
				errors.NewValidationError(fmt.Sprintf("unknown settings field %q", name), nil))
		}
		setter(settings, value)
	}

	if err := c.app.api.UpdateSettings(ctx, *settings); err != nil {
		return c.app.errorHandler.Handle("update settings", err)
	}
	fmt.Fprintln(c.app.out, "Settings updated")
	return nil
}
