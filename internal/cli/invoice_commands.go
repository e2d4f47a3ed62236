package cli

import (
	"context"
	"fmt"
	"strings"

	"time-track-invoice/internal/billing"
	"time-track-invoice/internal/domain"
	"time-track-invoice/internal/errors"
	"time-track-invoice/internal/render"
	"time-track-invoice/internal/services"
)

// InvoiceCommands handles the invoice subcommands
type InvoiceCommands struct {
	app      *App
	renderer render.DocumentRenderer
}

// NewInvoiceCommands creates a new invoice command handler
func NewInvoiceCommands(app *App) *InvoiceCommands {
	return &InvoiceCommands{
		app: app,
		renderer: render.NewTextRenderer(
			app.config.Display.CurrencyPrefix,
			app.config.Display.DateFormat),
	}
}

// parseManualItems parses repeated "description=amount" arguments.
func parseManualItems(args []string) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(args))
	for _, arg := range args {
		idx := strings.LastIndex(arg, "=")
		if idx <= 0 || idx == len(arg)-1 {
			return nil, errors.NewValidationError(
				fmt.Sprintf("invalid manual item %q (expected description=amount)", arg), nil)
		}
		amount, err := parseAmount(arg[idx+1:])
		if err != nil {
			return nil, err
		}
		items = append(items, domain.ManualItem(strings.TrimSpace(arg[:idx]), amount))
	}
	return items, nil
}

// Compute aggregates a client's sessions over a period and prints the
// resulting invoice. With save set the result is also persisted.
func (c *InvoiceCommands) Compute(ctx context.Context, clientID, fromArg, toArg string, itemArgs []string, save bool) error {
	from, err := parseDate(fromArg)
	if err != nil {
		return c.app.errorHandler.Handle("compute invoice", err)
	}
	to, err := parseDate(toArg)
	if err != nil {
		return c.app.errorHandler.Handle("compute invoice", err)
	}

	manualItems, err := parseManualItems(itemArgs)
	if err != nil {
		return c.app.errorHandler.Handle("compute invoice", err)
	}

	period := services.Period{Start: from, End: endOfDay(to)}
	computed, err := c.app.api.ComputeInvoice(ctx, clientID, period, manualItems)
	if err != nil {
		return c.app.errorHandler.Handle("compute invoice", err)
	}

	doc, err := c.app.api.BuildInvoiceDocument(ctx, computed)
	if err != nil {
		return c.app.errorHandler.Handle("compute invoice", err)
	}
	rendered, err := c.renderer.Render(doc)
	if err != nil {
		return c.app.errorHandler.Handle("compute invoice", err)
	}
	c.app.out.Write(rendered)

	if save {
		invoice, err := c.app.api.SaveInvoice(ctx, computed)
		if err != nil {
			return c.app.errorHandler.Handle("save invoice", err)
		}
		fmt.Fprintf(c.app.out, "\nSaved invoice %s\n", invoice.ID)
	}
	return nil
}

// List prints every saved invoice.
func (c *InvoiceCommands) List(ctx context.Context) error {
	invoices, err := c.app.api.ListInvoices(ctx)
	if err != nil {
		return c.app.errorHandler.Handle("list invoices", err)
	}
	if len(invoices) == 0 {
		fmt.Fprintln(c.app.out, "No invoices found")
		return nil
	}

	prefix := c.app.config.Display.CurrencyPrefix
	dateFormat := c.app.config.Display.DateFormat
	for _, invoice := range invoices {
		fmt.Fprintf(c.app.out, "%s - %s  %s  [%s]\n",
			invoice.PeriodStart.Format(dateFormat),
			invoice.PeriodEnd.Format(dateFormat),
			billing.FormatCurrencyWith(prefix, invoice.Total),
			invoice.ID)
	}
	return nil
}

// Show renders a saved invoice snapshot. The snapshot is printed as
// stored; it is not recomputed.
func (c *InvoiceCommands) Show(ctx context.Context, id string) error {
	invoice, err := c.app.api.GetInvoice(ctx, id)
	if err != nil {
		return c.app.errorHandler.Handle("show invoice", err)
	}

	computed := &services.ComputedInvoice{
		ClientID:  invoice.ClientID,
		Period:    services.Period{Start: invoice.PeriodStart, End: invoice.PeriodEnd},
		LineItems: invoice.LineItems,
		Total:     invoice.Total,
	}
	doc, err := c.app.api.BuildInvoiceDocument(ctx, computed)
	if err != nil {
		return c.app.errorHandler.Handle("show invoice", err)
	}
	doc.CreatedAt = invoice.CreatedAt

	rendered, err := c.renderer.Render(doc)
	if err != nil {
		return c.app.errorHandler.Handle("show invoice", err)
	}
	c.app.out.Write(rendered)
	return nil
}

// Delete removes a saved invoice snapshot.
func (c *InvoiceCommands) Delete(ctx context.Context, id string) error {
	if err := c.app.api.DeleteInvoice(ctx, id); err != nil {
		return c.app.errorHandler.Handle("delete invoice", err)
	}
	fmt.Fprintf(c.app.out, "Deleted invoice %s\n", id)
	return nil
}
