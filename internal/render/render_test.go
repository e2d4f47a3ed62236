package render

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"time-track-invoice/internal/domain"
)

func testDocument() *InvoiceDocument {
	return &InvoiceDocument{
		Client: &domain.Client{
			Name:     "Acme Ltd",
			Address:  "1 Industrial Way",
			Postcode: "AB1 2CD",
		},
		Settings: domain.Settings{
			OwnerName:       "J Smith",
			Town:            "Bristol",
			VATNumber:       "GB123456789",
			BankAccountName: "J Smith Consulting",
			SortCode:        "12-34-56",
			AccountNumber:   "12345678",
			TermsConditions: "Payment within 30 days",
		},
		PeriodStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		LineItems: []domain.LineItem{
			{
				Description: "Website redesign",
				Hours:       decimal.RequireFromString("2.5"),
				Rate:        decimal.RequireFromString("40"),
				Amount:      decimal.RequireFromString("100"),
			},
			domain.ManualItem("Hosting", decimal.RequireFromString("25.00")),
		},
		Total: decimal.RequireFromString("125.00"),
	}
}

func TestTextRendererLayout(t *testing.T) {
	renderer := NewTextRenderer("GBP", "02/01/2006")

	out, err := renderer.Render(testDocument())
	require.NoError(t, err)
	text := string(out)

	// Owner block
	assert.Contains(t, text, "J Smith\n")
	assert.Contains(t, text, "VAT: GB123456789")

	// Client block and period in UK date format
	assert.Contains(t, text, "To: Acme Ltd")
	assert.Contains(t, text, "Period: 01/03/2026 - 31/03/2026")

	// Timed line item with hours and rate, manual item without
	assert.Contains(t, text, "2.50 h @ GBP 40.00")
	assert.Contains(t, text, "Hosting")
	assert.NotContains(t, text, "0.00 h")

	// Total and payment details
	assert.Contains(t, text, "Total: GBP 125.00")
	assert.Contains(t, text, "Sort code: 12-34-56")
	assert.Contains(t, text, "Terms: Payment within 30 days")
}

func TestTextRendererMinimalDocument(t *testing.T) {
	renderer := NewTextRenderer("GBP", "02/01/2006")

	doc := &InvoiceDocument{
		PeriodStart: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC),
		Total:       decimal.Zero,
	}

	out, err := renderer.Render(doc)
	require.NoError(t, err)
	text := string(out)

	// No client, settings or line items; still a valid document
	assert.Contains(t, text, "INVOICE")
	assert.Contains(t, text, "Total: GBP 0.00")
	assert.NotContains(t, text, "To:")
	assert.NotContains(t, text, "Payment details")
}

func TestTextRendererNilDocument(t *testing.T) {
	renderer := NewTextRenderer("GBP", "02/01/2006")

	_, err := renderer.Render(nil)
	assert.Error(t, err)
}
