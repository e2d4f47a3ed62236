package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"time-track-invoice/internal/billing"
	"time-track-invoice/internal/domain"
)

// InvoiceDocument is the data contract handed to a document renderer. It
// carries everything a printable invoice needs; layout and output format
// are the renderer's concern.
type InvoiceDocument struct {
	Client      *domain.Client // nil when the invoice has no client
	Settings    domain.Settings
	PeriodStart time.Time
	PeriodEnd   time.Time
	LineItems   []domain.LineItem
	Total       decimal.Decimal
	CreatedAt   time.Time
}

// DocumentRenderer lays out an invoice document and produces its bytes.
type DocumentRenderer interface {
	Render(doc *InvoiceDocument) ([]byte, error)
}

// TextRenderer produces a plain-text invoice layout.
type TextRenderer struct {
	currencyPrefix string
	dateFormat     string
}

// NewTextRenderer creates a TextRenderer with the given display settings.
func NewTextRenderer(currencyPrefix, dateFormat string) *TextRenderer {
	return &TextRenderer{
		currencyPrefix: currencyPrefix,
		dateFormat:     dateFormat,
	}
}

// Render lays out the invoice as plain text.
func (r *TextRenderer) Render(doc *InvoiceDocument) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("nil invoice document")
	}

	var buf bytes.Buffer

	if doc.Settings.OwnerName != "" {
		fmt.Fprintf(&buf, "%s\n", doc.Settings.OwnerName)
		for _, line := range []string{doc.Settings.Address, doc.Settings.Town, doc.Settings.County, doc.Settings.Postcode} {
			if line != "" {
				fmt.Fprintf(&buf, "%s\n", line)
			}
		}
		if doc.Settings.VATNumber != "" {
			fmt.Fprintf(&buf, "VAT: %s\n", doc.Settings.VATNumber)
		}
		buf.WriteString("\n")
	}

	buf.WriteString("INVOICE\n")
	if doc.Client != nil {
		fmt.Fprintf(&buf, "To: %s\n", doc.Client.Name)
		for _, line := range []string{doc.Client.Address, doc.Client.Town, doc.Client.County, doc.Client.Postcode} {
			if line != "" {
				fmt.Fprintf(&buf, "    %s\n", line)
			}
		}
	}
	fmt.Fprintf(&buf, "Period: %s - %s\n\n",
		doc.PeriodStart.Format(r.dateFormat),
		doc.PeriodEnd.Format(r.dateFormat))

	for _, item := range doc.LineItems {
		if item.Hours.IsZero() && item.Rate.IsZero() {
			fmt.Fprintf(&buf, "%-40s %s\n",
				item.Description,
				billing.FormatCurrencyWith(r.currencyPrefix, item.Amount))
			continue
		}
		fmt.Fprintf(&buf, "%-40s %s h @ %s  %s\n",
			item.Description,
			item.Hours.StringFixed(2),
			billing.FormatCurrencyWith(r.currencyPrefix, item.Rate),
			billing.FormatCurrencyWith(r.currencyPrefix, item.Amount))
	}

	fmt.Fprintf(&buf, "\nTotal: %s\n", billing.FormatCurrencyWith(r.currencyPrefix, doc.Total))

	if doc.Settings.BankAccountName != "" || doc.Settings.AccountNumber != "" {
		buf.WriteString("\nPayment details\n")
		if doc.Settings.BankAccountName != "" {
			fmt.Fprintf(&buf, "Account name: %s\n", doc.Settings.BankAccountName)
		}
		if doc.Settings.SortCode != "" {
			fmt.Fprintf(&buf, "Sort code: %s\n", doc.Settings.SortCode)
		}
		if doc.Settings.AccountNumber != "" {
			fmt.Fprintf(&buf, "Account number: %s\n", doc.Settings.AccountNumber)
		}
	}

	if doc.Settings.TermsConditions != "" {
		fmt.Fprintf(&buf, "\nTerms: %s\n", doc.Settings.TermsConditions)
	}

	return buf.Bytes(), nil
}
