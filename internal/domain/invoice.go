package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one row of an invoice, either derived from aggregated job
// time or entered manually. Manual items carry zero hours and rate.
type LineItem struct {
	Description string          `json:"description"`
	Hours       decimal.Decimal `json:"hours"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// ManualItem creates a free-form line item with just a description and amount.
func ManualItem(description string, amount decimal.Decimal) LineItem {
	return LineItem{
		Description: description,
		Hours:       decimal.Zero,
		Rate:        decimal.Zero,
		Amount:      amount,
	}
}

// Invoice is a persisted, frozen result of invoice computation. Later
// changes to the underlying sessions do not change a saved invoice; it
// must be explicitly recomputed and updated.
type Invoice struct {
	ID          string
	ClientID    string
	PeriodStart time.Time
	PeriodEnd   time.Time
	LineItems   []LineItem
	Total       decimal.Decimal
	CreatedAt   time.Time
}

// IsValid checks if the invoice has valid data.
func (i Invoice) IsValid() bool {
	return !i.PeriodEnd.Before(i.PeriodStart)
}
