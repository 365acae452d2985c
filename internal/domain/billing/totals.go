package billing

import (
	"github.com/shopspring/decimal"
)

// Totals is the arithmetic summary of a set of line items.
// All three values are exact decimals; rounding for display happens at the
// presentation layer only.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`   // sum of net amounts
	TaxAmount decimal.Decimal `json:"tax_amount"` // sum of tax portions
	Total     decimal.Decimal `json:"total"`      // Subtotal + TaxAmount
}

// ComputeTotals folds line items into document totals.
// It is a pure function: no input mutation, identical results for identical
// inputs, and an empty slice yields all-zero totals.
func ComputeTotals(items []LineItem) Totals {
	subtotal := decimal.Zero
	tax := decimal.Zero
	for idx := range items {
		subtotal = subtotal.Add(items[idx].NetAmount())
		tax = tax.Add(items[idx].TaxAmount())
	}
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
	}
}

// IsZero returns true when every component is zero
func (t Totals) IsZero() bool {
	return t.Subtotal.IsZero() && t.TaxAmount.IsZero() && t.Total.IsZero()
}
