package billing

import (
	"time"

	"github.com/facturio/backend/internal/domain/shared"
	"github.com/facturio/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem represents a billed service line on a quotation or invoice.
// Quantity, unit price and tax rate are kept as exact decimals; derived
// amounts are recomputed on demand and never stored.
type LineItem struct {
	ID          uuid.UUID
	DocumentID  uuid.UUID
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal // net price per unit
	TaxRate     decimal.Decimal // percentage, e.g. 20 for 20%
	Position    int             // insertion order within the document
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewLineItem creates a new line item for the given document.
func NewLineItem(documentID uuid.UUID, description string, quantity decimal.Decimal, unitPrice valueobject.Money, taxRate decimal.Decimal, position int) (*LineItem, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Line item description cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if unitPrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if taxRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}

	now := time.Now()
	return &LineItem{
		ID:          uuid.New(),
		DocumentID:  documentID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		TaxRate:     taxRate,
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NetAmount returns Quantity * UnitPrice (tax excluded).
func (i *LineItem) NetAmount() decimal.Decimal {
	return i.Quantity.Mul(i.UnitPrice)
}

// TaxAmount returns the tax portion of the line: NetAmount * TaxRate/100.
func (i *LineItem) TaxAmount() decimal.Decimal {
	return i.NetAmount().Mul(i.TaxRate).Div(decimal.NewFromInt(100))
}

// GrossAmount returns the tax-inclusive line total:
// Quantity * UnitPrice * (1 + TaxRate/100).
func (i *LineItem) GrossAmount() decimal.Decimal {
	return i.NetAmount().Add(i.TaxAmount())
}

// GetUnitPriceMoney returns the unit price as a Money value object
func (i *LineItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(i.UnitPrice)
}

// GetGrossAmountMoney returns the gross line total as a Money value object
func (i *LineItem) GetGrossAmountMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(i.GrossAmount())
}
