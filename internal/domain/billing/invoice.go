package billing

import (
	"time"

	"github.com/facturio/backend/internal/domain/shared"
	"github.com/facturio/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid  InvoiceStatus = "Unpaid"
	InvoiceStatusPaid    InvoiceStatus = "Paid"
	InvoiceStatusOverdue InvoiceStatus = "Overdue"
)

// DefaultInvoiceStatus is applied when the caller does not supply a status
const DefaultInvoiceStatus = InvoiceStatusUnpaid

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// Invoice is the aggregate root for a payment request derived from (or
// created independently of) a quotation.
//
// Invariant: Status == Paid exactly when PaidAt is set. ChangeStatus is the
// only mutation path and maintains both sides.
type Invoice struct {
	shared.BaseAggregateRoot
	QuotationID  *uuid.UUID // optional back-reference to the source quotation
	FreelancerID uuid.UUID
	ClientID     uuid.UUID
	CompanyID    uuid.UUID
	Status       InvoiceStatus
	DueDate      *time.Time
	PaidAt       *time.Time
	Items        []LineItem
}

// NewInvoice creates a new invoice.
// An empty status falls back to DefaultInvoiceStatus. quotationID may be nil;
// when set, the caller is responsible for checking the quotation exists.
func NewInvoice(freelancerID, clientID, companyID uuid.UUID, quotationID *uuid.UUID, status InvoiceStatus, dueDate *time.Time) (*Invoice, error) {
	if freelancerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_FREELANCER", "Freelancer ID cannot be empty")
	}
	if clientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if status == "" {
		status = DefaultInvoiceStatus
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid invoice status: "+status.String())
	}

	invoice := &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		QuotationID:       quotationID,
		FreelancerID:      freelancerID,
		ClientID:          clientID,
		CompanyID:         companyID,
		Status:            status,
		DueDate:           dueDate,
		Items:             make([]LineItem, 0),
	}

	if status == InvoiceStatusPaid {
		now := time.Now()
		invoice.PaidAt = &now
	}

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// AddItem appends a new line item at the next position
func (inv *Invoice) AddItem(description string, quantity decimal.Decimal, unitPrice valueobject.Money, taxRate decimal.Decimal) (*LineItem, error) {
	item, err := NewLineItem(inv.ID, description, quantity, unitPrice, taxRate, len(inv.Items))
	if err != nil {
		return nil, err
	}

	inv.Items = append(inv.Items, *item)
	inv.UpdatedAt = time.Now()

	return item, nil
}

// UpdateDetails replaces the header fields of the invoice.
// Status changes routed through here carry the same paid-at side effect as
// ChangeStatus so the invariant holds on every path.
func (inv *Invoice) UpdateDetails(quotationID *uuid.UUID, clientID, companyID uuid.UUID, status InvoiceStatus, dueDate *time.Time) error {
	if clientID == uuid.Nil {
		return shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if companyID == uuid.Nil {
		return shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid invoice status: "+status.String())
	}

	inv.QuotationID = quotationID
	inv.ClientID = clientID
	inv.CompanyID = companyID
	inv.DueDate = dueDate
	inv.applyStatus(status)
	inv.UpdatedAt = time.Now()

	return nil
}

// ChangeStatus moves the invoice to the target status.
// Transitioning to Paid stamps PaidAt with the current time; transitioning
// to any other status clears it.
func (inv *Invoice) ChangeStatus(target InvoiceStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid invoice status: "+target.String())
	}

	previous := inv.Status
	inv.applyStatus(target)
	inv.UpdatedAt = time.Now()

	if previous != target {
		inv.AddDomainEvent(NewInvoiceStatusChangedEvent(inv, previous))
	}

	return nil
}

// MarkOverdue transitions an unpaid invoice past its due date to Overdue.
// Returns false without mutation when the invoice is not eligible.
func (inv *Invoice) MarkOverdue(now time.Time) bool {
	if inv.Status != InvoiceStatusUnpaid {
		return false
	}
	if inv.DueDate == nil || !inv.DueDate.Before(now) {
		return false
	}

	previous := inv.Status
	inv.applyStatus(InvoiceStatusOverdue)
	inv.UpdatedAt = now
	inv.AddDomainEvent(NewInvoiceStatusChangedEvent(inv, previous))

	return true
}

// applyStatus sets the status and keeps PaidAt consistent with it
func (inv *Invoice) applyStatus(status InvoiceStatus) {
	inv.Status = status
	if status == InvoiceStatusPaid {
		now := time.Now()
		inv.PaidAt = &now
	} else {
		inv.PaidAt = nil
	}
}

// Totals computes the document totals from the current items
func (inv *Invoice) Totals() Totals {
	return ComputeTotals(inv.Items)
}

// ItemCount returns the number of items on the invoice
func (inv *Invoice) ItemCount() int {
	return len(inv.Items)
}

// IsPaid returns true if the invoice has been settled
func (inv *Invoice) IsPaid() bool {
	return inv.Status == InvoiceStatusPaid
}

// GetTotalMoney returns the gross document total as Money
func (inv *Invoice) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneyEUR(inv.Totals().Total)
}
