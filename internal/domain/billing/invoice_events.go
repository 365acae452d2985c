package billing

import (
	"time"

	"github.com/facturio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeInvoice = "Invoice"

// Event type constants
const (
	EventTypeInvoiceCreated       = "InvoiceCreated"
	EventTypeInvoiceStatusChanged = "InvoiceStatusChanged"
)

// InvoiceCreatedEvent is raised when a new invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID    uuid.UUID     `json:"invoice_id"`
	QuotationID  *uuid.UUID    `json:"quotation_id,omitempty"`
	FreelancerID uuid.UUID     `json:"freelancer_id"`
	ClientID     uuid.UUID     `json:"client_id"`
	CompanyID    uuid.UUID     `json:"company_id"`
	Status       InvoiceStatus `json:"status"`
	DueDate      *time.Time    `json:"due_date,omitempty"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(invoice *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, invoice.ID),
		InvoiceID:       invoice.ID,
		QuotationID:     invoice.QuotationID,
		FreelancerID:    invoice.FreelancerID,
		ClientID:        invoice.ClientID,
		CompanyID:       invoice.CompanyID,
		Status:          invoice.Status,
		DueDate:         invoice.DueDate,
	}
}

// EventType returns the event type name
func (e *InvoiceCreatedEvent) EventType() string {
	return EventTypeInvoiceCreated
}

// InvoiceStatusChangedEvent is raised when an invoice changes status,
// including the Overdue sweep
type InvoiceStatusChangedEvent struct {
	shared.BaseDomainEvent
	InvoiceID      uuid.UUID     `json:"invoice_id"`
	PreviousStatus InvoiceStatus `json:"previous_status"`
	NewStatus      InvoiceStatus `json:"new_status"`
	PaidAt         *time.Time    `json:"paid_at,omitempty"`
}

// NewInvoiceStatusChangedEvent creates a new InvoiceStatusChangedEvent
func NewInvoiceStatusChangedEvent(invoice *Invoice, previous InvoiceStatus) *InvoiceStatusChangedEvent {
	return &InvoiceStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceStatusChanged, AggregateTypeInvoice, invoice.ID),
		InvoiceID:       invoice.ID,
		PreviousStatus:  previous,
		NewStatus:       invoice.Status,
		PaidAt:          invoice.PaidAt,
	}
}

// EventType returns the event type name
func (e *InvoiceStatusChangedEvent) EventType() string {
	return EventTypeInvoiceStatusChanged
}
