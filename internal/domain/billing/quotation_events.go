package billing

import (
	"github.com/facturio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeQuotation = "Quotation"

// Event type constants
const (
	EventTypeQuotationCreated       = "QuotationCreated"
	EventTypeQuotationStatusChanged = "QuotationStatusChanged"
)

// QuotationCreatedEvent is raised when a new quotation is created
type QuotationCreatedEvent struct {
	shared.BaseDomainEvent
	QuotationID  uuid.UUID       `json:"quotation_id"`
	FreelancerID uuid.UUID       `json:"freelancer_id"`
	ClientID     uuid.UUID       `json:"client_id"`
	CompanyID    uuid.UUID       `json:"company_id"`
	Status       QuotationStatus `json:"status"`
}

// NewQuotationCreatedEvent creates a new QuotationCreatedEvent
func NewQuotationCreatedEvent(quotation *Quotation) *QuotationCreatedEvent {
	return &QuotationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationCreated, AggregateTypeQuotation, quotation.ID),
		QuotationID:     quotation.ID,
		FreelancerID:    quotation.FreelancerID,
		ClientID:        quotation.ClientID,
		CompanyID:       quotation.CompanyID,
		Status:          quotation.Status,
	}
}

// EventType returns the event type name
func (e *QuotationCreatedEvent) EventType() string {
	return EventTypeQuotationCreated
}

// QuotationStatusChangedEvent is raised when a quotation changes status
type QuotationStatusChangedEvent struct {
	shared.BaseDomainEvent
	QuotationID    uuid.UUID       `json:"quotation_id"`
	PreviousStatus QuotationStatus `json:"previous_status"`
	NewStatus      QuotationStatus `json:"new_status"`
}

// NewQuotationStatusChangedEvent creates a new QuotationStatusChangedEvent
func NewQuotationStatusChangedEvent(quotation *Quotation, previous QuotationStatus) *QuotationStatusChangedEvent {
	return &QuotationStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuotationStatusChanged, AggregateTypeQuotation, quotation.ID),
		QuotationID:     quotation.ID,
		PreviousStatus:  previous,
		NewStatus:       quotation.Status,
	}
}

// EventType returns the event type name
func (e *QuotationStatusChangedEvent) EventType() string {
	return EventTypeQuotationStatusChanged
}
