package billing

import (
	"time"

	"github.com/facturio/backend/internal/domain/shared"
	"github.com/facturio/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationStatus represents the lifecycle status of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "Draft"
	QuotationStatusSent     QuotationStatus = "Sent"
	QuotationStatusApproved QuotationStatus = "Approved"
	QuotationStatusRejected QuotationStatus = "Rejected"
)

// DefaultQuotationStatus is applied when the caller does not supply a status
const DefaultQuotationStatus = QuotationStatusSent

// IsValid checks if the status is a valid QuotationStatus
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusApproved, QuotationStatusRejected:
		return true
	}
	return false
}

// String returns the string representation of QuotationStatus
func (s QuotationStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses that end the negotiation.
// Terminal here is informational only: the transition set is deliberately
// open, so a Rejected quotation may still be re-sent.
func (s QuotationStatus) IsTerminal() bool {
	return s == QuotationStatusApproved || s == QuotationStatusRejected
}

// Quotation is the aggregate root for a proposed engagement: a set of
// service lines a freelancer offers to a client under an issuing company.
type Quotation struct {
	shared.BaseAggregateRoot
	FreelancerID uuid.UUID // user who issues the quotation
	ClientID     uuid.UUID // client record (already mapped from the client user)
	CompanyID    uuid.UUID // issuing company
	Status       QuotationStatus
	Notes        string
	Items        []LineItem
}

// NewQuotation creates a new quotation.
// An empty status falls back to DefaultQuotationStatus.
func NewQuotation(freelancerID, clientID, companyID uuid.UUID, status QuotationStatus, notes string) (*Quotation, error) {
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
		status = DefaultQuotationStatus
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_STATUS", "Invalid quotation status: "+status.String())
	}

	quotation := &Quotation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FreelancerID:      freelancerID,
		ClientID:          clientID,
		CompanyID:         companyID,
		Status:            status,
		Notes:             notes,
		Items:             make([]LineItem, 0),
	}

	quotation.AddDomainEvent(NewQuotationCreatedEvent(quotation))

	return quotation, nil
}

// AddItem appends a new line item at the next position.
// Callers that want the original "skip blank rows" behavior filter empty
// descriptions before calling; here an empty description is an error.
func (q *Quotation) AddItem(description string, quantity decimal.Decimal, unitPrice valueobject.Money, taxRate decimal.Decimal) (*LineItem, error) {
	item, err := NewLineItem(q.ID, description, quantity, unitPrice, taxRate, len(q.Items))
	if err != nil {
		return nil, err
	}

	q.Items = append(q.Items, *item)
	q.UpdatedAt = time.Now()

	return item, nil
}

// UpdateDetails replaces the header fields of the quotation
func (q *Quotation) UpdateDetails(clientID, companyID uuid.UUID, status QuotationStatus, notes string) error {
	if clientID == uuid.Nil {
		return shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}
	if companyID == uuid.Nil {
		return shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid quotation status: "+status.String())
	}

	q.ClientID = clientID
	q.CompanyID = companyID
	q.Status = status
	q.Notes = notes
	q.UpdatedAt = time.Now()

	return nil
}

// ChangeStatus moves the quotation to the target status.
// Any valid status is accepted as a target; the lifecycle graph is open.
func (q *Quotation) ChangeStatus(target QuotationStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid quotation status: "+target.String())
	}
	if q.Status == target {
		return nil
	}

	previous := q.Status
	q.Status = target
	q.UpdatedAt = time.Now()

	q.AddDomainEvent(NewQuotationStatusChangedEvent(q, previous))

	return nil
}

// Totals computes the document totals from the current items
func (q *Quotation) Totals() Totals {
	return ComputeTotals(q.Items)
}

// ItemCount returns the number of items on the quotation
func (q *Quotation) ItemCount() int {
	return len(q.Items)
}

// IsApproved returns true if the client accepted the quotation
func (q *Quotation) IsApproved() bool {
	return q.Status == QuotationStatusApproved
}
