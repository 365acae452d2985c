package models

import (
	"time"

	"github.com/facturio/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationModel is the persistence model for the Quotation aggregate root.
type QuotationModel struct {
	AggregateModel
	FreelancerID uuid.UUID               `gorm:"type:uuid;not null;index"`
	ClientID     uuid.UUID               `gorm:"type:uuid;not null;index"`
	CompanyID    uuid.UUID               `gorm:"type:uuid;not null;index"`
	Status       billing.QuotationStatus `gorm:"type:varchar(20);not null;default:'Sent'"`
	Notes        string                  `gorm:"type:text"`
	Items        []QuotationItemModel    `gorm:"foreignKey:QuotationID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (QuotationModel) TableName() string {
	return "quotations"
}

// ToDomain converts the persistence model to a domain Quotation entity.
// Items arrive pre-ordered by position (the repository orders the preload).
func (m *QuotationModel) ToDomain() *billing.Quotation {
	quotation := &billing.Quotation{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		FreelancerID:      m.FreelancerID,
		ClientID:          m.ClientID,
		CompanyID:         m.CompanyID,
		Status:            m.Status,
		Notes:             m.Notes,
		Items:             make([]billing.LineItem, len(m.Items)),
	}
	for i, item := range m.Items {
		quotation.Items[i] = *item.ToDomain()
	}
	return quotation
}

// FromDomain populates the persistence model from a domain Quotation entity.
func (m *QuotationModel) FromDomain(q *billing.Quotation) {
	m.FromDomainAggregateRoot(q.BaseAggregateRoot)
	m.FreelancerID = q.FreelancerID
	m.ClientID = q.ClientID
	m.CompanyID = q.CompanyID
	m.Status = q.Status
	m.Notes = q.Notes
	m.Items = make([]QuotationItemModel, len(q.Items))
	for i, item := range q.Items {
		m.Items[i] = *QuotationItemModelFromDomain(&item)
	}
}

// QuotationModelFromDomain creates a new persistence model from a domain Quotation entity.
func QuotationModelFromDomain(q *billing.Quotation) *QuotationModel {
	m := &QuotationModel{}
	m.FromDomain(q)
	return m
}

// QuotationItemModel is the persistence model for a quotation line item.
type QuotationItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	QuotationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	Position    int             `gorm:"not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (QuotationItemModel) TableName() string {
	return "quotation_items"
}

// ToDomain converts the persistence model to a domain LineItem entity.
func (m *QuotationItemModel) ToDomain() *billing.LineItem {
	return &billing.LineItem{
		ID:          m.ID,
		DocumentID:  m.QuotationID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		TaxRate:     m.TaxRate,
		Position:    m.Position,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// QuotationItemModelFromDomain creates a persistence model from a domain LineItem.
func QuotationItemModelFromDomain(i *billing.LineItem) *QuotationItemModel {
	return &QuotationItemModel{
		ID:          i.ID,
		QuotationID: i.DocumentID,
		Description: i.Description,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		TaxRate:     i.TaxRate,
		Position:    i.Position,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	AggregateModel
	QuotationID  *uuid.UUID            `gorm:"type:uuid;index"`
	FreelancerID uuid.UUID             `gorm:"type:uuid;not null;index"`
	ClientID     uuid.UUID             `gorm:"type:uuid;not null;index"`
	CompanyID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	Status       billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'Unpaid'"`
	DueDate      *time.Time            `gorm:"index"`
	PaidAt       *time.Time
	Items        []InvoiceItemModel `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	invoice := &billing.Invoice{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		QuotationID:       m.QuotationID,
		FreelancerID:      m.FreelancerID,
		ClientID:          m.ClientID,
		CompanyID:         m.CompanyID,
		Status:            m.Status,
		DueDate:           m.DueDate,
		PaidAt:            m.PaidAt,
		Items:             make([]billing.LineItem, len(m.Items)),
	}
	for i, item := range m.Items {
		invoice.Items[i] = *item.ToDomain()
	}
	return invoice
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.QuotationID = inv.QuotationID
	m.FreelancerID = inv.FreelancerID
	m.ClientID = inv.ClientID
	m.CompanyID = inv.CompanyID
	m.Status = inv.Status
	m.DueDate = inv.DueDate
	m.PaidAt = inv.PaidAt
	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i, item := range inv.Items {
		m.Items[i] = *InvoiceItemModelFromDomain(&item)
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceItemModel is the persistence model for an invoice line item.
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxRate     decimal.Decimal `gorm:"type:decimal(7,4);not null;default:0"`
	Position    int             `gorm:"not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain LineItem entity.
func (m *InvoiceItemModel) ToDomain() *billing.LineItem {
	return &billing.LineItem{
		ID:          m.ID,
		DocumentID:  m.InvoiceID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		TaxRate:     m.TaxRate,
		Position:    m.Position,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// InvoiceItemModelFromDomain creates a persistence model from a domain LineItem.
func InvoiceItemModelFromDomain(i *billing.LineItem) *InvoiceItemModel {
	return &InvoiceItemModel{
		ID:          i.ID,
		InvoiceID:   i.DocumentID,
		Description: i.Description,
		Quantity:    i.Quantity,
		UnitPrice:   i.UnitPrice,
		TaxRate:     i.TaxRate,
		Position:    i.Position,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}
