package billing

import (
	"time"

	"github.com/google/uuid"

	"github.com/facturio/backend/internal/domain/billing"
)

// =============================================================================
// Line Item DTOs
// =============================================================================

// LineItemInput represents one requested document line.
// Quantity, unit price and tax rate travel as strings so exact decimal
// values survive the JSON round trip.
type LineItemInput struct {
	Description string `json:"description"`
	Quantity    string `json:"quantity" binding:"required"`
	UnitPrice   string `json:"unit_price" binding:"required"`
	TaxRate     string `json:"tax_rate"`
}

// LineItemResponse represents a stored document line with derived amounts
type LineItemResponse struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	TaxRate     string `json:"tax_rate"`
	Position    int    `json:"position"`
	NetAmount   string `json:"net_amount"`
	TaxAmount   string `json:"tax_amount"`
	GrossAmount string `json:"gross_amount"`
}

// TotalsResponse represents the arithmetic summary of a document
type TotalsResponse struct {
	Subtotal  string `json:"subtotal"`
	TaxAmount string `json:"tax_amount"`
	Total     string `json:"total"`
}

// =============================================================================
// Quotation DTOs
// =============================================================================

// CreateQuotationRequest represents a request to create a quotation.
// ClientUserID is the client's user account id; the service maps it to the
// client record before anything is written.
type CreateQuotationRequest struct {
	ClientUserID uuid.UUID       `json:"client_id" binding:"required"`
	CompanyID    *uuid.UUID      `json:"company_id"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes"`
	Items        []LineItemInput `json:"items"`
}

// UpdateQuotationRequest represents a request to replace a quotation's
// header and items
type UpdateQuotationRequest struct {
	ClientUserID uuid.UUID       `json:"client_id" binding:"required"`
	CompanyID    *uuid.UUID      `json:"company_id"`
	Status       string          `json:"status"`
	Notes        string          `json:"notes"`
	Items        []LineItemInput `json:"items"`
}

// QuotationResponse represents a quotation with its items and totals
type QuotationResponse struct {
	ID           string             `json:"id"`
	FreelancerID string             `json:"freelancer_id"`
	ClientID     string             `json:"client_id"`
	CompanyID    string             `json:"company_id"`
	Status       string             `json:"status"`
	Notes        string             `json:"notes,omitempty"`
	Items        []LineItemResponse `json:"items"`
	Totals       TotalsResponse     `json:"totals"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// QuotationListItemResponse is the condensed list view of a quotation
type QuotationListItemResponse struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	CompanyID string    `json:"company_id"`
	Status    string    `json:"status"`
	ItemCount int       `json:"item_count"`
	Total     string    `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// =============================================================================
// Invoice DTOs
// =============================================================================

// CreateInvoiceRequest represents a request to create an invoice.
// When QuotationID is set the quotation must exist; CopyQuotationItems
// additionally copies its line items onto the new invoice.
type CreateInvoiceRequest struct {
	QuotationID        *uuid.UUID      `json:"quotation_id"`
	CopyQuotationItems bool            `json:"copy_quotation_items"`
	ClientUserID       uuid.UUID       `json:"client_id" binding:"required"`
	CompanyID          *uuid.UUID      `json:"company_id"`
	Status             string          `json:"status"`
	DueDate            *time.Time      `json:"due_date"`
	Items              []LineItemInput `json:"items"`
}

// UpdateInvoiceRequest represents a request to replace an invoice's header
// and items
type UpdateInvoiceRequest struct {
	QuotationID  *uuid.UUID      `json:"quotation_id"`
	ClientUserID uuid.UUID       `json:"client_id" binding:"required"`
	CompanyID    *uuid.UUID      `json:"company_id"`
	Status       string          `json:"status"`
	DueDate      *time.Time      `json:"due_date"`
	Items        []LineItemInput `json:"items"`
}

// InvoiceResponse represents an invoice with its items and totals
type InvoiceResponse struct {
	ID           string             `json:"id"`
	QuotationID  *string            `json:"quotation_id,omitempty"`
	FreelancerID string             `json:"freelancer_id"`
	ClientID     string             `json:"client_id"`
	CompanyID    string             `json:"company_id"`
	Status       string             `json:"status"`
	DueDate      *time.Time         `json:"due_date,omitempty"`
	PaidAt       *time.Time         `json:"paid_at,omitempty"`
	Items        []LineItemResponse `json:"items"`
	Totals       TotalsResponse     `json:"totals"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// InvoiceListItemResponse is the condensed list view of an invoice
type InvoiceListItemResponse struct {
	ID        string     `json:"id"`
	ClientID  string     `json:"client_id"`
	CompanyID string     `json:"company_id"`
	Status    string     `json:"status"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	ItemCount int        `json:"item_count"`
	Total     string     `json:"total"`
	CreatedAt time.Time  `json:"created_at"`
}

// ChangeStatusRequest represents a request to move a document to a new
// lifecycle status
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListRequest represents pagination parameters for document listings
type ListRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// =============================================================================
// Mapping helpers
// =============================================================================

func toLineItemResponses(items []billing.LineItem) []LineItemResponse {
	result := make([]LineItemResponse, len(items))
	for i := range items {
		item := &items[i]
		result[i] = LineItemResponse{
			ID:          item.ID.String(),
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			UnitPrice:   item.UnitPrice.String(),
			TaxRate:     item.TaxRate.String(),
			Position:    item.Position,
			NetAmount:   item.NetAmount().String(),
			TaxAmount:   item.TaxAmount().String(),
			GrossAmount: item.GrossAmount().String(),
		}
	}
	return result
}

func toTotalsResponse(t billing.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:  t.Subtotal.String(),
		TaxAmount: t.TaxAmount.String(),
		Total:     t.Total.String(),
	}
}

// ToQuotationResponse maps a quotation aggregate to its detailed read model
func ToQuotationResponse(q *billing.Quotation) QuotationResponse {
	return QuotationResponse{
		ID:           q.ID.String(),
		FreelancerID: q.FreelancerID.String(),
		ClientID:     q.ClientID.String(),
		CompanyID:    q.CompanyID.String(),
		Status:       string(q.Status),
		Notes:        q.Notes,
		Items:        toLineItemResponses(q.Items),
		Totals:       toTotalsResponse(q.Totals()),
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

// ToQuotationListItemResponse maps a quotation to its list view
func ToQuotationListItemResponse(q *billing.Quotation) QuotationListItemResponse {
	return QuotationListItemResponse{
		ID:        q.ID.String(),
		ClientID:  q.ClientID.String(),
		CompanyID: q.CompanyID.String(),
		Status:    string(q.Status),
		ItemCount: q.ItemCount(),
		Total:     q.Totals().Total.String(),
		CreatedAt: q.CreatedAt,
	}
}

// ToInvoiceResponse maps an invoice aggregate to its detailed read model
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:           inv.ID.String(),
		FreelancerID: inv.FreelancerID.String(),
		ClientID:     inv.ClientID.String(),
		CompanyID:    inv.CompanyID.String(),
		Status:       string(inv.Status),
		DueDate:      inv.DueDate,
		PaidAt:       inv.PaidAt,
		Items:        toLineItemResponses(inv.Items),
		Totals:       toTotalsResponse(inv.Totals()),
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}
	if inv.QuotationID != nil {
		id := inv.QuotationID.String()
		resp.QuotationID = &id
	}
	return resp
}

// ToInvoiceListItemResponse maps an invoice to its list view
func ToInvoiceListItemResponse(inv *billing.Invoice) InvoiceListItemResponse {
	return InvoiceListItemResponse{
		ID:        inv.ID.String(),
		ClientID:  inv.ClientID.String(),
		CompanyID: inv.CompanyID.String(),
		Status:    string(inv.Status),
		DueDate:   inv.DueDate,
		PaidAt:    inv.PaidAt,
		ItemCount: inv.ItemCount(),
		Total:     inv.Totals().Total.String(),
		CreatedAt: inv.CreatedAt,
	}
}
