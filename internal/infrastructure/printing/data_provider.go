package printing

import (
	"context"
	"time"

	"github.com/facturio/backend/internal/domain/printing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DataProvider is the interface for providing document data for template rendering.
// Each document type should have its own implementation.
type DataProvider interface {
	// GetDocType returns the document type this provider handles
	GetDocType() printing.DocType
	// GetData retrieves the document data for rendering
	// documentID is the ID of the document to render
	GetData(ctx context.Context, documentID uuid.UUID) (*DocumentData, error)
}

// DocumentData is the common structure for all document data used in templates.
// It contains both common metadata and document-specific data.
type DocumentData struct {
	// Common metadata
	Meta DocumentMeta `json:"meta"`

	// OwnerID is the freelancer who issued the document; used for
	// storage partitioning, never rendered
	OwnerID uuid.UUID `json:"-"`

	// Issuing company information
	Company CompanyInfo `json:"company"`

	// Billed client information
	Client ClientInfo `json:"client"`

	// Document-specific data (QuotationData or InvoiceData)
	Document any `json:"document"`

	// Formatted/computed fields for convenience
	PrintDate     string `json:"printDate"`
	PrintDateTime string `json:"printDateTime"`
	PrintTime     string `json:"printTime"`
}

// DocumentMeta contains common metadata for all documents
type DocumentMeta struct {
	DocType     printing.DocType `json:"docType"`
	DocTypeName string           `json:"docTypeName"` // French name (Devis / Facture)
	DocNo       string           `json:"docNo"`       // Document number
	Status      string           `json:"status"`
	StatusText  string           `json:"statusText"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CompanyInfo contains issuing company information for rendering
type CompanyInfo struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
	Phone   string    `json:"phone"`
	Email   string    `json:"email"`
	Logo    string    `json:"logo"` // URL or base64
	TaxID   string    `json:"taxId"`
}

// ClientInfo contains client information for rendering
type ClientInfo struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Address string    `json:"address"`
	TaxID   string    `json:"taxId"`
}

// =============================================================================
// Quotation Data
// =============================================================================

// QuotationData represents quotation data for template rendering
type QuotationData struct {
	ID        uuid.UUID       `json:"id"`
	Number    string          `json:"number"`
	Status    string          `json:"status"`
	Notes     string          `json:"notes"`
	Items     []LineItemData  `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"taxAmount"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"itemCount"`
	IssuedAt  time.Time       `json:"issuedAt"`

	// Formatted fields
	SubtotalFormatted  string `json:"subtotalFormatted"`
	TaxAmountFormatted string `json:"taxAmountFormatted"`
	TotalFormatted     string `json:"totalFormatted"`
	IssuedAtFormatted  string `json:"issuedAtFormatted"`
}

// =============================================================================
// Invoice Data
// =============================================================================

// InvoiceData represents invoice data for template rendering
type InvoiceData struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"number"`
	QuotationID *uuid.UUID      `json:"quotationId"` // source quotation, if derived
	Status      string          `json:"status"`
	Items       []LineItemData  `json:"items"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	TaxAmount   decimal.Decimal `json:"taxAmount"`
	Total       decimal.Decimal `json:"total"`
	ItemCount   int             `json:"itemCount"`
	IssuedAt    time.Time       `json:"issuedAt"`
	DueDate     *time.Time      `json:"dueDate"`
	PaidAt      *time.Time      `json:"paidAt"`

	// Formatted fields
	SubtotalFormatted  string `json:"subtotalFormatted"`
	TaxAmountFormatted string `json:"taxAmountFormatted"`
	TotalFormatted     string `json:"totalFormatted"`
	IssuedAtFormatted  string `json:"issuedAtFormatted"`
	DueDateFormatted   string `json:"dueDateFormatted"`
	PaidAtFormatted    string `json:"paidAtFormatted"`
}

// LineItemData represents a service line on a quotation or invoice
type LineItemData struct {
	Index       int             `json:"index"` // 1-based index
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TaxRate     decimal.Decimal `json:"taxRate"`
	Total       decimal.Decimal `json:"total"` // tax-inclusive line total

	// Formatted fields
	QuantityFormatted  string `json:"quantityFormatted"`
	UnitPriceFormatted string `json:"unitPriceFormatted"`
	TaxRateFormatted   string `json:"taxRateFormatted"`
	TotalFormatted     string `json:"totalFormatted"`
}

// =============================================================================
// Helper Functions for Data Providers
// =============================================================================

// NewDocumentData creates a new DocumentData with common fields initialized
func NewDocumentData(docType printing.DocType, docNo string) *DocumentData {
	now := time.Now()
	return &DocumentData{
		Meta: DocumentMeta{
			DocType:     docType,
			DocTypeName: docType.DisplayName(),
			DocNo:       docNo,
		},
		PrintDate:     now.Format("02/01/2006"),
		PrintDateTime: now.Format("02/01/2006 15:04:05"),
		PrintTime:     now.Format("15:04:05"),
	}
}

// FormatMoneyValue formats a decimal as a French euro string for data providers
func FormatMoneyValue(d decimal.Decimal) string {
	return formatMoney(d)
}

// FormatDateValue formats a time as a French date string for data providers
func FormatDateValue(t time.Time) string {
	return formatDate(t)
}

// StatusDisplayText returns the French label for a document status
func StatusDisplayText(status string) string {
	return statusText(status)
}
