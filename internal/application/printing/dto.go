package printing

import (
	"github.com/google/uuid"
)

// =============================================================================
// Template DTOs
// =============================================================================

// MarginsDTO represents page margins
type MarginsDTO struct {
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	Left   int `json:"left"`
}

// TemplateResponse represents a built-in render template
type TemplateResponse struct {
	ID           string     `json:"id"`
	DocumentType string     `json:"document_type"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	PaperSize    string     `json:"paper_size"`
	Orientation  string     `json:"orientation"`
	Margins      MarginsDTO `json:"margins"`
	IsDefault    bool       `json:"is_default"`
}

// =============================================================================
// Preview and PDF Generation DTOs
// =============================================================================

// PreviewRequest represents a request to preview a document as HTML
type PreviewRequest struct {
	DocumentType string    `json:"document_type" binding:"required"`
	DocumentID   uuid.UUID `json:"document_id" binding:"required"`
	TemplateID   *string   `json:"template_id"`
}

// PreviewResponse represents the preview result
type PreviewResponse struct {
	HTML        string     `json:"html"`
	TemplateID  string     `json:"template_id"`
	PaperSize   string     `json:"paper_size"`
	Orientation string     `json:"orientation"`
	Margins     MarginsDTO `json:"margins"`
}

// GeneratePDFRequest represents a request to render a document to PDF
type GeneratePDFRequest struct {
	DocumentType string    `json:"document_type" binding:"required"`
	DocumentID   uuid.UUID `json:"document_id" binding:"required"`
	TemplateID   *string   `json:"template_id"`
}

// GeneratePDFResponse carries the rendered document.
// FileName follows the <prefix>-<document id>.pdf convention
// (devis-… for quotations, facture-… for invoices).
type GeneratePDFResponse struct {
	PDFData     []byte `json:"-"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	ArchiveURL  string `json:"archive_url,omitempty"`
	FromCache   bool   `json:"from_cache"`
}

// =============================================================================
// Reference Data DTOs
// =============================================================================

// DocumentTypeResponse represents a renderable document type
type DocumentTypeResponse struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

// PaperSizeResponse represents a paper size
type PaperSizeResponse struct {
	Code   string  `json:"code"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}
