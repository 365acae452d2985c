package printing

import (
	"strings"

	"github.com/facturio/backend/internal/domain/shared"
)

const (
	maxTemplateNameLength    = 100
	maxTemplateContentLength = 1024 * 1024 // 1MB
)

// Template describes how a document type is laid out when rendered to
// PDF. Templates are built into the application; there is one per
// document type.
type Template struct {
	DocumentType DocType     // Type of document this template renders
	Name         string      // Template name
	Content      string      // HTML template content
	PaperSize    PaperSize   // Paper size (A4, A5)
	Orientation  Orientation // Page orientation (portrait/landscape)
	Margins      Margins     // Page margins
}

// NewTemplate creates a new render template
func NewTemplate(docType DocType, name, content string, paperSize PaperSize) (*Template, error) {
	if err := validateDocType(docType); err != nil {
		return nil, err
	}
	if err := validateTemplateName(name); err != nil {
		return nil, err
	}
	if err := validateTemplateContent(content); err != nil {
		return nil, err
	}
	if err := validatePaperSize(paperSize); err != nil {
		return nil, err
	}

	return &Template{
		DocumentType: docType,
		Name:         strings.TrimSpace(name),
		Content:      content,
		PaperSize:    paperSize,
		Orientation:  OrientationPortrait,
		Margins:      DefaultMargins(),
	}, nil
}

// SetPaperSize sets the paper size
func (t *Template) SetPaperSize(paperSize PaperSize) error {
	if err := validatePaperSize(paperSize); err != nil {
		return err
	}
	t.PaperSize = paperSize
	return nil
}

// SetOrientation sets the page orientation
func (t *Template) SetOrientation(orientation Orientation) error {
	if !orientation.IsValid() {
		return shared.NewDomainError("INVALID_ORIENTATION", "Invalid page orientation: "+orientation.String())
	}
	t.Orientation = orientation
	return nil
}

// SetMargins sets the page margins
func (t *Template) SetMargins(margins Margins) {
	t.Margins = margins
}

func validateDocType(docType DocType) error {
	if !docType.IsValid() {
		return shared.NewDomainError("INVALID_DOC_TYPE", "Invalid document type: "+docType.String())
	}
	return nil
}

func validateTemplateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_TEMPLATE_NAME", "Template name cannot be empty")
	}
	if len(trimmed) > maxTemplateNameLength {
		return shared.NewDomainError("INVALID_TEMPLATE_NAME", "Template name is too long")
	}
	return nil
}

func validateTemplateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return shared.NewDomainError("INVALID_TEMPLATE_CONTENT", "Template content cannot be empty")
	}
	if len(content) > maxTemplateContentLength {
		return shared.NewDomainError("INVALID_TEMPLATE_CONTENT", "Template content exceeds maximum size")
	}
	return nil
}

func validatePaperSize(paperSize PaperSize) error {
	if !paperSize.IsValid() {
		return shared.NewDomainError("INVALID_PAPER_SIZE", "Invalid paper size: "+paperSize.String())
	}
	return nil
}
