package providers

import (
	"context"
	"fmt"

	"github.com/facturio/backend/internal/domain/billing"
	"github.com/facturio/backend/internal/domain/directory"
	"github.com/facturio/backend/internal/domain/printing"
	infra "github.com/facturio/backend/internal/infrastructure/printing"
	"github.com/google/uuid"
)

// InvoiceProvider implements DataProvider for the INVOICE document type.
// It loads invoice data from the repository for use in render templates.
type InvoiceProvider struct {
	invoiceRepo billing.InvoiceRepository
	clientRepo  directory.ClientRepository
	companyRepo directory.CompanyRepository
}

// NewInvoiceProvider creates a new InvoiceProvider.
func NewInvoiceProvider(
	invoiceRepo billing.InvoiceRepository,
	clientRepo directory.ClientRepository,
	companyRepo directory.CompanyRepository,
) *InvoiceProvider {
	return &InvoiceProvider{
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		companyRepo: companyRepo,
	}
}

// GetDocType returns the document type this provider handles.
func (p *InvoiceProvider) GetDocType() printing.DocType {
	return printing.DocTypeInvoice
}

// GetData retrieves invoice data for rendering.
func (p *InvoiceProvider) GetData(ctx context.Context, documentID uuid.UUID) (*infra.DocumentData, error) {
	invoice, err := p.invoiceRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}

	client, err := p.clientRepo.FindByID(ctx, invoice.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}

	company, err := p.companyRepo.FindByID(ctx, invoice.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	docNo := documentNumber(invoice.ID)
	docData := infra.NewDocumentData(printing.DocTypeInvoice, docNo)
	docData.OwnerID = invoice.FreelancerID
	docData.Meta.Status = string(invoice.Status)
	docData.Meta.StatusText = infra.StatusDisplayText(string(invoice.Status))
	docData.Meta.CreatedAt = invoice.CreatedAt
	docData.Meta.UpdatedAt = invoice.UpdatedAt

	docData.Company = companyInfo(company)
	docData.Client = clientInfo(client)

	totals := invoice.Totals()
	data := infra.InvoiceData{
		ID:                 invoice.ID,
		Number:             docNo,
		QuotationID:        invoice.QuotationID,
		Status:             string(invoice.Status),
		Items:              lineItems(invoice.Items),
		Subtotal:           totals.Subtotal,
		TaxAmount:          totals.TaxAmount,
		Total:              totals.Total,
		ItemCount:          len(invoice.Items),
		IssuedAt:           invoice.CreatedAt,
		DueDate:            invoice.DueDate,
		PaidAt:             invoice.PaidAt,
		SubtotalFormatted:  infra.FormatMoneyValue(totals.Subtotal),
		TaxAmountFormatted: infra.FormatMoneyValue(totals.TaxAmount),
		TotalFormatted:     infra.FormatMoneyValue(totals.Total),
		IssuedAtFormatted:  infra.FormatDateValue(invoice.CreatedAt),
	}
	if invoice.DueDate != nil {
		data.DueDateFormatted = infra.FormatDateValue(*invoice.DueDate)
	}
	if invoice.PaidAt != nil {
		data.PaidAtFormatted = infra.FormatDateValue(*invoice.PaidAt)
	}

	docData.Document = data

	return docData, nil
}
