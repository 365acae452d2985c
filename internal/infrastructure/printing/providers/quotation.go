package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/facturio/backend/internal/domain/billing"
	"github.com/facturio/backend/internal/domain/directory"
	"github.com/facturio/backend/internal/domain/printing"
	infra "github.com/facturio/backend/internal/infrastructure/printing"
	"github.com/google/uuid"
)

// QuotationProvider implements DataProvider for the QUOTATION document type.
// It loads quotation data from the repository for use in render templates.
type QuotationProvider struct {
	quotationRepo billing.QuotationRepository
	clientRepo    directory.ClientRepository
	companyRepo   directory.CompanyRepository
}

// NewQuotationProvider creates a new QuotationProvider.
func NewQuotationProvider(
	quotationRepo billing.QuotationRepository,
	clientRepo directory.ClientRepository,
	companyRepo directory.CompanyRepository,
) *QuotationProvider {
	return &QuotationProvider{
		quotationRepo: quotationRepo,
		clientRepo:    clientRepo,
		companyRepo:   companyRepo,
	}
}

// GetDocType returns the document type this provider handles.
func (p *QuotationProvider) GetDocType() printing.DocType {
	return printing.DocTypeQuotation
}

// GetData retrieves quotation data for rendering.
func (p *QuotationProvider) GetData(ctx context.Context, documentID uuid.UUID) (*infra.DocumentData, error) {
	quotation, err := p.quotationRepo.FindByID(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load quotation: %w", err)
	}

	client, err := p.clientRepo.FindByID(ctx, quotation.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}

	company, err := p.companyRepo.FindByID(ctx, quotation.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load company: %w", err)
	}

	docNo := documentNumber(quotation.ID)
	docData := infra.NewDocumentData(printing.DocTypeQuotation, docNo)
	docData.OwnerID = quotation.FreelancerID
	docData.Meta.Status = string(quotation.Status)
	docData.Meta.StatusText = infra.StatusDisplayText(string(quotation.Status))
	docData.Meta.CreatedAt = quotation.CreatedAt
	docData.Meta.UpdatedAt = quotation.UpdatedAt

	docData.Company = companyInfo(company)
	docData.Client = clientInfo(client)

	totals := quotation.Totals()
	docData.Document = infra.QuotationData{
		ID:                 quotation.ID,
		Number:             docNo,
		Status:             string(quotation.Status),
		Notes:              quotation.Notes,
		Items:              lineItems(quotation.Items),
		Subtotal:           totals.Subtotal,
		TaxAmount:          totals.TaxAmount,
		Total:              totals.Total,
		ItemCount:          len(quotation.Items),
		IssuedAt:           quotation.CreatedAt,
		SubtotalFormatted:  infra.FormatMoneyValue(totals.Subtotal),
		TaxAmountFormatted: infra.FormatMoneyValue(totals.TaxAmount),
		TotalFormatted:     infra.FormatMoneyValue(totals.Total),
		IssuedAtFormatted:  infra.FormatDateValue(quotation.CreatedAt),
	}

	return docData, nil
}

// companyInfo maps a company aggregate to its render representation
func companyInfo(company *directory.Company) infra.CompanyInfo {
	return infra.CompanyInfo{
		ID:      company.ID,
		Name:    company.Name,
		Address: company.Address,
		Phone:   company.Phone,
		Email:   company.Email,
		Logo:    company.Logo,
		TaxID:   company.TaxID,
	}
}

// clientInfo maps a client aggregate to its render representation
func clientInfo(client *directory.Client) infra.ClientInfo {
	return infra.ClientInfo{
		ID:      client.ID,
		Name:    client.Name,
		Email:   client.Email,
		Address: client.Address,
		TaxID:   client.TaxID,
	}
}

// lineItems maps domain line items to their render representation,
// preserving insertion order
func lineItems(items []billing.LineItem) []infra.LineItemData {
	result := make([]infra.LineItemData, len(items))
	for i := range items {
		item := &items[i]
		result[i] = infra.LineItemData{
			Index:              i + 1,
			Description:        item.Description,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			TaxRate:            item.TaxRate,
			Total:              item.GrossAmount(),
			QuantityFormatted:  item.Quantity.String(),
			UnitPriceFormatted: infra.FormatMoneyValue(item.UnitPrice),
			TaxRateFormatted:   item.TaxRate.String() + " %",
			TotalFormatted:     infra.FormatMoneyValue(item.GrossAmount()),
		}
	}
	return result
}

// documentNumber derives the human-readable document number from the id
func documentNumber(id uuid.UUID) string {
	return strings.ToUpper(id.String()[:8])
}
