package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/facturio/backend/internal/domain/billing"
	"github.com/facturio/backend/internal/domain/directory"
	"github.com/facturio/backend/internal/domain/shared"
	"github.com/facturio/backend/internal/domain/shared/valueobject"
)

// InvoiceService handles invoice business operations
type InvoiceService struct {
	invoiceRepo   billing.InvoiceRepository
	quotationRepo billing.QuotationRepository
	clientRepo    directory.ClientRepository
	companyRepo   directory.CompanyRepository
	logger        *zap.Logger
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	invoiceRepo billing.InvoiceRepository,
	quotationRepo billing.QuotationRepository,
	clientRepo directory.ClientRepository,
	companyRepo directory.CompanyRepository,
	logger *zap.Logger,
) *InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceService{
		invoiceRepo:   invoiceRepo,
		quotationRepo: quotationRepo,
		clientRepo:    clientRepo,
		companyRepo:   companyRepo,
		logger:        logger,
	}
}

// Create creates a new invoice, optionally derived from a quotation.
// When QuotationID is set the quotation must exist. CopyQuotationItems is
// opt-in: without it the reference is stored but the invoice starts with
// only the items carried in the request.
func (s *InvoiceService) Create(ctx context.Context, freelancerID uuid.UUID, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	client, err := s.resolveClient(ctx, req.ClientUserID)
	if err != nil {
		return nil, err
	}

	companyID, err := s.resolveCompany(ctx, freelancerID, req.CompanyID)
	if err != nil {
		return nil, err
	}

	var quotation *billing.Quotation
	if req.QuotationID != nil && *req.QuotationID != uuid.Nil {
		quotation, err = s.quotationRepo.FindByID(ctx, *req.QuotationID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("QUOTATION_NOT_FOUND", "Referenced quotation does not exist")
			}
			return nil, fmt.Errorf("failed to load quotation: %w", err)
		}
	}

	invoice, err := billing.NewInvoice(
		freelancerID,
		client.ID,
		companyID,
		req.QuotationID,
		billing.InvoiceStatus(req.Status),
		req.DueDate,
	)
	if err != nil {
		return nil, err
	}

	if req.CopyQuotationItems && quotation != nil {
		for i := range quotation.Items {
			item := &quotation.Items[i]
			if _, err := invoice.AddItem(
				item.Description,
				item.Quantity,
				valueobject.NewMoneyEUR(item.UnitPrice),
				item.TaxRate,
			); err != nil {
				return nil, err
			}
		}
	}

	if err := addItems(invoice.AddItem, req.Items); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.logger.Info("invoice created",
		zap.String("id", invoice.ID.String()),
		zap.String("clientId", client.ID.String()),
		zap.Bool("fromQuotation", quotation != nil),
		zap.Int("items", invoice.ItemCount()))

	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// GetByID retrieves an invoice with its items and computed totals
func (s *InvoiceService) GetByID(ctx context.Context, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// List retrieves a paginated list of the freelancer's invoices
func (s *InvoiceService) List(ctx context.Context, freelancerID uuid.UUID, req ListRequest) ([]InvoiceListItemResponse, int64, error) {
	filter := listFilter(req)

	invoices, err := s.invoiceRepo.FindByFreelancer(ctx, freelancerID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}

	filter.Filters["freelancer_id"] = freelancerID
	total, err := s.invoiceRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	items := make([]InvoiceListItemResponse, len(invoices))
	for i := range invoices {
		items[i] = ToInvoiceListItemResponse(&invoices[i])
	}

	return items, total, nil
}

// ListForClient retrieves the invoices addressed to a client, looked up
// by the client's user account id. An unmapped user id fails the request.
func (s *InvoiceService) ListForClient(ctx context.Context, clientUserID uuid.UUID, req ListRequest) ([]InvoiceListItemResponse, error) {
	client, err := s.resolveClient(ctx, clientUserID)
	if err != nil {
		return nil, err
	}

	invoices, err := s.invoiceRepo.FindByClient(ctx, client.ID, listFilter(req))
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for client: %w", err)
	}

	items := make([]InvoiceListItemResponse, len(invoices))
	for i := range invoices {
		items[i] = ToInvoiceListItemResponse(&invoices[i])
	}
	return items, nil
}

// ListByQuotation retrieves the invoices derived from a quotation
func (s *InvoiceService) ListByQuotation(ctx context.Context, quotationID uuid.UUID) ([]InvoiceListItemResponse, error) {
	invoices, err := s.invoiceRepo.FindByQuotation(ctx, quotationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices for quotation: %w", err)
	}

	items := make([]InvoiceListItemResponse, len(invoices))
	for i := range invoices {
		items[i] = ToInvoiceListItemResponse(&invoices[i])
	}
	return items, nil
}

// Update replaces an invoice's header fields and line items.
// Status changes routed through here keep the paid-at invariant because
// the aggregate applies the same side effect as ChangeStatus.
func (s *InvoiceService) Update(ctx context.Context, invoiceID uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	client, err := s.resolveClient(ctx, req.ClientUserID)
	if err != nil {
		return nil, err
	}

	companyID, err := s.resolveCompany(ctx, invoice.FreelancerID, req.CompanyID)
	if err != nil {
		return nil, err
	}

	if req.QuotationID != nil && *req.QuotationID != uuid.Nil {
		exists, err := s.quotationRepo.ExistsByID(ctx, *req.QuotationID)
		if err != nil {
			return nil, fmt.Errorf("failed to check quotation: %w", err)
		}
		if !exists {
			return nil, shared.NewDomainError("QUOTATION_NOT_FOUND", "Referenced quotation does not exist")
		}
	}

	status := billing.InvoiceStatus(req.Status)
	if status == "" {
		status = invoice.Status
	}

	if err := invoice.UpdateDetails(req.QuotationID, client.ID, companyID, status, req.DueDate); err != nil {
		return nil, err
	}

	// Items are replaced wholesale: the stored rows mirror the request
	invoice.Items = invoice.Items[:0]
	if err := addItems(invoice.AddItem, req.Items); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.logger.Info("invoice updated",
		zap.String("id", invoice.ID.String()),
		zap.Int("items", invoice.ItemCount()))

	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// ChangeStatus moves an invoice to the target payment status.
// Moving to Paid stamps PaidAt; leaving Paid clears it.
func (s *InvoiceService) ChangeStatus(ctx context.Context, invoiceID uuid.UUID, req ChangeStatusRequest) (*InvoiceResponse, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	if err := invoice.ChangeStatus(billing.InvoiceStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	s.logger.Info("invoice status changed",
		zap.String("id", invoice.ID.String()),
		zap.String("status", string(invoice.Status)))

	resp := ToInvoiceResponse(invoice)
	return &resp, nil
}

// Delete removes an invoice and its items
func (s *InvoiceService) Delete(ctx context.Context, invoiceID uuid.UUID) error {
	if _, err := s.invoiceRepo.FindByID(ctx, invoiceID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Invoice not found")
		}
		return fmt.Errorf("failed to get invoice: %w", err)
	}

	if err := s.invoiceRepo.Delete(ctx, invoiceID); err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	s.logger.Info("invoice deleted", zap.String("id", invoiceID.String()))
	return nil
}

// MarkOverdueInvoices flags every unpaid invoice whose due date has passed.
// It returns the number of invoices moved to Overdue. Used by the periodic
// sweep; safe to run repeatedly since already-overdue invoices are skipped.
func (s *InvoiceService) MarkOverdueInvoices(ctx context.Context, now time.Time) (int, error) {
	invoices, err := s.invoiceRepo.FindUnpaidDueBefore(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to find overdue candidates: %w", err)
	}

	marked := 0
	for i := range invoices {
		invoice := &invoices[i]
		if !invoice.MarkOverdue(now) {
			continue
		}
		if err := s.invoiceRepo.Save(ctx, invoice); err != nil {
			return marked, fmt.Errorf("failed to save overdue invoice %s: %w", invoice.ID, err)
		}
		marked++
	}

	if marked > 0 {
		s.logger.Info("overdue sweep completed", zap.Int("marked", marked))
	}
	return marked, nil
}

// resolveClient maps a client user account id to its client record
func (s *InvoiceService) resolveClient(ctx context.Context, clientUserID uuid.UUID) (*directory.Client, error) {
	if clientUserID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CLIENT", "Client ID cannot be empty")
	}

	client, err := s.clientRepo.FindByUserID(ctx, clientUserID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("CLIENT_NOT_MAPPED", "No client record exists for this user")
		}
		return nil, fmt.Errorf("failed to resolve client: %w", err)
	}
	return client, nil
}

// resolveCompany returns the requested company id, falling back to the
// freelancer's default company when the request leaves it blank
func (s *InvoiceService) resolveCompany(ctx context.Context, freelancerID uuid.UUID, companyID *uuid.UUID) (uuid.UUID, error) {
	if companyID != nil && *companyID != uuid.Nil {
		company, err := s.companyRepo.FindByID(ctx, *companyID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return uuid.Nil, shared.NewDomainError("NOT_FOUND", "Company not found")
			}
			return uuid.Nil, fmt.Errorf("failed to resolve company: %w", err)
		}
		return company.ID, nil
	}

	company, err := s.companyRepo.FindDefaultByOwner(ctx, freelancerID)
	if err != nil {
		if errors.Is(err, shared.ErrNoCompany) {
			return uuid.Nil, shared.NewDomainError("NO_DEFAULT_COMPANY", "No default company configured")
		}
		return uuid.Nil, fmt.Errorf("failed to resolve default company: %w", err)
	}
	return company.ID, nil
}
