package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/facturio/backend/internal/domain/billing"
	"github.com/facturio/backend/internal/domain/directory"
	"github.com/facturio/backend/internal/domain/shared"
	"github.com/facturio/backend/internal/domain/shared/valueobject"
)

// QuotationService handles quotation business operations
type QuotationService struct {
	quotationRepo billing.QuotationRepository
	clientRepo    directory.ClientRepository
	companyRepo   directory.CompanyRepository
	logger        *zap.Logger
}

// NewQuotationService creates a new QuotationService
func NewQuotationService(
	quotationRepo billing.QuotationRepository,
	clientRepo directory.ClientRepository,
	companyRepo directory.CompanyRepository,
	logger *zap.Logger,
) *QuotationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuotationService{
		quotationRepo: quotationRepo,
		clientRepo:    clientRepo,
		companyRepo:   companyRepo,
		logger:        logger,
	}
}

// Create creates a new quotation with its line items.
// The client is addressed by user account id and mapped to its client
// record first; a missing mapping fails the request before anything is
// written. Items with a blank description are skipped silently.
func (s *QuotationService) Create(ctx context.Context, freelancerID uuid.UUID, req CreateQuotationRequest) (*QuotationResponse, error) {
	client, err := s.resolveClient(ctx, req.ClientUserID)
	if err != nil {
		return nil, err
	}

	companyID, err := s.resolveCompany(ctx, freelancerID, req.CompanyID)
	if err != nil {
		return nil, err
	}

	quotation, err := billing.NewQuotation(
		freelancerID,
		client.ID,
		companyID,
		billing.QuotationStatus(req.Status),
		req.Notes,
	)
	if err != nil {
		return nil, err
	}

	if err := addItems(quotation.AddItem, req.Items); err != nil {
		return nil, err
	}

	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return nil, fmt.Errorf("failed to save quotation: %w", err)
	}

	s.logger.Info("quotation created",
		zap.String("id", quotation.ID.String()),
		zap.String("clientId", client.ID.String()),
		zap.Int("items", quotation.ItemCount()))

	resp := ToQuotationResponse(quotation)
	return &resp, nil
}

// GetByID retrieves a quotation with its items and computed totals
func (s *QuotationService) GetByID(ctx context.Context, quotationID uuid.UUID) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, quotationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Quotation not found")
		}
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	resp := ToQuotationResponse(quotation)
	return &resp, nil
}

// List retrieves a paginated list of the freelancer's quotations
func (s *QuotationService) List(ctx context.Context, freelancerID uuid.UUID, req ListRequest) ([]QuotationListItemResponse, int64, error) {
	filter := listFilter(req)

	quotations, err := s.quotationRepo.FindByFreelancer(ctx, freelancerID, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list quotations: %w", err)
	}

	filter.Filters["freelancer_id"] = freelancerID
	total, err := s.quotationRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count quotations: %w", err)
	}

	items := make([]QuotationListItemResponse, len(quotations))
	for i := range quotations {
		items[i] = ToQuotationListItemResponse(&quotations[i])
	}

	return items, total, nil
}

// ListForClient retrieves the quotations addressed to a client, looked up
// by the client's user account id. An unmapped user id fails the request.
func (s *QuotationService) ListForClient(ctx context.Context, clientUserID uuid.UUID, req ListRequest) ([]QuotationListItemResponse, error) {
	client, err := s.resolveClient(ctx, clientUserID)
	if err != nil {
		return nil, err
	}

	quotations, err := s.quotationRepo.FindByClient(ctx, client.ID, listFilter(req))
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations for client: %w", err)
	}

	items := make([]QuotationListItemResponse, len(quotations))
	for i := range quotations {
		items[i] = ToQuotationListItemResponse(&quotations[i])
	}
	return items, nil
}

// Update replaces a quotation's header fields and line items
func (s *QuotationService) Update(ctx context.Context, quotationID uuid.UUID, req UpdateQuotationRequest) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, quotationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Quotation not found")
		}
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	client, err := s.resolveClient(ctx, req.ClientUserID)
	if err != nil {
		return nil, err
	}

	companyID, err := s.resolveCompany(ctx, quotation.FreelancerID, req.CompanyID)
	if err != nil {
		return nil, err
	}

	status := billing.QuotationStatus(req.Status)
	if status == "" {
		status = quotation.Status
	}

	if err := quotation.UpdateDetails(client.ID, companyID, status, req.Notes); err != nil {
		return nil, err
	}

	// Items are replaced wholesale: the stored rows mirror the request
	quotation.Items = quotation.Items[:0]
	if err := addItems(quotation.AddItem, req.Items); err != nil {
		return nil, err
	}

	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return nil, fmt.Errorf("failed to save quotation: %w", err)
	}

	s.logger.Info("quotation updated",
		zap.String("id", quotation.ID.String()),
		zap.Int("items", quotation.ItemCount()))

	resp := ToQuotationResponse(quotation)
	return &resp, nil
}

// ChangeStatus moves a quotation to the target lifecycle status
func (s *QuotationService) ChangeStatus(ctx context.Context, quotationID uuid.UUID, req ChangeStatusRequest) (*QuotationResponse, error) {
	quotation, err := s.quotationRepo.FindByID(ctx, quotationID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Quotation not found")
		}
		return nil, fmt.Errorf("failed to get quotation: %w", err)
	}

	if err := quotation.ChangeStatus(billing.QuotationStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.quotationRepo.Save(ctx, quotation); err != nil {
		return nil, fmt.Errorf("failed to save quotation: %w", err)
	}

	s.logger.Info("quotation status changed",
		zap.String("id", quotation.ID.String()),
		zap.String("status", string(quotation.Status)))

	resp := ToQuotationResponse(quotation)
	return &resp, nil
}

// Delete removes a quotation and its items
func (s *QuotationService) Delete(ctx context.Context, quotationID uuid.UUID) error {
	exists, err := s.quotationRepo.ExistsByID(ctx, quotationID)
	if err != nil {
		return fmt.Errorf("failed to check quotation: %w", err)
	}
	if !exists {
		return shared.NewDomainError("NOT_FOUND", "Quotation not found")
	}

	if err := s.quotationRepo.Delete(ctx, quotationID); err != nil {
		return fmt.Errorf("failed to delete quotation: %w", err)
	}

	s.logger.Info("quotation deleted", zap.String("id", quotationID.String()))
	return nil
}

// =============================================================================
// Shared helpers
// =============================================================================

// resolveClient maps a client user account id to its client record.
// Failing here keeps the request side-effect free: no header row, no items.
func (s *QuotationService) resolveClient(ctx context.Context, clientUserID uuid.UUID) (*directory.Client, error) {
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
func (s *QuotationService) resolveCompany(ctx context.Context, freelancerID uuid.UUID, companyID *uuid.UUID) (uuid.UUID, error) {
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

// addItems parses and appends the requested lines through the aggregate's
// AddItem. Lines with a blank description are skipped without error, so a
// form submitted with empty trailing rows stores only the filled ones.
func addItems(add func(string, decimal.Decimal, valueobject.Money, decimal.Decimal) (*billing.LineItem, error), inputs []LineItemInput) error {
	for _, in := range inputs {
		if strings.TrimSpace(in.Description) == "" {
			continue
		}

		quantity, err := parseDecimal(in.Quantity, "quantity")
		if err != nil {
			return err
		}
		unitPrice, err := parseDecimal(in.UnitPrice, "unit_price")
		if err != nil {
			return err
		}
		taxRate := decimal.Zero
		if in.TaxRate != "" {
			taxRate, err = parseDecimal(in.TaxRate, "tax_rate")
			if err != nil {
				return err
			}
		}

		if _, err := add(in.Description, quantity, valueobject.NewMoneyEUR(unitPrice), taxRate); err != nil {
			return err
		}
	}
	return nil
}

func parseDecimal(value, field string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, shared.NewDomainError("INVALID_INPUT", "Invalid decimal value for "+field)
	}
	return d, nil
}

func listFilter(req ListRequest) shared.Filter {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	return filter
}
