package directory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/facturio/backend/internal/domain/directory"
	"github.com/facturio/backend/internal/domain/shared"
)

// CompanyService handles issuing company operations for a freelancer
type CompanyService struct {
	companyRepo directory.CompanyRepository
	logger      *zap.Logger
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo directory.CompanyRepository, logger *zap.Logger) *CompanyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompanyService{
		companyRepo: companyRepo,
		logger:      logger,
	}
}

// Create registers a company for a freelancer. The first company of an
// owner becomes the default automatically.
func (s *CompanyService) Create(ctx context.Context, ownerID uuid.UUID, req CreateCompanyRequest) (*CompanyResponse, error) {
	isDefault := req.IsDefault

	existing, err := s.companyRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		isDefault = true
	}

	company, err := directory.NewCompany(ownerID, req.Name, req.Address, req.TaxID, req.Email, req.Phone, isDefault)
	if err != nil {
		return nil, err
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	// The swap clears the flag on the owner's other companies
	if isDefault && len(existing) > 0 {
		if err := s.companyRepo.SetDefault(ctx, company.ID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("company created",
		zap.String("companyId", company.ID.String()),
		zap.String("ownerId", ownerID.String()),
		zap.Bool("isDefault", isDefault))

	return ToCompanyResponse(company), nil
}

// GetByID returns a company by ID
func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToCompanyResponse(company), nil
}

// ListByOwner returns all companies of a freelancer
func (s *CompanyService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]CompanyResponse, error) {
	companies, err := s.companyRepo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	result := make([]CompanyResponse, len(companies))
	for i := range companies {
		result[i] = *ToCompanyResponse(&companies[i])
	}
	return result, nil
}

// GetDefault returns the freelancer's default company
func (s *CompanyService) GetDefault(ctx context.Context, ownerID uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindDefaultByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, shared.ErrNoCompany) {
			return nil, shared.NewDomainError("NO_DEFAULT_COMPANY", "The freelancer has no default company")
		}
		return nil, err
	}
	return ToCompanyResponse(company), nil
}

// Update replaces a company's information
func (s *CompanyService) Update(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wasDefault := company.IsDefault

	if err := company.UpdateDetails(req.Name, req.Address, req.TaxID, req.Email, req.Phone, req.IsDefault); err != nil {
		return nil, err
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	if req.IsDefault && !wasDefault {
		if err := s.companyRepo.SetDefault(ctx, company.ID); err != nil {
			return nil, err
		}
	}

	return ToCompanyResponse(company), nil
}

// SetDefault makes the company its owner's default issuer. The repository
// clears the flag on the owner's other companies in the same transaction.
func (s *CompanyService) SetDefault(ctx context.Context, id uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.companyRepo.SetDefault(ctx, company.ID); err != nil {
		return nil, err
	}

	company.MarkDefault()
	return ToCompanyResponse(company), nil
}

// SetLogo stores the uploaded logo filename on the company
func (s *CompanyService) SetLogo(ctx context.Context, id uuid.UUID, filename string) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	company.SetLogo(filename)

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	return ToCompanyResponse(company), nil
}

// Delete removes a company. The default company cannot be removed while
// the owner has other companies, so billing always has an issuer to fall
// back on.
func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID) error {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if company.IsDefault {
		others, err := s.companyRepo.FindByOwner(ctx, company.OwnerID)
		if err != nil {
			return err
		}
		if len(others) > 1 {
			return shared.NewDomainError("DEFAULT_COMPANY", "Set another company as default before deleting this one")
		}
	}

	return s.companyRepo.Delete(ctx, id)
}
