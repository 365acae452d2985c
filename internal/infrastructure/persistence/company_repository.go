package persistence

import (
	"context"
	"errors"

	"github.com/facturio/backend/internal/domain/directory"
	"github.com/facturio/backend/internal/domain/shared"
	"github.com/facturio/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOwner finds all companies owned by a freelancer
func (r *GormCompanyRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]directory.Company, error) {
	var companyModels []models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("is_default DESC, name ASC").
		Find(&companyModels).Error; err != nil {
		return nil, err
	}

	companies := make([]directory.Company, len(companyModels))
	for i, model := range companyModels {
		companies[i] = *model.ToDomain()
	}
	return companies, nil
}

// FindDefaultByOwner finds the owner's default company
func (r *GormCompanyRepository) FindDefaultByOwner(ctx context.Context, ownerID uuid.UUID) (*directory.Company, error) {
	var model models.CompanyModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND is_default = ?", ownerID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNoCompany
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *directory.Company) error {
	model := models.CompanyModelFromDomain(company)
	return r.db.WithContext(ctx).Save(model).Error
}

// SetDefault clears the default flag on every company of the owner and
// sets it on the given company, all in one transaction
func (r *GormCompanyRepository) SetDefault(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.CompanyModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if err := tx.Model(&models.CompanyModel{}).
			Where("owner_id = ?", model.OwnerID).
			Update("is_default", false).Error; err != nil {
			return err
		}

		return tx.Model(&models.CompanyModel{}).
			Where("id = ?", id).
			Update("is_default", true).Error
	})
}

// Delete deletes a company
func (r *GormCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CompanyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormCompanyRepository implements CompanyRepository
var _ directory.CompanyRepository = (*GormCompanyRepository)(nil)
