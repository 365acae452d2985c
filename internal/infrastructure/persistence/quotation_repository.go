package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/facturio/backend/internal/domain/billing"
	"github.com/facturio/backend/internal/domain/shared"
	"github.com/facturio/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormQuotationRepository implements QuotationRepository using GORM
type GormQuotationRepository struct {
	db *gorm.DB
}

// NewGormQuotationRepository creates a new GormQuotationRepository
func NewGormQuotationRepository(db *gorm.DB) *GormQuotationRepository {
	return &GormQuotationRepository{db: db}
}

// FindByID finds a quotation by its ID with items ordered by position
func (r *GormQuotationRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Quotation, error) {
	var model models.QuotationModel
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all quotations matching the filter
func (r *GormQuotationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]billing.Quotation, error) {
	var quotationModels []models.QuotationModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.QuotationModel{}), filter)

	if err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&quotationModels).Error; err != nil {
		return nil, err
	}

	quotations := make([]billing.Quotation, len(quotationModels))
	for i, model := range quotationModels {
		quotations[i] = *model.ToDomain()
	}
	return quotations, nil
}

// FindByFreelancer finds quotations issued by a freelancer
func (r *GormQuotationRepository) FindByFreelancer(ctx context.Context, freelancerID uuid.UUID, filter shared.Filter) ([]billing.Quotation, error) {
	var quotationModels []models.QuotationModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.QuotationModel{}).
			Where("freelancer_id = ?", freelancerID),
		filter,
	)

	if err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&quotationModels).Error; err != nil {
		return nil, err
	}

	quotations := make([]billing.Quotation, len(quotationModels))
	for i, model := range quotationModels {
		quotations[i] = *model.ToDomain()
	}
	return quotations, nil
}

// FindByClient finds quotations addressed to a client record
func (r *GormQuotationRepository) FindByClient(ctx context.Context, clientID uuid.UUID, filter shared.Filter) ([]billing.Quotation, error) {
	var quotationModels []models.QuotationModel
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&models.QuotationModel{}).
			Where("client_id = ?", clientID),
		filter,
	)

	if err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&quotationModels).Error; err != nil {
		return nil, err
	}

	quotations := make([]billing.Quotation, len(quotationModels))
	for i, model := range quotationModels {
		quotations[i] = *model.ToDomain()
	}
	return quotations, nil
}

// Save creates or updates a quotation together with its items.
// Header and items are written in one transaction so a failed item
// insert leaves no rows behind.
func (r *GormQuotationRepository) Save(ctx context.Context, quotation *billing.Quotation) error {
	model := models.QuotationModelFromDomain(quotation)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", quotation.ID).
			Delete(&models.QuotationItemModel{}).Error; err != nil {
			return err
		}
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}
		if len(model.Items) == 0 {
			return nil
		}
		return tx.Create(&model.Items).Error
	})
}

// Delete deletes a quotation; items cascade via the foreign key
func (r *GormQuotationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quotation_id = ?", id).
			Delete(&models.QuotationItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.QuotationModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// ExistsByID checks whether a quotation exists
func (r *GormQuotationRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts quotations matching the filter
func (r *GormQuotationRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.QuotationModel{})
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormQuotationRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if strings.TrimSpace(filter.OrderBy) != "" {
		orderBy := ValidateSortField(filter.OrderBy, QuotationSortFields, "created_at")
		orderDir := ValidateSortOrder(filter.OrderDir)
		query = query.Order(orderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormQuotationRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("notes ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "freelancer_id":
			query = query.Where("freelancer_id = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "company_id":
			query = query.Where("company_id = ?", value)
		}
	}

	return query
}

// Ensure GormQuotationRepository implements QuotationRepository
var _ billing.QuotationRepository = (*GormQuotationRepository)(nil)
