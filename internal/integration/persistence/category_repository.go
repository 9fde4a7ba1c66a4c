package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/integration/persistence/model"
)

// categoryRepository implements the adapter.CategoryRepository interface.
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository instance.
func NewCategoryRepository(db *gorm.DB) adapter.CategoryRepository {
	return &categoryRepository{
		db: db,
	}
}

// List retrieves every transaction category ordered by type and name.
func (r *categoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	result := r.db.WithContext(ctx).Order("type ASC, name ASC").Find(&categoryModels)
	if result.Error != nil {
		return nil, result.Error
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}

// catalogRepository implements the adapter.AccountingCatalogRepository interface.
type catalogRepository struct {
	db *gorm.DB
}

// NewAccountingCatalogRepository creates a new accounting catalog repository instance.
func NewAccountingCatalogRepository(db *gorm.DB) adapter.AccountingCatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

// FindByCode retrieves a catalog row by its code.
func (r *catalogRepository) FindByCode(ctx context.Context, code string) (*entity.AccountingCategory, error) {
	var categoryModel model.AccountingCategoryModel
	result := r.db.WithContext(ctx).Where("code = ?", code).First(&categoryModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAccountingCategoryNotFound
		}
		return nil, result.Error
	}
	return categoryModel.ToEntity(), nil
}

// ListActive retrieves the active catalog, optionally for a single movement type.
func (r *catalogRepository) ListActive(ctx context.Context, movementType *entity.MovementType) ([]*entity.AccountingCategory, error) {
	query := r.db.WithContext(ctx).Where("active = ?", true)
	if movementType != nil {
		query = query.Where("movement_type = ?", string(*movementType))
	}
	return r.list(query)
}

// ListAll retrieves the whole catalog.
func (r *catalogRepository) ListAll(ctx context.Context) ([]*entity.AccountingCategory, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *catalogRepository) list(query *gorm.DB) ([]*entity.AccountingCategory, error) {
	var categoryModels []model.AccountingCategoryModel
	if err := query.Order("code ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]*entity.AccountingCategory, len(categoryModels))
	for i := range categoryModels {
		categories[i] = categoryModels[i].ToEntity()
	}
	return categories, nil
}
