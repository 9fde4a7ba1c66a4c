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

// asientoRepository implements the adapter.AsientoRepository interface.
type asientoRepository struct {
	db *gorm.DB
}

// NewAsientoRepository creates a new accounting entry repository instance.
func NewAsientoRepository(db *gorm.DB) adapter.AsientoRepository {
	return &asientoRepository{
		db: db,
	}
}

func (r *asientoRepository) Create(ctx context.Context, asiento *entity.Asiento) error {
	result := r.db.WithContext(ctx).Create(model.AsientoModelFromEntity(asiento))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domainerror.ErrDuplicateAsientoID
		}
		return result.Error
	}
	return nil
}

func (r *asientoRepository) FindByID(ctx context.Context, id string) (*entity.Asiento, error) {
	var asientoModel model.AsientoModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&asientoModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAsientoNotFound
		}
		return nil, result.Error
	}
	return asientoModel.ToEntity(), nil
}

func (r *asientoRepository) FindByFilter(ctx context.Context, filter adapter.AsientoFilter) ([]*entity.Asiento, error) {
	query := r.db.WithContext(ctx).Model(&model.AsientoModel{}).
		Where("user_id = ?", filter.UserID)

	if filter.StartDate != nil {
		query = query.Where("date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("date <= ?", *filter.EndDate)
	}
	if filter.MovementType != nil {
		query = query.Where("movement_type = ?", string(*filter.MovementType))
	}
	if filter.CategoryCode != "" {
		query = query.Where("category_code = ?", filter.CategoryCode)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var models []model.AsientoModel
	if err := query.Order("date DESC, created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	asientos := make([]*entity.Asiento, len(models))
	for i := range models {
		asientos[i] = models[i].ToEntity()
	}
	return asientos, nil
}

func (r *asientoRepository) Update(ctx context.Context, asiento *entity.Asiento) error {
	return r.db.WithContext(ctx).Save(model.AsientoModelFromEntity(asiento)).Error
}

func (r *asientoRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.AsientoModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAsientoNotFound
	}
	return nil
}
