package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/integration/persistence/model"
)

// adviceRepository implements the adapter.AdviceRepository interface.
type adviceRepository struct {
	db *gorm.DB
}

// NewAdviceRepository creates a new advice repository instance.
func NewAdviceRepository(db *gorm.DB) adapter.AdviceRepository {
	return &adviceRepository{
		db: db,
	}
}

// Create stores a new advice.
func (r *adviceRepository) Create(ctx context.Context, advice *entity.Advice) error {
	return r.db.WithContext(ctx).Create(model.AdviceModelFromEntity(advice)).Error
}

// FindByID retrieves an advice by its ID.
func (r *adviceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Advice, error) {
	var adviceModel model.AdviceModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&adviceModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrAdviceNotFound
		}
		return nil, result.Error
	}
	return adviceModel.ToEntity(), nil
}

// FindByFilter retrieves the advices of a user, newest first.
func (r *adviceRepository) FindByFilter(ctx context.Context, filter adapter.AdviceFilter) ([]*entity.Advice, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", filter.UserID)
	if filter.Read != nil {
		query = query.Where("leido = ?", *filter.Read)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var models []model.AdviceModel
	if err := query.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	advices := make([]*entity.Advice, len(models))
	for i := range models {
		advices[i] = models[i].ToEntity()
	}
	return advices, nil
}

// MarkRead flags an advice as read.
func (r *adviceRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&model.AdviceModel{}).
		Where("id = ?", id).
		Update("leido", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrAdviceNotFound
	}
	return nil
}

// auditLogRepository implements the adapter.AuditLogRepository interface.
type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository instance.
func NewAuditLogRepository(db *gorm.DB) adapter.AuditLogRepository {
	return &auditLogRepository{
		db: db,
	}
}

// Create appends an audit record.
func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return r.db.WithContext(ctx).Create(model.AuditLogModelFromEntity(log)).Error
}

// FindByUser retrieves the audit trail of a user, newest first.
func (r *auditLogRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.AuditLog, error) {
	var models []model.AuditLogModel
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	logs := make([]*entity.AuditLog, len(models))
	for i := range models {
		logs[i] = models[i].ToEntity()
	}
	return logs, nil
}
