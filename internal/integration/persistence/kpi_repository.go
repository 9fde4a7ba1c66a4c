package persistence

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	"github.com/asistente-contable/backend/internal/integration/persistence/model"
)

type kpiRepository struct {
	db *gorm.DB
}

// NewKPIRepository creates a new KPI snapshot repository instance.
func NewKPIRepository(db *gorm.DB) adapter.KPIRepository {
	return &kpiRepository{
		db: db,
	}
}

// Upsert writes the snapshot, overwriting the figures of an existing (user, period) row.
// The row keeps its original id, which is copied back into summary.
func (r *kpiRepository) Upsert(ctx context.Context, summary *entity.KPISummary) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "period"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_income", "total_expense", "total_savings", "total_investment",
				"balance", "savings_percent", "liquidity", "debt_ratio", "net_margin",
				"transaction_count", "computed_at",
			}),
		}).Create(model.KPISummaryModelFromEntity(summary)).Error
		if err != nil {
			return err
		}

		var stored model.KPISummaryModel
		if err := tx.Select("id").
			Where("user_id = ? AND period = ?", summary.UserID, summary.Period).
			First(&stored).Error; err != nil {
			return err
		}
		summary.ID = stored.ID
		return nil
	})
}
