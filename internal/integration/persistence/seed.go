package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/asistente-contable/backend/internal/domain/entity"
	"github.com/asistente-contable/backend/internal/integration/persistence/model"
)

// SeedReferenceData inserts the accounting catalog and the default transaction
// categories. Rows that already exist are left as they are.
func SeedReferenceData(ctx context.Context, db *gorm.DB) error {
	catalog := make([]*model.AccountingCategoryModel, 0, len(entity.DefaultAccountingCatalog))
	for i := range entity.DefaultAccountingCatalog {
		catalog = append(catalog, model.AccountingCategoryModelFromEntity(&entity.DefaultAccountingCatalog[i]))
	}

	defaults := entity.DefaultCategories()
	categories := make([]*model.CategoryModel, 0, len(defaults))
	for i := range defaults {
		categories = append(categories, model.CategoryModelFromEntity(&defaults[i]))
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&catalog).Error; err != nil {
			return fmt.Errorf("failed to seed accounting catalog: %w", err)
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Reference data seeded",
		"accounting_categories", len(catalog),
		"categories", len(categories),
	)
	return nil
}
