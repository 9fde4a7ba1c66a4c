package model

import (
	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

// CategoryModel represents the categories table in the database.
type CategoryModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_type_name,priority:2"`
	Type        string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_categories_type_name,priority:1"`
	Group       string    `gorm:"column:grupo;type:varchar(100)"`
	Description string    `gorm:"type:text"`
}

// TableName returns the table name for the CategoryModel.
func (CategoryModel) TableName() string {
	return "categories"
}

// ToEntity converts a CategoryModel to a domain Category entity.
func (m *CategoryModel) ToEntity() *entity.Category {
	return &entity.Category{
		ID:          m.ID,
		Name:        m.Name,
		Type:        entity.TransactionType(m.Type),
		Group:       m.Group,
		Description: m.Description,
	}
}

// CategoryModelFromEntity creates a CategoryModel from a domain Category entity.
func CategoryModelFromEntity(c *entity.Category) *CategoryModel {
	return &CategoryModel{
		ID:          c.ID,
		Name:        c.Name,
		Type:        string(c.Type),
		Group:       c.Group,
		Description: c.Description,
	}
}

// AccountingCategoryModel represents the accounting_categories catalog table.
type AccountingCategoryModel struct {
	Code         string `gorm:"type:varchar(20);primaryKey"`
	Name         string `gorm:"type:varchar(100);not null"`
	MovementType string `gorm:"type:varchar(10);not null;index"`
	Description  string `gorm:"type:text"`
	Active       bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for the AccountingCategoryModel.
func (AccountingCategoryModel) TableName() string {
	return "accounting_categories"
}

// ToEntity converts an AccountingCategoryModel to a domain AccountingCategory entity.
func (m *AccountingCategoryModel) ToEntity() *entity.AccountingCategory {
	return &entity.AccountingCategory{
		Code:         m.Code,
		Name:         m.Name,
		MovementType: entity.MovementType(m.MovementType),
		Description:  m.Description,
		Active:       m.Active,
	}
}

// AccountingCategoryModelFromEntity creates an AccountingCategoryModel from a domain entity.
func AccountingCategoryModelFromEntity(c *entity.AccountingCategory) *AccountingCategoryModel {
	return &AccountingCategoryModel{
		Code:         c.Code,
		Name:         c.Name,
		MovementType: string(c.MovementType),
		Description:  c.Description,
		Active:       c.Active,
	}
}
