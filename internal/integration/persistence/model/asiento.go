package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

// AsientoModel represents the asientos table in the database.
type AsientoModel struct {
	ID                 string           `gorm:"type:varchar(64);primaryKey"`
	UserID             uuid.UUID        `gorm:"type:uuid;not null;index:idx_asientos_user_date,priority:1"`
	Date               time.Time        `gorm:"type:date;not null;index:idx_asientos_user_date,priority:2"`
	Description        string           `gorm:"type:varchar(255);not null"`
	MovementType       string           `gorm:"type:varchar(10);not null;index"`
	CategoryCode       string           `gorm:"type:varchar(20);not null;index"`
	Amount             decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	Currency           string           `gorm:"type:varchar(3);not null;default:'EUR'"`
	SourceAccount      string           `gorm:"type:varchar(100);not null"`
	DestinationAccount *string          `gorm:"type:varchar(100)"`
	BalanceAfter       *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Reference          *string          `gorm:"type:varchar(100)"`
	DataSource         string           `gorm:"type:varchar(20);not null;default:'manual'"`
	CreatedAt          time.Time        `gorm:"not null"`
	UpdatedAt          time.Time        `gorm:"not null"`

	Category *AccountingCategoryModel `gorm:"foreignKey:CategoryCode;references:Code"`
}

// TableName returns the table name for the AsientoModel.
func (AsientoModel) TableName() string {
	return "asientos"
}

// ToEntity converts an AsientoModel to a domain Asiento entity.
func (m *AsientoModel) ToEntity() *entity.Asiento {
	return &entity.Asiento{
		ID:                 m.ID,
		UserID:             m.UserID,
		Date:               m.Date.UTC(),
		Description:        m.Description,
		MovementType:       entity.MovementType(m.MovementType),
		CategoryCode:       m.CategoryCode,
		Amount:             m.Amount,
		Currency:           m.Currency,
		SourceAccount:      m.SourceAccount,
		DestinationAccount: m.DestinationAccount,
		BalanceAfter:       m.BalanceAfter,
		Reference:          m.Reference,
		DataSource:         entity.DataSource(m.DataSource),
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// AsientoModelFromEntity creates an AsientoModel from a domain Asiento entity.
func AsientoModelFromEntity(a *entity.Asiento) *AsientoModel {
	return &AsientoModel{
		ID:                 a.ID,
		UserID:             a.UserID,
		Date:               a.Date,
		Description:        a.Description,
		MovementType:       string(a.MovementType),
		CategoryCode:       a.CategoryCode,
		Amount:             a.Amount,
		Currency:           a.Currency,
		SourceAccount:      a.SourceAccount,
		DestinationAccount: a.DestinationAccount,
		BalanceAfter:       a.BalanceAfter,
		Reference:          a.Reference,
		DataSource:         string(a.DataSource),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}
