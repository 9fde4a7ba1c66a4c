package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

// KPISummaryModel represents the kpi_summaries table. One row per user and period.
type KPISummaryModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_kpi_user_period,priority:1"`
	Period           string          `gorm:"type:varchar(7);not null;uniqueIndex:idx_kpi_user_period,priority:2"`
	TotalIncome      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalExpense     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalSavings     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalInvestment  decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Balance          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	SavingsPercent   decimal.Decimal `gorm:"type:decimal(7,2);not null"`
	Liquidity        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DebtRatio        decimal.Decimal `gorm:"type:decimal(9,2);not null"`
	NetMargin        decimal.Decimal `gorm:"type:decimal(9,2);not null"`
	TransactionCount int             `gorm:"not null;default:0"`
	ComputedAt       time.Time       `gorm:"not null"`
}

// TableName returns the table name for the KPISummaryModel.
func (KPISummaryModel) TableName() string {
	return "kpi_summaries"
}

// ToEntity converts a KPISummaryModel to a domain KPISummary entity.
func (m *KPISummaryModel) ToEntity() *entity.KPISummary {
	return &entity.KPISummary{
		ID:               m.ID,
		UserID:           m.UserID,
		Period:           m.Period,
		TotalIncome:      m.TotalIncome,
		TotalExpense:     m.TotalExpense,
		TotalSavings:     m.TotalSavings,
		TotalInvestment:  m.TotalInvestment,
		Balance:          m.Balance,
		SavingsPercent:   m.SavingsPercent,
		Liquidity:        m.Liquidity,
		DebtRatio:        m.DebtRatio,
		NetMargin:        m.NetMargin,
		TransactionCount: m.TransactionCount,
		ComputedAt:       m.ComputedAt,
	}
}

// KPISummaryModelFromEntity creates a KPISummaryModel from a domain KPISummary entity.
func KPISummaryModelFromEntity(s *entity.KPISummary) *KPISummaryModel {
	return &KPISummaryModel{
		ID:               s.ID,
		UserID:           s.UserID,
		Period:           s.Period,
		TotalIncome:      s.TotalIncome,
		TotalExpense:     s.TotalExpense,
		TotalSavings:     s.TotalSavings,
		TotalInvestment:  s.TotalInvestment,
		Balance:          s.Balance,
		SavingsPercent:   s.SavingsPercent,
		Liquidity:        s.Liquidity,
		DebtRatio:        s.DebtRatio,
		NetMargin:        s.NetMargin,
		TransactionCount: s.TransactionCount,
		ComputedAt:       s.ComputedAt,
	}
}
