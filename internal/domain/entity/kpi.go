package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KPISummary is the derived financial summary of one user for one period.
type KPISummary struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Period           string
	TotalIncome      decimal.Decimal
	TotalExpense     decimal.Decimal
	TotalSavings     decimal.Decimal
	TotalInvestment  decimal.Decimal
	Balance          decimal.Decimal
	SavingsPercent   decimal.Decimal
	Liquidity        decimal.Decimal
	DebtRatio        decimal.Decimal
	NetMargin        decimal.Decimal
	TransactionCount int
	ComputedAt       time.Time
}
