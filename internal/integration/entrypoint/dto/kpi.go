package dto

import (
	"time"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

// KPIQuery represents the query string of the KPI endpoint.
type KPIQuery struct {
	Period string `form:"periodo"`
}

// KPIResponse represents a period summary in API responses.
type KPIResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Period           string    `json:"periodo"`
	TotalIncome      float64   `json:"total_ingresos"`
	TotalExpense     float64   `json:"total_gastos"`
	TotalSavings     float64   `json:"total_ahorros"`
	TotalInvestment  float64   `json:"total_inversiones"`
	Balance          float64   `json:"balance"`
	SavingsPercent   float64   `json:"porcentaje_ahorro"`
	Liquidity        float64   `json:"liquidez"`
	DebtRatio        float64   `json:"ratio_endeudamiento"`
	NetMargin        float64   `json:"margen_neto"`
	TransactionCount int       `json:"num_transacciones"`
	ComputedAt       time.Time `json:"calculado_en"`
}

// ToKPIResponses converts a list of summaries.
func ToKPIResponses(summaries []*entity.KPISummary) []KPIResponse {
	out := make([]KPIResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, KPIResponse{
			ID:               s.ID.String(),
			UserID:           s.UserID.String(),
			Period:           s.Period,
			TotalIncome:      Money(s.TotalIncome),
			TotalExpense:     Money(s.TotalExpense),
			TotalSavings:     Money(s.TotalSavings),
			TotalInvestment:  Money(s.TotalInvestment),
			Balance:          Money(s.Balance),
			SavingsPercent:   Money(s.SavingsPercent),
			Liquidity:        Money(s.Liquidity),
			DebtRatio:        Money(s.DebtRatio),
			NetMargin:        Money(s.NetMargin),
			TransactionCount: s.TransactionCount,
			ComputedAt:       s.ComputedAt,
		})
	}
	return out
}
