package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/application/aggregation"
	"github.com/asistente-contable/backend/internal/domain/entity"
)

// AsientoRequest represents the request body for creating an accounting entry.
type AsientoRequest struct {
	ID                 string           `json:"id_asiento" binding:"omitempty,max=64"`
	Date               string           `json:"fecha"`
	Description        string           `json:"descripcion" binding:"omitempty,max=255"`
	MovementType       string           `json:"tipo_movimiento"`
	CategoryCode       string           `json:"categoria_contable"`
	Amount             *decimal.Decimal `json:"monto"`
	Currency           string           `json:"moneda"`
	SourceAccount      string           `json:"cuenta_origen" binding:"omitempty,max=100"`
	DestinationAccount *string          `json:"cuenta_destino" binding:"omitempty,max=100"`
	BalanceAfter       *decimal.Decimal `json:"saldo_posterior"`
	Reference          *string          `json:"referencia" binding:"omitempty,max=100"`
}

// UpdateAsientoRequest represents the request body for updating an accounting entry.
type UpdateAsientoRequest struct {
	Date               *string          `json:"fecha,omitempty"`
	Description        *string          `json:"descripcion,omitempty" binding:"omitempty,max=255"`
	MovementType       *string          `json:"tipo_movimiento,omitempty"`
	CategoryCode       *string          `json:"categoria_contable,omitempty"`
	Amount             *decimal.Decimal `json:"monto,omitempty"`
	Currency           *string          `json:"moneda,omitempty"`
	SourceAccount      *string          `json:"cuenta_origen,omitempty" binding:"omitempty,max=100"`
	DestinationAccount *string          `json:"cuenta_destino,omitempty" binding:"omitempty,max=100"`
	BalanceAfter       *decimal.Decimal `json:"saldo_posterior,omitempty"`
	Reference          *string          `json:"referencia,omitempty" binding:"omitempty,max=100"`
}

// ListAsientosQuery represents the query string of the entry listing.
type ListAsientosQuery struct {
	Period       string `form:"periodo"`
	MovementType string `form:"tipo_movimiento"`
	CategoryCode string `form:"categoria_contable"`
	StartDate    string `form:"fecha_desde"`
	EndDate      string `form:"fecha_hasta"`
	Limit        int    `form:"limit"`
	Offset       int    `form:"offset"`
}

// AsientoStatsQuery represents the query string of the statistics endpoint.
type AsientoStatsQuery struct {
	Period    string `form:"periodo"`
	StartDate string `form:"fecha_desde"`
	EndDate   string `form:"fecha_hasta"`
}

// CatalogQuery represents the query string of the catalog listing.
type CatalogQuery struct {
	MovementType string `form:"tipo_movimiento"`
}

// AsientoResponse represents an accounting entry in API responses.
type AsientoResponse struct {
	ID                 string    `json:"id_asiento"`
	UserID             string    `json:"user_id"`
	Date               string    `json:"fecha"`
	Description        string    `json:"descripcion"`
	MovementType       string    `json:"tipo_movimiento"`
	CategoryCode       string    `json:"categoria_contable"`
	Amount             float64   `json:"monto"`
	Currency           string    `json:"moneda"`
	SourceAccount      string    `json:"cuenta_origen"`
	DestinationAccount *string   `json:"cuenta_destino,omitempty"`
	BalanceAfter       *float64  `json:"saldo_posterior,omitempty"`
	Reference          *string   `json:"referencia,omitempty"`
	DataSource         string    `json:"fuente_datos"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ToAsientoResponse converts a domain Asiento to an AsientoResponse DTO.
func ToAsientoResponse(a *entity.Asiento) AsientoResponse {
	return AsientoResponse{
		ID:                 a.ID,
		UserID:             a.UserID.String(),
		Date:               Date(a.Date),
		Description:        a.Description,
		MovementType:       string(a.MovementType),
		CategoryCode:       a.CategoryCode,
		Amount:             Money(a.Amount),
		Currency:           a.Currency,
		SourceAccount:      a.SourceAccount,
		DestinationAccount: a.DestinationAccount,
		BalanceAfter:       OptionalMoney(a.BalanceAfter),
		Reference:          a.Reference,
		DataSource:         string(a.DataSource),
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// ToAsientoResponses converts a list of entries.
func ToAsientoResponses(asientos []*entity.Asiento) []AsientoResponse {
	out := make([]AsientoResponse, 0, len(asientos))
	for _, a := range asientos {
		out = append(out, ToAsientoResponse(a))
	}
	return out
}

// AsientoStatsResponse holds the aggregated views of a set of entries.
type AsientoStatsResponse struct {
	Stats      StatsTotals     `json:"stats"`
	ByCategory []CategoryStats `json:"por_categoria"`
	ByMonth    []MonthStats    `json:"por_mes"`
}

// StatsTotals are the global totals of AsientoStatsResponse.
type StatsTotals struct {
	TotalIncome  float64 `json:"total_ingresos"`
	TotalExpense float64 `json:"total_gastos"`
	TotalOther   float64 `json:"total_otros"`
	Balance      float64 `json:"balance"`
	IncomeCount  int     `json:"num_ingresos"`
	ExpenseCount int     `json:"num_gastos"`
	OtherCount   int     `json:"num_otros"`
	Count        int     `json:"total_asientos"`
}

// CategoryStats is one category group.
type CategoryStats struct {
	Code         string  `json:"categoria_contable"`
	Name         string  `json:"nombre"`
	MovementType string  `json:"tipo_movimiento"`
	Total        float64 `json:"total"`
	Count        int     `json:"cantidad"`
}

// MonthStats is one month bucket.
type MonthStats struct {
	Period  string  `json:"mes"`
	Income  float64 `json:"ingresos"`
	Expense float64 `json:"gastos"`
	Balance float64 `json:"balance"`
	Count   int     `json:"cantidad"`
}

// ToAsientoStatsResponse converts the aggregation views.
func ToAsientoStatsResponse(stats aggregation.AsientoStats, byCategory []aggregation.CategoryTotal, byMonth []aggregation.MonthTotal) AsientoStatsResponse {
	resp := AsientoStatsResponse{
		Stats: StatsTotals{
			TotalIncome:  Money(stats.TotalIncome),
			TotalExpense: Money(stats.TotalExpense),
			TotalOther:   Money(stats.TotalOther),
			Balance:      Money(stats.Balance),
			IncomeCount:  stats.IncomeCount,
			ExpenseCount: stats.ExpenseCount,
			OtherCount:   stats.OtherCount,
			Count:        stats.Count,
		},
		ByCategory: make([]CategoryStats, 0, len(byCategory)),
		ByMonth:    make([]MonthStats, 0, len(byMonth)),
	}
	for _, c := range byCategory {
		resp.ByCategory = append(resp.ByCategory, CategoryStats{
			Code:         c.Code,
			Name:         c.Name,
			MovementType: string(c.MovementType),
			Total:        Money(c.Total),
			Count:        c.Count,
		})
	}
	for _, m := range byMonth {
		resp.ByMonth = append(resp.ByMonth, MonthStats{
			Period:  m.Period,
			Income:  Money(m.Income),
			Expense: Money(m.Expense),
			Balance: Money(m.Balance),
			Count:   m.Count,
		})
	}
	return resp
}
