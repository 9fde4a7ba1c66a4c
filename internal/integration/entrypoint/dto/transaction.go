package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

// CreateTransactionRequest represents the request body for transaction creation.
type CreateTransactionRequest struct {
	Type          string           `json:"tipo"`
	Amount        *decimal.Decimal `json:"monto"`
	Description   string           `json:"descripcion" binding:"omitempty,max=255"`
	Category      string           `json:"categoria" binding:"omitempty,max=100"`
	Date          string           `json:"fecha"`
	PaymentMethod string           `json:"metodo_pago" binding:"omitempty,max=50"`
}

// UpdateTransactionRequest represents the request body for transaction update.
type UpdateTransactionRequest struct {
	Type          *string          `json:"tipo,omitempty"`
	Amount        *decimal.Decimal `json:"monto,omitempty"`
	Description   *string          `json:"descripcion,omitempty" binding:"omitempty,max=255"`
	Category      *string          `json:"categoria,omitempty" binding:"omitempty,max=100"`
	Date          *string          `json:"fecha,omitempty"`
	PaymentMethod *string          `json:"metodo_pago,omitempty" binding:"omitempty,max=50"`
}

// ListTransactionsQuery represents the query string of the transaction listing.
type ListTransactionsQuery struct {
	Period    string `form:"periodo"`
	Type      string `form:"tipo"`
	Category  string `form:"categoria"`
	StartDate string `form:"fecha_desde"`
	EndDate   string `form:"fecha_hasta"`
	Limit     int    `form:"limit"`
	Offset    int    `form:"offset"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Type          string    `json:"tipo"`
	Amount        float64   `json:"monto"`
	Description   string    `json:"descripcion"`
	Category      string    `json:"categoria,omitempty"`
	Date          string    `json:"fecha"`
	PaymentMethod string    `json:"metodo_pago,omitempty"`
	Origin        string    `json:"origen"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToTransactionResponse converts a domain Transaction to a TransactionResponse DTO.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID.String(),
		UserID:        t.UserID.String(),
		Type:          string(t.Type),
		Amount:        Money(t.Amount),
		Description:   t.Description,
		Category:      t.Category,
		Date:          Date(t.Date),
		PaymentMethod: t.PaymentMethod,
		Origin:        string(t.Origin),
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToTransactionResponses converts a list of transactions.
func ToTransactionResponses(transactions []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for _, t := range transactions {
		out = append(out, ToTransactionResponse(t))
	}
	return out
}

// PeriodsResponse lists the periods that hold data.
type PeriodsResponse struct {
	Periods []string `json:"periodos"`
}
