package dto

import (
	"github.com/shopspring/decimal"
)

// TransactionWebhookRequest is the transaction payload posted by the chat automation.
// Field presence is checked by the use case so callers get field-specific messages.
type TransactionWebhookRequest struct {
	ChatID        ChatID           `json:"chat_id"`
	Phone         string           `json:"telefono"`
	Type          string           `json:"tipo"`
	Amount        *decimal.Decimal `json:"monto"`
	Description   string           `json:"descripcion" binding:"omitempty,max=255"`
	Category      string           `json:"categoria" binding:"omitempty,max=100"`
	Date          string           `json:"fecha"`
	PaymentMethod string           `json:"metodo_pago" binding:"omitempty,max=50"`
}

// AsientoWebhookRequest is the accounting entry payload posted by the automation.
type AsientoWebhookRequest struct {
	ChatID             ChatID           `json:"chat_id"`
	UserID             string           `json:"user_id"`
	Phone              string           `json:"telefono"`
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
	DataSource         string           `json:"fuente_datos" binding:"omitempty,max=20"`
}

// QueryWebhookRequest is a read-only query posted by the automation.
type QueryWebhookRequest struct {
	ChatID   ChatID `json:"chat_id"`
	DateFrom string `json:"fecha_desde"`
	DateTo   string `json:"fecha_hasta"`
	Type     string `json:"tipo"`
}

// TransactionWebhookResponse is the data of a successful transaction ingestion.
type TransactionWebhookResponse struct {
	TransactionID string `json:"transaction_id"`
	UserID        string `json:"user_id"`
	Message       string `json:"message"`
}

// AsientoWebhookResponse is the data of a successful entry ingestion.
type AsientoWebhookResponse struct {
	AsientoID string `json:"id_asiento"`
	UserID    string `json:"user_id"`
	Message   string `json:"message"`
}

// QueryWebhookResponse is the data of a query answer.
type QueryWebhookResponse struct {
	UserID       string                `json:"user_id"`
	Count        int                   `json:"total_transacciones"`
	Period       QueryPeriod           `json:"periodo"`
	Summary      QuerySummary          `json:"resumen"`
	Transactions []TransactionResponse `json:"transacciones"`
}

// QueryPeriod echoes the requested date range.
type QueryPeriod struct {
	From string `json:"desde"`
	To   string `json:"hasta"`
}

// QuerySummary holds per-kind totals.
type QuerySummary struct {
	Total      float64 `json:"total"`
	Income     float64 `json:"ingresos"`
	Expense    float64 `json:"gastos"`
	Savings    float64 `json:"ahorros"`
	Investment float64 `json:"inversiones"`
	Balance    float64 `json:"balance"`
}
