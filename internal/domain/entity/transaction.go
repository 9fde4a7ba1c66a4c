// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of a financial movement.
type TransactionType string

const (
	TransactionTypeIncome     TransactionType = "ingreso"
	TransactionTypeExpense    TransactionType = "gasto"
	TransactionTypeInvestment TransactionType = "inversion"
	TransactionTypeSavings    TransactionType = "ahorro"
	TransactionTypeTransfer   TransactionType = "transferencia"
)

// IsValid reports whether t is one of the known transaction kinds.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeInvestment,
		TransactionTypeSavings, TransactionTypeTransfer:
		return true
	}
	return false
}

// TransactionOrigin records where a transaction was created.
type TransactionOrigin string

const (
	OriginManual TransactionOrigin = "manual"
	OriginN8N    TransactionOrigin = "n8n"
)

// DefaultWebhookPaymentMethod is used for chat-ingested transactions without a payment method.
const DefaultWebhookPaymentMethod = "telegram"

// Transaction represents an atomic financial movement owned by a user.
// Amount is always positive; Type decides its sign during aggregation.
type Transaction struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Type          TransactionType
	Amount        decimal.Decimal
	Description   string
	Category      string
	Date          time.Time
	PaymentMethod string
	Origin        TransactionOrigin
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewTransaction creates a new Transaction with generated ID and timestamps.
func NewTransaction(
	userID uuid.UUID,
	txnType TransactionType,
	amount decimal.Decimal,
	description string,
	category string,
	date time.Time,
	paymentMethod string,
	origin TransactionOrigin,
) *Transaction {
	now := time.Now().UTC()
	if origin == "" {
		origin = OriginManual
	}
	return &Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		Type:          txnType,
		Amount:        amount,
		Description:   description,
		Category:      category,
		Date:          date,
		PaymentMethod: paymentMethod,
		Origin:        origin,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsOwnedBy reports whether the transaction belongs to the given user.
func (t *Transaction) IsOwnedBy(userID uuid.UUID) bool {
	return t.UserID == userID
}
