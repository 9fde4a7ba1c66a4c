package transaction

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	UserID        uuid.UUID
	Type          string
	Amount        decimal.Decimal
	Description   string
	Category      string
	Date          string
	PaymentMethod string
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase handles manual transaction creation.
type CreateTransactionUseCase struct {
	transactionRepo adapter.TransactionRepository
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(transactionRepo adapter.TransactionRepository) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		transactionRepo: transactionRepo,
	}
}

// Execute validates and stores the transaction.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	txnType, err := parseTransactionType(input.Type)
	if err != nil {
		return nil, err
	}
	amount, err := validateAmount(input.Amount)
	if err != nil {
		return nil, err
	}
	date, err := parseTransactionDate(input.Date, time.Now())
	if err != nil {
		return nil, err
	}

	transaction := entity.NewTransaction(
		input.UserID,
		txnType,
		amount,
		strings.TrimSpace(input.Description),
		strings.TrimSpace(input.Category),
		date,
		strings.TrimSpace(input.PaymentMethod),
		entity.OriginManual,
	)

	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &CreateTransactionOutput{Transaction: transaction}, nil
}
