package webhook

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/domain/valueobject"
)

// IngestTransactionInput is a transaction reported by the chat automation.
type IngestTransactionInput struct {
	ChatID        string
	Phone         string
	Type          string
	Amount        *decimal.Decimal
	Description   string
	Category      string
	Date          string
	PaymentMethod string
}

// IngestTransactionOutput represents the output of transaction ingestion.
type IngestTransactionOutput struct {
	TransactionID uuid.UUID
	UserID        uuid.UUID
	Transaction   *entity.Transaction
}

// IngestTransactionUseCase validates an automation payload and stores it as a transaction.
type IngestTransactionUseCase struct {
	resolver        *UserResolver
	transactionRepo adapter.TransactionRepository
	auditRepo       adapter.AuditLogRepository
}

// NewIngestTransactionUseCase creates a new IngestTransactionUseCase instance.
func NewIngestTransactionUseCase(
	resolver *UserResolver,
	transactionRepo adapter.TransactionRepository,
	auditRepo adapter.AuditLogRepository,
) *IngestTransactionUseCase {
	return &IngestTransactionUseCase{
		resolver:        resolver,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
	}
}

// webhookTransactionTypes are the kinds the automation may report. Transfers are dashboard-only.
var webhookTransactionTypes = map[entity.TransactionType]bool{
	entity.TransactionTypeIncome:     true,
	entity.TransactionTypeExpense:    true,
	entity.TransactionTypeInvestment: true,
	entity.TransactionTypeSavings:    true,
}

// Execute performs the ingestion.
func (uc *IngestTransactionUseCase) Execute(ctx context.Context, input IngestTransactionInput) (*IngestTransactionOutput, error) {
	date, txnType, err := validateTransactionPayload(input)
	if err != nil {
		return nil, err
	}

	chatID := strings.TrimSpace(input.ChatID)
	user, err := uc.resolver.ByChatID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	uc.resolver.EnrichPhone(ctx, user, input.Phone)

	paymentMethod := strings.TrimSpace(input.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = entity.DefaultWebhookPaymentMethod
	}

	transaction := entity.NewTransaction(
		user.ID,
		txnType,
		input.Amount.Round(valueobject.AmountPlaces),
		strings.TrimSpace(input.Description),
		strings.TrimSpace(input.Category),
		date,
		paymentMethod,
		entity.OriginN8N,
	)
	if err := uc.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	recordAudit(ctx, uc.auditRepo, user.ID, entity.AuditTransactionCreatedViaWebhook, map[string]interface{}{
		"transaction_id": transaction.ID.String(),
		"tipo":           string(transaction.Type),
		"monto":          transaction.Amount.InexactFloat64(),
		"origen":         string(entity.OriginN8N),
	})

	return &IngestTransactionOutput{
		TransactionID: transaction.ID,
		UserID:        user.ID,
		Transaction:   transaction,
	}, nil
}

// validateTransactionPayload checks fields in the order callers are told about them.
func validateTransactionPayload(input IngestTransactionInput) (date time.Time, txnType entity.TransactionType, err error) {
	if err = requireField(input.ChatID, "chat_id es requerido"); err != nil {
		return date, "", err
	}
	if err = requireField(input.Description, "descripcion es requerida"); err != nil {
		return date, "", err
	}
	if err = requireField(input.Date, "fecha es requerida (formato: YYYY-MM-DD)"); err != nil {
		return date, "", err
	}
	date, err = valueobject.ParseDate(input.Date)
	if err != nil {
		return date, "", domainerror.NewInvalidPayloadError("fecha debe tener formato YYYY-MM-DD")
	}

	txnType = entity.TransactionType(strings.TrimSpace(input.Type))
	if !webhookTransactionTypes[txnType] {
		return date, "", domainerror.NewInvalidPayloadError("tipo debe ser: ingreso, gasto, inversion o ahorro")
	}

	if input.Amount == nil {
		return date, "", domainerror.NewInvalidPayloadError("monto debe ser mayor a 0")
	}
	if _, ok := valueobject.NormalizeAmount(*input.Amount); !ok {
		return date, "", domainerror.NewInvalidPayloadError("monto debe ser mayor a 0")
	}
	return date, txnType, nil
}
