package webhook

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/application/usecase/asiento"
	"github.com/asistente-contable/backend/internal/domain/entity"
)

// IngestAsientoInput is an accounting entry reported by the automation.
type IngestAsientoInput struct {
	ChatID             string
	UserID             string
	Phone              string
	ID                 string
	Date               string
	Description        string
	MovementType       string
	CategoryCode       string
	Amount             *decimal.Decimal
	Currency           string
	SourceAccount      string
	DestinationAccount *string
	BalanceAfter       *decimal.Decimal
	Reference          *string
	DataSource         string
}

// IngestAsientoOutput represents the output of entry ingestion.
type IngestAsientoOutput struct {
	AsientoID string
	UserID    uuid.UUID
	Asiento   *entity.Asiento
}

// IngestAsientoUseCase validates an automation payload and stores it as an accounting entry.
type IngestAsientoUseCase struct {
	resolver    *UserResolver
	validator   *asiento.Validator
	asientoRepo adapter.AsientoRepository
	auditRepo   adapter.AuditLogRepository
}

// NewIngestAsientoUseCase creates a new IngestAsientoUseCase instance.
func NewIngestAsientoUseCase(
	resolver *UserResolver,
	validator *asiento.Validator,
	asientoRepo adapter.AsientoRepository,
	auditRepo adapter.AuditLogRepository,
) *IngestAsientoUseCase {
	return &IngestAsientoUseCase{
		resolver:    resolver,
		validator:   validator,
		asientoRepo: asientoRepo,
		auditRepo:   auditRepo,
	}
}

// Execute performs the ingestion. The payload, including its catalog category,
// is fully validated before the user is resolved or anything is written.
func (uc *IngestAsientoUseCase) Execute(ctx context.Context, input IngestAsientoInput) (*IngestAsientoOutput, error) {
	if err := requireField(input.ChatID, "chat_id es requerido"); err != nil {
		return nil, err
	}

	amount := decimal.Zero
	if input.Amount != nil {
		amount = *input.Amount
	}
	dataSource := entity.DataSource(strings.TrimSpace(input.DataSource))
	if dataSource == "" {
		dataSource = entity.DataSourceN8N
	}

	entry, err := uc.validator.Build(ctx, uuid.Nil, asiento.Draft{
		ID:                 input.ID,
		Date:               input.Date,
		Description:        input.Description,
		MovementType:       input.MovementType,
		CategoryCode:       input.CategoryCode,
		Amount:             amount,
		Currency:           input.Currency,
		SourceAccount:      input.SourceAccount,
		DestinationAccount: input.DestinationAccount,
		BalanceAfter:       input.BalanceAfter,
		Reference:          input.Reference,
		DataSource:         dataSource,
	})
	if err != nil {
		return nil, err
	}

	user, err := uc.resolveUser(ctx, input)
	if err != nil {
		return nil, err
	}
	uc.resolver.EnrichPhone(ctx, user, input.Phone)

	entry.UserID = user.ID
	if err := uc.asientoRepo.Create(ctx, entry); err != nil {
		return nil, asiento.CreateError(entry.ID, err)
	}

	recordAudit(ctx, uc.auditRepo, user.ID, entity.AuditAsientoCreatedViaWebhook, map[string]interface{}{
		"id_asiento":         entry.ID,
		"categoria_contable": entry.CategoryCode,
		"tipo_movimiento":    string(entry.MovementType),
		"monto":              entry.Amount.InexactFloat64(),
		"origen":             string(entity.DataSourceN8N),
	})

	return &IngestAsientoOutput{
		AsientoID: entry.ID,
		UserID:    user.ID,
		Asiento:   entry,
	}, nil
}

// resolveUser prefers an explicit user id over the chat identity.
func (uc *IngestAsientoUseCase) resolveUser(ctx context.Context, input IngestAsientoInput) (*entity.User, error) {
	if userID := strings.TrimSpace(input.UserID); userID != "" {
		return uc.resolver.ByUserID(ctx, userID)
	}
	return uc.resolver.ByChatID(ctx, strings.TrimSpace(input.ChatID))
}
