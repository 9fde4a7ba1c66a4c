package advice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/application/aggregation"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/domain/valueobject"
)

// GenerateAdviceInput represents the input for AI advice generation.
type GenerateAdviceInput struct {
	UserID uuid.UUID
	Period string // blank means the current month
}

// GenerateAdviceOutput reports what the generator produced and what was stored.
type GenerateAdviceOutput struct {
	Period    string
	Generated int
	Saved     int
	Skipped   bool
	Advices   []*entity.Advice
}

// GenerateAdviceUseCase asks the text generation service for advice on a period.
type GenerateAdviceUseCase struct {
	transactionRepo adapter.TransactionRepository
	adviceRepo      adapter.AdviceRepository
	generator       adapter.AdviceGenerator
	now             func() time.Time
}

// NewGenerateAdviceUseCase creates a new GenerateAdviceUseCase instance.
func NewGenerateAdviceUseCase(
	transactionRepo adapter.TransactionRepository,
	adviceRepo adapter.AdviceRepository,
	generator adapter.AdviceGenerator,
) *GenerateAdviceUseCase {
	return &GenerateAdviceUseCase{
		transactionRepo: transactionRepo,
		adviceRepo:      adviceRepo,
		generator:       generator,
		now:             time.Now,
	}
}

// Execute generates and stores advice. A failing generator yields an empty
// result; only a generator that is not configured at all is an error.
func (uc *GenerateAdviceUseCase) Execute(ctx context.Context, input GenerateAdviceInput) (*GenerateAdviceOutput, error) {
	if uc.generator == nil || !uc.generator.IsAvailable() {
		return nil, domainerror.NewAdviceError(
			domainerror.ErrCodeAdviceServiceUnavailable,
			"El servicio de IA no está configurado",
			domainerror.ErrAdviceServiceUnavailable,
		)
	}

	now := uc.now()
	period, err := valueobject.ResolvePeriod(input.Period, now)
	if err != nil {
		return nil, err
	}
	start, end := period.Bounds()

	transactions, err := uc.transactionRepo.FindByFilter(ctx, adapter.TransactionFilter{
		UserID:    input.UserID,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	output := &GenerateAdviceOutput{Period: period.String(), Advices: []*entity.Advice{}}

	summary := aggregation.ComputeKPISummary(input.UserID, period.String(), transactions, now)
	if len(transactions) == 0 && summary.TotalIncome.IsZero() {
		output.Skipped = true
		return output, nil
	}

	generated, err := uc.generator.Generate(ctx, &adapter.AdviceRequest{
		Period:       period.String(),
		Summary:      summary,
		Transactions: transactions,
	})
	if err != nil {
		slog.Warn("Advice generation failed",
			"user_id", input.UserID,
			"periodo", period.String(),
			"error", err,
		)
		return output, nil
	}
	output.Generated = len(generated)

	for _, item := range generated {
		advice := entity.NewAdvice(input.UserID, item.AlertType, item.Message, item.Priority, entity.AdviceAuthorAI)
		if err := uc.adviceRepo.Create(ctx, advice); err != nil {
			slog.Warn("Failed to save generated advice",
				"user_id", input.UserID,
				"tipo_alerta", advice.AlertType,
				"error", err,
			)
			continue
		}
		output.Advices = append(output.Advices, advice)
	}
	output.Saved = len(output.Advices)

	return output, nil
}
