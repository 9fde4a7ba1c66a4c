package advice

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
)

// CreateAdviceInput represents the input for a manual advice.
type CreateAdviceInput struct {
	UserID    uuid.UUID
	Message   string
	AlertType string
	Priority  string
}

// CreateAdviceOutput represents the output of a manual advice.
type CreateAdviceOutput struct {
	Advice *entity.Advice
}

// CreateAdviceUseCase stores an advice written by the user.
type CreateAdviceUseCase struct {
	adviceRepo adapter.AdviceRepository
}

// NewCreateAdviceUseCase creates a new CreateAdviceUseCase instance.
func NewCreateAdviceUseCase(adviceRepo adapter.AdviceRepository) *CreateAdviceUseCase {
	return &CreateAdviceUseCase{
		adviceRepo: adviceRepo,
	}
}

// Execute validates and stores the advice.
func (uc *CreateAdviceUseCase) Execute(ctx context.Context, input CreateAdviceInput) (*CreateAdviceOutput, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, domainerror.NewAdviceError(
			domainerror.ErrCodeEmptyAdviceMessage,
			"mensaje es requerido",
			domainerror.ErrEmptyAdviceMessage,
		)
	}

	priority := entity.AdvicePriorityNormal
	if strings.TrimSpace(input.Priority) != "" {
		parsed, ok := entity.ParseAdvicePriority(input.Priority)
		if !ok {
			return nil, domainerror.NewAdviceError(
				domainerror.ErrCodeInvalidAdvicePriority,
				"prioridad debe ser: baja, normal, alta o critica",
				domainerror.ErrInvalidAdvicePriority,
			)
		}
		priority = parsed
	}

	advice := entity.NewAdvice(input.UserID, strings.TrimSpace(input.AlertType), message, priority, entity.AdviceAuthorUser)
	if err := uc.adviceRepo.Create(ctx, advice); err != nil {
		return nil, fmt.Errorf("failed to create advice: %w", err)
	}
	return &CreateAdviceOutput{Advice: advice}, nil
}
