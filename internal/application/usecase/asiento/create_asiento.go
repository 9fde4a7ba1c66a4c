package asiento

import (
	"context"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
)

// CreateAsientoInput represents the input for manual entry creation.
type CreateAsientoInput struct {
	UserID uuid.UUID
	Draft  Draft
}

// CreateAsientoOutput represents the output of entry creation.
type CreateAsientoOutput struct {
	Asiento *entity.Asiento
}

// CreateAsientoUseCase validates and stores an accounting entry.
type CreateAsientoUseCase struct {
	asientoRepo adapter.AsientoRepository
	validator   *Validator
}

// NewCreateAsientoUseCase creates a new CreateAsientoUseCase instance.
func NewCreateAsientoUseCase(asientoRepo adapter.AsientoRepository, validator *Validator) *CreateAsientoUseCase {
	return &CreateAsientoUseCase{
		asientoRepo: asientoRepo,
		validator:   validator,
	}
}

// Execute performs the creation. Validation failures never reach the store.
func (uc *CreateAsientoUseCase) Execute(ctx context.Context, input CreateAsientoInput) (*CreateAsientoOutput, error) {
	draft := input.Draft
	if draft.DataSource == "" {
		draft.DataSource = entity.DataSourceManual
	}

	asiento, err := uc.validator.Build(ctx, input.UserID, draft)
	if err != nil {
		return nil, err
	}

	if err := uc.asientoRepo.Create(ctx, asiento); err != nil {
		return nil, CreateError(asiento.ID, err)
	}

	return &CreateAsientoOutput{Asiento: asiento}, nil
}
