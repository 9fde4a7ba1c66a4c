package asiento

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
)

// GetAsientoInput represents the input for reading one entry.
type GetAsientoInput struct {
	ID     string
	UserID uuid.UUID
}

// GetAsientoOutput represents the output of reading one entry.
type GetAsientoOutput struct {
	Asiento *entity.Asiento
}

// GetAsientoUseCase reads one entry of the caller.
type GetAsientoUseCase struct {
	asientoRepo adapter.AsientoRepository
}

// NewGetAsientoUseCase creates a new GetAsientoUseCase instance.
func NewGetAsientoUseCase(asientoRepo adapter.AsientoRepository) *GetAsientoUseCase {
	return &GetAsientoUseCase{
		asientoRepo: asientoRepo,
	}
}

// Execute reads the entry.
func (uc *GetAsientoUseCase) Execute(ctx context.Context, input GetAsientoInput) (*GetAsientoOutput, error) {
	asiento, err := findOwned(ctx, uc.asientoRepo, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetAsientoOutput{Asiento: asiento}, nil
}

func findOwned(ctx context.Context, repo adapter.AsientoRepository, id string, userID uuid.UUID) (*entity.Asiento, error) {
	asiento, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerror.ErrAsientoNotFound) {
			return nil, domainerror.NewAsientoError(
				domainerror.ErrCodeAsientoNotFound,
				"Asiento no encontrado",
				domainerror.ErrAsientoNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find asiento: %w", err)
	}
	if !asiento.IsOwnedBy(userID) {
		return nil, domainerror.NewAsientoError(
			domainerror.ErrCodeNotAuthorizedAsiento,
			"No tienes permiso para acceder a este asiento",
			domainerror.ErrNotAuthorizedToModifyAsiento,
		)
	}
	return asiento, nil
}
