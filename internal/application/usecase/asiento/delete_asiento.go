package asiento

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/application/adapter"
)

// DeleteAsientoInput represents the input for entry deletion.
type DeleteAsientoInput struct {
	ID     string
	UserID uuid.UUID
}

// DeleteAsientoUseCase removes an entry of the caller.
type DeleteAsientoUseCase struct {
	asientoRepo adapter.AsientoRepository
}

// NewDeleteAsientoUseCase creates a new DeleteAsientoUseCase instance.
func NewDeleteAsientoUseCase(asientoRepo adapter.AsientoRepository) *DeleteAsientoUseCase {
	return &DeleteAsientoUseCase{
		asientoRepo: asientoRepo,
	}
}

// Execute performs the deletion.
func (uc *DeleteAsientoUseCase) Execute(ctx context.Context, input DeleteAsientoInput) error {
	if _, err := findOwned(ctx, uc.asientoRepo, input.ID, input.UserID); err != nil {
		return err
	}
	if err := uc.asientoRepo.Delete(ctx, input.ID); err != nil {
		return fmt.Errorf("failed to delete asiento: %w", err)
	}
	return nil
}
