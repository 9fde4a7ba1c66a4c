package asiento

import (
	"context"
	"fmt"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
)

// ListCatalogInput represents the input for listing the accounting catalog.
type ListCatalogInput struct {
	MovementType string
}

// ListCatalogOutput represents the active catalog rows.
type ListCatalogOutput struct {
	Categories []*entity.AccountingCategory
}

// ListCatalogUseCase lists the active accounting categories.
type ListCatalogUseCase struct {
	catalogRepo adapter.AccountingCatalogRepository
}

// NewListCatalogUseCase creates a new ListCatalogUseCase instance.
func NewListCatalogUseCase(catalogRepo adapter.AccountingCatalogRepository) *ListCatalogUseCase {
	return &ListCatalogUseCase{
		catalogRepo: catalogRepo,
	}
}

// Execute lists the catalog ordered by code.
func (uc *ListCatalogUseCase) Execute(ctx context.Context, input ListCatalogInput) (*ListCatalogOutput, error) {
	var filter *entity.MovementType
	if input.MovementType != "" {
		movementType, err := ParseMovementType(input.MovementType)
		if err != nil {
			return nil, err
		}
		filter = &movementType
	}

	categories, err := uc.catalogRepo.ListActive(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounting catalog: %w", err)
	}
	return &ListCatalogOutput{Categories: categories}, nil
}
