package asiento

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/application/aggregation"
)

// GetStatsInput represents the input for the entry statistics.
type GetStatsInput struct {
	UserID    uuid.UUID
	Period    string
	StartDate string
	EndDate   string
}

// GetStatsOutput holds the global totals and the per-category and per-month views.
type GetStatsOutput struct {
	Stats      aggregation.AsientoStats
	ByCategory []aggregation.CategoryTotal
	ByMonth    []aggregation.MonthTotal
}

// GetStatsUseCase aggregates the caller's entries over a range.
type GetStatsUseCase struct {
	asientoRepo adapter.AsientoRepository
	catalogRepo adapter.AccountingCatalogRepository
}

// NewGetStatsUseCase creates a new GetStatsUseCase instance.
func NewGetStatsUseCase(asientoRepo adapter.AsientoRepository, catalogRepo adapter.AccountingCatalogRepository) *GetStatsUseCase {
	return &GetStatsUseCase{
		asientoRepo: asientoRepo,
		catalogRepo: catalogRepo,
	}
}

// Execute loads every entry in the range and aggregates it. No range means all entries.
func (uc *GetStatsUseCase) Execute(ctx context.Context, input GetStatsInput) (*GetStatsOutput, error) {
	start, end, err := resolveRange(input.Period, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	asientos, err := uc.asientoRepo.FindByFilter(ctx, adapter.AsientoFilter{
		UserID:    input.UserID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load asientos: %w", err)
	}

	// Inactive rows still name historical entries.
	catalog, err := uc.catalogRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounting catalog: %w", err)
	}
	names := aggregation.NewCatalogNames(catalog)

	return &GetStatsOutput{
		Stats:      aggregation.ComputeAsientoStats(asientos),
		ByCategory: aggregation.GroupByCategory(asientos, names),
		ByMonth:    aggregation.GroupByMonth(asientos),
	}, nil
}
