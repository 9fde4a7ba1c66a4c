// Package kpi contains the KPI summary use cases.
package kpi

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/application/aggregation"
	"github.com/asistente-contable/backend/internal/domain/entity"
	"github.com/asistente-contable/backend/internal/domain/valueobject"
)

// GetKPIsInput represents the input for the KPI summary of a period.
type GetKPIsInput struct {
	UserID uuid.UUID
	Period string // blank means the current month
}

// GetKPIsOutput represents the computed summaries.
type GetKPIsOutput struct {
	Period    string
	Summaries []*entity.KPISummary
}

// GetKPIsUseCase recomputes the KPI snapshot of a period and stores it.
type GetKPIsUseCase struct {
	transactionRepo adapter.TransactionRepository
	kpiRepo         adapter.KPIRepository
	now             func() time.Time
}

// NewGetKPIsUseCase creates a new GetKPIsUseCase instance.
func NewGetKPIsUseCase(transactionRepo adapter.TransactionRepository, kpiRepo adapter.KPIRepository) *GetKPIsUseCase {
	return &GetKPIsUseCase{
		transactionRepo: transactionRepo,
		kpiRepo:         kpiRepo,
		now:             time.Now,
	}
}

// Execute computes the summary from every transaction of the period.
func (uc *GetKPIsUseCase) Execute(ctx context.Context, input GetKPIsInput) (*GetKPIsOutput, error) {
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

	summary := aggregation.ComputeKPISummary(input.UserID, period.String(), transactions, now)
	if err := uc.kpiRepo.Upsert(ctx, summary); err != nil {
		return nil, fmt.Errorf("failed to store kpi summary: %w", err)
	}

	return &GetKPIsOutput{
		Period:    period.String(),
		Summaries: []*entity.KPISummary{summary},
	}, nil
}
