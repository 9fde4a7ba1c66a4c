// Package advice contains the financial advice use cases.
package advice

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// ListAdvicesInput represents the input for listing advices.
type ListAdvicesInput struct {
	UserID uuid.UUID
	Read   *bool
	Limit  int
}

// ListAdvicesOutput represents the output of listing advices.
type ListAdvicesOutput struct {
	Advices []*entity.Advice
}

// ListAdvicesUseCase lists the caller's advices, newest first.
type ListAdvicesUseCase struct {
	adviceRepo adapter.AdviceRepository
}

// NewListAdvicesUseCase creates a new ListAdvicesUseCase instance.
func NewListAdvicesUseCase(adviceRepo adapter.AdviceRepository) *ListAdvicesUseCase {
	return &ListAdvicesUseCase{
		adviceRepo: adviceRepo,
	}
}

// Execute performs the listing.
func (uc *ListAdvicesUseCase) Execute(ctx context.Context, input ListAdvicesInput) (*ListAdvicesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	advices, err := uc.adviceRepo.FindByFilter(ctx, adapter.AdviceFilter{
		UserID: input.UserID,
		Read:   input.Read,
		Limit:  limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list advices: %w", err)
	}
	return &ListAdvicesOutput{Advices: advices}, nil
}

// MarkReadInput represents the input for flagging an advice as read.
type MarkReadInput struct {
	AdviceID uuid.UUID
	UserID   uuid.UUID
}

// MarkReadOutput represents the output of flagging an advice as read.
type MarkReadOutput struct {
	Advice *entity.Advice
}

// MarkReadUseCase flips the read flag of an advice of the caller.
type MarkReadUseCase struct {
	adviceRepo adapter.AdviceRepository
}

// NewMarkReadUseCase creates a new MarkReadUseCase instance.
func NewMarkReadUseCase(adviceRepo adapter.AdviceRepository) *MarkReadUseCase {
	return &MarkReadUseCase{
		adviceRepo: adviceRepo,
	}
}

// Execute flags the advice. Flagging an already read advice is a no-op.
func (uc *MarkReadUseCase) Execute(ctx context.Context, input MarkReadInput) (*MarkReadOutput, error) {
	advice, err := uc.adviceRepo.FindByID(ctx, input.AdviceID)
	if err != nil {
		if errors.Is(err, domainerror.ErrAdviceNotFound) {
			return nil, domainerror.NewAdviceError(
				domainerror.ErrCodeAdviceNotFound,
				"Consejo no encontrado",
				domainerror.ErrAdviceNotFound,
			)
		}
		return nil, fmt.Errorf("failed to find advice: %w", err)
	}
	if !advice.IsOwnedBy(input.UserID) {
		return nil, domainerror.NewAdviceError(
			domainerror.ErrCodeNotAuthorizedAdvice,
			"No tienes permiso para modificar este consejo",
			domainerror.ErrNotAuthorizedToModifyAdvice,
		)
	}

	if !advice.Read {
		if err := uc.adviceRepo.MarkRead(ctx, advice.ID); err != nil {
			return nil, fmt.Errorf("failed to mark advice as read: %w", err)
		}
		advice.MarkRead()
	}
	return &MarkReadOutput{Advice: advice}, nil
}
