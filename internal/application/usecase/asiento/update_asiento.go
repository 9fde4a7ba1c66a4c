package asiento

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	"github.com/asistente-contable/backend/internal/domain/valueobject"
)

// UpdateAsientoInput represents the input for entry update.
// Nil fields keep their stored value.
type UpdateAsientoInput struct {
	ID                 string
	UserID             uuid.UUID
	Date               *string
	Description        *string
	MovementType       *string
	CategoryCode       *string
	Amount             *decimal.Decimal
	Currency           *string
	SourceAccount      *string
	DestinationAccount *string
	BalanceAfter       *decimal.Decimal
	Reference          *string
}

// UpdateAsientoOutput represents the output of entry update.
type UpdateAsientoOutput struct {
	Asiento *entity.Asiento
}

// UpdateAsientoUseCase updates an entry of the caller and revalidates it.
type UpdateAsientoUseCase struct {
	asientoRepo adapter.AsientoRepository
	validator   *Validator
}

// NewUpdateAsientoUseCase creates a new UpdateAsientoUseCase instance.
func NewUpdateAsientoUseCase(asientoRepo adapter.AsientoRepository, validator *Validator) *UpdateAsientoUseCase {
	return &UpdateAsientoUseCase{
		asientoRepo: asientoRepo,
		validator:   validator,
	}
}

// Execute merges the changes into the stored entry and validates the result.
func (uc *UpdateAsientoUseCase) Execute(ctx context.Context, input UpdateAsientoInput) (*UpdateAsientoOutput, error) {
	existing, err := findOwned(ctx, uc.asientoRepo, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	draft := draftFrom(existing)
	if input.Date != nil {
		draft.Date = *input.Date
	}
	if input.Description != nil {
		draft.Description = *input.Description
	}
	if input.MovementType != nil {
		draft.MovementType = *input.MovementType
	}
	if input.CategoryCode != nil {
		draft.CategoryCode = *input.CategoryCode
	}
	if input.Amount != nil {
		draft.Amount = *input.Amount
	}
	if input.Currency != nil {
		draft.Currency = *input.Currency
	}
	if input.SourceAccount != nil {
		draft.SourceAccount = *input.SourceAccount
	}
	if input.DestinationAccount != nil {
		draft.DestinationAccount = input.DestinationAccount
	}
	if input.BalanceAfter != nil {
		draft.BalanceAfter = input.BalanceAfter
	}
	if input.Reference != nil {
		draft.Reference = input.Reference
	}

	updated, err := uc.validator.Build(ctx, existing.UserID, draft)
	if err != nil {
		return nil, err
	}
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if err := uc.asientoRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update asiento: %w", err)
	}

	return &UpdateAsientoOutput{Asiento: updated}, nil
}

func draftFrom(a *entity.Asiento) Draft {
	return Draft{
		ID:                 a.ID,
		Date:               a.Date.Format(valueobject.DateLayout),
		Description:        a.Description,
		MovementType:       string(a.MovementType),
		CategoryCode:       a.CategoryCode,
		Amount:             a.Amount,
		Currency:           a.Currency,
		SourceAccount:      a.SourceAccount,
		DestinationAccount: a.DestinationAccount,
		BalanceAfter:       a.BalanceAfter,
		Reference:          a.Reference,
		DataSource:         a.DataSource,
	}
}
