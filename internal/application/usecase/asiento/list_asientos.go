package asiento

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/domain/valueobject"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// ListAsientosInput represents the query string of an entry listing.
type ListAsientosInput struct {
	UserID       uuid.UUID
	Period       string
	MovementType string
	CategoryCode string
	StartDate    string
	EndDate      string
	Limit        int
	Offset       int
}

// ListAsientosOutput represents the output of an entry listing.
type ListAsientosOutput struct {
	Asientos []*entity.Asiento
}

// ListAsientosUseCase lists the caller's entries, newest first.
type ListAsientosUseCase struct {
	asientoRepo adapter.AsientoRepository
}

// NewListAsientosUseCase creates a new ListAsientosUseCase instance.
func NewListAsientosUseCase(asientoRepo adapter.AsientoRepository) *ListAsientosUseCase {
	return &ListAsientosUseCase{
		asientoRepo: asientoRepo,
	}
}

// Execute performs the listing.
func (uc *ListAsientosUseCase) Execute(ctx context.Context, input ListAsientosInput) (*ListAsientosOutput, error) {
	start, end, err := resolveRange(input.Period, input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	filter := adapter.AsientoFilter{
		UserID:       input.UserID,
		StartDate:    start,
		EndDate:      end,
		CategoryCode: strings.TrimSpace(input.CategoryCode),
		Limit:        input.Limit,
		Offset:       input.Offset,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if input.MovementType != "" {
		movementType, err := ParseMovementType(input.MovementType)
		if err != nil {
			return nil, err
		}
		filter.MovementType = &movementType
	}

	asientos, err := uc.asientoRepo.FindByFilter(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list asientos: %w", err)
	}
	return &ListAsientosOutput{Asientos: asientos}, nil
}

// resolveRange turns a period and optional explicit dates into filter bounds.
// Explicit dates take precedence over the period bounds.
func resolveRange(period, from, to string) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	if strings.TrimSpace(period) != "" {
		p, err := valueobject.ParsePeriod(period)
		if err != nil {
			return nil, nil, err
		}
		s, e := p.Bounds()
		start, end = &s, &e
	}

	if strings.TrimSpace(from) != "" {
		s, err := valueobject.ParseDate(from)
		if err != nil {
			return nil, nil, invalidRange("fecha_desde debe tener formato YYYY-MM-DD", err)
		}
		start = &s
	}
	if strings.TrimSpace(to) != "" {
		e, err := valueobject.ParseDate(to)
		if err != nil {
			return nil, nil, invalidRange("fecha_hasta debe tener formato YYYY-MM-DD", err)
		}
		end = &e
	}

	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, domainerror.NewKPIError(
			domainerror.ErrCodeInvalidDateRange,
			"fecha_hasta no puede ser anterior a fecha_desde",
			domainerror.ErrInvalidDateRange,
		)
	}
	return start, end, nil
}

func invalidRange(message string, err error) error {
	return domainerror.NewAsientoError(
		domainerror.ErrCodeInvalidAsientoDate,
		message,
		errors.Join(domainerror.ErrInvalidAsientoDate, err),
	)
}
