package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

// AsientoFilter defines filter options for listing accounting entries.
type AsientoFilter struct {
	UserID       uuid.UUID
	StartDate    *time.Time
	EndDate      *time.Time
	MovementType *entity.MovementType
	CategoryCode string
	Limit        int
	Offset       int
}

// AsientoRepository defines the interface for accounting entry persistence operations.
type AsientoRepository interface {
	Create(ctx context.Context, asiento *entity.Asiento) error
	FindByID(ctx context.Context, id string) (*entity.Asiento, error)
	// FindByFilter returns entries newest first. A zero Limit returns every match.
	FindByFilter(ctx context.Context, filter AsientoFilter) ([]*entity.Asiento, error)
	Update(ctx context.Context, asiento *entity.Asiento) error
	Delete(ctx context.Context, id string) error
}

// AccountingCatalogRepository reads the accounting category catalog.
type AccountingCatalogRepository interface {
	// FindByCode retrieves a catalog row regardless of its active flag.
	FindByCode(ctx context.Context, code string) (*entity.AccountingCategory, error)

	// ListActive returns active rows ordered by code, optionally restricted to one movement type.
	ListActive(ctx context.Context, movementType *entity.MovementType) ([]*entity.AccountingCategory, error)

	// ListAll returns every row ordered by code.
	ListAll(ctx context.Context) ([]*entity.AccountingCategory, error)
}

// CategoryRepository reads the transaction categories.
type CategoryRepository interface {
	// List returns categories ordered by type then name.
	List(ctx context.Context) ([]*entity.Category, error)
}
