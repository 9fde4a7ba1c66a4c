package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

// TransactionFilter defines filter options for listing transactions.
// Date bounds are inclusive calendar days.
type TransactionFilter struct {
	UserID    uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
	Type      *entity.TransactionType
	Category  string
	Limit     int
	Offset    int
}

// TransactionRepository defines the interface for transaction persistence operations.
type TransactionRepository interface {
	// Create creates a new transaction in the database.
	Create(ctx context.Context, transaction *entity.Transaction) error

	// FindByID retrieves a transaction by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)

	// FindByFilter retrieves transactions ordered by date then creation time, newest first.
	// A zero Limit returns every match.
	FindByFilter(ctx context.Context, filter TransactionFilter) ([]*entity.Transaction, error)

	// ListDates returns the date of every transaction of a user.
	ListDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error)

	// Update updates an existing transaction in the database.
	Update(ctx context.Context, transaction *entity.Transaction) error

	// Delete removes a transaction from the database.
	Delete(ctx context.Context, id uuid.UUID) error
}
