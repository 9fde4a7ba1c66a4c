package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

// AdviceFilter defines filter options for listing advices.
type AdviceFilter struct {
	UserID uuid.UUID
	Read   *bool
	Limit  int
}

// AdviceRepository defines the interface for advice persistence operations.
type AdviceRepository interface {
	Create(ctx context.Context, advice *entity.Advice) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Advice, error)
	// FindByFilter returns advices newest first.
	FindByFilter(ctx context.Context, filter AdviceFilter) ([]*entity.Advice, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
}

// AuditLogRepository appends audit records.
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.AuditLog, error)
}
