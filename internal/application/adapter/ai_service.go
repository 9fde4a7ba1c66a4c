package adapter

import (
	"context"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

// AdviceRequest is the period data handed to the text generation service.
type AdviceRequest struct {
	Period       string
	Summary      *entity.KPISummary
	Transactions []*entity.Transaction
}

// GeneratedAdvice is one advice item parsed from the service reply.
type GeneratedAdvice struct {
	AlertType string
	Message   string
	Priority  entity.AdvicePriority
}

// AdviceGenerator produces financial advice from a period's data.
type AdviceGenerator interface {
	// Generate asks the external service for advice. Implementations return an
	// error on transport, timeout or parse failures and leave the fallback to the caller.
	Generate(ctx context.Context, request *AdviceRequest) ([]*GeneratedAdvice, error)

	// IsAvailable reports whether the service is configured.
	IsAvailable() bool
}
