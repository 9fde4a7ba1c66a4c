package adapter

import (
	"context"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

// KPIRepository stores computed KPI snapshots.
type KPIRepository interface {
	// Upsert stores the snapshot, replacing any previous one for the same user and period.
	// On return summary.ID holds the id of the stored row.
	Upsert(ctx context.Context, summary *entity.KPISummary) error
}
