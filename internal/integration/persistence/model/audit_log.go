package model

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

// AuditLogModel represents the audit_logs table in the database.
type AuditLogModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	UserID    *uuid.UUID `gorm:"type:uuid;index"`
	Action    string     `gorm:"type:varchar(100);not null;index"`
	Details   string     `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time  `gorm:"not null"`
}

// TableName returns the table name for the AuditLogModel.
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToEntity converts an AuditLogModel to a domain AuditLog entity.
func (m *AuditLogModel) ToEntity() *entity.AuditLog {
	details := make(map[string]interface{})
	if m.Details != "" {
		if err := json.Unmarshal([]byte(m.Details), &details); err != nil {
			slog.Warn("Failed to unmarshal audit log details", "error", err, "id", m.ID)
		}
	}

	return &entity.AuditLog{
		ID:        m.ID,
		UserID:    m.UserID,
		Action:    m.Action,
		Details:   details,
		CreatedAt: m.CreatedAt,
	}
}

// AuditLogModelFromEntity creates an AuditLogModel from a domain AuditLog entity.
func AuditLogModelFromEntity(l *entity.AuditLog) *AuditLogModel {
	details, err := json.Marshal(l.Details)
	if err != nil || l.Details == nil {
		details = []byte("{}")
	}

	return &AuditLogModel{
		ID:        l.ID,
		UserID:    l.UserID,
		Action:    l.Action,
		Details:   string(details),
		CreatedAt: l.CreatedAt,
	}
}
