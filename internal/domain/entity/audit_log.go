package entity

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded by webhook ingestion.
const (
	AuditTransactionCreatedViaWebhook = "transaction_created_via_webhook"
	AuditAsientoCreatedViaWebhook     = "asiento_created_via_webhook"
)

// AuditLog is an append-only record of an action taken on behalf of a user.
type AuditLog struct {
	ID        uuid.UUID
	UserID    *uuid.UUID
	Action    string
	Details   map[string]interface{}
	CreatedAt time.Time
}

// NewAuditLog creates a new AuditLog stamped with the current time.
func NewAuditLog(userID *uuid.UUID, action string, details map[string]interface{}) *AuditLog {
	return &AuditLog{
		ID:        uuid.New(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
}
