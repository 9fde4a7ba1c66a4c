package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AdvicePriority ranks how urgently an advice should be read.
type AdvicePriority string

const (
	AdvicePriorityLow      AdvicePriority = "baja"
	AdvicePriorityNormal   AdvicePriority = "normal"
	AdvicePriorityHigh     AdvicePriority = "alta"
	AdvicePriorityCritical AdvicePriority = "critica"
)

// IsValid reports whether p is one of the stored priority values.
func (p AdvicePriority) IsValid() bool {
	switch p {
	case AdvicePriorityLow, AdvicePriorityNormal, AdvicePriorityHigh, AdvicePriorityCritical:
		return true
	}
	return false
}

var priorityAliases = map[string]AdvicePriority{
	"baja":     AdvicePriorityLow,
	"low":      AdvicePriorityLow,
	"normal":   AdvicePriorityNormal,
	"media":    AdvicePriorityNormal,
	"medium":   AdvicePriorityNormal,
	"alta":     AdvicePriorityHigh,
	"high":     AdvicePriorityHigh,
	"critica":  AdvicePriorityCritical,
	"crítica":  AdvicePriorityCritical,
	"critical": AdvicePriorityCritical,
}

// ParseAdvicePriority resolves a priority token, reporting whether it was recognized.
func ParseAdvicePriority(raw string) (AdvicePriority, bool) {
	p, ok := priorityAliases[strings.ToLower(strings.TrimSpace(raw))]
	return p, ok
}

// CoerceAdvicePriority resolves a priority token, falling back to normal.
func CoerceAdvicePriority(raw string) AdvicePriority {
	if p, ok := ParseAdvicePriority(raw); ok {
		return p
	}
	return AdvicePriorityNormal
}

// AdviceAuthor records who produced an advice.
type AdviceAuthor string

const (
	AdviceAuthorAI   AdviceAuthor = "IA"
	AdviceAuthorUser AdviceAuthor = "usuario"
)

// DefaultAlertType is used when an advice carries no alert type.
const DefaultAlertType = "general"

// Advice is a textual financial recommendation addressed to a user.
type Advice struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	AlertType   string
	Message     string
	Priority    AdvicePriority
	GeneratedBy AdviceAuthor
	Read        bool
	CreatedAt   time.Time
}

// NewAdvice creates an unread Advice applying alert type and priority defaults.
func NewAdvice(userID uuid.UUID, alertType, message string, priority AdvicePriority, generatedBy AdviceAuthor) *Advice {
	if strings.TrimSpace(alertType) == "" {
		alertType = DefaultAlertType
	}
	if !priority.IsValid() {
		priority = AdvicePriorityNormal
	}
	return &Advice{
		ID:          uuid.New(),
		UserID:      userID,
		AlertType:   alertType,
		Message:     message,
		Priority:    priority,
		GeneratedBy: generatedBy,
		CreatedAt:   time.Now().UTC(),
	}
}

// MarkRead flips the read flag.
func (a *Advice) MarkRead() {
	a.Read = true
}

// IsOwnedBy reports whether the advice belongs to the given user.
func (a *Advice) IsOwnedBy(userID uuid.UUID) bool {
	return a.UserID == userID
}
