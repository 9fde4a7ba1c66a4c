package dto

import (
	"time"

	"github.com/asistente-contable/backend/internal/domain/entity"
)

// ListAdvicesQuery represents the query string of the advice listing.
type ListAdvicesQuery struct {
	Read  *bool `form:"leido"`
	Limit int   `form:"limit"`
}

// CreateAdviceRequest represents the request body for a manual advice.
type CreateAdviceRequest struct {
	Message   string `json:"mensaje" binding:"omitempty,max=2000"`
	AlertType string `json:"tipo_alerta" binding:"omitempty,max=50"`
	Priority  string `json:"prioridad"`
}

// GenerateAdviceRequest represents the request body for AI advice generation.
type GenerateAdviceRequest struct {
	Period string `json:"periodo"`
}

// AdviceResponse represents an advice in API responses.
type AdviceResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	AlertType   string    `json:"tipo_alerta"`
	Message     string    `json:"mensaje"`
	Priority    string    `json:"prioridad"`
	GeneratedBy string    `json:"generado_por"`
	Read        bool      `json:"leido"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToAdviceResponse converts a domain Advice to an AdviceResponse DTO.
func ToAdviceResponse(a *entity.Advice) AdviceResponse {
	return AdviceResponse{
		ID:          a.ID.String(),
		UserID:      a.UserID.String(),
		AlertType:   a.AlertType,
		Message:     a.Message,
		Priority:    string(a.Priority),
		GeneratedBy: string(a.GeneratedBy),
		Read:        a.Read,
		CreatedAt:   a.CreatedAt,
	}
}

// ToAdviceResponses converts a list of advices.
func ToAdviceResponses(advices []*entity.Advice) []AdviceResponse {
	out := make([]AdviceResponse, 0, len(advices))
	for _, a := range advices {
		out = append(out, ToAdviceResponse(a))
	}
	return out
}

// GenerateAdviceResponse reports the outcome of an AI generation request.
type GenerateAdviceResponse struct {
	Period    string           `json:"periodo"`
	Generated int              `json:"generated"`
	Saved     int              `json:"saved"`
	Skipped   bool             `json:"skipped,omitempty"`
	Advices   []AdviceResponse `json:"advices"`
}
