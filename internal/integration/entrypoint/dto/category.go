package dto

import (
	"github.com/asistente-contable/backend/internal/domain/entity"
)

// ListCategoriesQuery represents the query string of the category listing.
type ListCategoriesQuery struct {
	Type string `form:"tipo"`
}

// CategoryResponse represents a transaction category in API responses.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"nombre"`
	Type        string `json:"tipo"`
	Group       string `json:"grupo,omitempty"`
	Description string `json:"descripcion,omitempty"`
}

// ToCategoryResponses converts a list of categories.
func ToCategoryResponses(categories []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryResponse{
			ID:          c.ID.String(),
			Name:        c.Name,
			Type:        string(c.Type),
			Group:       c.Group,
			Description: c.Description,
		})
	}
	return out
}

// AccountingCategoryResponse represents a catalog row in API responses.
type AccountingCategoryResponse struct {
	Code         string `json:"codigo"`
	Name         string `json:"nombre"`
	MovementType string `json:"tipo_movimiento"`
	Description  string `json:"descripcion,omitempty"`
	Active       bool   `json:"activo"`
}

// ToAccountingCategoryResponses converts a list of catalog rows.
func ToAccountingCategoryResponses(categories []*entity.AccountingCategory) []AccountingCategoryResponse {
	out := make([]AccountingCategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, AccountingCategoryResponse{
			Code:         c.Code,
			Name:         c.Name,
			MovementType: string(c.MovementType),
			Description:  c.Description,
			Active:       c.Active,
		})
	}
	return out
}
