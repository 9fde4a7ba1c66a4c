package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/asistente-contable/backend/internal/application/usecase/category"
	"github.com/asistente-contable/backend/internal/domain/entity"
	"github.com/asistente-contable/backend/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listCategoriesUseCase *category.ListCategoriesUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(listCategoriesUseCase *category.ListCategoriesUseCase) *CategoryController {
	return &CategoryController{
		listCategoriesUseCase: listCategoriesUseCase,
	}
}

// List handles GET /categories requests.
func (c *CategoryController) List(ctx *gin.Context) {
	var query dto.ListCategoriesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, msgInvalidQuery)
		return
	}

	input := category.ListCategoriesInput{}
	if t := strings.TrimSpace(query.Type); t != "" {
		txnType := entity.TransactionType(t)
		input.Type = &txnType
	}

	output, err := c.listCategoriesUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(
		dto.ToCategoryResponses(output.Categories),
		fmt.Sprintf("%d categorías encontradas", len(output.Categories)),
	))
}
