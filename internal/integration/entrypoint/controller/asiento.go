package controller

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/asistente-contable/backend/internal/application/usecase/asiento"
	"github.com/asistente-contable/backend/internal/integration/entrypoint/dto"
)

// AsientoController handles the accounting entry endpoints.
type AsientoController struct {
	listUseCase    *asiento.ListAsientosUseCase
	getUseCase     *asiento.GetAsientoUseCase
	createUseCase  *asiento.CreateAsientoUseCase
	updateUseCase  *asiento.UpdateAsientoUseCase
	deleteUseCase  *asiento.DeleteAsientoUseCase
	statsUseCase   *asiento.GetStatsUseCase
	catalogUseCase *asiento.ListCatalogUseCase
}

// NewAsientoController creates a new asiento controller instance.
func NewAsientoController(
	listUseCase *asiento.ListAsientosUseCase,
	getUseCase *asiento.GetAsientoUseCase,
	createUseCase *asiento.CreateAsientoUseCase,
	updateUseCase *asiento.UpdateAsientoUseCase,
	deleteUseCase *asiento.DeleteAsientoUseCase,
	statsUseCase *asiento.GetStatsUseCase,
	catalogUseCase *asiento.ListCatalogUseCase,
) *AsientoController {
	return &AsientoController{
		listUseCase:    listUseCase,
		getUseCase:     getUseCase,
		createUseCase:  createUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		statsUseCase:   statsUseCase,
		catalogUseCase: catalogUseCase,
	}
}

// List handles GET /asientos requests.
func (c *AsientoController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var query dto.ListAsientosQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, msgInvalidQuery)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), asiento.ListAsientosInput{
		UserID:       userID,
		Period:       query.Period,
		MovementType: query.MovementType,
		CategoryCode: query.CategoryCode,
		StartDate:    query.StartDate,
		EndDate:      query.EndDate,
		Limit:        query.Limit,
		Offset:       query.Offset,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(
		dto.ToAsientoResponses(output.Asientos),
		fmt.Sprintf("%d asientos encontrados", len(output.Asientos)),
	))
}

// Get handles GET /asientos/:id requests.
func (c *AsientoController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), asiento.GetAsientoInput{
		ID:     ctx.Param("id"),
		UserID: userID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToAsientoResponse(output.Asiento), ""))
}

// Create handles POST /asientos requests.
func (c *AsientoController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.AsientoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, msgInvalidBody)
		return
	}

	amount := decimal.Zero
	if req.Amount != nil {
		amount = *req.Amount
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), asiento.CreateAsientoInput{
		UserID: userID,
		Draft: asiento.Draft{
			ID:                 req.ID,
			Date:               req.Date,
			Description:        req.Description,
			MovementType:       req.MovementType,
			CategoryCode:       req.CategoryCode,
			Amount:             amount,
			Currency:           req.Currency,
			SourceAccount:      req.SourceAccount,
			DestinationAccount: req.DestinationAccount,
			BalanceAfter:       req.BalanceAfter,
			Reference:          req.Reference,
		},
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.OK(dto.ToAsientoResponse(output.Asiento), "Asiento contable creado correctamente"))
}

// Update handles PUT /asientos/:id requests.
func (c *AsientoController) Update(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.UpdateAsientoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, msgInvalidBody)
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), asiento.UpdateAsientoInput{
		ID:                 ctx.Param("id"),
		UserID:             userID,
		Date:               req.Date,
		Description:        req.Description,
		MovementType:       req.MovementType,
		CategoryCode:       req.CategoryCode,
		Amount:             req.Amount,
		Currency:           req.Currency,
		SourceAccount:      req.SourceAccount,
		DestinationAccount: req.DestinationAccount,
		BalanceAfter:       req.BalanceAfter,
		Reference:          req.Reference,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToAsientoResponse(output.Asiento), "Asiento contable actualizado correctamente"))
}

// Delete handles DELETE /asientos/:id requests.
func (c *AsientoController) Delete(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), asiento.DeleteAsientoInput{
		ID:     ctx.Param("id"),
		UserID: userID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(nil, "Asiento contable eliminado correctamente"))
}

// Stats handles GET /asientos/stats requests.
func (c *AsientoController) Stats(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var query dto.AsientoStatsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, msgInvalidQuery)
		return
	}

	output, err := c.statsUseCase.Execute(ctx.Request.Context(), asiento.GetStatsInput{
		UserID:    userID,
		Period:    query.Period,
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToAsientoStatsResponse(output.Stats, output.ByCategory, output.ByMonth), ""))
}

// Catalog handles GET /asientos/categorias requests.
func (c *AsientoController) Catalog(ctx *gin.Context) {
	var query dto.CatalogQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, msgInvalidQuery)
		return
	}

	output, err := c.catalogUseCase.Execute(ctx.Request.Context(), asiento.ListCatalogInput{
		MovementType: query.MovementType,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToAccountingCategoryResponses(output.Categories), ""))
}
