package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asistente-contable/backend/internal/application/usecase/kpi"
	"github.com/asistente-contable/backend/internal/integration/entrypoint/dto"
)

// KPIController serves the monthly KPI snapshots.
type KPIController struct {
	getKPIsUseCase *kpi.GetKPIsUseCase
}

// NewKPIController creates a new KPI controller instance.
func NewKPIController(getKPIsUseCase *kpi.GetKPIsUseCase) *KPIController {
	return &KPIController{
		getKPIsUseCase: getKPIsUseCase,
	}
}

// Get handles GET /kpis requests.
func (c *KPIController) Get(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var query dto.KPIQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, msgInvalidQuery)
		return
	}

	output, err := c.getKPIsUseCase.Execute(ctx.Request.Context(), kpi.GetKPIsInput{
		UserID: userID,
		Period: query.Period,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToKPIResponses(output.Summaries), ""))
}
