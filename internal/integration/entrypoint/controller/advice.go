package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asistente-contable/backend/internal/application/usecase/advice"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/infra/metrics"
	"github.com/asistente-contable/backend/internal/integration/entrypoint/dto"
)

// AdviceController handles the financial advice endpoints.
type AdviceController struct {
	listUseCase     *advice.ListAdvicesUseCase
	createUseCase   *advice.CreateAdviceUseCase
	markReadUseCase *advice.MarkReadUseCase
	generateUseCase *advice.GenerateAdviceUseCase
	metrics         *metrics.Collector
}

// NewAdviceController creates a new advice controller instance.
func NewAdviceController(
	listUseCase *advice.ListAdvicesUseCase,
	createUseCase *advice.CreateAdviceUseCase,
	markReadUseCase *advice.MarkReadUseCase,
	generateUseCase *advice.GenerateAdviceUseCase,
	collector *metrics.Collector,
) *AdviceController {
	return &AdviceController{
		listUseCase:     listUseCase,
		createUseCase:   createUseCase,
		markReadUseCase: markReadUseCase,
		generateUseCase: generateUseCase,
		metrics:         collector,
	}
}

// List handles GET /advice requests.
func (c *AdviceController) List(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var query dto.ListAdvicesQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		badRequest(ctx, msgInvalidQuery)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), advice.ListAdvicesInput{
		UserID: userID,
		Read:   query.Read,
		Limit:  query.Limit,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToAdviceResponses(output.Advices), ""))
}

// Create handles POST /advice requests.
func (c *AdviceController) Create(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.CreateAdviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, msgInvalidBody)
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), advice.CreateAdviceInput{
		UserID:    userID,
		Message:   req.Message,
		AlertType: req.AlertType,
		Priority:  req.Priority,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.OK(dto.ToAdviceResponse(output.Advice), "Consejo creado correctamente"))
}

// MarkRead handles PATCH /advice/:id/read requests.
func (c *AdviceController) MarkRead(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}
	adviceID, ok := pathUUID(ctx, "id")
	if !ok {
		return
	}

	output, err := c.markReadUseCase.Execute(ctx.Request.Context(), advice.MarkReadInput{
		AdviceID: adviceID,
		UserID:   userID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OK(dto.ToAdviceResponse(output.Advice), ""))
}

// Generate handles POST /advice/generate requests. An empty body targets the current month.
func (c *AdviceController) Generate(ctx *gin.Context) {
	userID, ok := currentUser(ctx)
	if !ok {
		return
	}

	var req dto.GenerateAdviceRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, msgInvalidBody)
			return
		}
	}

	output, err := c.generateUseCase.Execute(ctx.Request.Context(), advice.GenerateAdviceInput{
		UserID: userID,
		Period: req.Period,
	})
	if err != nil {
		var adviceErr *domainerror.AdviceError
		if errors.As(err, &adviceErr) && adviceErr.Code == domainerror.ErrCodeAdviceServiceUnavailable {
			c.metrics.RecordAdvice(metrics.ResultOpen)
		} else {
			c.metrics.RecordAdvice(metrics.ResultError)
		}
		respondError(ctx, err)
		return
	}

	result := metrics.ResultSuccess
	if output.Skipped {
		result = metrics.ResultRejected
	}
	c.metrics.RecordAdvice(result)

	ctx.JSON(http.StatusCreated, dto.OK(dto.GenerateAdviceResponse{
		Period:    output.Period,
		Generated: output.Generated,
		Saved:     output.Saved,
		Skipped:   output.Skipped,
		Advices:   dto.ToAdviceResponses(output.Advices),
	}, ""))
}
