package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asistente-contable/backend/internal/application/usecase/webhook"
	"github.com/asistente-contable/backend/internal/infra/metrics"
	"github.com/asistente-contable/backend/internal/integration/entrypoint/dto"
)

const msgWebhookProcessed = "Webhook procesado correctamente"

// Webhook kinds used as metric labels.
const (
	webhookKindTransaction = "transaction"
	webhookKindAsiento     = "asiento"
	webhookKindQuery       = "query"
)

// WebhookController handles the chat automation endpoints.
type WebhookController struct {
	transactionUseCase *webhook.IngestTransactionUseCase
	asientoUseCase     *webhook.IngestAsientoUseCase
	queryUseCase       *webhook.QueryTransactionsUseCase
	metrics            *metrics.Collector
}

// NewWebhookController creates a new webhook controller instance.
func NewWebhookController(
	transactionUseCase *webhook.IngestTransactionUseCase,
	asientoUseCase *webhook.IngestAsientoUseCase,
	queryUseCase *webhook.QueryTransactionsUseCase,
	collector *metrics.Collector,
) *WebhookController {
	return &WebhookController{
		transactionUseCase: transactionUseCase,
		asientoUseCase:     asientoUseCase,
		queryUseCase:       queryUseCase,
		metrics:            collector,
	}
}

// Transaction handles POST /webhook/n8n requests.
func (c *WebhookController) Transaction(ctx *gin.Context) {
	var req dto.TransactionWebhookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.reject(ctx, webhookKindTransaction)
		return
	}

	output, err := c.transactionUseCase.Execute(ctx.Request.Context(), webhook.IngestTransactionInput{
		ChatID:        req.ChatID.String(),
		Phone:         req.Phone,
		Type:          req.Type,
		Amount:        req.Amount,
		Description:   req.Description,
		Category:      req.Category,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		c.fail(ctx, webhookKindTransaction, err)
		return
	}

	c.metrics.RecordWebhook(webhookKindTransaction, metrics.ResultSuccess)
	ctx.JSON(http.StatusOK, dto.OK(dto.TransactionWebhookResponse{
		TransactionID: output.TransactionID.String(),
		UserID:        output.UserID.String(),
		Message:       "Transacción procesada exitosamente",
	}, msgWebhookProcessed))
}

// Asiento handles POST /webhook/asientos requests.
func (c *WebhookController) Asiento(ctx *gin.Context) {
	var req dto.AsientoWebhookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.reject(ctx, webhookKindAsiento)
		return
	}

	output, err := c.asientoUseCase.Execute(ctx.Request.Context(), webhook.IngestAsientoInput{
		ChatID:             req.ChatID.String(),
		UserID:             req.UserID,
		Phone:              req.Phone,
		ID:                 req.ID,
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
		DataSource:         req.DataSource,
	})
	if err != nil {
		c.fail(ctx, webhookKindAsiento, err)
		return
	}

	c.metrics.RecordWebhook(webhookKindAsiento, metrics.ResultSuccess)
	ctx.JSON(http.StatusOK, dto.OK(dto.AsientoWebhookResponse{
		AsientoID: output.AsientoID,
		UserID:    output.UserID.String(),
		Message:   "Asiento contable creado exitosamente",
	}, msgWebhookProcessed))
}

// Query handles POST /transactions/query requests.
func (c *WebhookController) Query(ctx *gin.Context) {
	var req dto.QueryWebhookRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.reject(ctx, webhookKindQuery)
		return
	}

	output, err := c.queryUseCase.Execute(ctx.Request.Context(), webhook.QueryTransactionsInput{
		ChatID:   req.ChatID.String(),
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Type:     req.Type,
	})
	if err != nil {
		c.fail(ctx, webhookKindQuery, err)
		return
	}

	c.metrics.RecordWebhook(webhookKindQuery, metrics.ResultSuccess)
	ctx.JSON(http.StatusOK, dto.OK(dto.QueryWebhookResponse{
		UserID: output.UserID.String(),
		Count:  output.Summary.Count,
		Period: dto.QueryPeriod{From: output.From, To: output.To},
		Summary: dto.QuerySummary{
			Total:      dto.Money(output.Summary.Total),
			Income:     dto.Money(output.Summary.Income),
			Expense:    dto.Money(output.Summary.Expense),
			Savings:    dto.Money(output.Summary.Savings),
			Investment: dto.Money(output.Summary.Investment),
			Balance:    dto.Money(output.Summary.Balance),
		},
		Transactions: dto.ToTransactionResponses(output.Transactions),
	}, "Consulta realizada exitosamente"))
}

func (c *WebhookController) reject(ctx *gin.Context, kind string) {
	c.metrics.RecordWebhook(kind, metrics.ResultRejected)
	badRequest(ctx, msgInvalidBody)
}

func (c *WebhookController) fail(ctx *gin.Context, kind string, err error) {
	result := metrics.ResultRejected
	if status := respondError(ctx, err); status >= http.StatusInternalServerError {
		result = metrics.ResultError
	}
	c.metrics.RecordWebhook(kind, result)
}
