// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/integration/entrypoint/dto"
	"github.com/asistente-contable/backend/internal/integration/entrypoint/middleware"
)

const (
	msgInvalidBody   = "Cuerpo de la solicitud inválido"
	msgInvalidQuery  = "Parámetros de consulta inválidos"
	msgInvalidID     = "Identificador inválido"
	msgInternalError = "Error interno del servidor"
)

// classify maps a use case error to its HTTP status, caller-facing message and code.
// Unknown errors become a 500 with a generic message.
func classify(err error) (status int, message, code string) {
	var (
		authErr    *domainerror.AuthError
		txnErr     *domainerror.TransactionError
		asientoErr *domainerror.AsientoError
		kpiErr     *domainerror.KPIError
		adviceErr  *domainerror.AdviceError
		webhookErr *domainerror.WebhookError
		profileErr *domainerror.ProfileError
		emailErr   *domainerror.EmailError
	)

	switch {
	case errors.As(err, &authErr):
		return authStatus(authErr.Code), authErr.Message, string(authErr.Code)
	case errors.As(err, &txnErr):
		status := http.StatusBadRequest
		if txnErr.Code == domainerror.ErrCodeTransactionNotFound {
			status = http.StatusNotFound
		}
		return status, txnErr.Message, string(txnErr.Code)
	case errors.As(err, &asientoErr):
		status := http.StatusBadRequest
		switch asientoErr.Code {
		case domainerror.ErrCodeAsientoNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeNotAuthorizedAsiento:
			status = http.StatusForbidden
		}
		return status, asientoErr.Message, string(asientoErr.Code)
	case errors.As(err, &kpiErr):
		return http.StatusBadRequest, kpiErr.Message, string(kpiErr.Code)
	case errors.As(err, &adviceErr):
		status := http.StatusBadRequest
		switch adviceErr.Code {
		case domainerror.ErrCodeAdviceNotFound:
			status = http.StatusNotFound
		case domainerror.ErrCodeNotAuthorizedAdvice:
			status = http.StatusForbidden
		case domainerror.ErrCodeAdviceServiceUnavailable:
			status = http.StatusBadGateway
		}
		return status, adviceErr.Message, string(adviceErr.Code)
	case errors.As(err, &webhookErr):
		return webhookStatus(webhookErr.Code), webhookErr.Message, string(webhookErr.Code)
	case errors.As(err, &profileErr):
		status := http.StatusBadRequest
		if profileErr.Code == domainerror.ErrCodeProfileNotFound {
			status = http.StatusNotFound
		}
		return status, profileErr.Message, string(profileErr.Code)
	case errors.As(err, &emailErr):
		switch emailErr.Code {
		case domainerror.ErrCodeEmailSecretNotConfigured:
			return http.StatusInternalServerError, emailErr.Message, string(emailErr.Code)
		case domainerror.ErrCodeInvalidEmailSecret:
			return http.StatusUnauthorized, emailErr.Message, string(emailErr.Code)
		case domainerror.ErrCodeMissingEmailFields:
			return http.StatusBadRequest, emailErr.Message, string(emailErr.Code)
		}
		return http.StatusInternalServerError, msgInternalError, string(emailErr.Code)
	}

	return http.StatusInternalServerError, msgInternalError, ""
}

func authStatus(code domainerror.AuthErrorCode) int {
	switch code {
	case domainerror.ErrCodeEmailExists:
		return http.StatusConflict
	case domainerror.ErrCodeWeakPassword,
		domainerror.ErrCodeInvalidEmail,
		domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeInvalidCredentials,
		domainerror.ErrCodeUserNotFound,
		domainerror.ErrCodeInvalidToken,
		domainerror.ErrCodeExpiredToken,
		domainerror.ErrCodeMissingToken:
		return http.StatusUnauthorized
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func webhookStatus(code domainerror.WebhookErrorCode) int {
	switch code {
	case domainerror.ErrCodeWebhookSecretNotConfigured:
		return http.StatusInternalServerError
	case domainerror.ErrCodeInvalidWebhookSecret:
		return http.StatusUnauthorized
	case domainerror.ErrCodeWebhookRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeUnregisteredUser, domainerror.ErrCodeWebhookUserNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// respondError writes the error envelope. Server errors are logged with the request context.
func respondError(ctx *gin.Context, err error) int {
	status, message, code := classify(err)
	if status >= http.StatusInternalServerError {
		userID, _ := middleware.GetUserIDFromContext(ctx)
		slog.Error("Request failed",
			"method", ctx.Request.Method,
			"path", ctx.FullPath(),
			"user_id", userID,
			"error", err,
		)
	}
	ctx.JSON(status, dto.Fail(message, code))
	return status
}

func badRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, dto.Fail(message, ""))
}

// currentUser returns the authenticated user id or answers 401.
func currentUser(ctx *gin.Context) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.Fail("No autenticado", string(domainerror.ErrCodeMissingToken)))
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a uuid path parameter or answers 400.
func pathUUID(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		badRequest(ctx, msgInvalidID)
		return uuid.Nil, false
	}
	return id, true
}
