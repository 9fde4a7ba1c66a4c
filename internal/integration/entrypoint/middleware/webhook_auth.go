package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/asistente-contable/backend/internal/domain/error"
)

// WebhookAuth checks the bearer token of the automation callers against a shared secret.
// An empty secret rejects every call with 500.
func WebhookAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			abort(c, http.StatusInternalServerError, "Token de webhook no configurado",
				string(domainerror.ErrCodeWebhookSecretNotConfigured))
			return
		}

		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			abort(c, http.StatusUnauthorized, "Token de webhook inválido",
				string(domainerror.ErrCodeInvalidWebhookSecret))
			return
		}

		c.Next()
	}
}
