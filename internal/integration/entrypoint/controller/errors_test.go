package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/integration/entrypoint/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "duplicate email",
			err:        domainerror.NewAuthError(domainerror.ErrCodeEmailExists, "exists", nil),
			wantStatus: http.StatusConflict,
			wantCode:   string(domainerror.ErrCodeEmailExists),
		},
		{
			name:       "invalid credentials",
			err:        domainerror.NewAuthError(domainerror.ErrCodeInvalidCredentials, "bad", nil),
			wantStatus: http.StatusUnauthorized,
			wantCode:   string(domainerror.ErrCodeInvalidCredentials),
		},
		{
			name:       "login rate limited",
			err:        domainerror.NewAuthError(domainerror.ErrCodeRateLimited, "slow down", nil),
			wantStatus: http.StatusTooManyRequests,
			wantCode:   string(domainerror.ErrCodeRateLimited),
		},
		{
			name:       "transaction not found",
			err:        domainerror.NewTransactionError(domainerror.ErrCodeTransactionNotFound, "missing", nil),
			wantStatus: http.StatusNotFound,
			wantCode:   string(domainerror.ErrCodeTransactionNotFound),
		},
		{
			name:       "invalid transaction amount",
			err:        domainerror.NewTransactionError(domainerror.ErrCodeInvalidTransactionAmount, "amount", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidTransactionAmount),
		},
		{
			name:       "foreign asiento",
			err:        domainerror.NewAsientoError(domainerror.ErrCodeNotAuthorizedAsiento, "forbidden", nil),
			wantStatus: http.StatusForbidden,
			wantCode:   string(domainerror.ErrCodeNotAuthorizedAsiento),
		},
		{
			name:       "movement type mismatch",
			err:        domainerror.NewAsientoError(domainerror.ErrCodeMovementTypeMismatch, "mismatch", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeMovementTypeMismatch),
		},
		{
			name:       "reused asiento id",
			err:        domainerror.NewAsientoError(domainerror.ErrCodeDuplicateAsientoID, "taken", domainerror.ErrDuplicateAsientoID),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeDuplicateAsientoID),
		},
		{
			name:       "asiento field too long",
			err:        domainerror.NewAsientoError(domainerror.ErrCodeAsientoFieldTooLong, "long", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeAsientoFieldTooLong),
		},
		{
			name:       "invalid kpi period",
			err:        domainerror.NewKPIError(domainerror.ErrCodeInvalidPeriod, "period", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidPeriod),
		},
		{
			name:       "advice service unavailable",
			err:        domainerror.NewAdviceError(domainerror.ErrCodeAdviceServiceUnavailable, "down", nil),
			wantStatus: http.StatusBadGateway,
			wantCode:   string(domainerror.ErrCodeAdviceServiceUnavailable),
		},
		{
			name:       "unregistered chat",
			err:        domainerror.NewWebhookError(domainerror.ErrCodeUnregisteredUser, "no registrado", nil),
			wantStatus: http.StatusNotFound,
			wantCode:   string(domainerror.ErrCodeUnregisteredUser),
		},
		{
			name:       "invalid webhook payload",
			err:        domainerror.NewInvalidPayloadError("missing monto"),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidWebhookPayload),
		},
		{
			name:       "wrapped profile error",
			err:        fmt.Errorf("update: %w", domainerror.NewProfileError(domainerror.ErrCodeChatIDAlreadyLinked, "linked", nil)),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeChatIDAlreadyLinked),
		},
		{
			name:       "email secret missing",
			err:        domainerror.NewEmailError(domainerror.ErrCodeInvalidEmailSecret, "secret", nil),
			wantStatus: http.StatusUnauthorized,
			wantCode:   string(domainerror.ErrCodeInvalidEmailSecret),
		},
		{
			name:       "email send failure hides details",
			err:        domainerror.NewEmailError(domainerror.ErrCodeEmailSendFailed, "provider said no", nil),
			wantStatus: http.StatusInternalServerError,
			wantCode:   string(domainerror.ErrCodeEmailSendFailed),
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, code := classify(tt.err)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if code != tt.wantCode {
				t.Errorf("code = %q, want %q", code, tt.wantCode)
			}
		})
	}
}

func TestClassifyHidesInternalMessages(t *testing.T) {
	_, message, _ := classify(errors.New("pq: connection refused"))
	if message != msgInternalError {
		t.Errorf("message = %q, want %q", message, msgInternalError)
	}
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/kpis", nil)

	status := respondError(c, domainerror.NewKPIError(domainerror.ErrCodeInvalidPeriod, "Periodo inválido", nil))
	if status != http.StatusBadRequest || w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d (written %d), want 400", status, w.Code)
	}

	var body struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
		Code    string `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Success {
		t.Error("success = true, want false")
	}
	if body.Error != "Periodo inválido" {
		t.Errorf("error = %q", body.Error)
	}
	if body.Code != string(domainerror.ErrCodeInvalidPeriod) {
		t.Errorf("code = %q", body.Code)
	}
}

func TestCurrentUser(t *testing.T) {
	t.Run("missing user answers 401", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		if _, ok := currentUser(c); ok {
			t.Fatal("expected no user")
		}
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", w.Code)
		}
	})

	t.Run("authenticated user", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		id := uuid.New()
		c.Set(string(middleware.UserIDKey), id)

		got, ok := currentUser(c)
		if !ok || got != id {
			t.Errorf("currentUser = %v, %v; want %v, true", got, ok, id)
		}
	})
}

func TestPathUUID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}

	if _, ok := pathUUID(c, "id"); ok {
		t.Fatal("expected parse failure")
	}
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
