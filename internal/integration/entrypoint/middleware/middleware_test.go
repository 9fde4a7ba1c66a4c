package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/asistente-contable/backend/internal/application/adapter"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/infra/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubTokenService struct {
	adapter.TokenService
	claims *adapter.TokenClaims
}

func (s *stubTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if token == "stale" {
		return nil, domainerror.ErrExpiredToken
	}
	if token != "good" {
		return nil, errors.New("invalid")
	}
	return s.claims, nil
}

type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

func perform(t *testing.T, engine *gin.Engine, header string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	var body envelope
	if rec.Code != http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
	}
	return rec, body
}

func TestAuthenticate(t *testing.T) {
	userID := uuid.New()
	m := NewAuthMiddleware(&stubTokenService{claims: &adapter.TokenClaims{UserID: userID, Email: "ana@example.com"}})

	engine := gin.New()
	engine.POST("/", m.Authenticate(), func(c *gin.Context) {
		id, ok := GetUserIDFromContext(c)
		if !ok || id != userID {
			t.Errorf("user id = %v, %v; want %v", id, ok, userID)
		}
		email, _ := GetUserEmailFromContext(c)
		if email != "ana@example.com" {
			t.Errorf("email = %q", email)
		}
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   domainerror.AuthErrorCode
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeMissingToken},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "empty bearer", header: "Bearer ", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeInvalidToken},
		{name: "expired token", header: "Bearer stale", wantStatus: http.StatusUnauthorized, wantCode: domainerror.ErrCodeExpiredToken},
		{name: "valid token", header: "Bearer good", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := perform(t, engine, tt.header)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK && body.Success {
				t.Error("error envelope has success=true")
			}
			if tt.wantCode != "" && body.Code != string(tt.wantCode) {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
		})
	}
}

func TestWebhookAuth(t *testing.T) {
	tests := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
		wantError  string
	}{
		{name: "secret not configured", secret: "", header: "Bearer s3cret", wantStatus: http.StatusInternalServerError, wantError: "Token de webhook no configurado"},
		{name: "missing token", secret: "s3cret", header: "", wantStatus: http.StatusUnauthorized, wantError: "Token de webhook inválido"},
		{name: "wrong token", secret: "s3cret", header: "Bearer nope", wantStatus: http.StatusUnauthorized, wantError: "Token de webhook inválido"},
		{name: "matching token", secret: "s3cret", header: "Bearer s3cret", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := gin.New()
			engine.POST("/", WebhookAuth(tt.secret), func(c *gin.Context) { c.Status(http.StatusOK) })

			rec, body := perform(t, engine, tt.header)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if body.Error != tt.wantError {
				t.Errorf("error = %q, want %q", body.Error, tt.wantError)
			}
		})
	}
}

type fakeCounter struct {
	counts map[string]int64
	err    error
}

func (f *fakeCounter) Increment(_ context.Context, key string, _ time.Duration) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.counts[key]++
	return f.counts[key], nil
}

func TestRateLimiterAllow(t *testing.T) {
	tests := []struct {
		name    string
		counter WindowCounter
	}{
		{name: "in-memory window"},
		{name: "shared counter", counter: &fakeCounter{counts: map[string]int64{}}},
		{name: "failing counter falls back", counter: &fakeCounter{err: errors.New("connection refused")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiterWithOptions(RateLimitOptions{
				MaxAttempts: 2,
				Window:      time.Minute,
				KeyPrefix:   "test:",
				Counter:     tt.counter,
			})
			ctx := context.Background()

			if !rl.Allow(ctx, "10.0.0.1") || !rl.Allow(ctx, "10.0.0.1") {
				t.Fatal("first two requests should be allowed")
			}
			if rl.Allow(ctx, "10.0.0.1") {
				t.Error("third request should be rejected")
			}
			if !rl.Allow(ctx, "10.0.0.2") {
				t.Error("other keys keep their own window")
			}
		})
	}
}

func TestRateLimiterWindowExpires(t *testing.T) {
	rl := NewRateLimiterWithOptions(RateLimitOptions{MaxAttempts: 1, Window: time.Minute})
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	ctx := context.Background()
	if !rl.Allow(ctx, "k") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow(ctx, "k") {
		t.Fatal("second request in the window should be rejected")
	}

	now = now.Add(2 * time.Minute)
	if !rl.Allow(ctx, "k") {
		t.Error("request after the window should be allowed")
	}

	now = now.Add(2 * time.Minute)
	rl.Cleanup()
	if len(rl.entries) != 0 {
		t.Errorf("entries after cleanup = %d, want 0", len(rl.entries))
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		disabled bool
		want     []int
	}{
		{name: "enabled", want: []int{http.StatusOK, http.StatusTooManyRequests}},
		{name: "disabled", disabled: true, want: []int{http.StatusOK, http.StatusOK}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiterWithOptions(RateLimitOptions{MaxAttempts: 1, Code: "WHK-010003", Disabled: tt.disabled})
			engine := gin.New()
			engine.POST("/", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

			for i, want := range tt.want {
				rec, body := perform(t, engine, "")
				if rec.Code != want {
					t.Fatalf("request %d status = %d, want %d", i, rec.Code, want)
				}
				if want == http.StatusTooManyRequests && body.Code != "WHK-010003" {
					t.Errorf("code = %q", body.Code)
				}
			}
		})
	}
}

func TestSecurityHeadersAndMetrics(t *testing.T) {
	collector := metrics.NewCollector()
	engine := gin.New()
	engine.Use(Metrics(collector), SecurityHeaders())
	engine.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec, _ := perform(t, engine, "")

	want := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Referrer-Policy":        "no-referrer",
	}
	for header, value := range want {
		if got := rec.Header().Get(header); got != value {
			t.Errorf("%s = %q, want %q", header, got, value)
		}
	}

	scrape := httptest.NewRecorder()
	collector.Handler().ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(scrape.Body.String(), `asistente_contable_http_requests_total{method="POST",route="/",status="200"} 1`) {
		t.Error("request was not recorded")
	}
}
