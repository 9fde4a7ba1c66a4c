package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollectorRecordsWebhookResults(t *testing.T) {
	c := NewCollector()

	c.RecordWebhook("transaction", ResultSuccess)
	c.RecordWebhook("transaction", ResultSuccess)
	c.RecordWebhook("asiento", ResultRejected)

	if got := testutil.ToFloat64(c.webhookIngestions.WithLabelValues("transaction", ResultSuccess)); got != 2 {
		t.Errorf("transaction/success = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.webhookIngestions.WithLabelValues("asiento", ResultRejected)); got != 1 {
		t.Errorf("asiento/rejected = %v, want 1", got)
	}
}

func TestNilCollectorIsNoop(t *testing.T) {
	var c *Collector

	c.RecordRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
	c.RecordWebhook("transaction", ResultError)
	c.RecordAdvice(ResultOpen)
	c.RecordCircuitState("gemini", 1)
	c.RecordEmail("welcome", "sent")
}

func TestHandlerExposesMetrics(t *testing.T) {
	c := NewCollector()
	c.RecordRequest(http.MethodPost, "/api/v1/webhook/n8n", http.StatusCreated, 20*time.Millisecond)
	c.RecordAdvice(ResultSuccess)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := rec.Body.String()
	for _, name := range []string{
		"asistente_contable_http_requests_total",
		"asistente_contable_http_request_duration_seconds",
		"asistente_contable_advice_generated_total",
	} {
		if !strings.Contains(body, name) {
			t.Errorf("exposition is missing %s", name)
		}
	}
}
