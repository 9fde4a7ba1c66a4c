package config

import (
	"testing"
	"time"
)

func TestLoadFallbacks(t *testing.T) {
	for _, key := range []string{"WEBHOOK_SECRET_TOKEN", "AI_MODEL", "RESEND_FROM_NAME", "REDIS_ENABLED", "AI_TEMPERATURE"} {
		t.Setenv(key, "")
	}
	cfg := Load()

	if cfg.Webhook.SecretToken != "" {
		t.Errorf("Webhook.SecretToken = %q, want empty", cfg.Webhook.SecretToken)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis.Enabled = true, want false on unparsable value")
	}
	if cfg.AI.Temperature != 0.7 {
		t.Errorf("AI.Temperature = %v, want 0.7", cfg.AI.Temperature)
	}
	if cfg.AI.MaxTokens != 1000 {
		t.Errorf("AI.MaxTokens = %d, want 1000", cfg.AI.MaxTokens)
	}
	if cfg.AI.Timeout != 20*time.Second {
		t.Errorf("AI.Timeout = %v, want 20s", cfg.AI.Timeout)
	}
	if cfg.Webhook.RateWindow != time.Minute {
		t.Errorf("Webhook.RateWindow = %v, want 1m", cfg.Webhook.RateWindow)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENV", "test")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("WEBHOOK_SECRET_TOKEN", "s3cret")
	t.Setenv("WEBHOOK_RATE_LIMIT", "10")
	t.Setenv("WEBHOOK_RATE_WINDOW", "30s")
	t.Setenv("AI_MODEL", "gemini-2.0-flash")
	t.Setenv("AI_TEMPERATURE", "0.2")
	t.Setenv("EMAIL_SECRET", "mail")
	t.Setenv("EMAIL_WORKER_POLL_INTERVAL", "1s")

	cfg := Load()

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"server port", cfg.Server.Port, 9090},
		{"is test", cfg.Server.IsTest(), true},
		{"redis enabled", cfg.Redis.Enabled, true},
		{"redis db", cfg.Redis.DB, 2},
		{"webhook secret", cfg.Webhook.SecretToken, "s3cret"},
		{"webhook rate limit", cfg.Webhook.RateLimit, 10},
		{"webhook window", cfg.Webhook.RateWindow, 30 * time.Second},
		{"ai model", cfg.AI.Model, "gemini-2.0-flash"},
		{"ai temperature", cfg.AI.Temperature, float32(0.2)},
		{"email secret", cfg.Email.Secret, "mail"},
		{"email poll interval", cfg.Email.PollInterval, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestGetEnvFallsBackOnInvalidValues(t *testing.T) {
	t.Setenv("TEST_INT", "abc")
	t.Setenv("TEST_DURATION", "soon")
	t.Setenv("TEST_BOOL", "maybe")

	if got := getEnvAsInt("TEST_INT", 7); got != 7 {
		t.Errorf("getEnvAsInt() = %d, want 7", got)
	}
	if got := getEnvAsDuration("TEST_DURATION", time.Second); got != time.Second {
		t.Errorf("getEnvAsDuration() = %v, want 1s", got)
	}
	if got := getEnvAsBool("TEST_BOOL", true); !got {
		t.Error("getEnvAsBool() = false, want fallback true")
	}
}
