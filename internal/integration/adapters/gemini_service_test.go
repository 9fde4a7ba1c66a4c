package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/asistente-contable/backend/internal/application/adapter"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
)

func TestGeminiServiceGenerate(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		s := NewGeminiService(GeminiConfig{}, nil)

		if s.IsAvailable() {
			t.Fatal("service without api key should not be available")
		}
		_, err := s.Generate(context.Background(), &adapter.AdviceRequest{Period: "2024-05"})
		if !errors.Is(err, domainerror.ErrAdviceServiceUnavailable) {
			t.Errorf("expected ErrAdviceServiceUnavailable, got %v", err)
		}
	})

	t.Run("parses reply", func(t *testing.T) {
		s := NewGeminiService(GeminiConfig{APIKey: "key"}, nil)
		var gotSystem, gotPrompt string
		s.generate = func(_ context.Context, system, prompt string) (string, error) {
			gotSystem, gotPrompt = system, prompt
			return `{"advices":[{"tipo_alerta":"meta_ahorro","mensaje":"Sube tu ahorro","prioridad":"normal"}]}`, nil
		}

		advices, err := s.Generate(context.Background(), &adapter.AdviceRequest{Period: "2024-05"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(advices) != 1 || advices[0].Message != "Sube tu ahorro" {
			t.Errorf("unexpected advices %+v", advices)
		}
		if gotSystem != adviceSystemPrompt || gotPrompt == "" {
			t.Error("generator did not receive the prompts")
		}
	})

	t.Run("applies timeout", func(t *testing.T) {
		s := NewGeminiService(GeminiConfig{APIKey: "key", Timeout: 20 * time.Millisecond}, nil)
		s.generate = func(ctx context.Context, _, _ string) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		}

		_, err := s.Generate(context.Background(), &adapter.AdviceRequest{Period: "2024-05"})
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("expected deadline exceeded, got %v", err)
		}
		if !errors.Is(err, domainerror.ErrAdviceServiceUnavailable) {
			t.Errorf("expected ErrAdviceServiceUnavailable, got %v", err)
		}
	})

	t.Run("unparsable reply", func(t *testing.T) {
		s := NewGeminiService(GeminiConfig{APIKey: "key"}, nil)
		s.generate = func(context.Context, string, string) (string, error) {
			return "not json", nil
		}

		_, err := s.Generate(context.Background(), &adapter.AdviceRequest{Period: "2024-05"})
		if !errors.Is(err, domainerror.ErrAdviceServiceUnavailable) {
			t.Errorf("expected ErrAdviceServiceUnavailable, got %v", err)
		}
	})

	t.Run("opens circuit after consecutive failures", func(t *testing.T) {
		s := NewGeminiService(GeminiConfig{APIKey: "key"}, nil)
		calls := 0
		s.generate = func(context.Context, string, string) (string, error) {
			calls++
			return "", errors.New("upstream 503")
		}

		for i := 0; i < 7; i++ {
			_, _ = s.Generate(context.Background(), &adapter.AdviceRequest{Period: "2024-05"})
		}

		if calls != 5 {
			t.Errorf("upstream called %d times, want 5 before the circuit opens", calls)
		}
	})
}
