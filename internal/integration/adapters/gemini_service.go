package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sony/gobreaker"
	"google.golang.org/api/option"

	"github.com/asistente-contable/backend/internal/application/adapter"
	domainerror "github.com/asistente-contable/backend/internal/domain/error"
	"github.com/asistente-contable/backend/internal/infra/metrics"
)

const (
	defaultGeminiModel       = "gemini-2.5-flash-lite"
	defaultGeminiTemperature = 0.7
	defaultGeminiMaxTokens   = 1000
	defaultGeminiTimeout     = 20 * time.Second

	geminiBreakerName = "gemini"
)

// GeminiConfig configures the Gemini advice generator.
type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int32
	Timeout     time.Duration
}

// generateFunc sends a system and user prompt and returns the raw reply text.
type generateFunc func(ctx context.Context, system, prompt string) (string, error)

// GeminiService implements adapter.AdviceGenerator using Google Gemini.
type GeminiService struct {
	cfg      GeminiConfig
	breaker  *gobreaker.CircuitBreaker
	metrics  *metrics.Collector
	generate generateFunc
}

// NewGeminiService creates a new Gemini advice generator guarded by a circuit breaker.
func NewGeminiService(cfg GeminiConfig, collector *metrics.Collector) *GeminiService {
	if cfg.Model == "" {
		cfg.Model = defaultGeminiModel
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultGeminiTemperature
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultGeminiMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGeminiTimeout
	}

	s := &GeminiService{cfg: cfg, metrics: collector}
	s.generate = s.callGemini
	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        geminiBreakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed",
				"dependency", name,
				"from", from.String(),
				"to", to.String(),
			)
			collector.RecordCircuitState(name, circuitStateValue(to))
		},
	})
	return s
}

// IsAvailable checks if the Gemini service is configured.
func (s *GeminiService) IsAvailable() bool {
	return s.cfg.APIKey != ""
}

// Generate renders the period prompt, calls Gemini within the configured timeout and parses the reply.
func (s *GeminiService) Generate(ctx context.Context, request *adapter.AdviceRequest) ([]*adapter.GeneratedAdvice, error) {
	if !s.IsAvailable() {
		return nil, domainerror.NewAdviceError(
			domainerror.ErrCodeAdviceServiceUnavailable,
			"advice service is not configured",
			domainerror.ErrAdviceServiceUnavailable,
		)
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	prompt := buildAdvicePrompt(request)

	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.generate(ctx, adviceSystemPrompt, prompt)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			s.metrics.RecordAdvice(metrics.ResultOpen)
		} else {
			s.metrics.RecordAdvice(metrics.ResultError)
		}
		return nil, domainerror.NewAdviceError(
			domainerror.ErrCodeAdviceServiceUnavailable,
			"advice service call failed",
			errors.Join(domainerror.ErrAdviceServiceUnavailable, err),
		)
	}

	advices, err := parseAdviceReply(result.(string))
	if err != nil {
		s.metrics.RecordAdvice(metrics.ResultError)
		return nil, domainerror.NewAdviceError(
			domainerror.ErrCodeAdviceServiceUnavailable,
			"advice reply could not be parsed",
			errors.Join(domainerror.ErrAdviceServiceUnavailable, err),
		)
	}

	s.metrics.RecordAdvice(metrics.ResultSuccess)
	return advices, nil
}

func (s *GeminiService) callGemini(ctx context.Context, system, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.cfg.APIKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.cfg.Model)
	model.SetTemperature(s.cfg.Temperature)
	model.SetMaxOutputTokens(s.cfg.MaxTokens)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text content in response")
	}
	return sb.String(), nil
}

func circuitStateValue(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}
