package mock

import (
	"context"
	"sync"

	"github.com/asistente-contable/backend/internal/application/adapter"
	"github.com/asistente-contable/backend/internal/domain/entity"
)

// AdviceGenerator returns canned advice and counts the calls it receives.
type AdviceGenerator struct {
	mu        sync.Mutex
	available bool
	err       error
	calls     int
	advice    []*adapter.GeneratedAdvice
}

// NewAdviceGenerator returns an available generator answering one normal priority advice.
func NewAdviceGenerator() *AdviceGenerator {
	g := &AdviceGenerator{}
	g.Reset()
	return g
}

// Generate implements adapter.AdviceGenerator.
func (g *AdviceGenerator) Generate(_ context.Context, _ *adapter.AdviceRequest) ([]*adapter.GeneratedAdvice, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.advice, nil
}

// IsAvailable implements adapter.AdviceGenerator.
func (g *AdviceGenerator) IsAvailable() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.available
}

// SetAvailable toggles whether the generator reports itself configured.
func (g *AdviceGenerator) SetAvailable(available bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.available = available
}

// SetError makes every later Generate call fail with err.
func (g *AdviceGenerator) SetError(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.err = err
}

// Calls returns how many times Generate ran.
func (g *AdviceGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

// Reset restores the default answer and clears the call count.
func (g *AdviceGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.available = true
	g.err = nil
	g.calls = 0
	g.advice = []*adapter.GeneratedAdvice{
		{
			AlertType: "ahorro",
			Message:   "Reduce el gasto en ocio para aumentar tu tasa de ahorro.",
			Priority:  entity.AdvicePriorityNormal,
		},
	}
}
