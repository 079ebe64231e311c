package engine

import (
	"sync"

	"github.com/mohamedkhairy/token-monitor/internal/models"
	"github.com/mohamedkhairy/token-monitor/pkg/indicator"
)

// Serialized wraps an Engine with a mutex so that the dispatch loop and
// read-side collaborators (the HTTP surface) can share one instance. The
// engine itself stays single-writer and lock-free; this wrapper is the
// serialization point for callers that multiplex.
type Serialized struct {
	mu sync.Mutex
	e  *Engine
}

// NewSerialized wraps an engine.
func NewSerialized(e *Engine) *Serialized {
	return &Serialized{e: e}
}

// Dispatch routes one event under the lock.
func (s *Serialized) Dispatch(ev *models.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.e.Dispatch(ev)
}

// SetExchangeRate forwards under the lock.
func (s *Serialized) SetExchangeRate(rate float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.SetExchangeRate(rate)
}

// Snapshot returns a consistent snapshot under the lock.
func (s *Serialized) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.Snapshot()
}

// ExportTransactions returns a copy of the transaction log under the lock.
func (s *Serialized) ExportTransactions() []models.TradeEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.ExportTransactions()
}

// ExportChartBars returns a copy of the bar list under the lock.
func (s *Serialized) ExportChartBars() []models.ChartBar {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.ExportChartBars()
}

// ExportRSI returns the calculator histories under the lock.
func (s *Serialized) ExportRSI() indicator.Export {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.e.ExportRSI()
}

// Reset reinitializes the indicators under the lock.
func (s *Serialized) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.e.Reset()
}

// Reinitialize zeroes the whole derived state under the lock.
func (s *Serialized) Reinitialize() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.e.Reinitialize()
}
