package data

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/mohamedkhairy/token-monitor/internal/models"
)

// MockProvider generates a synthetic event stream for local runs and
// testing: a random-walk trade price with periodic pulse and lighthouse
// snapshots.
type MockProvider struct {
	cfg     ProviderConfig
	events  chan *models.Event
	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewMockProvider creates a mock provider.
func NewMockProvider(cfg ProviderConfig) *MockProvider {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 100
	}
	if cfg.MockIntervalMs <= 0 {
		cfg.MockIntervalMs = 500
	}
	return &MockProvider{
		cfg:    cfg,
		events: make(chan *models.Event, cfg.BufferSize),
	}
}

// Name returns the provider type
func (m *MockProvider) Name() string { return "mock" }

// Events returns the channel of generated events
func (m *MockProvider) Events() <-chan *models.Event { return m.events }

// Start begins generating events until ctx is canceled.
func (m *MockProvider) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrProviderAlreadyConnected
	}
	m.running = true
	ctx, m.cancel = context.WithCancel(ctx)
	m.mu.Unlock()

	m.wg.Add(1)
	go m.generate(ctx)
	return nil
}

func (m *MockProvider) generate(ctx context.Context) {
	defer m.wg.Done()
	defer close(m.events)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ticker := time.NewTicker(time.Duration(m.cfg.MockIntervalMs) * time.Millisecond)
	defer ticker.Stop()

	price := 0.002
	count := 0

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		// Random walk around the current price.
		price *= 1 + (rng.Float64()-0.5)*0.04
		count++

		ev := &models.Event{
			Type: models.EventTrade,
			Trade: &models.TradeEvent{
				Timestamp:        time.Now(),
				Price:            price,
				TransactionValue: rng.Float64() * 500,
				PairAddress:      "mock-pair",
				Signature:        "mock-sig",
				Side:             pick(rng, "buy", "sell"),
				MakerAddress:     "mock-maker",
			},
		}
		m.emit(ctx, ev)

		// Every 20th tick, emit a pulse and a lighthouse snapshot.
		if count%20 == 0 {
			m.emit(ctx, &models.Event{
				Type: models.EventPulse,
				Pulse: &models.PulseSnapshot{
					MarketCapNative: price * 1_000_000_000 / 150,
					VolumeNative:    rng.Float64() * 1000,
					NumHolders:      1000 + rng.Intn(100),
					LiquidityNative: rng.Float64() * 500,
					ReceivedAt:      time.Now(),
				},
			})
			m.emit(ctx, &models.Event{
				Type: models.EventLighthouse,
				Lighthouse: &models.LighthouseSnapshot{
					FiveMinuteTotalVolume: rng.Float64() * 10_000_000,
				},
			})
		}
	}
}

func (m *MockProvider) emit(ctx context.Context, ev *models.Event) {
	select {
	case m.events <- ev:
	case <-ctx.Done():
	}
}

func pick(rng *rand.Rand, a, b string) string {
	if rng.Intn(2) == 0 {
		return a
	}
	return b
}

// Close stops the generator and waits for it to exit.
func (m *MockProvider) Close() error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return ErrProviderNotConnected
	}
	m.running = false
	cancel := m.cancel
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
	return nil
}
