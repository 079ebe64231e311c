package data

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/mohamedkhairy/token-monitor/internal/models"
	"github.com/mohamedkhairy/token-monitor/pkg/logger"
)

// WebSocketProvider reads raw frames from a websocket feed, runs them
// through the normalizer and delivers typed events. It reconnects with
// exponential backoff on read errors.
type WebSocketProvider struct {
	cfg        ProviderConfig
	normalizer Normalizer
	events     chan *models.Event
	mu         sync.Mutex
	running    bool
	cancel     context.CancelFunc
	wg         sync.WaitGroup
}

// NewWebSocketProvider creates a websocket-backed provider.
func NewWebSocketProvider(cfg ProviderConfig) *WebSocketProvider {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = 1
	}
	if cfg.MaxReconnectDelay <= 0 {
		cfg.MaxReconnectDelay = 30
	}
	return &WebSocketProvider{
		cfg:        cfg,
		normalizer: NewNormalizer(),
		events:     make(chan *models.Event, cfg.BufferSize),
	}
}

// Name returns the provider type
func (p *WebSocketProvider) Name() string { return "websocket" }

// Events returns the channel of normalized events
func (p *WebSocketProvider) Events() <-chan *models.Event { return p.events }

// Start begins the read loop until ctx is canceled.
func (p *WebSocketProvider) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return ErrProviderAlreadyConnected
	}
	p.running = true
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	p.wg.Add(1)
	go p.readLoop(ctx)
	return nil
}

func (p *WebSocketProvider) readLoop(ctx context.Context) {
	defer p.wg.Done()
	defer close(p.events)

	delay := time.Duration(p.cfg.ReconnectDelay) * time.Second
	maxDelay := time.Duration(p.cfg.MaxReconnectDelay) * time.Second

	for {
		if ctx.Err() != nil {
			return
		}

		conn, _, err := websocket.DefaultDialer.DialContext(ctx, p.cfg.WebSocketURL, nil)
		if err != nil {
			logger.Warn("WebSocket dial failed, retrying",
				logger.ErrorField(err),
				logger.Duration("delay", delay),
			)
			select {
			case <-ctx.Done():
				return
			case <-time.After(delay):
			}
			delay = min(delay*2, maxDelay)
			continue
		}

		logger.Info("WebSocket connected",
			logger.String("url", p.cfg.WebSocketURL),
		)
		delay = time.Duration(p.cfg.ReconnectDelay) * time.Second

		p.consume(ctx, conn)
		_ = conn.Close()
	}
}

// consume reads frames until the connection breaks or ctx is canceled.
func (p *WebSocketProvider) consume(ctx context.Context, conn *websocket.Conn) {
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				logger.Warn("WebSocket read error, reconnecting",
					logger.ErrorField(err),
				)
			}
			return
		}

		ev, err := p.normalizer.Normalize(raw)
		if err != nil {
			logger.Debug("Dropping unnormalizable frame",
				logger.ErrorField(err),
			)
			continue
		}

		select {
		case p.events <- ev:
		case <-ctx.Done():
			return
		default:
			logger.Warn("Event buffer full, dropping event",
				logger.String("type", string(ev.Type)),
			)
		}
	}
}

// Close stops the read loop and waits for it to exit.
func (p *WebSocketProvider) Close() error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return ErrProviderNotConnected
	}
	p.running = false
	cancel := p.cancel
	p.mu.Unlock()

	cancel()
	p.wg.Wait()
	return nil
}
