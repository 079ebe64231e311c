package data

import (
	"context"
	"errors"

	"github.com/mohamedkhairy/token-monitor/internal/models"
)

var (
	// ErrProviderNotConnected is returned when operations are attempted on a stopped provider
	ErrProviderNotConnected = errors.New("provider is not connected")
	// ErrProviderAlreadyConnected is returned when starting an already running provider
	ErrProviderAlreadyConnected = errors.New("provider is already connected")
	// ErrUnknownProvider is returned for an unrecognized provider name
	ErrUnknownProvider = errors.New("unknown provider type")
)

// Provider delivers typed events to the dispatch loop. Implementations own
// their transport (websocket, mock generator); the returned channel is
// closed when the provider stops.
type Provider interface {
	// Start begins delivering events until ctx is canceled
	Start(ctx context.Context) error

	// Events returns the channel of normalized events
	Events() <-chan *models.Event

	// Close releases the provider's resources
	Close() error

	// Name returns the provider type (e.g., "mock", "websocket")
	Name() string
}

// ProviderConfig holds construction parameters shared by providers.
type ProviderConfig struct {
	WebSocketURL      string
	ReconnectDelay    int // seconds
	MaxReconnectDelay int // seconds
	MockIntervalMs    int
	BufferSize        int
}

// NewProvider creates a provider by name.
func NewProvider(name string, cfg ProviderConfig) (Provider, error) {
	switch name {
	case "mock":
		return NewMockProvider(cfg), nil
	case "websocket":
		return NewWebSocketProvider(cfg), nil
	default:
		return nil, ErrUnknownProvider
	}
}
