package engine

import (
	"time"

	"github.com/mohamedkhairy/token-monitor/internal/models"
	"github.com/mohamedkhairy/token-monitor/internal/window"
	"github.com/mohamedkhairy/token-monitor/pkg/indicator"
	"github.com/mohamedkhairy/token-monitor/pkg/logger"
)

// Config holds the engine's construction parameters.
type Config struct {
	RSIPeriod           int
	RSIOversold         float64
	RSIOverbought       float64
	VolumeHorizon       time.Duration
	DefaultTokenSupply  float64
	DefaultExchangeRate float64
}

// DefaultConfig returns the conventional engine configuration.
func DefaultConfig() Config {
	return Config{
		RSIPeriod:          indicator.DefaultPeriod,
		RSIOversold:        indicator.DefaultOversold,
		RSIOverbought:      indicator.DefaultOverbought,
		VolumeHorizon:      24 * time.Hour,
		DefaultTokenSupply: 1_000_000_000,
	}
}

// Engine is the aggregate root for all derived market state of the
// monitored token. It assumes single-writer semantics: every mutating call
// runs to completion before the next event is handled, and the engine
// performs no internal synchronization. Callers that multiplex sources
// must serialize all calls (cmd/monitor uses a single dispatch goroutine).
type Engine struct {
	cfg Config
	now func() time.Time

	// Trade-derived
	tokenSupply         float64
	lastPrice           float64
	lastMarketCap       float64
	sessionATHMarketCap float64
	hasTrade            bool
	txLog               []models.TradeEvent

	// Pulse-derived
	exchangeRate   float64
	pulseMarketCap float64
	pulseVolume    float64
	pulseHolders   int
	pulseLiquidity float64
	pulseAt        time.Time
	hasPulse       bool

	// Lighthouse-derived
	lighthouseVolume5m float64
	hasLighthouse      bool

	// Chart-derived
	bars              []models.ChartBar
	barTimes          map[int64]struct{}
	chartATHMarketCap float64
	hasChart          bool

	volume   *window.VolumeWindow
	rsi      *indicator.RSI
	chartRSI *indicator.TechanRSI
}

// New creates an engine with all-zero/default derived state.
func New(cfg Config) (*Engine, error) {
	rsi, err := indicator.NewRSI(cfg.RSIPeriod)
	if err != nil {
		return nil, err
	}
	if cfg.VolumeHorizon <= 0 {
		cfg.VolumeHorizon = 24 * time.Hour
	}
	if cfg.DefaultTokenSupply <= 0 {
		return nil, models.ErrInvalidSupply
	}

	e := &Engine{
		cfg:          cfg,
		now:          time.Now,
		tokenSupply:  cfg.DefaultTokenSupply,
		exchangeRate: cfg.DefaultExchangeRate,
		barTimes:     make(map[int64]struct{}),
		volume:       window.New(cfg.VolumeHorizon),
		rsi:          rsi,
		chartRSI:     indicator.NewTechanRSI(cfg.RSIPeriod),
	}
	return e, nil
}

// SetClock overrides the engine's notion of now, for tests and replays.
// The volume window shares the same clock.
func (e *Engine) SetClock(now func() time.Time) {
	if now != nil {
		e.now = now
		e.volume.SetClock(now)
	}
}

// Dispatch routes a tagged event to its processor. Per-event errors are
// local: the event is skipped and processing of later events continues.
func (e *Engine) Dispatch(ev *models.Event) {
	if ev == nil {
		return
	}

	var err error
	switch ev.Type {
	case models.EventTrade:
		err = e.HandleTrade(ev.Trade)
	case models.EventPulse:
		err = e.HandlePulse(ev.Pulse)
	case models.EventLighthouse:
		err = e.HandleLighthouse(ev.Lighthouse)
	case models.EventChartBatch:
		err = e.IngestBars(ev.ChartBatch)
	default:
		logger.Warn("Unknown event type, skipping",
			logger.String("type", string(ev.Type)),
		)
		return
	}

	if err != nil {
		logger.EventsSkipped.WithLabelValues(string(ev.Type)).Inc()
		return
	}
	logger.EventsProcessed.WithLabelValues(string(ev.Type)).Inc()
}

// TokenSupply returns the current token supply.
func (e *Engine) TokenSupply() float64 {
	return e.tokenSupply
}

// ExchangeRate returns the current native-to-fiat exchange rate.
func (e *Engine) ExchangeRate() float64 {
	return e.exchangeRate
}

// RSIConfig returns the incremental calculator's state snapshot.
func (e *Engine) RSIConfig() indicator.Config {
	return e.rsi.GetConfig()
}

// ExportRSI returns the calculator's retained histories for export.
func (e *Engine) ExportRSI() indicator.Export {
	return e.rsi.ExportData()
}

// ExportTransactions returns a copy of the full ordered transaction log.
func (e *Engine) ExportTransactions() []models.TradeEvent {
	out := make([]models.TradeEvent, len(e.txLog))
	copy(out, e.txLog)
	return out
}

// ExportChartBars returns a copy of the stored bar list, sorted by time.
func (e *Engine) ExportChartBars() []models.ChartBar {
	out := make([]models.ChartBar, len(e.bars))
	copy(out, e.bars)
	return out
}

// Reset reinitializes the RSI calculator and the volume window. The rest
// of the derived state is untouched.
func (e *Engine) Reset() {
	e.rsi.Reset()
	e.chartRSI.Reset()
	e.volume.Reset()
	logger.Info("Engine indicators reset")
}

// Reinitialize zeroes the whole derived state back to construction
// defaults, including the transaction log and bar list.
func (e *Engine) Reinitialize() {
	e.tokenSupply = e.cfg.DefaultTokenSupply
	e.lastPrice = 0
	e.lastMarketCap = 0
	e.sessionATHMarketCap = 0
	e.hasTrade = false
	e.txLog = nil

	e.exchangeRate = e.cfg.DefaultExchangeRate
	e.pulseMarketCap = 0
	e.pulseVolume = 0
	e.pulseHolders = 0
	e.pulseLiquidity = 0
	e.pulseAt = time.Time{}
	e.hasPulse = false

	e.lighthouseVolume5m = 0
	e.hasLighthouse = false

	e.bars = nil
	e.barTimes = make(map[int64]struct{})
	e.chartATHMarketCap = 0
	e.hasChart = false

	e.Reset()
	logger.Info("Engine state reinitialized")
}
