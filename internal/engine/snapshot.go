package engine

import (
	"time"

	"github.com/mohamedkhairy/token-monitor/internal/models"
	"github.com/mohamedkhairy/token-monitor/pkg/indicator"
)

func barTime(b models.ChartBar) time.Time {
	return time.Unix(b.Time, 0)
}

// Snapshot is a read-only copy of all derived state for presentation.
// The Has* flags distinguish the initial zero state from real values so
// the formatter can render placeholders for fields never set.
type Snapshot struct {
	TokenSupply  float64
	ExchangeRate float64

	HasTrade            bool
	LastPrice           float64
	LastMarketCap       float64
	SessionATHMarketCap float64
	Volume1m            float64
	Volume5m            float64
	TradeCount          int

	HasPulse       bool
	PulseMarketCap float64
	PulseVolume    float64
	PulseHolders   int
	PulseLiquidity float64
	PulseAt        time.Time

	HasLighthouse      bool
	LighthouseVolume5m float64

	HasChart          bool
	ChartATHMarketCap float64
	BarCount          int
	FirstBarTime      int64
	LastBarTime       int64

	RSIValue        float64
	RSIDefined      bool
	RSIStatus       indicator.Status
	ChartRSIValue   float64
	ChartRSIDefined bool
}

// Snapshot assembles the presentation payload from current derived state.
// Like every engine method it must be called from the single writer's
// dispatch context.
func (e *Engine) Snapshot() Snapshot {
	rsiVal, rsiOK := e.rsi.Value()
	chartVal, chartOK := e.chartRSI.Value()
	first, last, _ := e.TimeRange()

	return Snapshot{
		TokenSupply:  e.tokenSupply,
		ExchangeRate: e.exchangeRate,

		HasTrade:            e.hasTrade,
		LastPrice:           e.lastPrice,
		LastMarketCap:       e.lastMarketCap,
		SessionATHMarketCap: e.sessionATHMarketCap,
		Volume1m:            e.volume.Sum(time.Minute),
		Volume5m:            e.volume.Sum(5 * time.Minute),
		TradeCount:          len(e.txLog),

		HasPulse:       e.hasPulse,
		PulseMarketCap: e.pulseMarketCap,
		PulseVolume:    e.pulseVolume,
		PulseHolders:   e.pulseHolders,
		PulseLiquidity: e.pulseLiquidity,
		PulseAt:        e.pulseAt,

		HasLighthouse:      e.hasLighthouse,
		LighthouseVolume5m: e.lighthouseVolume5m,

		HasChart:          e.hasChart,
		ChartATHMarketCap: e.chartATHMarketCap,
		BarCount:          len(e.bars),
		FirstBarTime:      first,
		LastBarTime:       last,

		RSIValue:        rsiVal,
		RSIDefined:      rsiOK,
		RSIStatus:       indicator.Classify(rsiVal, rsiOK, e.cfg.RSIOversold, e.cfg.RSIOverbought),
		ChartRSIValue:   chartVal,
		ChartRSIDefined: chartOK,
	}
}
