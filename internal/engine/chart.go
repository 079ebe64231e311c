package engine

import (
	"sort"

	"github.com/mohamedkhairy/token-monitor/internal/models"
	"github.com/mohamedkhairy/token-monitor/pkg/indicator"
	"github.com/mohamedkhairy/token-monitor/pkg/logger"
)

// IngestBars merges a batch of historical bars into the stored list.
// Bars whose time key already exists are dropped (identity is the key, not
// full-object equality). The list is kept sorted ascending by time, and the
// chart ATH market cap is recomputed as max(high)*tokenSupply, updating the
// stored value only when it grows.
func (e *Engine) IngestBars(bars []models.ChartBar) error {
	accepted := make([]models.ChartBar, 0, len(bars))
	for i := range bars {
		b := bars[i]
		if err := b.Validate(); err != nil {
			logger.Warn("Invalid chart bar, skipping",
				logger.ErrorField(err),
				logger.Int64("time", b.Time),
			)
			continue
		}
		if _, exists := e.barTimes[b.Time]; exists {
			continue
		}
		e.barTimes[b.Time] = struct{}{}
		accepted = append(accepted, b)
	}

	if len(accepted) == 0 {
		return nil
	}

	e.bars = append(e.bars, accepted...)
	sort.SliceStable(e.bars, func(i, j int) bool {
		return e.bars[i].Time < e.bars[j].Time
	})
	e.hasChart = true

	var maxHigh float64
	for i := range e.bars {
		if e.bars[i].High > maxHigh {
			maxHigh = e.bars[i].High
		}
	}
	if ath := maxHigh * e.tokenSupply; ath > e.chartATHMarketCap {
		e.chartATHMarketCap = ath
	}

	// Bootstrap the indicators from the accepted history, oldest first.
	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Time < accepted[j].Time
	})
	points := make([]indicator.PricePoint, 0, len(accepted))
	for i := range accepted {
		points = append(points, indicator.PricePoint{
			Price:     accepted[i].Close,
			Timestamp: barTime(accepted[i]),
		})
		e.chartRSI.AddBar(accepted[i])
	}
	e.rsi.ProcessHistorical(points)

	logger.Info("Chart bars ingested",
		logger.Int("accepted", len(accepted)),
		logger.Int("total", len(e.bars)),
		logger.Float64("chart_ath_market_cap", e.chartATHMarketCap),
	)
	return nil
}

// BarCount returns the number of stored bars.
func (e *Engine) BarCount() int {
	return len(e.bars)
}

// TimeRange returns the first and last stored bar times. ok is false when
// no bars are stored.
func (e *Engine) TimeRange() (first, last int64, ok bool) {
	if len(e.bars) == 0 {
		return 0, 0, false
	}
	return e.bars[0].Time, e.bars[len(e.bars)-1].Time, true
}
