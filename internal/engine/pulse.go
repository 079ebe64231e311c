package engine

import (
	"math"

	"github.com/mohamedkhairy/token-monitor/internal/models"
	"github.com/mohamedkhairy/token-monitor/pkg/logger"
)

// HandlePulse consumes a periodic aggregate snapshot. A valid supply field
// replaces the token supply; native-denominated fields are converted to
// fiat with the current exchange rate. Each snapshot fully replaces the
// previous pulse-derived state, no merging.
func (e *Engine) HandlePulse(s *models.PulseSnapshot) error {
	if s == nil {
		return models.ErrInvalidSupply
	}
	if err := s.Validate(); err != nil {
		logger.Warn("Invalid pulse snapshot, skipping",
			logger.ErrorField(err),
		)
		return err
	}

	if s.Supply != nil {
		e.tokenSupply = *s.Supply
		logger.Info("Token supply updated",
			logger.Float64("supply", e.tokenSupply),
		)
	}

	e.pulseMarketCap = s.MarketCapNative * e.exchangeRate
	e.pulseVolume = s.VolumeNative * e.exchangeRate
	e.pulseLiquidity = s.LiquidityNative * e.exchangeRate
	e.pulseHolders = s.NumHolders
	e.pulseAt = e.now()
	e.hasPulse = true

	return nil
}

// SetExchangeRate sets the native-to-fiat rate used by future pulse
// conversions. Already-computed pulse values are not recalculated.
// Non-finite or non-positive rates are rejected with prior state retained.
func (e *Engine) SetExchangeRate(rate float64) error {
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		logger.Warn("Rejected exchange rate",
			logger.Float64("rate", rate),
		)
		return models.ErrInvalidRate
	}
	e.exchangeRate = rate
	return nil
}
