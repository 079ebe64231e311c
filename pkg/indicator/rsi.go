package indicator

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultPeriod is the conventional RSI lookback.
	DefaultPeriod = 14

	// DefaultOversold and DefaultOverbought are the conventional
	// classification thresholds.
	DefaultOversold   = 30.0
	DefaultOverbought = 70.0

	maxRSIHistory   = 100
	maxPriceHistory = 200

	// historicalSpacing is the synthetic spacing assigned to bare prices
	// fed through ProcessHistoricalPrices.
	historicalSpacing = time.Minute
)

// Sample is one computed RSI observation retained in the bounded history.
type Sample struct {
	Price     float64   `json:"price"`
	RSI       float64   `json:"rsi"`
	AvgGain   float64   `json:"avg_gain"`
	AvgLoss   float64   `json:"avg_loss"`
	Timestamp time.Time `json:"timestamp"`
}

// PricePoint is a raw price observation retained in the bounded history.
type PricePoint struct {
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// RSI calculates the Relative Strength Index from a sequential price
// stream using Wilder's smoothing method: initialized by a simple average
// over the first period changes, then
//
//	avgGain = (avgGain*(period-1) + gain) / period
//
// which matches the values common charting platforms display.
type RSI struct {
	period      int
	prevClose   float64
	seeded      bool
	initGains   []float64
	initLosses  []float64
	avgGain     float64
	avgLoss     float64
	initialized bool
	history     *sampleRing
	prices      *priceRing
}

// NewRSI creates an RSI calculator with the specified period (typically 14).
func NewRSI(period int) (*RSI, error) {
	if period < 2 {
		return nil, fmt.Errorf("RSI period must be at least 2, got %d", period)
	}

	return &RSI{
		period:     period,
		initGains:  make([]float64, 0, period),
		initLosses: make([]float64, 0, period),
		history:    newSampleRing(maxRSIHistory),
		prices:     newPriceRing(maxPriceHistory),
	}, nil
}

// Name returns the indicator name
func (r *RSI) Name() string {
	return fmt.Sprintf("rsi_%d", r.period)
}

// Period returns the configured lookback period
func (r *RSI) Period() int {
	return r.period
}

// AddPrice feeds one price observation. It returns the RSI and true once
// enough data has accumulated (period changes, so period+1 prices).
// Non-positive or non-finite prices are rejected with no state change.
func (r *RSI) AddPrice(price float64, ts time.Time) (float64, bool) {
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, false
	}

	r.prices.push(PricePoint{Price: price, Timestamp: ts})

	// First price only seeds the previous close; no delta exists yet.
	if !r.seeded {
		r.prevClose = price
		r.seeded = true
		return 0, false
	}

	change := price - r.prevClose
	gain := math.Max(change, 0)
	loss := math.Max(-change, 0)

	if !r.initialized {
		r.initGains = append(r.initGains, gain)
		r.initLosses = append(r.initLosses, loss)

		if len(r.initGains) == r.period {
			var sumGain, sumLoss float64
			for i := range r.initGains {
				sumGain += r.initGains[i]
				sumLoss += r.initLosses[i]
			}
			r.avgGain = sumGain / float64(r.period)
			r.avgLoss = sumLoss / float64(r.period)
			r.initialized = true
		}
	} else {
		r.avgGain = (r.avgGain*float64(r.period-1) + gain) / float64(r.period)
		r.avgLoss = (r.avgLoss*float64(r.period-1) + loss) / float64(r.period)
	}

	r.prevClose = price

	if !r.initialized {
		return 0, false
	}

	rsi := r.calculate()
	r.history.push(Sample{
		Price:     price,
		RSI:       rsi,
		AvgGain:   r.avgGain,
		AvgLoss:   r.avgLoss,
		Timestamp: ts,
	})
	return rsi, true
}

// calculate computes the RSI from the smoothed averages. avgLoss == 0 means
// an all-gain stream; RSI is 100 by definition, which also avoids the
// division by zero.
func (r *RSI) calculate() float64 {
	if r.avgLoss == 0 {
		return 100
	}
	rs := r.avgGain / r.avgLoss
	return 100 - 100/(1+rs)
}

// ProcessHistorical bootstraps the calculator from a sequence of
// (price, timestamp) pairs, in order.
func (r *RSI) ProcessHistorical(points []PricePoint) {
	for _, p := range points {
		r.AddPrice(p.Price, p.Timestamp)
	}
}

// ProcessHistoricalPrices bootstraps the calculator from bare prices,
// assigning synthetic timestamps spaced one interval apart ending now.
func (r *RSI) ProcessHistoricalPrices(prices []float64) {
	base := time.Now().Add(-time.Duration(len(prices)) * historicalSpacing)
	for i, p := range prices {
		r.AddPrice(p, base.Add(time.Duration(i)*historicalSpacing))
	}
}

// Value returns the most recent RSI from the bounded history.
func (r *RSI) Value() (float64, bool) {
	last, ok := r.history.last()
	if !ok {
		return 0, false
	}
	return last.RSI, true
}

// IsReady returns true once the smoothed averages are initialized.
func (r *RSI) IsReady() bool {
	return r.initialized
}

// Reset clears all state back to construction defaults.
func (r *RSI) Reset() {
	r.prevClose = 0
	r.seeded = false
	r.initGains = r.initGains[:0]
	r.initLosses = r.initLosses[:0]
	r.avgGain = 0
	r.avgLoss = 0
	r.initialized = false
	r.history.reset()
	r.prices.reset()
}

// Config describes the calculator's current state for diagnostics and export.
type Config struct {
	Period      int     `json:"period"`
	Initialized bool    `json:"initialized"`
	DataPoints  int     `json:"data_points"`
	CurrentRSI  float64 `json:"current_rsi"`
	Defined     bool    `json:"defined"`
}

// GetConfig returns the calculator's configuration snapshot.
func (r *RSI) GetConfig() Config {
	val, ok := r.Value()
	return Config{
		Period:      r.period,
		Initialized: r.initialized,
		DataPoints:  r.history.len(),
		CurrentRSI:  val,
		Defined:     ok,
	}
}

// Export is the full calculator state for the export collaborator.
type Export struct {
	Config       Config       `json:"config"`
	RSIHistory   []Sample     `json:"rsi_history"`
	PriceHistory []PricePoint `json:"price_history"`
}

// ExportData returns the retained RSI and price histories, oldest first.
func (r *RSI) ExportData() Export {
	return Export{
		Config:       r.GetConfig(),
		RSIHistory:   r.history.snapshot(),
		PriceHistory: r.prices.snapshot(),
	}
}
