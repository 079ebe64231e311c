package indicator

import (
	"math"
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"

	"github.com/mohamedkhairy/token-monitor/internal/models"
)

// TechanRSI wraps a techan RSI indicator fed from historical chart bars.
// It serves as an independent cross-check for the incremental calculator:
// the incremental RSI follows the live trade stream, this one follows the
// chart history.
type TechanRSI struct {
	series    *techan.TimeSeries
	indicator techan.Indicator
	period    int
	ready     bool
}

// NewTechanRSI creates a techan-backed RSI over chart bars.
func NewTechanRSI(period int) *TechanRSI {
	series := techan.NewTimeSeries()
	closePrice := techan.NewClosePriceIndicator(series)

	return &TechanRSI{
		series:    series,
		indicator: techan.NewRelativeStrengthIndexIndicator(closePrice, period),
		period:    period,
	}
}

// AddBar appends a chart bar to the underlying time series.
func (t *TechanRSI) AddBar(bar models.ChartBar) {
	ts := time.Unix(bar.Time, 0)
	candle := techan.NewCandle(techan.NewTimePeriod(ts, time.Minute))
	candle.OpenPrice = big.NewDecimal(bar.Open)
	candle.MaxPrice = big.NewDecimal(bar.High)
	candle.MinPrice = big.NewDecimal(bar.Low)
	candle.ClosePrice = big.NewDecimal(bar.Close)
	candle.Volume = big.NewDecimal(bar.Volume)

	t.series.AddCandle(candle)

	if t.series.LastIndex() >= t.period {
		t.ready = true
	}
}

// Value returns the techan RSI over the ingested bars, or false before the
// series covers a full period.
func (t *TechanRSI) Value() (float64, bool) {
	if !t.ready {
		return 0, false
	}
	v := t.indicator.Calculate(t.series.LastIndex()).Float()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// BarsProcessed returns the number of bars in the underlying series.
func (t *TechanRSI) BarsProcessed() int {
	return t.series.LastIndex() + 1
}

// Reset replaces the underlying series with an empty one.
func (t *TechanRSI) Reset() {
	t.series = techan.NewTimeSeries()
	closePrice := techan.NewClosePriceIndicator(t.series)
	t.indicator = techan.NewRelativeStrengthIndexIndicator(closePrice, t.period)
	t.ready = false
}
