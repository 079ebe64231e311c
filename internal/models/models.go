package models

import (
	"math"
	"time"
)

// TradeEvent represents a single executed trade for the monitored token.
// Events are immutable once recorded and are appended to the engine's
// transaction log in arrival order.
type TradeEvent struct {
	Timestamp        time.Time `json:"timestamp"`
	Price            float64   `json:"price"`             // fiat price per token
	TransactionValue float64   `json:"transaction_value"` // fiat value of the trade
	PairAddress      string    `json:"pair_address"`
	Signature        string    `json:"signature"`
	Side             string    `json:"side"` // "buy" or "sell"
	MakerAddress     string    `json:"maker_address"`
	LiquidityNative  float64   `json:"liquidity_native"`
	LiquidityToken   float64   `json:"liquidity_token"`
}

// Validate validates a TradeEvent
func (t *TradeEvent) Validate() error {
	if t.Price <= 0 || math.IsNaN(t.Price) || math.IsInf(t.Price, 0) {
		return ErrInvalidPrice
	}
	if t.TransactionValue < 0 || math.IsNaN(t.TransactionValue) || math.IsInf(t.TransactionValue, 0) {
		return ErrInvalidVolume
	}
	if t.Timestamp.IsZero() {
		return ErrInvalidTimestamp
	}
	return nil
}

// PulseSnapshot is a periodic aggregate snapshot of the token's broader
// statistics. All monetary fields are denominated in the native asset and
// converted to fiat by the engine using the configured exchange rate.
// Each snapshot fully replaces the previous pulse-derived state.
type PulseSnapshot struct {
	Supply          *float64  `json:"supply,omitempty"` // replaces token supply when present
	MarketCapNative float64   `json:"market_cap_native"`
	VolumeNative    float64   `json:"volume_native"`
	NumHolders      int       `json:"num_holders"`
	LiquidityNative float64   `json:"liquidity_native"`
	ReceivedAt      time.Time `json:"received_at"`
}

// Validate validates a PulseSnapshot
func (p *PulseSnapshot) Validate() error {
	if p.Supply != nil {
		s := *p.Supply
		if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
			return ErrInvalidSupply
		}
	}
	if p.NumHolders < 0 {
		return ErrInvalidHolders
	}
	return nil
}

// LighthouseSnapshot carries the broad-market aggregate: total volume
// across all tracked pairs over the trailing five minutes. Not specific
// to the monitored token.
type LighthouseSnapshot struct {
	FiveMinuteTotalVolume float64 `json:"five_minute_total_volume"`
}

// ChartBar is a historical OHLCV price bar. Bars are identified by their
// Time key; the engine rejects duplicates on ingest.
type ChartBar struct {
	Time   int64   `json:"time"` // unix seconds, unique identity key
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}

// Validate validates a ChartBar
func (b *ChartBar) Validate() error {
	if b.Time <= 0 {
		return ErrInvalidTimestamp
	}
	if b.High < b.Low {
		return ErrInvalidBar
	}
	if b.Volume < 0 || math.IsNaN(b.Volume) {
		return ErrInvalidVolume
	}
	return nil
}
