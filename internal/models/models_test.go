package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validTrade() TradeEvent {
	return TradeEvent{
		Timestamp:        time.Unix(1_700_000_000, 0),
		Price:            0.002,
		TransactionValue: 100,
		Side:             "buy",
	}
}

func TestTradeEventValidate(t *testing.T) {
	trade := validTrade()
	assert.NoError(t, trade.Validate())

	trade = validTrade()
	trade.Price = 0
	assert.ErrorIs(t, trade.Validate(), ErrInvalidPrice)

	trade = validTrade()
	trade.Price = math.NaN()
	assert.ErrorIs(t, trade.Validate(), ErrInvalidPrice)

	trade = validTrade()
	trade.TransactionValue = -1
	assert.ErrorIs(t, trade.Validate(), ErrInvalidVolume)

	trade = validTrade()
	trade.TransactionValue = 0
	assert.NoError(t, trade.Validate(), "zero-value trades are recordable")

	trade = validTrade()
	trade.Timestamp = time.Time{}
	assert.ErrorIs(t, trade.Validate(), ErrInvalidTimestamp)
}

func TestPulseSnapshotValidate(t *testing.T) {
	pulse := PulseSnapshot{MarketCapNative: 10, NumHolders: 5}
	assert.NoError(t, pulse.Validate())

	supply := 500_000_000.0
	pulse.Supply = &supply
	assert.NoError(t, pulse.Validate())

	bad := 0.0
	pulse.Supply = &bad
	assert.ErrorIs(t, pulse.Validate(), ErrInvalidSupply)

	inf := math.Inf(1)
	pulse.Supply = &inf
	assert.ErrorIs(t, pulse.Validate(), ErrInvalidSupply)

	pulse.Supply = nil
	pulse.NumHolders = -1
	assert.ErrorIs(t, pulse.Validate(), ErrInvalidHolders)
}

func TestChartBarValidate(t *testing.T) {
	bar := ChartBar{Time: 1_700_000_000, Open: 1, High: 2, Low: 0.5, Close: 1.5, Volume: 10}
	assert.NoError(t, bar.Validate())

	bar.Time = 0
	assert.ErrorIs(t, bar.Validate(), ErrInvalidTimestamp)

	bar.Time = 1_700_000_000
	bar.High = 0.1
	assert.ErrorIs(t, bar.Validate(), ErrInvalidBar)

	bar.High = 2
	bar.Volume = -1
	assert.ErrorIs(t, bar.Validate(), ErrInvalidVolume)
}

func TestEventValidate(t *testing.T) {
	trade := validTrade()
	ev := Event{Type: EventTrade, Trade: &trade}
	assert.NoError(t, ev.Validate())

	assert.Error(t, (&Event{Type: EventTrade}).Validate())
	assert.Error(t, (&Event{Type: EventPulse}).Validate())
	assert.Error(t, (&Event{Type: EventLighthouse}).Validate())
	assert.Error(t, (&Event{Type: EventChartBatch}).Validate())
	assert.Error(t, (&Event{Type: "bogus"}).Validate())

	assert.NoError(t, (&Event{Type: EventChartBatch, ChartBatch: []ChartBar{}}).Validate())
}
