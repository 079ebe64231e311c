package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/token-monitor/internal/models"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(DefaultConfig())
	require.NoError(t, err)
	e.SetClock(func() time.Time { return time.Unix(1_700_000_000, 0) })
	return e
}

func trade(price, value float64, ts time.Time) *models.TradeEvent {
	return &models.TradeEvent{
		Timestamp:        ts,
		Price:            price,
		TransactionValue: value,
		PairAddress:      "pair-1",
		Signature:        "sig",
		Side:             "buy",
	}
}

func TestEngine_New(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, 1_000_000_000.0, e.TokenSupply())

	snap := e.Snapshot()
	assert.False(t, snap.HasTrade)
	assert.False(t, snap.HasPulse)
	assert.False(t, snap.HasLighthouse)
	assert.False(t, snap.HasChart)
	assert.False(t, snap.RSIDefined)
	assert.Zero(t, snap.SessionATHMarketCap)

	cfg := DefaultConfig()
	cfg.DefaultTokenSupply = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, models.ErrInvalidSupply)
}

func TestEngine_HandleTrade(t *testing.T) {
	e := newTestEngine(t)
	ts := time.Unix(1_700_000_000, 0)

	err := e.HandleTrade(trade(0.002, 150, ts))
	require.NoError(t, err)

	snap := e.Snapshot()
	assert.True(t, snap.HasTrade)
	assert.Equal(t, 0.002, snap.LastPrice)
	assert.Equal(t, 2_000_000.0, snap.LastMarketCap)
	assert.Equal(t, 2_000_000.0, snap.SessionATHMarketCap)
	assert.Equal(t, 150.0, snap.Volume1m)
	assert.Equal(t, 1, snap.TradeCount)
}

func TestEngine_RejectsBadTrades(t *testing.T) {
	e := newTestEngine(t)
	ts := time.Unix(1_700_000_000, 0)

	assert.Error(t, e.HandleTrade(trade(0, 10, ts)))
	assert.Error(t, e.HandleTrade(trade(-1, 10, ts)))
	assert.Error(t, e.HandleTrade(&models.TradeEvent{Price: 1, TransactionValue: 10}))

	snap := e.Snapshot()
	assert.False(t, snap.HasTrade)
	assert.Zero(t, snap.TradeCount)
	assert.Zero(t, snap.Volume1m)
}

func TestEngine_SessionATHOrderIndependent(t *testing.T) {
	ts := time.Unix(1_700_000_000, 0)
	prices := []float64{0.001, 0.004, 0.002, 0.003}

	// Forward order.
	fwd := newTestEngine(t)
	for i, p := range prices {
		require.NoError(t, fwd.HandleTrade(trade(p, 1, ts.Add(time.Duration(i)*time.Second))))
	}

	// Reverse arrival order, same timestamps.
	rev := newTestEngine(t)
	for i := len(prices) - 1; i >= 0; i-- {
		require.NoError(t, rev.HandleTrade(trade(prices[i], 1, ts.Add(time.Duration(i)*time.Second))))
	}

	want := 0.004 * 1_000_000_000
	assert.Equal(t, want, fwd.Snapshot().SessionATHMarketCap)
	assert.Equal(t, want, rev.Snapshot().SessionATHMarketCap)
}

func TestEngine_SupplyChangeAffectsLaterTrades(t *testing.T) {
	// Token supply starts at 1e9; a trade at 0.002 yields a 2M market cap.
	// After a pulse shrinks supply to 5e8, the same price yields 1M.
	e := newTestEngine(t)
	require.NoError(t, e.SetExchangeRate(150))
	ts := time.Unix(1_700_000_000, 0)

	require.NoError(t, e.HandleTrade(trade(0.002, 10, ts)))
	assert.Equal(t, 2_000_000.0, e.Snapshot().LastMarketCap)

	supply := 500_000_000.0
	require.NoError(t, e.HandlePulse(&models.PulseSnapshot{Supply: &supply}))
	assert.Equal(t, supply, e.TokenSupply())

	require.NoError(t, e.HandleTrade(trade(0.002, 10, ts.Add(time.Second))))
	assert.Equal(t, 1_000_000.0, e.Snapshot().LastMarketCap)
}

func TestEngine_PulseConversion(t *testing.T) {
	e := newTestEngine(t)
	require.NoError(t, e.SetExchangeRate(150))

	err := e.HandlePulse(&models.PulseSnapshot{
		MarketCapNative: 1000,
		VolumeNative:    20,
		NumHolders:      321,
		LiquidityNative: 5,
	})
	require.NoError(t, err)

	snap := e.Snapshot()
	assert.True(t, snap.HasPulse)
	assert.Equal(t, 150_000.0, snap.PulseMarketCap)
	assert.Equal(t, 3_000.0, snap.PulseVolume)
	assert.Equal(t, 321, snap.PulseHolders)
	assert.Equal(t, 750.0, snap.PulseLiquidity)
	assert.False(t, snap.PulseAt.IsZero())
	// Supply untouched when the snapshot carries none.
	assert.Equal(t, 1_000_000_000.0, snap.TokenSupply)
}

func TestEngine_PulseRejectsBadSupply(t *testing.T) {
	e := newTestEngine(t)
	bad := -5.0
	err := e.HandlePulse(&models.PulseSnapshot{Supply: &bad})
	assert.ErrorIs(t, err, models.ErrInvalidSupply)
	assert.Equal(t, 1_000_000_000.0, e.TokenSupply())
}

func TestEngine_SetExchangeRate(t *testing.T) {
	e := newTestEngine(t)

	assert.ErrorIs(t, e.SetExchangeRate(0), models.ErrInvalidRate)
	assert.ErrorIs(t, e.SetExchangeRate(-3), models.ErrInvalidRate)
	require.NoError(t, e.SetExchangeRate(150))
	assert.Equal(t, 150.0, e.ExchangeRate())

	// Rate changes are not retroactive: pulse values computed with the old
	// rate stand until the next snapshot.
	require.NoError(t, e.HandlePulse(&models.PulseSnapshot{MarketCapNative: 10}))
	assert.Equal(t, 1_500.0, e.Snapshot().PulseMarketCap)

	require.NoError(t, e.SetExchangeRate(200))
	assert.Equal(t, 1_500.0, e.Snapshot().PulseMarketCap)

	require.NoError(t, e.HandlePulse(&models.PulseSnapshot{MarketCapNative: 10}))
	assert.Equal(t, 2_000.0, e.Snapshot().PulseMarketCap)
}

func TestEngine_HandleLighthouse(t *testing.T) {
	e := newTestEngine(t)

	require.NoError(t, e.HandleLighthouse(&models.LighthouseSnapshot{FiveMinuteTotalVolume: 123456}))
	snap := e.Snapshot()
	assert.True(t, snap.HasLighthouse)
	assert.Equal(t, 123456.0, snap.LighthouseVolume5m)

	require.NoError(t, e.HandleLighthouse(&models.LighthouseSnapshot{FiveMinuteTotalVolume: 99}))
	assert.Equal(t, 99.0, e.Snapshot().LighthouseVolume5m)
}

func TestEngine_Dispatch(t *testing.T) {
	e := newTestEngine(t)
	ts := time.Unix(1_700_000_000, 0)

	e.Dispatch(&models.Event{Type: models.EventTrade, Trade: trade(0.001, 5, ts)})
	e.Dispatch(&models.Event{Type: models.EventLighthouse, Lighthouse: &models.LighthouseSnapshot{FiveMinuteTotalVolume: 7}})
	e.Dispatch(nil)
	e.Dispatch(&models.Event{Type: "bogus"})

	snap := e.Snapshot()
	assert.True(t, snap.HasTrade)
	assert.True(t, snap.HasLighthouse)
}

func TestEngine_ResetClearsIndicatorsOnly(t *testing.T) {
	e := newTestEngine(t)
	ts := time.Unix(1_700_000_000, 0)
	require.NoError(t, e.HandleTrade(trade(0.002, 100, ts)))

	e.Reset()

	snap := e.Snapshot()
	// Trade-derived state survives an indicator reset.
	assert.True(t, snap.HasTrade)
	assert.Equal(t, 2_000_000.0, snap.LastMarketCap)
	assert.Equal(t, 1, snap.TradeCount)
	// Window and RSI are back to empty.
	assert.Zero(t, snap.Volume1m)
	assert.False(t, snap.RSIDefined)
}

func TestEngine_Reinitialize(t *testing.T) {
	e := newTestEngine(t)
	ts := time.Unix(1_700_000_000, 0)
	require.NoError(t, e.SetExchangeRate(150))
	require.NoError(t, e.HandleTrade(trade(0.002, 100, ts)))
	require.NoError(t, e.IngestBars([]models.ChartBar{{Time: 1, Open: 1, High: 2, Low: 1, Close: 2}}))

	e.Reinitialize()

	snap := e.Snapshot()
	assert.False(t, snap.HasTrade)
	assert.False(t, snap.HasChart)
	assert.Zero(t, snap.SessionATHMarketCap)
	assert.Zero(t, snap.ChartATHMarketCap)
	assert.Zero(t, snap.BarCount)
	assert.Zero(t, snap.TradeCount)
	assert.Equal(t, 1_000_000_000.0, e.TokenSupply())
}

func TestEngine_ExportTransactions(t *testing.T) {
	e := newTestEngine(t)
	ts := time.Unix(1_700_000_000, 0)
	require.NoError(t, e.HandleTrade(trade(0.002, 100, ts)))
	require.NoError(t, e.HandleTrade(trade(0.003, 50, ts.Add(time.Second))))

	log := e.ExportTransactions()
	require.Len(t, log, 2)
	assert.Equal(t, 0.002, log[0].Price)
	assert.Equal(t, 0.003, log[1].Price)

	// The export is a copy; mutating it does not corrupt the engine.
	log[0].Price = 999
	assert.Equal(t, 0.002, e.ExportTransactions()[0].Price)
}
