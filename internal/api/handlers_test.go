package api

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mohamedkhairy/token-monitor/internal/engine"
	"github.com/mohamedkhairy/token-monitor/internal/format"
	"github.com/mohamedkhairy/token-monitor/internal/models"
)

func newTestServer(t *testing.T) (*engine.Serialized, *httptest.Server) {
	t.Helper()

	cfg := engine.DefaultConfig()
	cfg.RSIPeriod = 4
	e, err := engine.New(cfg)
	require.NoError(t, err)

	base := time.Unix(1_700_000_000, 0)
	e.SetClock(func() time.Time { return base })

	store := engine.NewSerialized(e)
	srv := httptest.NewServer(NewHandler(store).Router())
	t.Cleanup(srv.Close)
	return store, srv
}

func getJSON(t *testing.T, url string, out interface{}) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp
}

func TestHealth(t *testing.T) {
	_, srv := newTestServer(t)

	var body map[string]string
	resp := getJSON(t, srv.URL+"/healthz", &body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestSummaryInitiallyPlaceholders(t *testing.T) {
	_, srv := newTestServer(t)

	var sum format.Summary
	getJSON(t, srv.URL+"/api/v1/summary", &sum)
	assert.Equal(t, format.Placeholder, sum.Price)
	assert.Equal(t, format.Placeholder, sum.MarketCap)
	assert.Equal(t, format.Placeholder, sum.RSI)
}

func TestSummaryAfterTrade(t *testing.T) {
	store, srv := newTestServer(t)

	store.Dispatch(&models.Event{
		Type: models.EventTrade,
		Trade: &models.TradeEvent{
			Timestamp:        time.Unix(1_700_000_000, 0),
			Price:            0.002,
			TransactionValue: 100,
			Side:             "buy",
		},
	})

	var sum format.Summary
	getJSON(t, srv.URL+"/api/v1/summary", &sum)
	assert.Equal(t, "$0.002", sum.Price)
	assert.Equal(t, "$2,000,000", sum.MarketCap)
}

func TestSnapshot(t *testing.T) {
	store, srv := newTestServer(t)

	store.Dispatch(&models.Event{
		Type: models.EventTrade,
		Trade: &models.TradeEvent{
			Timestamp:        time.Unix(1_700_000_000, 0),
			Price:            1.5,
			TransactionValue: 42,
			Side:             "sell",
		},
	})

	var snap engine.Snapshot
	getJSON(t, srv.URL+"/api/v1/snapshot", &snap)
	assert.True(t, snap.HasTrade)
	assert.Equal(t, 1.5, snap.LastPrice)
	assert.Equal(t, 1, snap.TradeCount)
}

func TestExportTransactionsJSON(t *testing.T) {
	store, srv := newTestServer(t)

	store.Dispatch(&models.Event{
		Type: models.EventTrade,
		Trade: &models.TradeEvent{
			Timestamp:        time.Unix(1_700_000_000, 0),
			Price:            2,
			TransactionValue: 10,
			Side:             "buy",
			Signature:        "sig-1",
		},
	})

	var log []models.TradeEvent
	resp := getJSON(t, srv.URL+"/api/v1/export/transactions", &log)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	require.Len(t, log, 1)
	assert.Equal(t, "sig-1", log[0].Signature)
}

func TestExportTransactionsCSV(t *testing.T) {
	store, srv := newTestServer(t)

	store.Dispatch(&models.Event{
		Type: models.EventTrade,
		Trade: &models.TradeEvent{
			Timestamp:        time.Unix(1_700_000_000, 0),
			Price:            2,
			TransactionValue: 10,
			Side:             "buy",
		},
	})

	resp, err := http.Get(srv.URL + "/api/v1/export/transactions?format=csv")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))

	records, err := csv.NewReader(resp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2) // header + one row
}

func TestExportBarsEmptyJSON(t *testing.T) {
	_, srv := newTestServer(t)

	var bars []models.ChartBar
	getJSON(t, srv.URL+"/api/v1/export/bars", &bars)
	assert.Empty(t, bars)
}

func TestResetClearsIndicators(t *testing.T) {
	store, srv := newTestServer(t)

	store.Dispatch(&models.Event{
		Type: models.EventTrade,
		Trade: &models.TradeEvent{
			Timestamp:        time.Unix(1_700_000_000, 0),
			Price:            1,
			TransactionValue: 100,
			Side:             "buy",
		},
	})
	require.Equal(t, 100.0, store.Snapshot().Volume1m)

	resp, err := http.Post(srv.URL+"/api/v1/reset", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	snap := store.Snapshot()
	assert.Zero(t, snap.Volume1m)
	assert.True(t, snap.HasTrade) // trade state survives a reset
}

func TestResetRequiresPost(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/v1/reset")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	_, srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
