package logger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the monitor. Registered via promauto and served
// from the API router's /metrics endpoint.

var (
	EventsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monitor_events_processed_total",
			Help: "Total number of feed events processed, by event type",
		},
		[]string{"type"},
	)

	EventsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monitor_events_skipped_total",
			Help: "Total number of feed events skipped as malformed, by event type",
		},
		[]string{"type"},
	)

	LastPrice = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "monitor_last_price",
			Help: "Most recent trade price in fiat",
		},
	)

	SessionATHMarketCap = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "monitor_session_ath_market_cap",
			Help: "Highest market capitalization observed from live trades this session",
		},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"method", "endpoint", "status"},
	)
)
