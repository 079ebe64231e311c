package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohamedkhairy/token-monitor/internal/engine"
	"github.com/mohamedkhairy/token-monitor/internal/export"
	"github.com/mohamedkhairy/token-monitor/internal/format"
	"github.com/mohamedkhairy/token-monitor/pkg/logger"
)

// Handler serves the read surface over the engine: the formatted summary,
// the raw snapshot, and the export payloads.
type Handler struct {
	store *engine.Serialized
}

// NewHandler creates an API handler over a serialized engine.
func NewHandler(store *engine.Serialized) *Handler {
	return &Handler{store: store}
}

// Router builds the mux router with all routes registered.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware)

	r.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	v1 := r.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/summary", h.Summary).Methods(http.MethodGet)
	v1.HandleFunc("/snapshot", h.Snapshot).Methods(http.MethodGet)
	v1.HandleFunc("/rsi", h.RSI).Methods(http.MethodGet)
	v1.HandleFunc("/export/transactions", h.ExportTransactions).Methods(http.MethodGet)
	v1.HandleFunc("/export/bars", h.ExportBars).Methods(http.MethodGet)
	v1.HandleFunc("/reset", h.Reset).Methods(http.MethodPost)

	return r
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Summary handles GET /api/v1/summary
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, format.Format(h.store.Snapshot()))
}

// Snapshot handles GET /api/v1/snapshot
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.store.Snapshot())
}

// RSI handles GET /api/v1/rsi
func (h *Handler) RSI(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.store.ExportRSI())
}

// ExportTransactions handles GET /api/v1/export/transactions?format=csv|json
func (h *Handler) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	log := h.store.ExportTransactions()

	switch exportFormat(r) {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
		if err := export.TransactionsCSV(w, log); err != nil {
			logger.Error("Transaction CSV export failed", logger.ErrorField(err))
		}
	default:
		w.Header().Set("Content-Type", "application/json")
		if err := export.TransactionsJSON(w, log); err != nil {
			logger.Error("Transaction JSON export failed", logger.ErrorField(err))
		}
	}
}

// ExportBars handles GET /api/v1/export/bars?format=csv|json
func (h *Handler) ExportBars(w http.ResponseWriter, r *http.Request) {
	bars := h.store.ExportChartBars()

	switch exportFormat(r) {
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="chart_bars.csv"`)
		if err := export.ChartBarsCSV(w, bars); err != nil {
			logger.Error("Chart bar CSV export failed", logger.ErrorField(err))
		}
	default:
		w.Header().Set("Content-Type", "application/json")
		if err := export.ChartBarsJSON(w, bars); err != nil {
			logger.Error("Chart bar JSON export failed", logger.ErrorField(err))
		}
	}
}

// Reset handles POST /api/v1/reset. It reinitializes the indicators
// (RSI and volume window); the rest of the derived state is untouched.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.store.Reset()
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func exportFormat(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return f
	}
	return "json"
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", logger.ErrorField(err))
	}
}
