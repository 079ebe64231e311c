package data

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/mohamedkhairy/token-monitor/internal/models"
)

var (
	// ErrUnsupportedFormat is returned when the message shape is not recognized
	ErrUnsupportedFormat = errors.New("unsupported message format")
	// ErrInvalidMessage is returned when the message cannot be parsed
	ErrInvalidMessage = errors.New("invalid message")
)

// Normalizer converts raw feed payloads into typed events. All loose-typing
// coercion happens here: numeric fields may arrive as JSON numbers or as
// numeric strings, and the engine only ever sees well-typed events.
type Normalizer interface {
	// Normalize converts a raw message to a tagged Event
	Normalize(rawMessage []byte) (*models.Event, error)
}

// DefaultNormalizer routes payloads to an event variant by shape: trade
// messages carry price_usd, pulse messages carry native-denominated
// aggregates, lighthouse messages are keyed by window size, and chart
// batches are arrays of bar objects.
type DefaultNormalizer struct {
	now func() time.Time
}

// NewNormalizer creates a normalizer.
func NewNormalizer() *DefaultNormalizer {
	return &DefaultNormalizer{now: time.Now}
}

// SetClock overrides the timestamp assigned to messages that carry none.
func (n *DefaultNormalizer) SetClock(now func() time.Time) {
	if now != nil {
		n.now = now
	}
}

// Normalize converts a raw message to a tagged Event.
func (n *DefaultNormalizer) Normalize(rawMessage []byte) (*models.Event, error) {
	if len(rawMessage) == 0 {
		return nil, ErrInvalidMessage
	}

	// A chart batch is a bare JSON array of bars.
	var arr []map[string]interface{}
	if err := json.Unmarshal(rawMessage, &arr); err == nil {
		return n.normalizeChartBatch(arr)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal(rawMessage, &obj); err != nil {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidMessage)
	}

	switch {
	case hasKey(obj, "price_usd"):
		return n.normalizeTrade(obj)
	case hasKey(obj, "marketCapSol") || hasKey(obj, "volumeSol") || hasKey(obj, "liquiditySol"):
		return n.normalizePulse(obj)
	case hasKey(obj, "5m"):
		return n.normalizeLighthouse(obj)
	default:
		return nil, fmt.Errorf("%w: no recognized fields", ErrUnsupportedFormat)
	}
}

func (n *DefaultNormalizer) normalizeTrade(obj map[string]interface{}) (*models.Event, error) {
	price, ok := asFloat(obj["price_usd"])
	if !ok {
		return nil, fmt.Errorf("%w: unparseable price_usd", ErrInvalidMessage)
	}

	ev := &models.TradeEvent{
		Timestamp:       n.now(),
		Price:           price,
		PairAddress:     asString(obj["pair_address"]),
		Signature:       asString(obj["signature"]),
		Side:            asString(obj["type"]),
		MakerAddress:    asString(obj["maker_address"]),
		LiquidityNative: asFloatOrZero(obj["liquidity_sol"]),
		LiquidityToken:  asFloatOrZero(obj["liquidity_token"]),
	}
	ev.TransactionValue = asFloatOrZero(obj["total_usd"])
	if ms, ok := asFloat(obj["timestamp"]); ok && ms > 0 {
		ev.Timestamp = time.UnixMilli(int64(ms))
	}

	return &models.Event{Type: models.EventTrade, Trade: ev}, nil
}

func (n *DefaultNormalizer) normalizePulse(obj map[string]interface{}) (*models.Event, error) {
	snap := &models.PulseSnapshot{
		MarketCapNative: asFloatOrZero(obj["marketCapSol"]),
		VolumeNative:    asFloatOrZero(obj["volumeSol"]),
		LiquidityNative: asFloatOrZero(obj["liquiditySol"]),
		ReceivedAt:      n.now(),
	}
	if holders, ok := asFloat(obj["numHolders"]); ok && holders >= 0 {
		snap.NumHolders = int(holders)
	}
	if supply, ok := asFloat(obj["supply"]); ok && supply > 0 {
		snap.Supply = &supply
	}

	return &models.Event{Type: models.EventPulse, Pulse: snap}, nil
}

// normalizeLighthouse extracts the five-minute all-protocols total volume
// from the nested window/scope structure. An unparseable volume fails the
// event so the engine's prior value stands.
func (n *DefaultNormalizer) normalizeLighthouse(obj map[string]interface{}) (*models.Event, error) {
	win, ok := obj["5m"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: 5m window is not an object", ErrInvalidMessage)
	}
	scope, ok := win["all"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: missing all-protocols scope", ErrInvalidMessage)
	}
	vol, ok := asFloat(scope["totalVolume"])
	if !ok {
		return nil, fmt.Errorf("%w: unparseable totalVolume", ErrInvalidMessage)
	}

	return &models.Event{
		Type:       models.EventLighthouse,
		Lighthouse: &models.LighthouseSnapshot{FiveMinuteTotalVolume: vol},
	}, nil
}

func (n *DefaultNormalizer) normalizeChartBatch(arr []map[string]interface{}) (*models.Event, error) {
	bars := make([]models.ChartBar, 0, len(arr))
	for _, raw := range arr {
		t, ok := asFloat(raw["time"])
		if !ok {
			continue
		}
		bars = append(bars, models.ChartBar{
			Time:   int64(t),
			Open:   asFloatOrZero(raw["open"]),
			High:   asFloatOrZero(raw["high"]),
			Low:    asFloatOrZero(raw["low"]),
			Close:  asFloatOrZero(raw["close"]),
			Volume: asFloatOrZero(raw["volume"]),
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: empty chart batch", ErrInvalidMessage)
	}

	return &models.Event{Type: models.EventChartBatch, ChartBatch: bars}, nil
}

// Coercion helpers

func hasKey(obj map[string]interface{}, key string) bool {
	_, ok := obj[key]
	return ok
}

// asFloat accepts JSON numbers and numeric strings.
func asFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, false
		}
		return x, true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// asFloatOrZero is the parse-with-fallback step for optional numerics.
func asFloatOrZero(v interface{}) float64 {
	f, ok := asFloat(v)
	if !ok {
		return 0
	}
	return f
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
