package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mohamedkhairy/token-monitor/internal/engine"
)

// Placeholder is rendered for any field whose backing value was never set.
const Placeholder = "---"

// Summary is the presentation payload: every metric pre-rendered as a
// display string.
type Summary struct {
	Price               string `json:"price"`
	MarketCap           string `json:"market_cap"`
	Volume1m            string `json:"volume_1m"`
	Volume5m            string `json:"volume_5m"`
	SessionATHMarketCap string `json:"session_ath_market_cap"`
	PulseMarketCap      string `json:"pulse_market_cap"`
	PulseVolume         string `json:"pulse_volume"`
	PulseHolders        string `json:"pulse_holders"`
	PulseLiquidity      string `json:"pulse_liquidity"`
	LighthouseVolume5m  string `json:"lighthouse_volume_5m"`
	ChartATHMarketCap   string `json:"chart_ath_market_cap"`
	RSI                 string `json:"rsi"`
	RSIStatus           string `json:"rsi_status"`
	ChartRSI            string `json:"chart_rsi"`
}

// Format renders an engine snapshot into display strings. Fields backed by
// state that was never set render the placeholder.
func Format(snap engine.Snapshot) Summary {
	s := Summary{
		Price:               Placeholder,
		MarketCap:           Placeholder,
		Volume1m:            Placeholder,
		Volume5m:            Placeholder,
		SessionATHMarketCap: Placeholder,
		PulseMarketCap:      Placeholder,
		PulseVolume:         Placeholder,
		PulseHolders:        Placeholder,
		PulseLiquidity:      Placeholder,
		LighthouseVolume5m:  Placeholder,
		ChartATHMarketCap:   Placeholder,
		RSI:                 Placeholder,
		RSIStatus:           string(snap.RSIStatus),
		ChartRSI:            Placeholder,
	}

	if snap.HasTrade {
		s.Price = Price(snap.LastPrice)
		s.MarketCap = Currency(snap.LastMarketCap)
		s.Volume1m = Compact(snap.Volume1m)
		s.Volume5m = Compact(snap.Volume5m)
		s.SessionATHMarketCap = Currency(snap.SessionATHMarketCap)
	}
	if snap.HasPulse {
		s.PulseMarketCap = Currency(snap.PulseMarketCap)
		s.PulseVolume = Compact(snap.PulseVolume)
		s.PulseHolders = groupDigits(strconv.Itoa(snap.PulseHolders))
		s.PulseLiquidity = Currency(snap.PulseLiquidity)
	}
	if snap.HasLighthouse {
		s.LighthouseVolume5m = Compact(snap.LighthouseVolume5m)
	}
	if snap.HasChart {
		s.ChartATHMarketCap = Currency(snap.ChartATHMarketCap)
	}
	if snap.RSIDefined {
		s.RSI = fmt.Sprintf("%.2f", snap.RSIValue)
	}
	if snap.ChartRSIDefined {
		s.ChartRSI = fmt.Sprintf("%.2f", snap.ChartRSIValue)
	}

	return s
}

// Currency renders a fiat value with a dollar sign and thousands
// separators, no decimals.
func Currency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	neg := v < 0
	whole := strconv.FormatFloat(math.Trunc(math.Abs(v)), 'f', 0, 64)
	out := "$" + groupDigits(whole)
	if neg {
		out = "-" + out
	}
	return out
}

// Price renders a token price: two decimals for values at or above one,
// up to eight significant decimals for sub-dollar prices.
func Price(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	if v >= 1 {
		fixed := strconv.FormatFloat(v, 'f', 2, 64)
		dot := strings.IndexByte(fixed, '.')
		return sign + "$" + groupDigits(fixed[:dot]) + fixed[dot:]
	}
	s := strconv.FormatFloat(v, 'f', 8, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return sign + "$" + s
}

// Compact renders large values with short-scale suffixes (K, M, B, T),
// two decimals.
func Compact(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	abs := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%s$%.2fT", sign, abs/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%s$%.2fB", sign, abs/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%s$%.2fM", sign, abs/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%s$%.2fK", sign, abs/1e3)
	default:
		return fmt.Sprintf("%s$%.2f", sign, abs)
	}
}

// groupDigits inserts comma separators into a bare digit string.
func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
