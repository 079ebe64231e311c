package indicator

// Status is the classification of an RSI reading against configured
// oversold/overbought thresholds.
type Status string

const (
	StatusCalculating Status = "Calculating"
	StatusOversold    Status = "Oversold"
	StatusOverbought  Status = "Overbought"
	StatusNeutral     Status = "Neutral"
)

// Classify maps an RSI value to a status label. defined is false while the
// calculator has not produced a value yet. Pure function, no side effects.
func Classify(rsi float64, defined bool, oversold, overbought float64) Status {
	if !defined {
		return StatusCalculating
	}
	if rsi < oversold {
		return StatusOversold
	}
	if rsi > overbought {
		return StatusOverbought
	}
	return StatusNeutral
}
