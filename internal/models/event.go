package models

import "fmt"

// EventType discriminates the raw message shapes the feed can deliver.
type EventType string

const (
	EventTrade      EventType = "trade"
	EventPulse      EventType = "pulse"
	EventLighthouse EventType = "lighthouse"
	EventChartBatch EventType = "chart_batch"
)

// Event is the tagged variant handed to the engine. Exactly one payload
// field is non-nil, matching Type. The ingestion boundary produces these;
// the engine never inspects untyped payloads.
type Event struct {
	Type       EventType
	Trade      *TradeEvent
	Pulse      *PulseSnapshot
	Lighthouse *LighthouseSnapshot
	ChartBatch []ChartBar
}

// Validate checks that the event carries exactly the payload its tag names.
func (e *Event) Validate() error {
	switch e.Type {
	case EventTrade:
		if e.Trade == nil {
			return fmt.Errorf("%s event without payload", e.Type)
		}
		return e.Trade.Validate()
	case EventPulse:
		if e.Pulse == nil {
			return fmt.Errorf("%s event without payload", e.Type)
		}
		return e.Pulse.Validate()
	case EventLighthouse:
		if e.Lighthouse == nil {
			return fmt.Errorf("%s event without payload", e.Type)
		}
		return nil
	case EventChartBatch:
		if e.ChartBatch == nil {
			return fmt.Errorf("%s event without payload", e.Type)
		}
		return nil
	default:
		return fmt.Errorf("unknown event type %q", e.Type)
	}
}
