package engine

import (
	"github.com/mohamedkhairy/token-monitor/internal/models"
)

// HandleLighthouse stores the broad-market five-minute total volume. The
// ingestion boundary only emits snapshots whose nested volume field parsed
// as a number, so an arriving snapshot always replaces the stored value;
// unparseable payloads never reach the engine and the prior value stands.
func (e *Engine) HandleLighthouse(s *models.LighthouseSnapshot) error {
	if s == nil {
		return models.ErrInvalidVolume
	}
	e.lighthouseVolume5m = s.FiveMinuteTotalVolume
	e.hasLighthouse = true
	return nil
}
