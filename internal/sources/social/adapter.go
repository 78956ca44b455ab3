// Package social provides the social-feed source. No live integration exists
// yet, so it serves a static sample of network mentions under a source name
// that keeps the demo status explicit, as required for anything that is not
// live data.
package social

import (
	"context"
	"time"

	"prospector_backend/internal/prospect"
	"prospector_backend/internal/zones"
	"prospector_backend/platform/logger"
)

const sourceName = "social-demo"

// Adapter is the static social-feed source.
type Adapter struct {
	log *logger.Logger
}

// NewAdapter creates the demo social source.
func NewAdapter(log *logger.Logger) *Adapter {
	return &Adapter{log: log.WithSource(sourceName)}
}

// Name implements sources.Source.
func (a *Adapter) Name() string { return sourceName }

// Fetch implements sources.Source. The static feed never fails; it simply
// contributes nothing for zones without samples.
func (a *Adapter) Fetch(_ context.Context, zoneList []zones.GeoZone) ([]prospect.RawSignal, error) {
	now := time.Now()
	samples := map[string]prospect.RawSignal{
		"jacou": {
			SourceName:   sourceName,
			ZoneID:       "jacou",
			Address:      "12 rue des Lilas Jacou",
			AreaSqm:      180,
			PropertyKind: prospect.KindHouse,
			EnergyClass:  prospect.EnergyUnknown,
			ObservedAt:   now.Add(-24 * time.Hour),
			RawKey:       "post-relocation-4812",
		},
		"port-marianne": {
			SourceName:   sourceName,
			ZoneID:       "port-marianne",
			Address:      "Résidence Jardins de la Lironde, Port Marianne",
			AreaSqm:      88,
			PropertyKind: prospect.KindApartment,
			EnergyClass:  prospect.EnergyUnknown,
			ObservedAt:   now.Add(-5 * 24 * time.Hour),
			RawKey:       "post-agent-frustration-2207",
		},
	}

	var signals []prospect.RawSignal
	for _, zone := range zoneList {
		if s, ok := samples[zone.ID]; ok {
			signals = append(signals, s)
		}
	}
	return signals, nil
}
