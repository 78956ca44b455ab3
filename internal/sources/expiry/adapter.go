// Package expiry provides the listing-expiry source: properties whose sales
// mandate recently expired on a listings portal and whose owners are likely
// shopping for a new agent.
package expiry

import (
	"context"
	"time"

	"prospector_backend/internal/prospect"
	"prospector_backend/internal/zones"
	"prospector_backend/platform/apperr"
	"prospector_backend/platform/logger"
)

const (
	liveSourceName = "expiry"
	demoSourceName = "expiry-demo"
)

// Adapter detects expired listings. In live mode it scrapes the configured
// portal headlessly; without a portal it serves the built-in sample set under
// a source name that makes the demo status explicit.
type Adapter struct {
	portalURL string
	live      bool
	log       *logger.Logger
}

// NewAdapter creates the expiry source. live requires a portal URL.
func NewAdapter(portalURL string, live bool, log *logger.Logger) *Adapter {
	name := demoSourceName
	if live {
		name = liveSourceName
	}
	return &Adapter{
		portalURL: portalURL,
		live:      live,
		log:       log.WithSource(name),
	}
}

// Name implements sources.Source.
func (a *Adapter) Name() string {
	if a.live {
		return liveSourceName
	}
	return demoSourceName
}

// Fetch implements sources.Source.
func (a *Adapter) Fetch(ctx context.Context, zoneList []zones.GeoZone) ([]prospect.RawSignal, error) {
	if !a.live {
		return a.demoSignals(zoneList), nil
	}

	var signals []prospect.RawSignal
	for _, zone := range zoneList {
		listings, err := scrapeExpiredListings(ctx, a.portalURL, zone.ID)
		if err != nil {
			// One flaky zone is isolated; a dead browser or expired budget
			// kills the whole fetch.
			if ctx.Err() != nil {
				return nil, apperr.SourceUnavailable(liveSourceName, ctx.Err())
			}
			a.log.SourceError(liveSourceName, zone.ID, err)
			continue
		}
		for _, l := range listings {
			signals = append(signals, l.toSignal(zone.ID))
		}
	}

	if len(signals) == 0 && ctx.Err() != nil {
		return nil, apperr.SourceUnavailable(liveSourceName, ctx.Err())
	}

	return signals, nil
}

// expiredListing is one scraped portal card.
type expiredListing struct {
	Ref          string  `json:"ref"`
	Address      string  `json:"address"`
	AreaSqm      float64 `json:"areaSqm"`
	PropertyKind string  `json:"kind"`
	ExpiredAt    string  `json:"expiredAt"`
}

func (l expiredListing) toSignal(zoneID string) prospect.RawSignal {
	signal := prospect.RawSignal{
		SourceName:   liveSourceName,
		ZoneID:       zoneID,
		Address:      l.Address,
		AreaSqm:      l.AreaSqm,
		PropertyKind: prospect.ParsePropertyKind(l.PropertyKind),
		EnergyClass:  prospect.EnergyUnknown,
		RawKey:       l.Ref,
	}
	if t, err := time.Parse("2006-01-02", l.ExpiredAt); err == nil {
		signal.ObservedAt = t
	}
	return signal
}

// demoSignals mirrors the canned expired-mandate prospects the sales team
// used before the live integration existed.
func (a *Adapter) demoSignals(zoneList []zones.GeoZone) []prospect.RawSignal {
	now := time.Now()
	samples := map[string]prospect.RawSignal{
		"jacou": {
			SourceName:   demoSourceName,
			ZoneID:       "jacou",
			Address:      "Villa 180m2, proche centre, Jacou",
			AreaSqm:      180,
			PropertyKind: prospect.KindHouse,
			EnergyClass:  prospect.EnergyC,
			ObservedAt:   now.Add(-3 * 24 * time.Hour),
			RawKey:       "demo-mandate-jacou",
		},
		"castelnau": {
			SourceName:   demoSourceName,
			ZoneID:       "castelnau",
			Address:      "14 Avenue de l'Europe, Castelnau-le-Lez",
			AreaSqm:      140,
			PropertyKind: prospect.KindHouse,
			EnergyClass:  prospect.EnergyD,
			ObservedAt:   now.Add(-12 * 24 * time.Hour),
			RawKey:       "demo-mandate-castelnau",
		},
		"antigone": {
			SourceName:   demoSourceName,
			ZoneID:       "antigone",
			Address:      "95m2 Place du Nombre d'Or, Antigone",
			AreaSqm:      95,
			PropertyKind: prospect.KindApartment,
			EnergyClass:  prospect.EnergyB,
			ObservedAt:   now.Add(-6 * 24 * time.Hour),
			RawKey:       "demo-mandate-antigone",
		},
	}

	var signals []prospect.RawSignal
	for _, zone := range zoneList {
		if s, ok := samples[zone.ID]; ok {
			signals = append(signals, s)
		}
	}
	return signals
}
