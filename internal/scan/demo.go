package scan

import (
	"time"

	"prospector_backend/internal/prospect"
	"prospector_backend/internal/zones"
)

const demoFallbackSource = "demo-fallback"

// demoSignals is the canned dataset substituted when every live source fails
// and the operator explicitly enabled the fallback. It is never mixed with
// live data and its source name makes its origin unmistakable.
func demoSignals(zoneList []zones.GeoZone) []prospect.RawSignal {
	now := time.Now()
	samples := map[string]prospect.RawSignal{
		"jacou": {
			SourceName:   demoFallbackSource,
			ZoneID:       "jacou",
			Address:      "Villa 180m2, proche centre, Jacou",
			AreaSqm:      180,
			PropertyKind: prospect.KindHouse,
			EnergyClass:  prospect.EnergyC,
			ObservedAt:   now.Add(-2 * 24 * time.Hour),
			RawKey:       "demo-1",
		},
		"castelnau": {
			SourceName:   demoFallbackSource,
			ZoneID:       "castelnau",
			Address:      "Maison 140m2, Avenue de l'Europe, Castelnau-le-Lez",
			AreaSqm:      140,
			PropertyKind: prospect.KindHouse,
			EnergyClass:  prospect.EnergyD,
			ObservedAt:   now.Add(-10 * 24 * time.Hour),
			RawKey:       "demo-2",
		},
		"antigone": {
			SourceName:   demoFallbackSource,
			ZoneID:       "antigone",
			Address:      "Appartement 95m2, Place du Nombre d'Or, Antigone",
			AreaSqm:      95,
			PropertyKind: prospect.KindApartment,
			EnergyClass:  prospect.EnergyB,
			ObservedAt:   now.Add(-5 * 24 * time.Hour),
			RawKey:       "demo-3",
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
