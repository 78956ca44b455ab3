// Package pricing derives estimated market values for normalized prospects.
// The estimator is a pure function of area, property kind, energy class, and
// the zone's base price level.
package pricing

import (
	"math"

	"prospector_backend/internal/prospect"
	"prospector_backend/internal/zones"
	"prospector_backend/platform/apperr"
)

const (
	houseMultiplier      = 1.10
	goodEnergyMultiplier = 1.05
	poorEnergyMultiplier = 0.95
)

// Estimate computes the market value in whole euros, truncated.
// Returns an InvalidInput error when the area is not a positive number.
func Estimate(areaSqm float64, kind prospect.PropertyKind, class prospect.EnergyClass, zone zones.GeoZone) (int64, error) {
	if math.IsNaN(areaSqm) || math.IsInf(areaSqm, 0) || areaSqm <= 0 {
		return 0, apperr.InvalidInput("area must be a positive number of square meters")
	}

	value := zone.BasePricePerSqm * areaSqm

	if kind == prospect.KindHouse {
		value *= houseMultiplier
	}

	switch class {
	case prospect.EnergyA, prospect.EnergyB:
		value *= goodEnergyMultiplier
	case prospect.EnergyF, prospect.EnergyG:
		value *= poorEnergyMultiplier
	}

	return int64(value), nil
}
