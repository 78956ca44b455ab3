// Package zones provides the static geographic zone registry: the mapping of
// zone identifiers to display names, price levels, and market tiers. It is
// loaded once at startup and safe for concurrent reads.
package zones

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tier classifies a zone's market segment for scoring.
type Tier string

const (
	TierPremiumHigh Tier = "premium-high"
	TierPremiumMid  Tier = "premium-mid"
	TierStandard    Tier = "standard"
)

// GeoZone is one geographic catchment area with its base price level.
// Zones are referenced by ID everywhere else, never copied into records.
type GeoZone struct {
	ID              string  `yaml:"id"`
	DisplayName     string  `yaml:"name"`
	BasePricePerSqm float64 `yaml:"base_price_per_sqm"`
	Tier            Tier    `yaml:"tier"`
}

// Registry holds the immutable zone table.
type Registry struct {
	byID  map[string]GeoZone
	order []string
}

// defaultZones covers the Montpellier catchment the sales team works.
var defaultZones = []GeoZone{
	{ID: "jacou", DisplayName: "Jacou", BasePricePerSqm: 5200, Tier: TierPremiumHigh},
	{ID: "castelnau", DisplayName: "Castelnau-le-Lez", BasePricePerSqm: 5400, Tier: TierPremiumHigh},
	{ID: "antigone", DisplayName: "Antigone", BasePricePerSqm: 5100, Tier: TierPremiumHigh},
	{ID: "montpellier-centre", DisplayName: "Montpellier Centre", BasePricePerSqm: 4600, Tier: TierPremiumMid},
	{ID: "port-marianne", DisplayName: "Port Marianne", BasePricePerSqm: 4800, Tier: TierPremiumMid},
	{ID: "lattes", DisplayName: "Lattes", BasePricePerSqm: 4100, Tier: TierStandard},
	{ID: "perols", DisplayName: "Pérols", BasePricePerSqm: 3900, Tier: TierStandard},
}

// Load builds the registry from the YAML file at path, or from the built-in
// table when path is empty.
func Load(path string) (*Registry, error) {
	if path == "" {
		return newRegistry(defaultZones)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zones file: %w", err)
	}

	var file struct {
		Zones []GeoZone `yaml:"zones"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse zones file: %w", err)
	}
	if len(file.Zones) == 0 {
		return nil, fmt.Errorf("zones file %q defines no zones", path)
	}

	return newRegistry(file.Zones)
}

func newRegistry(list []GeoZone) (*Registry, error) {
	r := &Registry{byID: make(map[string]GeoZone, len(list))}
	for _, z := range list {
		if z.ID == "" {
			return nil, fmt.Errorf("zone with empty id")
		}
		if z.BasePricePerSqm <= 0 {
			return nil, fmt.Errorf("zone %q: base price must be positive", z.ID)
		}
		if _, dup := r.byID[z.ID]; dup {
			return nil, fmt.Errorf("duplicate zone id %q", z.ID)
		}
		if z.Tier == "" {
			z.Tier = TierStandard
		}
		r.byID[z.ID] = z
		r.order = append(r.order, z.ID)
	}
	return r, nil
}

// Get returns the zone for the given ID.
func (r *Registry) Get(id string) (GeoZone, bool) {
	z, ok := r.byID[id]
	return z, ok
}

// All returns every zone in declaration order.
func (r *Registry) All() []GeoZone {
	out := make([]GeoZone, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// Select resolves the given IDs, skipping unknown ones. An empty input selects
// every zone.
func (r *Registry) Select(ids []string) []GeoZone {
	if len(ids) == 0 {
		return r.All()
	}
	out := make([]GeoZone, 0, len(ids))
	for _, id := range ids {
		if z, ok := r.byID[id]; ok {
			out = append(out, z)
		}
	}
	return out
}
