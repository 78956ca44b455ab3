// Package sources defines the uniform contract every external prospect source
// implements: the energy-certificate registry, the listing-expiry detector,
// and the social feed. Adapters are explicitly constructed and injected into
// the aggregator, never package-level singletons.
package sources

import (
	"context"

	"prospector_backend/internal/prospect"
	"prospector_backend/internal/zones"
)

// Source fetches raw signals for a set of zones. The context carries the
// per-source budget deadline; implementations must not block beyond it. On
// timeout or transport failure they return an apperr SourceUnavailable error
// and never panic — the aggregator treats that as a partial failure.
type Source interface {
	Name() string
	Fetch(ctx context.Context, zoneList []zones.GeoZone) ([]prospect.RawSignal, error)
}
