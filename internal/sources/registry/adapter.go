package registry

import (
	"context"
	"sync"

	"prospector_backend/internal/prospect"
	"prospector_backend/internal/zones"
	"prospector_backend/platform/apperr"
	"prospector_backend/platform/cache"
	"prospector_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

const sourceName = "dpe-registry"

// zoneConcurrency bounds parallel zone queries within one fetch so a wide
// zone selection does not exhaust the public API.
const zoneConcurrency = 3

// Adapter exposes the certificate registry as a prospect source.
type Adapter struct {
	client     *Client
	cache      cache.Cache
	minAreaSqm float64
	log        *logger.Logger
}

// NewAdapter creates the registry source. Responses are cached per zone;
// certificates below minAreaSqm are filtered before normalization to bound
// downstream work.
func NewAdapter(client *Client, c cache.Cache, minAreaSqm float64, log *logger.Logger) *Adapter {
	return &Adapter{
		client:     client,
		cache:      c,
		minAreaSqm: minAreaSqm,
		log:        log.WithSource(sourceName),
	}
}

// Name implements sources.Source.
func (a *Adapter) Name() string { return sourceName }

// Fetch implements sources.Source. Zones are queried concurrently; a zone
// that fails is logged and skipped, and only a fully failed fetch returns
// SourceUnavailable.
func (a *Adapter) Fetch(ctx context.Context, zoneList []zones.GeoZone) ([]prospect.RawSignal, error) {
	var (
		mu       sync.Mutex
		signals  []prospect.RawSignal
		okZones  int
		lastErr  error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(zoneConcurrency)

	for _, zone := range zoneList {
		zone := zone
		g.Go(func() error {
			batch, err := a.fetchZone(gctx, zone)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				a.log.SourceError(sourceName, zone.ID, err)
				lastErr = err
				return nil // zone failures are isolated
			}
			okZones++
			signals = append(signals, batch...)
			return nil
		})
	}

	_ = g.Wait()

	if okZones == 0 && lastErr != nil {
		return nil, apperr.SourceUnavailable(sourceName, lastErr)
	}

	return signals, nil
}

func (a *Adapter) fetchZone(ctx context.Context, zone zones.GeoZone) ([]prospect.RawSignal, error) {
	cacheKey := "registry:certificates:" + zone.ID

	payload, hit := a.cache.Get(ctx, cacheKey)
	if !hit {
		var err error
		payload, err = a.client.CertificatesByZone(ctx, zone.ID, a.minAreaSqm)
		if err != nil {
			return nil, err
		}
		a.cache.Set(ctx, cacheKey, payload)
	}

	certs, err := decodeCertificates(payload)
	if err != nil {
		return nil, err
	}

	signals := make([]prospect.RawSignal, 0, len(certs))
	for _, cert := range certs {
		if cert.FloorAreaSqm < a.minAreaSqm {
			continue
		}
		signal := prospect.RawSignal{
			SourceName:   sourceName,
			ZoneID:       zone.ID,
			Address:      cert.Address,
			AreaSqm:      cert.FloorAreaSqm,
			PropertyKind: prospect.ParsePropertyKind(cert.BuildingType),
			EnergyClass:  prospect.ParseEnergyClass(cert.EnergyClass),
			RawKey:       cert.CertificateID,
		}
		if cert.IssuedAt != nil {
			signal.ObservedAt = *cert.IssuedAt
		}
		signals = append(signals, signal)
	}

	return signals, nil
}
