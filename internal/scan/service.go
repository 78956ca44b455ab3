// Package scan contains the aggregation engine: it fans out to every
// configured source, normalizes and scores the raw signals, deduplicates
// across sources, and produces the ranked prospect list.
package scan

import (
	"context"
	"sort"
	"time"

	"prospector_backend/internal/pricing"
	"prospector_backend/internal/prospect"
	"prospector_backend/internal/scoring"
	"prospector_backend/internal/sources"
	"prospector_backend/internal/zones"
	"prospector_backend/platform/apperr"
	"prospector_backend/platform/config"
	"prospector_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Service orchestrates one scan across all registered sources. It owns the
// merge map for the duration of a scan; nothing mutable is shared between
// scans except the read-only zone registry.
type Service struct {
	sources  []sources.Source
	zones    *zones.Registry
	strategy scoring.Strategy
	cfg      config.ScanConfig
	log      *logger.Logger
}

// New creates the aggregation service. Sources and the scoring strategy are
// injected so tests can substitute doubles.
func New(srcs []sources.Source, reg *zones.Registry, strategy scoring.Strategy, cfg config.ScanConfig, log *logger.Logger) *Service {
	return &Service{
		sources:  srcs,
		zones:    reg,
		strategy: strategy,
		cfg:      cfg,
		log:      log,
	}
}

// Request selects what one scan covers. Zero values fall back to configured
// defaults: every zone, the configured result limit.
type Request struct {
	ZoneIDs []string
	Limit   int
}

// batch is one source's complete fetch outcome. Batches are merged whole by
// the coordinating goroutine, never interleaved field-by-field.
type batch struct {
	source  string
	signals []prospect.RawSignal
	err     error
}

// Scan runs the full pipeline: fan-out, normalize, estimate, filter, score,
// merge, rank, truncate. A single failing source is a partial failure; only
// every source failing with no demo fallback configured is fatal.
func (s *Service) Scan(ctx context.Context, req Request) (*prospect.ScanResult, error) {
	started := time.Now()

	zoneList := s.zones.Select(req.ZoneIDs)
	if len(zoneList) == 0 {
		return nil, apperr.BadRequest("no known zones selected")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.GetResultLimit()
	}

	batches := make(chan batch, len(s.sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.GetMaxConcurrentSources())

	for _, src := range s.sources {
		src := src
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gctx, s.cfg.GetSourceBudget())
			defer cancel()

			signals, err := src.Fetch(fetchCtx, zoneList)
			batches <- batch{source: src.Name(), signals: signals, err: err}
			return nil
		})
	}

	_ = g.Wait()
	close(batches)

	merged := make(map[string]prospect.Prospect)
	failed := 0
	for b := range batches {
		if b.err != nil {
			failed++
			s.log.SourceError(b.source, "", b.err)
			continue
		}
		s.mergeBatch(ctx, merged, b.signals)
	}

	if len(s.sources) > 0 && failed == len(s.sources) {
		if !s.cfg.IsDemoFallbackEnabled() {
			return nil, apperr.NoData("all prospect sources failed")
		}
		s.log.Warn("all sources failed, substituting demo dataset")
		s.mergeBatch(ctx, merged, demoSignals(zoneList))
	}

	ranked := rank(merged)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	result := &prospect.ScanResult{
		ScanID:    uuid.NewString(),
		Prospects: ranked,
		Stats:     computeStats(ranked),
		Timestamp: time.Now().UTC(),
	}

	s.log.ScanEvent(result.ScanID, result.Stats.Total, result.Stats.Hot, float64(time.Since(started).Milliseconds()))
	return result, nil
}

// mergeBatch normalizes one source's signals and folds them into the merge
// map. Candidates that cannot be normalized are dropped with a diagnostic.
func (s *Service) mergeBatch(ctx context.Context, merged map[string]prospect.Prospect, signals []prospect.RawSignal) {
	for _, sig := range signals {
		cand, ok := s.normalize(ctx, sig)
		if !ok {
			continue
		}
		if existing, found := merged[cand.ID]; found {
			merged[cand.ID] = merge(existing, cand)
		} else {
			merged[cand.ID] = cand
		}
	}
}

// normalize turns a raw signal into a fully priced and scored candidate.
func (s *Service) normalize(ctx context.Context, sig prospect.RawSignal) (prospect.Prospect, bool) {
	zone, ok := s.zones.Get(sig.ZoneID)
	if !ok {
		s.log.CandidateDropped(sig.SourceName, sig.RawKey, "unknown zone "+sig.ZoneID)
		return prospect.Prospect{}, false
	}

	price, err := pricing.Estimate(sig.AreaSqm, sig.PropertyKind, sig.EnergyClass, zone)
	if err != nil {
		s.log.CandidateDropped(sig.SourceName, sig.RawKey, err.Error())
		return prospect.Prospect{}, false
	}

	if price < s.cfg.GetMinProspectValue() {
		s.log.CandidateDropped(sig.SourceName, sig.RawKey, "below minimum value")
		return prospect.Prospect{}, false
	}

	p := prospect.Prospect{
		ID:             prospect.Fingerprint(sig.Address, zone.ID),
		Address:        sig.Address,
		ZoneID:         zone.ID,
		AreaSqm:        sig.AreaSqm,
		PropertyKind:   sig.PropertyKind,
		EnergyClass:    sig.EnergyClass,
		ObservedAt:     sig.ObservedAt,
		Sources:        []string{sig.SourceName},
		EstimatedPrice: price,
	}

	res := s.strategy.Score(ctx, p)
	p.Score = res.Score
	p.AIPowered = res.AIPowered
	p.Forecast = res.Forecast

	return p, true
}

// merge folds two candidates with the same fingerprint. The higher-scoring
// contributor's fields win (ties broken by price, then by source name, so the
// outcome does not depend on arrival order); sources are unioned and
// aiPowered is sticky.
func merge(a, b prospect.Prospect) prospect.Prospect {
	winner, other := a, b
	if less(winner, other) {
		winner, other = other, winner
	}

	for _, src := range other.Sources {
		if !winner.HasSource(src) {
			winner.Sources = append(winner.Sources, src)
		}
	}
	sort.Strings(winner.Sources)

	winner.AIPowered = a.AIPowered || b.AIPowered
	if winner.Forecast == nil {
		winner.Forecast = other.Forecast
	}

	return winner
}

// less orders candidates by merge precedence: score, then price, then first
// source name for determinism.
func less(a, b prospect.Prospect) bool {
	if a.Score != b.Score {
		return a.Score < b.Score
	}
	if a.EstimatedPrice != b.EstimatedPrice {
		return a.EstimatedPrice < b.EstimatedPrice
	}
	return a.Sources[0] > b.Sources[0]
}

// rank sorts merged prospects by score descending, price descending, then id
// ascending so identical inputs always produce identical output order.
func rank(merged map[string]prospect.Prospect) []prospect.Prospect {
	list := make([]prospect.Prospect, 0, len(merged))
	for _, p := range merged {
		list = append(list, p)
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].Score != list[j].Score {
			return list[i].Score > list[j].Score
		}
		if list[i].EstimatedPrice != list[j].EstimatedPrice {
			return list[i].EstimatedPrice > list[j].EstimatedPrice
		}
		return list[i].ID < list[j].ID
	})

	return list
}

// computeStats summarizes the truncated list, so avgPrice and hot reflect
// what is actually returned.
func computeStats(list []prospect.Prospect) prospect.Stats {
	stats := prospect.Stats{Total: len(list)}
	if len(list) == 0 {
		return stats
	}

	var sum int64
	for _, p := range list {
		if p.Score >= 80 {
			stats.Hot++
		}
		sum += p.EstimatedPrice
	}
	stats.AvgPrice = sum / int64(len(list))

	return stats
}
