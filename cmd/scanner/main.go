package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"prospector_backend/internal/scan"
	"prospector_backend/internal/scoring"
	"prospector_backend/internal/scoring/oracle"
	"prospector_backend/internal/sources"
	"prospector_backend/internal/sources/expiry"
	"prospector_backend/internal/sources/registry"
	"prospector_backend/internal/sources/social"
	"prospector_backend/internal/zones"
	"prospector_backend/platform/apperr"
	"prospector_backend/platform/cache"
	"prospector_backend/platform/config"
	"prospector_backend/platform/logger"

	"github.com/robfig/cron/v3"
)

// The scanner daemon runs the aggregation engine on a schedule and logs the
// resulting summary, so the sales team starts the day with a fresh ranking
// without anyone hitting the API.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scanner", "env", cfg.Env, "cron", cfg.GetScanCronSpec())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zoneRegistry, err := zones.Load(cfg.GetZonesFile())
	if err != nil {
		log.Error("failed to load zone registry", "error", err)
		panic("failed to load zone registry: " + err.Error())
	}

	svc := buildScanService(cfg, zoneRegistry, log)

	runScan := func() {
		res, err := svc.Scan(ctx, scan.Request{ZoneIDs: cfg.GetScanZoneIDs()})
		if err != nil {
			if apperr.Is(err, apperr.KindNoData) {
				log.Warn("scheduled scan found no data", "error", err)
				return
			}
			log.Error("scheduled scan failed", "error", err)
			return
		}
		for _, p := range res.Prospects {
			log.Info("prospect",
				"scan_id", res.ScanID,
				"address", p.Address,
				"zone", p.ZoneID,
				"price", p.EstimatedPrice,
				"score", p.Score,
				"sources", p.Sources,
			)
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(cfg.GetScanCronSpec(), runScan); err != nil {
		log.Error("invalid cron spec", "spec", cfg.GetScanCronSpec(), "error", err)
		panic("invalid cron spec: " + err.Error())
	}

	// One immediate run so a fresh deployment produces output right away.
	runScan()

	c.Start()
	<-ctx.Done()

	log.Info("shutting down")
	<-c.Stop().Done()
}

// buildScanService wires the sources and scoring strategy from configuration.
func buildScanService(cfg *config.Config, zoneRegistry *zones.Registry, log *logger.Logger) *scan.Service {
	responseCache := cache.New(cfg.GetRedisURL(), cfg.GetCacheTTL())

	var srcs []sources.Source
	if cfg.IsRegistryEnabled() {
		client := registry.NewClient(cfg.GetRegistryAPIURL(), cfg.GetRegistryAPIKey(), cfg.GetRegistryRatePerSec(), log)
		srcs = append(srcs, registry.NewAdapter(client, responseCache, cfg.GetRegistryMinAreaSqm(), log))
	}
	srcs = append(srcs, expiry.NewAdapter(cfg.GetExpiryPortalURL(), cfg.IsExpiryLiveMode(), log))
	srcs = append(srcs, social.NewAdapter(log))

	heuristic := scoring.NewHeuristic(zoneRegistry)
	var strategy scoring.Strategy = heuristic
	if cfg.IsOracleEnabled() {
		client := oracle.New(cfg.GetOracleURL(), cfg.GetOracleModel(), cfg.GetOracleTimeout(), log)
		strategy = scoring.NewAIAssisted(client, heuristic, zoneRegistry, cfg.GetOracleTimeout(), log)
	}

	return scan.New(srcs, zoneRegistry, strategy, cfg, log)
}
