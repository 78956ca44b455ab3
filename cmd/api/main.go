package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prospector_backend/internal/http/router"
	"prospector_backend/internal/scan"
	"prospector_backend/internal/scoring"
	"prospector_backend/internal/scoring/oracle"
	"prospector_backend/internal/sources"
	"prospector_backend/internal/sources/expiry"
	"prospector_backend/internal/sources/registry"
	"prospector_backend/internal/sources/social"
	"prospector_backend/internal/zones"
	"prospector_backend/platform/cache"
	"prospector_backend/platform/config"
	"prospector_backend/platform/httpkit"
	"prospector_backend/platform/logger"
	"prospector_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	zoneRegistry, err := zones.Load(cfg.GetZonesFile())
	if err != nil {
		log.Error("failed to load zone registry", "error", err)
		panic("failed to load zone registry: " + err.Error())
	}
	log.Info("zone registry loaded", "zones", len(zoneRegistry.All()))

	svc := buildScanService(cfg, zoneRegistry, log)

	val := validator.New()
	scanModule := scan.NewModule(svc, val)

	limiter := httpkit.NewIPRateLimiter(10, 20, log)
	engine := router.New(cfg, log, limiter, scanModule)

	srv := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}

// buildScanService wires the sources and scoring strategy from configuration.
func buildScanService(cfg *config.Config, zoneRegistry *zones.Registry, log *logger.Logger) *scan.Service {
	responseCache := cache.New(cfg.GetRedisURL(), cfg.GetCacheTTL())

	var srcs []sources.Source
	if cfg.IsRegistryEnabled() {
		client := registry.NewClient(cfg.GetRegistryAPIURL(), cfg.GetRegistryAPIKey(), cfg.GetRegistryRatePerSec(), log)
		srcs = append(srcs, registry.NewAdapter(client, responseCache, cfg.GetRegistryMinAreaSqm(), log))
	} else {
		log.Info("certificate registry source disabled: REGISTRY_API_URL not configured")
	}
	srcs = append(srcs, expiry.NewAdapter(cfg.GetExpiryPortalURL(), cfg.IsExpiryLiveMode(), log))
	srcs = append(srcs, social.NewAdapter(log))

	heuristic := scoring.NewHeuristic(zoneRegistry)
	var strategy scoring.Strategy = heuristic
	if cfg.IsOracleEnabled() {
		client := oracle.New(cfg.GetOracleURL(), cfg.GetOracleModel(), cfg.GetOracleTimeout(), log)
		strategy = scoring.NewAIAssisted(client, heuristic, zoneRegistry, cfg.GetOracleTimeout(), log)
		log.Info("ai-assisted scoring enabled", "model", cfg.GetOracleModel())
	} else {
		log.Info("ai-assisted scoring disabled: ORACLE_URL not configured")
	}

	return scan.New(srcs, zoneRegistry, strategy, cfg, log)
}
