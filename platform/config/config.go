// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// ZoneConfig provides settings for the zone registry.
type ZoneConfig interface {
	GetZonesFile() string
}

// ScanConfig provides settings for the prospect aggregation engine.
type ScanConfig interface {
	GetSourceBudget() time.Duration
	GetResultLimit() int
	GetMinProspectValue() int64
	GetMaxConcurrentSources() int
	IsDemoFallbackEnabled() bool
}

// OracleConfig provides settings for the AI scoring oracle.
type OracleConfig interface {
	GetOracleURL() string
	GetOracleModel() string
	GetOracleTimeout() time.Duration
	IsOracleEnabled() bool
}

// RegistryAPIConfig provides settings for the energy-certificate registry API.
type RegistryAPIConfig interface {
	GetRegistryAPIURL() string
	GetRegistryAPIKey() string
	GetRegistryMinAreaSqm() float64
	GetRegistryRatePerSec() float64
	IsRegistryEnabled() bool
}

// ExpiryScraperConfig provides settings for the listing-expiry scraper.
type ExpiryScraperConfig interface {
	GetExpiryPortalURL() string
	IsExpiryLiveMode() bool
}

// CacheConfig provides settings for the response cache.
type CacheConfig interface {
	GetRedisURL() string
	GetCacheTTL() time.Duration
}

// SchedulerConfig provides settings for the periodic scan daemon.
type SchedulerConfig interface {
	GetScanCronSpec() string
	GetScanZoneIDs() []string
}

// Config holds all application configuration.
type Config struct {
	Env                  string
	HTTPAddr             string
	CORSAllowAll         bool
	CORSOrigins          []string
	ZonesFile            string
	SourceBudget         time.Duration
	ResultLimit          int
	MinProspectValue     int64
	MaxConcurrentSources int
	DemoFallbackEnabled  bool
	OracleURL            string
	OracleModel          string
	OracleTimeout        time.Duration
	RegistryAPIURL       string
	RegistryAPIKey       string
	RegistryMinAreaSqm   float64
	RegistryRatePerSec   float64
	ExpiryPortalURL      string
	ExpiryLiveMode       bool
	RedisURL             string
	CacheTTL             time.Duration
	ScanCronSpec         string
	ScanZoneIDs          []string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// ZoneConfig implementation
func (c *Config) GetZonesFile() string { return c.ZonesFile }

// ScanConfig implementation
func (c *Config) GetSourceBudget() time.Duration { return c.SourceBudget }
func (c *Config) GetResultLimit() int            { return c.ResultLimit }
func (c *Config) GetMinProspectValue() int64     { return c.MinProspectValue }
func (c *Config) GetMaxConcurrentSources() int   { return c.MaxConcurrentSources }
func (c *Config) IsDemoFallbackEnabled() bool    { return c.DemoFallbackEnabled }

// OracleConfig implementation
func (c *Config) GetOracleURL() string           { return c.OracleURL }
func (c *Config) GetOracleModel() string         { return c.OracleModel }
func (c *Config) GetOracleTimeout() time.Duration { return c.OracleTimeout }
func (c *Config) IsOracleEnabled() bool          { return c.OracleURL != "" }

// RegistryAPIConfig implementation
func (c *Config) GetRegistryAPIURL() string      { return c.RegistryAPIURL }
func (c *Config) GetRegistryAPIKey() string      { return c.RegistryAPIKey }
func (c *Config) GetRegistryMinAreaSqm() float64 { return c.RegistryMinAreaSqm }
func (c *Config) GetRegistryRatePerSec() float64 { return c.RegistryRatePerSec }
func (c *Config) IsRegistryEnabled() bool        { return c.RegistryAPIURL != "" }

// ExpiryScraperConfig implementation
func (c *Config) GetExpiryPortalURL() string { return c.ExpiryPortalURL }
func (c *Config) IsExpiryLiveMode() bool     { return c.ExpiryLiveMode && c.ExpiryPortalURL != "" }

// CacheConfig implementation
func (c *Config) GetRedisURL() string        { return c.RedisURL }
func (c *Config) GetCacheTTL() time.Duration { return c.CacheTTL }

// SchedulerConfig implementation
func (c *Config) GetScanCronSpec() string   { return c.ScanCronSpec }
func (c *Config) GetScanZoneIDs() []string  { return c.ScanZoneIDs }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		ZonesFile:            getEnv("ZONES_FILE", ""),
		SourceBudget:         mustDuration(getEnv("SOURCE_BUDGET", "8s")),
		ResultLimit:          mustInt(getEnv("RESULT_LIMIT", "20")),
		MinProspectValue:     mustInt64(getEnv("MIN_PROSPECT_VALUE", "400000")),
		MaxConcurrentSources: mustInt(getEnv("MAX_CONCURRENT_SOURCES", "4")),
		DemoFallbackEnabled:  strings.EqualFold(getEnv("DEMO_FALLBACK_ENABLED", "false"), "true"),
		OracleURL:            getEnv("ORACLE_URL", ""),
		OracleModel:          getEnv("ORACLE_MODEL", "llama3.1:8b"),
		OracleTimeout:        mustDuration(getEnv("ORACLE_TIMEOUT", "10s")),
		RegistryAPIURL:       getEnv("REGISTRY_API_URL", ""),
		RegistryAPIKey:       getEnv("REGISTRY_API_KEY", ""),
		RegistryMinAreaSqm:   mustFloat(getEnv("REGISTRY_MIN_AREA_SQM", "60")),
		RegistryRatePerSec:   mustFloat(getEnv("REGISTRY_RATE_PER_SEC", "5")),
		ExpiryPortalURL:      getEnv("EXPIRY_PORTAL_URL", ""),
		ExpiryLiveMode:       strings.EqualFold(getEnv("EXPIRY_LIVE_MODE", "false"), "true"),
		RedisURL:             getEnv("REDIS_URL", ""),
		CacheTTL:             mustDuration(getEnv("CACHE_TTL", "6h")),
		ScanCronSpec:         getEnv("SCAN_CRON_SPEC", "@hourly"),
		ScanZoneIDs:          splitCSV(getEnv("SCAN_ZONE_IDS", "")),
	}

	if cfg.SourceBudget <= 0 {
		return nil, fmt.Errorf("SOURCE_BUDGET must be a positive duration")
	}
	if cfg.ResultLimit <= 0 {
		return nil, fmt.Errorf("RESULT_LIMIT must be positive")
	}
	if cfg.MinProspectValue < 0 {
		return nil, fmt.Errorf("MIN_PROSPECT_VALUE cannot be negative")
	}
	if cfg.MaxConcurrentSources <= 0 {
		return nil, fmt.Errorf("MAX_CONCURRENT_SOURCES must be positive")
	}
	if cfg.ExpiryLiveMode && cfg.ExpiryPortalURL == "" {
		return nil, fmt.Errorf("EXPIRY_PORTAL_URL is required when EXPIRY_LIVE_MODE is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustInt64(value string) int64 {
	result, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, v := range values {
		if v == "*" {
			return true
		}
	}
	return false
}
