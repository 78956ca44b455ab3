// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithSource returns a logger tagged with a data source name.
func (l *Logger) WithSource(source string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("source", source)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// SourceError logs a failed external source call with enough context to
// diagnose the batch without aborting it.
func (l *Logger) SourceError(source, zone string, err error) {
	l.Warn("source_error",
		slog.String("source", source),
		slog.String("zone", zone),
		slog.String("error", err.Error()),
	)
}

// CandidateDropped logs a raw signal that could not be normalized.
func (l *Logger) CandidateDropped(source, rawKey, reason string) {
	l.Debug("candidate_dropped",
		slog.String("source", source),
		slog.String("raw_key", rawKey),
		slog.String("reason", reason),
	)
}

// ScanEvent logs the outcome of one scan run.
func (l *Logger) ScanEvent(scanID string, total, hot int, durationMs float64) {
	l.Info("scan_complete",
		slog.String("scan_id", scanID),
		slog.Int("total", total),
		slog.Int("hot", hot),
		slog.Float64("duration_ms", durationMs),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
