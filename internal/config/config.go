// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package config

import (
	"net"
	"strconv"
	"time"
)

// Store backends.
const (
	StoreMemory   = "memory"
	StoreBadger   = "badger"
	StoreBackend  = "backend"
	StoreDynamoDB = "dynamodb"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Spotify  SpotifyConfig  `koanf:"spotify"`
	Store    StoreConfig    `koanf:"store"`
	Deck     DeckConfig     `koanf:"deck"`
	Engage   EngageConfig   `koanf:"engage"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
}

// SpotifyConfig holds settings for the recommendation source client.
type SpotifyConfig struct {
	APIURL  string        `koanf:"api_url"`
	Market  string        `koanf:"market"`
	Timeout time.Duration `koanf:"timeout"`

	// Outbound rate limit shared by all sessions.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	Burst             int     `koanf:"burst"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures the circuit breaker in front of the recommendation source.
type BreakerConfig struct {
	MaxRequests  uint32        `koanf:"max_requests"`  // probes allowed while half-open
	Interval     time.Duration `koanf:"interval"`      // closed-state counter reset period
	Timeout      time.Duration `koanf:"timeout"`       // open -> half-open delay
	MinRequests  uint32        `koanf:"min_requests"`  // requests before the ratio is evaluated
	FailureRatio float64       `koanf:"failure_ratio"` // trip threshold
}

// StoreConfig selects and configures the snapshot store.
type StoreConfig struct {
	Backend          string        `koanf:"backend"`
	BadgerPath       string        `koanf:"badger_path"`
	BackendURL       string        `koanf:"backend_url"`
	DynamoDBTable    string        `koanf:"dynamodb_table"`
	DynamoDBRegion   string        `koanf:"dynamodb_region"`
	DynamoDBEndpoint string        `koanf:"dynamodb_endpoint"` // local DynamoDB, optional
	WriteTimeout     time.Duration `koanf:"write_timeout"`
}

// DeckConfig tunes the deck engine.
type DeckConfig struct {
	// RefillThreshold is the stack depth at or below which a removal triggers a refill.
	RefillThreshold int `koanf:"refill_threshold"`

	// EnrichConcurrency bounds parallel top-track lookups per refill pass.
	EnrichConcurrency int `koanf:"enrich_concurrency"`

	// PreviewCacheTTL memoizes top-track lookups. Zero disables the cache.
	PreviewCacheTTL time.Duration `koanf:"preview_cache_ttl"`

	// SessionIdleTimeout closes live sessions nobody touched for this long.
	// Zero keeps sessions until they are closed explicitly.
	SessionIdleTimeout time.Duration `koanf:"session_idle_timeout"`
}

// EngageConfig configures the engagement message router.
type EngageConfig struct {
	Enabled              bool          `koanf:"enabled"`
	RetryMaxRetries      int           `koanf:"retry_max_retries"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
	CloseTimeout         time.Duration `koanf:"close_timeout"`
}

// SecurityConfig holds CORS and inbound rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the HTTP listen address.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// IsProduction reports whether the server runs in production mode.
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}
