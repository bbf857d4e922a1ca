// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/discodeck/config.yaml",
	"/etc/discodeck/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            3858,
			Host:            "0.0.0.0",
			Timeout:         30 * time.Second,
			ShutdownTimeout: 15 * time.Second,
			Environment:     "development",
		},
		Spotify: SpotifyConfig{
			APIURL:            "https://api.spotify.com/v1",
			Market:            "US",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 10,
			Burst:             20,
			Breaker: BreakerConfig{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      2 * time.Minute,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Store: StoreConfig{
			Backend:        StoreBadger,
			BadgerPath:     "/data/decks",
			DynamoDBRegion: "us-east-1",
			WriteTimeout:   10 * time.Second,
		},
		Deck: DeckConfig{
			RefillThreshold:    11,
			EnrichConcurrency:  4,
			PreviewCacheTTL:    10 * time.Minute,
			SessionIdleTimeout: 2 * time.Hour,
		},
		Engage: EngageConfig{
			Enabled:              true,
			RetryMaxRetries:      2,
			RetryInitialInterval: 200 * time.Millisecond,
			CloseTimeout:         10 * time.Second,
		},
		Security: SecurityConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   300,
			RateLimitWindow: time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadWithKoanf loads configuration from defaults, an optional config file,
// and environment variables, in that order of precedence (ENV > File > Defaults),
// then validates the result.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps environment variable names (lowercased) to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_port":        "server.port",
	"http_host":        "server.host",
	"server_timeout":   "server.timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Recommendation source
	"spotify_api_url":               "spotify.api_url",
	"spotify_market":                "spotify.market",
	"spotify_timeout":               "spotify.timeout",
	"spotify_rps":                   "spotify.requests_per_second",
	"spotify_burst":                 "spotify.burst",
	"spotify_breaker_max_requests":  "spotify.breaker.max_requests",
	"spotify_breaker_interval":      "spotify.breaker.interval",
	"spotify_breaker_timeout":       "spotify.breaker.timeout",
	"spotify_breaker_min_requests":  "spotify.breaker.min_requests",
	"spotify_breaker_failure_ratio": "spotify.breaker.failure_ratio",

	// Snapshot store
	"store_backend":       "store.backend",
	"badger_path":         "store.badger_path",
	"backend_url":         "store.backend_url",
	"dynamodb_table":      "store.dynamodb_table",
	"dynamodb_region":     "store.dynamodb_region",
	"dynamodb_endpoint":   "store.dynamodb_endpoint",
	"store_write_timeout": "store.write_timeout",

	// Deck engine
	"deck_refill_threshold":     "deck.refill_threshold",
	"deck_enrich_concurrency":   "deck.enrich_concurrency",
	"deck_preview_cache_ttl":    "deck.preview_cache_ttl",
	"deck_session_idle_timeout": "deck.session_idle_timeout",

	// Engagement router
	"engage_enabled":        "engage.enabled",
	"engage_retry_max":      "engage.retry_max_retries",
	"engage_retry_interval": "engage.retry_initial_interval",
	"engage_close_timeout":  "engage.close_timeout",

	// Security
	"cors_origins":       "security.cors_origins",
	"rate_limit_reqs":    "security.rate_limit_reqs",
	"rate_limit_window":  "security.rate_limit_window",
	"disable_rate_limit": "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps an environment variable name to its koanf path.
// Unmapped variables return "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
