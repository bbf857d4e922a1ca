// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package config

import (
	"fmt"
	"net/url"
	"slices"
)

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSpotify(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateDeck(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("SERVER_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateSpotify() error {
	u, err := url.Parse(c.Spotify.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SPOTIFY_API_URL must be an absolute URL, got %q", c.Spotify.APIURL)
	}
	if c.Spotify.Timeout <= 0 {
		return fmt.Errorf("SPOTIFY_TIMEOUT must be positive")
	}
	if c.Spotify.RequestsPerSecond <= 0 || c.Spotify.Burst < 1 {
		return fmt.Errorf("SPOTIFY_RPS must be positive and SPOTIFY_BURST at least 1")
	}
	b := c.Spotify.Breaker
	if b.FailureRatio <= 0 || b.FailureRatio > 1 {
		return fmt.Errorf("spotify.breaker.failure_ratio must be in (0, 1], got %v", b.FailureRatio)
	}
	if b.MaxRequests == 0 {
		return fmt.Errorf("spotify.breaker.max_requests must be at least 1")
	}
	return nil
}

func (c *Config) validateStore() error {
	switch c.Store.Backend {
	case StoreMemory:
	case StoreBadger:
		if c.Store.BadgerPath == "" {
			return fmt.Errorf("BADGER_PATH is required when STORE_BACKEND=badger")
		}
	case StoreBackend:
		u, err := url.Parse(c.Store.BackendURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("BACKEND_URL must be an absolute URL when STORE_BACKEND=backend, got %q", c.Store.BackendURL)
		}
	case StoreDynamoDB:
		if c.Store.DynamoDBTable == "" {
			return fmt.Errorf("DYNAMODB_TABLE is required when STORE_BACKEND=dynamodb")
		}
		if c.Store.DynamoDBRegion == "" {
			return fmt.Errorf("DYNAMODB_REGION is required when STORE_BACKEND=dynamodb")
		}
	default:
		return fmt.Errorf("STORE_BACKEND must be one of memory, badger, backend, dynamodb; got %q", c.Store.Backend)
	}
	if c.Store.WriteTimeout <= 0 {
		return fmt.Errorf("STORE_WRITE_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDeck() error {
	if c.Deck.RefillThreshold < 0 {
		return fmt.Errorf("DECK_REFILL_THRESHOLD must not be negative, got %d", c.Deck.RefillThreshold)
	}
	if c.Deck.EnrichConcurrency < 1 {
		return fmt.Errorf("DECK_ENRICH_CONCURRENCY must be at least 1, got %d", c.Deck.EnrichConcurrency)
	}
	if c.Deck.PreviewCacheTTL < 0 {
		return fmt.Errorf("DECK_PREVIEW_CACHE_TTL must not be negative")
	}
	if c.Deck.SessionIdleTimeout < 0 {
		return fmt.Errorf("DECK_SESSION_IDLE_TIMEOUT must not be negative")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Server.IsProduction() && slices.Contains(c.Security.CORSOrigins, "*") {
		return fmt.Errorf("CORS_ORIGINS must not contain '*' in production")
	}
	if !c.Security.RateLimitDisabled && (c.Security.RateLimitReqs < 1 || c.Security.RateLimitWindow <= 0) {
		return fmt.Errorf("RATE_LIMIT_REQS and RATE_LIMIT_WINDOW must be positive unless DISABLE_RATE_LIMIT is set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error; got %q", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
