// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

// Package config loads Discodeck configuration with Koanf v2.
//
// Sources are layered, later ones overriding earlier ones:
//
//  1. Built-in defaults (defaultConfig)
//  2. Optional YAML file: $CONFIG_PATH, ./config.yaml, /etc/discodeck/config.yaml
//  3. Environment variables, through an explicit mapping table
//
// Only mapped environment variables are read; anything else in the process
// environment is ignored.
//
// # Environment Variables
//
//	HTTP_PORT, HTTP_HOST, SERVER_TIMEOUT, SHUTDOWN_TIMEOUT, ENVIRONMENT
//	SPOTIFY_API_URL, SPOTIFY_MARKET, SPOTIFY_TIMEOUT, SPOTIFY_RPS, SPOTIFY_BURST
//	STORE_BACKEND (memory|badger|backend|dynamodb), BADGER_PATH, BACKEND_URL
//	DYNAMODB_TABLE, DYNAMODB_REGION, DYNAMODB_ENDPOINT, STORE_WRITE_TIMEOUT
//	DECK_REFILL_THRESHOLD, DECK_ENRICH_CONCURRENCY, DECK_PREVIEW_CACHE_TTL
//	ENGAGE_ENABLED, ENGAGE_RETRY_MAX, ENGAGE_CLOSE_TIMEOUT
//	CORS_ORIGINS, RATE_LIMIT_REQS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT
//	LOG_LEVEL, LOG_FORMAT, LOG_CALLER
package config
