// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

// Package main is the entry point for the discodeck server.
//
// Discodeck serves per-user artist discovery decks. Each deck is seeded from
// a list of artists or a playlist, grows through the recommendation graph's
// related-artist edges as the user swipes, and persists to a snapshot store
// so it can be resumed later.
//
// # Startup
//
//  1. Configuration: koanf v2 layering of defaults, config.yaml and env
//  2. Logging: zerolog, with a slog bridge for the supervisor
//  3. Snapshot store: memory, badger, the legacy backend, or DynamoDB
//  4. Recommendation source client with rate limit and circuit breaker
//  5. Engagement bus (optional): watermill router for follow and save actions
//  6. Session manager and HTTP API
//  7. Supervisor tree: eviction, engagement router, HTTP server
//
// # Example
//
//	export STORE_BACKEND=badger
//	export BADGER_PATH=/var/lib/discodeck
//	export CORS_ORIGINS=https://discodeck.example
//	./discodeck
//
// SIGINT and SIGTERM stop the HTTP server, close every session, wait for
// in-flight refills, and close the store.
package main
