// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

// Package cache provides a thread-safe in-memory TTL cache.
//
// The deck enricher uses it to memoize top-track lookups per artist id, so
// that an artist seen again in another category or after a resume does not
// cost another round trip to the recommendation source.
package cache
