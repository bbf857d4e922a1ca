// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

// Package logging provides centralized zerolog-based structured logging for Discodeck.
//
// A single global logger is configured once at startup and shared by every
// component. Components derive child loggers with a "component" field, and
// request handlers log through Ctx(ctx) so correlation and request IDs are
// attached automatically.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Str("category", name).Msg("Session bootstrapped")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Snapshot write failed")
//
// # Adapters
//
// Two adapters route third-party logging into zerolog:
//
//   - NewSlogLogger for sutureslog (supervisor tree events)
//   - NewWatermillLogger for the engagement message router
//
// # Redaction
//
// Bearer tokens and user identifiers are never logged verbatim. Use
// RedactToken and RedactUserID when a value must appear in a log line.
package logging
