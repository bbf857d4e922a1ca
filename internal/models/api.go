// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package models

import "time"

// APIResponse is the standard envelope for every HTTP response.
//
// Example success:
//
//	{"status":"success","data":{...},"metadata":{"timestamp":"2026-01-01T00:00:00Z"}}
//
// Example error:
//
//	{"status":"error","data":null,"metadata":{...},"error":{"code":"REAUTHENTICATE","message":"..."}}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a machine-readable error.
//
// Codes used by the API:
//   - VALIDATION_ERROR: malformed request body or parameters
//   - REAUTHENTICATE: the recommendation source rejected the token; log in again
//   - SESSION_NOT_FOUND: no live session and no stored snapshot
//   - DISCARD_PENDING: a discard is already waiting for its leave event
//   - CARD_NOT_FOUND: the artist is not on the deck
//   - INTERNAL_ERROR: anything else
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// DeckView is the client-facing state of a session.
type DeckView struct {
	CategoryName string   `json:"category_name"`
	Artists      []Artist `json:"artists"`
	Top          *Artist  `json:"top"`
	Liked        []string `json:"liked"`
	Used         []string `json:"used"`
	VisitedCount int      `json:"visited_count"`
	NeedsReauth  bool     `json:"needs_reauth"`
}

// SwipeResult reports the card state after a swipe or discard.
type SwipeResult struct {
	ArtistID string `json:"artist_id"`
	State    string `json:"state"`
}

// HealthStatus is returned by the health endpoints.
type HealthStatus struct {
	Status         string `json:"status"`
	Version        string `json:"version"`
	ActiveSessions int    `json:"active_sessions"`
	StoreBackend   string `json:"store_backend"`
}

// LeaveResult reports whether a leave event removed a card.
type LeaveResult struct {
	ArtistID string   `json:"artist_id"`
	Removed  bool     `json:"removed"`
	Deck     DeckView `json:"deck"`
}
