// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package models

import "time"

// TopicArtistLiked carries LikeEvent payloads.
const TopicArtistLiked = "artist.liked"

// LikeEvent is published when a card is accepted and at least one
// engagement toggle is on. Token is the user's recommendation-source
// bearer token and must never be logged.
type LikeEvent struct {
	UserID     string            `json:"user_id"`
	Category   string            `json:"category"`
	ArtistID   string            `json:"artist_id"`
	TrackID    *string           `json:"track_id"`
	PlaylistID string            `json:"playlist_id,omitempty"`
	Toggles    EngagementToggles `json:"toggles"`
	Token      string            `json:"token"`
	LikedAt    time.Time         `json:"liked_at"`
}
