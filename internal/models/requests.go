// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package models

// EngagementToggles are the user's settings for side effects of a like.
type EngagementToggles struct {
	FollowOnLike        bool `json:"follow_on_like"`
	FavOnLike           bool `json:"fav_on_like"`
	AddToPlaylistOnLike bool `json:"add_to_playlist_on_like"`
}

// Any reports whether at least one toggle is on.
func (t EngagementToggles) Any() bool {
	return t.FollowOnLike || t.FavOnLike || t.AddToPlaylistOnLike
}

// BootstrapRequest opens a deck session.
//
// A first-time session needs a seed source: either SeedBuffer or a
// PlaylistID whose tracks' lead artists become the buffer.
type BootstrapRequest struct {
	UserID           string            `json:"user_id" validate:"required,max=128"`
	CategoryName     string            `json:"category_name" validate:"required,max=128"`
	FirstTime        bool              `json:"first_time"`
	SeedBuffer       []string          `json:"seed_buffer" validate:"omitempty,max=1000,dive,spotifyid"`
	PlaylistID       string            `json:"playlist_id" validate:"omitempty,spotifyid"`
	TargetPlaylistID string            `json:"target_playlist_id" validate:"omitempty,spotifyid"`
	Engagement       EngagementToggles `json:"engagement"`
}

// HasSeedSource reports whether a first-time session can be seeded.
func (r *BootstrapRequest) HasSeedSource() bool {
	return len(r.SeedBuffer) > 0 || r.PlaylistID != ""
}

// SwipeRequest reports a swipe gesture on a card.
type SwipeRequest struct {
	ArtistID  string `json:"artist_id" validate:"required,spotifyid"`
	Direction string `json:"direction" validate:"required,oneof=left right"`
}

// LeaveRequest confirms a card has left the screen. StackDepth is the
// number of cards the client had on screen before removal; when omitted
// the logical deck length is used.
type LeaveRequest struct {
	ArtistID   string `json:"artist_id" validate:"required,spotifyid"`
	StackDepth *int   `json:"stack_depth,omitempty" validate:"omitempty,min=0,max=10000"`
}
