// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package deck

import "errors"

var (
	// ErrReauthenticate means the recommendation source rejected or failed
	// a related-artists request. The user has to log in again.
	ErrReauthenticate = errors.New("recommendation source unavailable, re-authentication required")

	// ErrSessionNotFound means neither a live session nor a saved snapshot
	// exists for the key.
	ErrSessionNotFound = errors.New("session not found")

	// ErrDiscardPending is returned while a discarded card has not yet
	// confirmed that it left the screen.
	ErrDiscardPending = errors.New("discard pending")

	// ErrSessionClosed is returned by operations on a closed session.
	ErrSessionClosed = errors.New("session closed")

	// ErrCardNotFound is returned for swipes on ids that are not on the deck.
	ErrCardNotFound = errors.New("card not found")

	// ErrNoSeedSource is returned when a first-time bootstrap has neither
	// a seed buffer nor a playlist.
	ErrNoSeedSource = errors.New("first-time session needs seed_buffer or playlist_id")
)
