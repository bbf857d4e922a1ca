// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package models

import "fmt"

// SessionKey identifies one user's deck for one category.
type SessionKey struct {
	UserID   string
	Category string
}

// String renders the key for logs and map lookups.
func (k SessionKey) String() string {
	return fmt.Sprintf("%s/%s", k.UserID, k.Category)
}

// Snapshot is the persisted state of a deck.
//
// Artists is ordered bottom-to-top: the last element is the visible card.
// Buffer holds playlist-derived seed ids in the order they are consumed.
// Used, Liked and Visited have set semantics but keep insertion order.
type Snapshot struct {
	Artists    []Artist `json:"artists" dynamodbav:"artists"`
	Buffer     []string `json:"buffer" dynamodbav:"buffer"`
	Used       []string `json:"used" dynamodbav:"used"`
	Liked      []string `json:"liked" dynamodbav:"liked"`
	LikedCount int      `json:"liked_count" dynamodbav:"liked_count"`
	Visited    []string `json:"visited" dynamodbav:"visited"`
}

// CardHandle is a placeholder for a presentation-side card handle. One is
// written per card so the stored document keeps the shape clients expect.
type CardHandle struct {
	Current *string `json:"current" dynamodbav:"current"`
}

// CardHandles returns n empty card handles.
func CardHandles(n int) []CardHandle {
	return make([]CardHandle, n)
}

// DeckUpdate is written after every merge: the new deck and used list.
// LikedCount carries the liked cursor so a resumed session skips liked
// artists that already seeded a refill.
type DeckUpdate struct {
	Artists    []Artist     `json:"artists"`
	Used       []string     `json:"used"`
	ChildRefs  []CardHandle `json:"child_refs"`
	LikedCount int          `json:"liked_count"`
}

// LeaveUpdate is written after a card leaves the screen.
type LeaveUpdate struct {
	Visited []string `json:"visited"`
	Artists []Artist `json:"artists"`
}

// LikedMarker records one liked artist.
type LikedMarker struct {
	ArtistID string `json:"artist_id"`
}
