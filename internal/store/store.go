// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package store

import (
	"context"
	"errors"
	"slices"

	"github.com/tomtom215/discodeck/internal/models"
)

// ErrSnapshotNotFound is returned by ReadSnapshot when no deck was saved
// for the key.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// SnapshotStore is the persistent home of deck snapshots.
type SnapshotStore interface {
	// ReadSnapshot returns the saved deck or ErrSnapshotNotFound.
	ReadSnapshot(ctx context.Context, key models.SessionKey) (*models.Snapshot, error)

	// CreateSnapshot starts an empty deck seeded with buffer, replacing any
	// existing document for the key.
	CreateSnapshot(ctx context.Context, key models.SessionKey, buffer []string) error

	WriteDeckAndUsed(ctx context.Context, key models.SessionKey, update models.DeckUpdate) error
	WriteOnRemoval(ctx context.Context, key models.SessionKey, update models.LeaveUpdate) error
	WriteLikedMarker(ctx context.Context, key models.SessionKey, marker models.LikedMarker) error

	// Name identifies the backend in logs and metrics.
	Name() string
	Close() error
}

func newSnapshot(buffer []string) *models.Snapshot {
	return &models.Snapshot{
		Artists: []models.Artist{},
		Buffer:  append([]string{}, buffer...),
		Used:    []string{},
		Liked:   []string{},
		Visited: []string{},
	}
}

func applyDeckUpdate(s *models.Snapshot, u models.DeckUpdate) {
	s.Artists = slices.Clone(u.Artists)
	s.Used = slices.Clone(u.Used)
	s.LikedCount = u.LikedCount
}

func applyLeaveUpdate(s *models.Snapshot, u models.LeaveUpdate) {
	s.Visited = slices.Clone(u.Visited)
	s.Artists = slices.Clone(u.Artists)
}

// applyLikedMarker reports whether the snapshot changed.
func applyLikedMarker(s *models.Snapshot, m models.LikedMarker) bool {
	if slices.Contains(s.Liked, m.ArtistID) {
		return false
	}
	s.Liked = append(s.Liked, m.ArtistID)
	return true
}

func cloneSnapshot(s *models.Snapshot) *models.Snapshot {
	return &models.Snapshot{
		Artists:    slices.Clone(s.Artists),
		Buffer:     slices.Clone(s.Buffer),
		Used:       slices.Clone(s.Used),
		Liked:      slices.Clone(s.Liked),
		LikedCount: s.LikedCount,
		Visited:    slices.Clone(s.Visited),
	}
}
