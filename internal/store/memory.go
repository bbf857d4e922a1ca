// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package store

import (
	"context"
	"sync"

	"github.com/tomtom215/discodeck/internal/models"
)

// MemoryStore keeps snapshots in a map. Contents are lost on restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[models.SessionKey]*models.Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[models.SessionKey]*models.Snapshot)}
}

// ReadSnapshot returns a copy of the saved snapshot.
func (m *MemoryStore) ReadSnapshot(_ context.Context, key models.SessionKey) (*models.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.data[key]
	if !ok {
		return nil, ErrSnapshotNotFound
	}
	return cloneSnapshot(s), nil
}

// CreateSnapshot stores a fresh snapshot for key.
func (m *MemoryStore) CreateSnapshot(_ context.Context, key models.SessionKey, buffer []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = newSnapshot(buffer)
	return nil
}

// WriteDeckAndUsed replaces the deck, used list and liked cursor.
func (m *MemoryStore) WriteDeckAndUsed(_ context.Context, key models.SessionKey, u models.DeckUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	applyDeckUpdate(m.getOrCreate(key), u)
	return nil
}

// WriteOnRemoval replaces the visited list and deck.
func (m *MemoryStore) WriteOnRemoval(_ context.Context, key models.SessionKey, u models.LeaveUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	applyLeaveUpdate(m.getOrCreate(key), u)
	return nil
}

// WriteLikedMarker adds the artist to the liked list once.
func (m *MemoryStore) WriteLikedMarker(_ context.Context, key models.SessionKey, marker models.LikedMarker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	applyLikedMarker(m.getOrCreate(key), marker)
	return nil
}

// Len returns the number of stored snapshots.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Name implements SnapshotStore.
func (m *MemoryStore) Name() string { return "memory" }

// Close implements SnapshotStore.
func (m *MemoryStore) Close() error { return nil }

// getOrCreate must be called with mu held.
func (m *MemoryStore) getOrCreate(key models.SessionKey) *models.Snapshot {
	s, ok := m.data[key]
	if !ok {
		s = newSnapshot(nil)
		m.data[key] = s
	}
	return s
}
