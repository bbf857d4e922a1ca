// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package store

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/discodeck/internal/models"
)

const deckKeyPrefix = "deck:"

// BadgerStore keeps each snapshot as a JSON document in BadgerDB.
// Read-modify-write updates run inside one transaction; badger retries
// are surfaced as badger.ErrConflict.
type BadgerStore struct {
	db     *badger.DB
	ownsDB bool
}

// OpenBadgerStore opens (or creates) a database at path. An empty path
// opens an in-memory database.
func OpenBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for snapshots: %w", err)
	}
	return &BadgerStore{db: db, ownsDB: true}, nil
}

// NewBadgerStore wraps an existing database. Close leaves db open.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// deckKey query-escapes both parts so ':' inside a user or category can
// never collide with the separator.
func deckKey(key models.SessionKey) []byte {
	return []byte(deckKeyPrefix + url.QueryEscape(key.UserID) + ":" + url.QueryEscape(key.Category))
}

// ReadSnapshot implements SnapshotStore.
func (s *BadgerStore) ReadSnapshot(_ context.Context, key models.SessionKey) (*models.Snapshot, error) {
	var snap *models.Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		snap, err = getSnapshot(txn, key)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// CreateSnapshot implements SnapshotStore.
func (s *BadgerStore) CreateSnapshot(_ context.Context, key models.SessionKey, buffer []string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return putSnapshot(txn, key, newSnapshot(buffer))
	})
}

// WriteDeckAndUsed implements SnapshotStore.
func (s *BadgerStore) WriteDeckAndUsed(_ context.Context, key models.SessionKey, u models.DeckUpdate) error {
	return s.modify(key, func(snap *models.Snapshot) bool {
		applyDeckUpdate(snap, u)
		return true
	})
}

// WriteOnRemoval implements SnapshotStore.
func (s *BadgerStore) WriteOnRemoval(_ context.Context, key models.SessionKey, u models.LeaveUpdate) error {
	return s.modify(key, func(snap *models.Snapshot) bool {
		applyLeaveUpdate(snap, u)
		return true
	})
}

// WriteLikedMarker implements SnapshotStore.
func (s *BadgerStore) WriteLikedMarker(_ context.Context, key models.SessionKey, m models.LikedMarker) error {
	return s.modify(key, func(snap *models.Snapshot) bool {
		return applyLikedMarker(snap, m)
	})
}

// Name implements SnapshotStore.
func (s *BadgerStore) Name() string { return "badger" }

// Close closes the database if this store opened it.
func (s *BadgerStore) Close() error {
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}

// modify loads the snapshot (or starts an empty one), applies fn and
// writes the result back when fn reports a change.
func (s *BadgerStore) modify(key models.SessionKey, fn func(*models.Snapshot) bool) error {
	return s.db.Update(func(txn *badger.Txn) error {
		snap, err := getSnapshot(txn, key)
		if errors.Is(err, ErrSnapshotNotFound) {
			snap = newSnapshot(nil)
		} else if err != nil {
			return err
		}
		if !fn(snap) {
			return nil
		}
		return putSnapshot(txn, key, snap)
	})
}

func getSnapshot(txn *badger.Txn, key models.SessionKey) (*models.Snapshot, error) {
	item, err := txn.Get(deckKey(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &snap)
	}); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func putSnapshot(txn *badger.Txn, key models.SessionKey, snap *models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := txn.Set(deckKey(key), data); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}
