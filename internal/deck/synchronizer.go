// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package deck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/discodeck/internal/models"
	"github.com/tomtom215/discodeck/internal/store"
)

const defaultWriteTimeout = 10 * time.Second

// Synchronizer mirrors one session into a SnapshotStore.
//
// As a Sink its writes are synchronous but their errors are only logged:
// local state stays authoritative and the next write overwrites the
// affected slices anyway.
type Synchronizer struct {
	remote  store.SnapshotStore
	key     models.SessionKey
	timeout time.Duration
	logger  zerolog.Logger
}

var _ Sink = (*Synchronizer)(nil)

// NewSynchronizer creates a Synchronizer. Each write gets its own timeout.
func NewSynchronizer(remote store.SnapshotStore, key models.SessionKey, timeout time.Duration, logger zerolog.Logger) *Synchronizer {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	return &Synchronizer{remote: remote, key: key, timeout: timeout, logger: logger}
}

// DeckChanged implements Sink.
func (s *Synchronizer) DeckChanged(u models.DeckUpdate) {
	s.write("deck", func(ctx context.Context) error {
		return s.remote.WriteDeckAndUsed(ctx, s.key, u)
	})
}

// CardRemoved implements Sink.
func (s *Synchronizer) CardRemoved(u models.LeaveUpdate) {
	s.write("removal", func(ctx context.Context) error {
		return s.remote.WriteOnRemoval(ctx, s.key, u)
	})
}

// ArtistLiked implements Sink.
func (s *Synchronizer) ArtistLiked(m models.LikedMarker) {
	s.write("liked", func(ctx context.Context) error {
		return s.remote.WriteLikedMarker(ctx, s.key, m)
	})
}

func (s *Synchronizer) write(op string, fn func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		s.logger.Warn().Err(err).Str("op", op).Str("backend", s.remote.Name()).Msg("snapshot write failed")
	}
}

// Create starts the remote snapshot for a first-time session. A failure
// is logged; the session continues and later writes upsert the document.
func (s *Synchronizer) Create(ctx context.Context, buffer []string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.remote.CreateSnapshot(ctx, s.key, buffer); err != nil {
		s.logger.Warn().Err(err).Int("buffer_len", len(buffer)).Msg("create snapshot failed")
	}
}

// Load reads the saved snapshot and enriches every candidate whose preview
// is missing or empty, keeping order. Missing snapshots map to ErrSessionNotFound.
func (s *Synchronizer) Load(ctx context.Context, enricher *Enricher, concurrency int) (*models.Snapshot, error) {
	snap, err := s.remote.ReadSnapshot(ctx, s.key)
	if errors.Is(err, store.ErrSnapshotNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var missing []int
	for i := range snap.Artists {
		if !snap.Artists[i].HasPreview() {
			missing = append(missing, i)
		}
	}
	if len(missing) == 0 {
		return snap, nil
	}

	todo := make([]models.Artist, len(missing))
	for j, i := range missing {
		todo[j] = snap.Artists[i]
	}
	done := enricher.EnrichAll(ctx, todo, concurrency)
	for j, i := range missing {
		snap.Artists[i] = done[j]
	}

	s.logger.Debug().Int("backfilled", len(missing)).Msg("restored snapshot")
	return snap, nil
}
