// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package deck

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/discodeck/internal/models"
	"github.com/tomtom215/discodeck/internal/store"
)

// SessionConfig carries the tunables and collaborators of one session.
type SessionConfig struct {
	Key               models.SessionKey
	Source            Source
	Remote            store.SnapshotStore
	Publisher         LikePublisher
	Previews          *PreviewCache
	Engagement        Engagement
	RefillThreshold   int
	EnrichConcurrency int
	WriteTimeout      time.Duration
	Logger            zerolog.Logger
}

// Session wires the deck components for one (user, category).
type Session struct {
	key      models.SessionKey
	store    *Store
	enricher *Enricher
	fetcher  *Fetcher
	refill   *RefillPolicy
	consumer *SwipeConsumer
	logger   zerolog.Logger

	wg         sync.WaitGroup
	reauth     atomic.Bool
	closed     atomic.Bool
	lastActive atomic.Int64
}

func newSession(cfg SessionConfig, syncer *Synchronizer, snap *models.Snapshot) *Session {
	s := &Session{
		key:    cfg.Key,
		logger: cfg.Logger,
	}
	s.store = NewStore(syncer, snap)
	s.enricher = NewEnricher(cfg.Source, cfg.Previews, cfg.Logger)
	s.fetcher = NewFetcher(cfg.Source, s.enricher, s.store, cfg.EnrichConcurrency, cfg.Logger)
	s.refill = NewRefillPolicy(s.store, s.fetcher.FetchNeighbors, cfg.RefillThreshold, &s.wg, s.onPassError, cfg.Logger)
	s.consumer = NewSwipeConsumer(cfg.Key, s.store, s.refill, cfg.Publisher, cfg.Engagement, cfg.Logger)
	s.touch()
	return s
}

// StartFirstTime creates the remote snapshot from buffer and fills the
// deck from the first seed with neighbors.
func StartFirstTime(ctx context.Context, cfg SessionConfig, buffer []string) (*Session, error) {
	syncer := NewSynchronizer(cfg.Remote, cfg.Key, cfg.WriteTimeout, cfg.Logger)
	syncer.Create(ctx, buffer)

	s := newSession(cfg, syncer, &models.Snapshot{Buffer: buffer})
	if err := s.refill.Prime(ctx); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Resume restores a session from the remote snapshot.
func Resume(ctx context.Context, cfg SessionConfig) (*Session, error) {
	syncer := NewSynchronizer(cfg.Remote, cfg.Key, cfg.WriteTimeout, cfg.Logger)
	enricher := NewEnricher(cfg.Source, cfg.Previews, cfg.Logger)

	snap, err := syncer.Load(ctx, enricher, cfg.EnrichConcurrency)
	if err != nil {
		return nil, err
	}
	return newSession(cfg, syncer, snap), nil
}

// Key returns the session key.
func (s *Session) Key() models.SessionKey { return s.key }

// Store exposes the deck store for read access.
func (s *Session) Store() *Store { return s.store }

// NeedsReauth reports whether a background refill hit ErrReauthenticate.
func (s *Session) NeedsReauth() bool { return s.reauth.Load() }

// LastActive returns the time of the last operation.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// View returns the client-facing deck state.
func (s *Session) View() models.DeckView {
	snap := s.store.Snapshot()
	view := models.DeckView{
		CategoryName: s.key.Category,
		Artists:      snap.Artists,
		Liked:        snap.Liked,
		Used:         snap.Used,
		VisitedCount: len(snap.Visited),
		NeedsReauth:  s.NeedsReauth(),
	}
	if n := len(snap.Artists); n > 0 {
		top := snap.Artists[n-1]
		view.Top = &top
	}
	return view
}

// Swipe applies a gesture to the card id.
func (s *Session) Swipe(ctx context.Context, id, direction string) (CardState, error) {
	if err := s.check(); err != nil {
		return StatePresented, err
	}
	return s.consumer.Swipe(ctx, id, direction)
}

// Discard applies the discard control to the top-most presented card.
func (s *Session) Discard(ctx context.Context) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}
	return s.consumer.Discard(ctx)
}

// Leave confirms that id left the screen. A nil stackDepth uses the
// logical deck length.
func (s *Session) Leave(ctx context.Context, id string, stackDepth *int) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	var probe DepthProbe = LogicalDepth{Store: s.store}
	if stackDepth != nil {
		probe = FixedDepth(*stackDepth)
	}
	return s.consumer.Leave(ctx, id, probe), nil
}

// State returns the card state of id.
func (s *Session) State(id string) CardState {
	return s.consumer.State(id)
}

// Wait blocks until all in-flight refill passes finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close stops accepting operations. In-flight passes finish but their
// merges are dropped.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	s.store.Close()
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool { return s.closed.Load() }

func (s *Session) check() error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if s.reauth.Load() {
		return ErrReauthenticate
	}
	s.touch()
	return nil
}

func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

func (s *Session) onPassError(err error) {
	if errors.Is(err, ErrReauthenticate) && !s.reauth.Swap(true) {
		s.logger.Warn().Err(err).Msg("refill needs re-authentication")
	}
}
