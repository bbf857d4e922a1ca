// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package deck

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/discodeck/internal/config"
	"github.com/tomtom215/discodeck/internal/metrics"
	"github.com/tomtom215/discodeck/internal/models"
	"github.com/tomtom215/discodeck/internal/store"
)

// ManagerDeps are the shared collaborators of all sessions.
type ManagerDeps struct {
	Upstream  UpstreamFactory
	Remote    store.SnapshotStore
	Publisher LikePublisher
	Previews  *PreviewCache
	Deck      config.DeckConfig
	Store     config.StoreConfig
	Logger    zerolog.Logger
}

// Manager keeps the live sessions, one per (user, category).
type Manager struct {
	deps ManagerDeps

	mu       sync.RWMutex
	sessions map[models.SessionKey]*Session
}

// NewManager creates an empty manager.
func NewManager(deps ManagerDeps) *Manager {
	return &Manager{
		deps:     deps,
		sessions: make(map[models.SessionKey]*Session),
	}
}

// Bootstrap opens a session, replacing any live session for the same key.
// A first-time request creates the snapshot from its seed buffer or
// playlist; otherwise the saved snapshot is resumed.
func (m *Manager) Bootstrap(ctx context.Context, req models.BootstrapRequest, token string) (*Session, error) {
	key := models.SessionKey{UserID: req.UserID, Category: req.CategoryName}
	upstream := m.deps.Upstream(token)
	cfg := m.sessionConfig(key, upstream, req, token)

	var (
		s   *Session
		err error
	)
	if req.FirstTime {
		var buffer []string
		buffer, err = m.seedBuffer(ctx, upstream, req)
		if err != nil {
			return nil, err
		}
		s, err = StartFirstTime(ctx, cfg, buffer)
	} else {
		s, err = Resume(ctx, cfg)
	}
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	old := m.sessions[key]
	m.sessions[key] = s
	n := len(m.sessions)
	m.mu.Unlock()

	if old != nil {
		old.Close()
	}
	metrics.SetActiveSessions(n)
	cfg.Logger.Info().Bool("first_time", req.FirstTime).Int("deck_len", s.Store().Len()).Msg("session started")
	return s, nil
}

func (m *Manager) sessionConfig(key models.SessionKey, upstream Upstream, req models.BootstrapRequest, token string) SessionConfig {
	return SessionConfig{
		Key:       key,
		Source:    upstream,
		Remote:    m.deps.Remote,
		Publisher: m.deps.Publisher,
		Previews:  m.deps.Previews,
		Engagement: Engagement{
			Toggles:    req.Engagement,
			PlaylistID: req.TargetPlaylistID,
			Token:      token,
		},
		RefillThreshold:   m.deps.Deck.RefillThreshold,
		EnrichConcurrency: m.deps.Deck.EnrichConcurrency,
		WriteTimeout:      m.deps.Store.WriteTimeout,
		Logger: m.deps.Logger.With().
			Str("session", key.String()).
			Logger(),
	}
}

// seedBuffer returns the explicit buffer, or the lead artist of each
// playlist track.
func (m *Manager) seedBuffer(ctx context.Context, upstream Upstream, req models.BootstrapRequest) ([]string, error) {
	if !req.HasSeedSource() {
		return nil, ErrNoSeedSource
	}
	if len(req.SeedBuffer) > 0 {
		return req.SeedBuffer, nil
	}

	buffer, err := upstream.PlaylistSeedArtists(ctx, req.PlaylistID)
	if err != nil {
		return nil, fmt.Errorf("playlist %s: %w: %w", req.PlaylistID, ErrReauthenticate, err)
	}
	return buffer, nil
}

// Get returns the live session for key.
func (m *Manager) Get(key models.SessionKey) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// CurrentArtist returns the top card of the live session, or of the saved
// snapshot when no session is live.
func (m *Manager) CurrentArtist(ctx context.Context, key models.SessionKey) (*models.Artist, error) {
	if s, err := m.Get(key); err == nil {
		top, ok := s.Store().Top()
		if !ok {
			return nil, nil
		}
		return &top, nil
	}

	snap, err := m.deps.Remote.ReadSnapshot(ctx, key)
	if errors.Is(err, store.ErrSnapshotNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if len(snap.Artists) == 0 {
		return nil, nil
	}
	top := snap.Artists[len(snap.Artists)-1]
	return &top, nil
}

// Close ends the live session for key.
func (m *Manager) Close(key models.SessionKey) error {
	m.mu.Lock()
	s, ok := m.sessions[key]
	delete(m.sessions, key)
	n := len(m.sessions)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	s.Close()
	metrics.SetActiveSessions(n)
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// EvictIdle closes sessions inactive for longer than maxIdle.
func (m *Manager) EvictIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	var idle []*Session
	for key, s := range m.sessions {
		if s.LastActive().Before(cutoff) {
			idle = append(idle, s)
			delete(m.sessions, key)
		}
	}
	n := len(m.sessions)
	m.mu.Unlock()

	for _, s := range idle {
		s.Close()
	}
	if len(idle) > 0 {
		metrics.SetActiveSessions(n)
		m.deps.Logger.Info().Int("evicted", len(idle)).Msg("evicted idle sessions")
	}
	return len(idle)
}

// Shutdown closes every session and waits for in-flight passes, or until
// ctx is done.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for key, s := range m.sessions {
		all = append(all, s)
		delete(m.sessions, key)
	}
	m.mu.Unlock()
	metrics.SetActiveSessions(0)

	done := make(chan struct{})
	go func() {
		for _, s := range all {
			s.Close()
			s.Wait()
		}
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
