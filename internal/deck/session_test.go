// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package deck

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/discodeck/internal/config"
	"github.com/tomtom215/discodeck/internal/models"
	"github.com/tomtom215/discodeck/internal/store"
)

func newTestManager(src *fakeSource, remote store.SnapshotStore, pub LikePublisher) *Manager {
	return NewManager(ManagerDeps{
		Upstream:  func(string) Upstream { return src },
		Remote:    remote,
		Publisher: pub,
		Deck: config.DeckConfig{
			RefillThreshold:   DefaultRefillThreshold,
			EnrichConcurrency: 2,
		},
		Store:  config.StoreConfig{WriteTimeout: time.Second},
		Logger: testLogger,
	})
}

func firstTimeRequest(buffer ...string) models.BootstrapRequest {
	return models.BootstrapRequest{
		UserID:       "u1",
		CategoryName: "dream pop",
		FirstTime:    true,
		SeedBuffer:   buffer,
	}
}

func TestFirstTimeBootstrap(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.setRelated("S2", "N1", "N2")
	remote := store.NewMemoryStore()
	m := newTestManager(src, remote, nil)

	s, err := m.Bootstrap(context.Background(), firstTimeRequest("S1", "S2", "S3"), "tok")
	checkNoError(t, err)

	checkIDs(t, "deck", s.Store().Deck(), "N1,N2")

	snap, err := remote.ReadSnapshot(context.Background(), s.Key())
	checkNoError(t, err)
	checkStrings(t, "stored buffer", snap.Buffer, "S1,S2,S3")
	checkStrings(t, "stored used", snap.Used, "S2")
	checkIDs(t, "stored artists", snap.Artists, "N1,N2")
}

func TestFirstTimeBootstrapFromPlaylist(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.playlists["PL"] = []string{"S1"}
	src.setRelated("S1", "N1")
	m := newTestManager(src, store.NewMemoryStore(), nil)

	req := firstTimeRequest()
	req.PlaylistID = "PL"
	s, err := m.Bootstrap(context.Background(), req, "tok")
	checkNoError(t, err)
	checkStrings(t, "buffer", s.Store().Snapshot().Buffer, "S1")

	req.PlaylistID = ""
	if _, err := m.Bootstrap(context.Background(), req, "tok"); !errors.Is(err, ErrNoSeedSource) {
		t.Errorf("expected ErrNoSeedSource, got %v", err)
	}
}

func TestFirstTimeBootstrapReauth(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.relatedErr["S1"] = errTransport
	m := newTestManager(src, store.NewMemoryStore(), nil)

	_, err := m.Bootstrap(context.Background(), firstTimeRequest("S1"), "tok")
	if !errors.Is(err, ErrReauthenticate) {
		t.Fatalf("expected ErrReauthenticate, got %v", err)
	}
	if m.Len() != 0 {
		t.Error("failed bootstrap must not register a session")
	}
}

func TestResumeRoundTrip(t *testing.T) {
	t.Parallel()

	remote := store.NewMemoryStore()
	ctx := context.Background()
	key := models.SessionKey{UserID: "u1", Category: "dream pop"}

	x := artist("X")
	x.TrackPreview = models.StringPtr("https://p/X-stored")
	checkNoError(t, remote.CreateSnapshot(ctx, key, []string{"B1"}))
	checkNoError(t, remote.WriteDeckAndUsed(ctx, key, models.DeckUpdate{
		Artists: []models.Artist{x, artist("Y")},
		Used:    []string{"Z"},
	}))

	src := newFakeSource()
	src.tracks["Y"] = []models.Track{track("y1", "https://p/Y")}
	m := newTestManager(src, remote, nil)

	s, err := m.Bootstrap(ctx, models.BootstrapRequest{UserID: "u1", CategoryName: "dream pop"}, "tok")
	checkNoError(t, err)

	snap := s.Store().Snapshot()
	checkIDs(t, "deck", snap.Artists, "X,Y")
	checkStrings(t, "used", snap.Used, "Z")
	checkStrings(t, "buffer", snap.Buffer, "B1")
	if len(snap.Liked) != 0 || snap.LikedCount != 0 || len(snap.Visited) != 0 {
		t.Errorf("unexpected bookkeeping: %+v", snap)
	}

	if strOrNil(snap.Artists[0].TrackPreview) != "https://p/X-stored" {
		t.Error("stored preview must be kept")
	}
	if strOrNil(snap.Artists[1].TrackPreview) != "https://p/Y" {
		t.Error("missing preview should be backfilled")
	}
	if src.topTrackCalls("X") != 0 {
		t.Error("enriched candidates must not be looked up again")
	}
}

func TestResumeMissingSnapshot(t *testing.T) {
	t.Parallel()

	m := newTestManager(newFakeSource(), store.NewMemoryStore(), nil)
	_, err := m.Bootstrap(context.Background(), models.BootstrapRequest{UserID: "u1", CategoryName: "none"}, "tok")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionRefillFlow(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.setRelated("S1", "N1", "N2", "N3")
	src.setRelated("N3", "M1", "M2")
	remote := store.NewMemoryStore()
	m := newTestManager(src, remote, nil)
	ctx := context.Background()

	s, err := m.Bootstrap(ctx, firstTimeRequest("S1"), "tok")
	checkNoError(t, err)

	_, err = s.Swipe(ctx, "N3", DirectionRight)
	checkNoError(t, err)
	_, err = s.Leave(ctx, "N3", nil)
	checkNoError(t, err)
	s.Wait()

	// Liked N3 seeds the refill; the hint keeps depth-1 = 2 cards.
	checkIDs(t, "deck", s.Store().Deck(), "M1,M2,N1,N2")

	stored, err := remote.ReadSnapshot(ctx, s.Key())
	checkNoError(t, err)
	checkIDs(t, "stored deck", stored.Artists, "M1,M2,N1,N2")
	checkStrings(t, "stored used", stored.Used, "S1,N3")
	checkStrings(t, "stored liked", stored.Liked, "N3")
	checkStrings(t, "stored visited", stored.Visited, "N3")

	view := s.View()
	if view.Top == nil || view.Top.ID != "N2" || view.VisitedCount != 1 {
		t.Errorf("unexpected view: top=%v visited=%d", view.Top, view.VisitedCount)
	}
}

func TestSessionLatchesReauth(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.setRelated("S1", "N1")
	m := newTestManager(src, store.NewMemoryStore(), nil)
	ctx := context.Background()

	s, err := m.Bootstrap(ctx, firstTimeRequest("S1", "S2"), "tok")
	checkNoError(t, err)

	src.mu.Lock()
	src.relatedErr["S2"] = errTransport
	src.mu.Unlock()

	_, err = s.Leave(ctx, "N1", nil)
	checkNoError(t, err)
	s.Wait()

	if !s.NeedsReauth() || !s.View().NeedsReauth {
		t.Fatal("session should need re-authentication")
	}
	if _, err := s.Swipe(ctx, "N1", DirectionLeft); !errors.Is(err, ErrReauthenticate) {
		t.Errorf("expected ErrReauthenticate, got %v", err)
	}
}

func TestClosedSessionDropsLateMerge(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.setRelated("S1", "N1")
	src.setRelated("S2", "M1")
	remote := store.NewMemoryStore()
	m := newTestManager(src, remote, nil)
	ctx := context.Background()

	s, err := m.Bootstrap(ctx, firstTimeRequest("S1", "S2"), "tok")
	checkNoError(t, err)

	release := make(chan struct{})
	src.relatedHook = func(seed string) {
		if seed == "S2" {
			<-release
		}
	}

	_, err = s.Leave(ctx, "N1", nil)
	checkNoError(t, err)
	checkNoError(t, m.Close(s.Key()))
	close(release)
	s.Wait()

	if s.Store().Len() != 0 {
		t.Errorf("late merge applied: %s", idsOf(s.Store().Deck()))
	}
	if _, err := s.Swipe(ctx, "M1", DirectionLeft); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed, got %v", err)
	}
	if _, err := m.Get(s.Key()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("closed session should be gone, got %v", err)
	}
}

func TestCurrentArtistFallsBackToSnapshot(t *testing.T) {
	t.Parallel()

	remote := store.NewMemoryStore()
	ctx := context.Background()
	key := models.SessionKey{UserID: "u9", Category: "ambient"}
	checkNoError(t, remote.WriteDeckAndUsed(ctx, key, models.DeckUpdate{Artists: artists("A", "B")}))

	m := newTestManager(newFakeSource(), remote, nil)
	top, err := m.CurrentArtist(ctx, key)
	checkNoError(t, err)
	if top == nil || top.ID != "B" {
		t.Errorf("top = %v, want B", top)
	}

	if _, err := m.CurrentArtist(ctx, models.SessionKey{UserID: "x", Category: "y"}); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestEvictIdle(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.setRelated("S1", "N1")
	m := newTestManager(src, store.NewMemoryStore(), nil)

	s, err := m.Bootstrap(context.Background(), firstTimeRequest("S1"), "tok")
	checkNoError(t, err)

	if n := m.EvictIdle(time.Hour); n != 0 {
		t.Errorf("evicted %d fresh sessions", n)
	}
	if n := m.EvictIdle(-time.Second); n != 1 {
		t.Errorf("evicted %d, want 1", n)
	}
	if !s.Closed() {
		t.Error("evicted session should be closed")
	}
}

func TestShutdownWaitsForPasses(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.setRelated("S1", "N1")
	m := newTestManager(src, store.NewMemoryStore(), nil)

	_, err := m.Bootstrap(context.Background(), firstTimeRequest("S1"), "tok")
	checkNoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	checkNoError(t, m.Shutdown(ctx))
	if m.Len() != 0 {
		t.Error("shutdown should drop all sessions")
	}
}
