// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package deck

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/tomtom215/discodeck/internal/logging"
	"github.com/tomtom215/discodeck/internal/models"
)

var errTransport = errors.New("connection reset by peer")

// fakeSource serves canned graph data and counts calls.
type fakeSource struct {
	mu          sync.Mutex
	related     map[string][]models.Artist
	relatedErr  map[string]error
	tracks      map[string][]models.Track
	tracksErr   map[string]error
	playlists   map[string][]string
	topCalls    map[string]int
	relatedHook func(seed string)
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		related:    make(map[string][]models.Artist),
		relatedErr: make(map[string]error),
		tracks:     make(map[string][]models.Track),
		tracksErr:  make(map[string]error),
		playlists:  make(map[string][]string),
		topCalls:   make(map[string]int),
	}
}

func (f *fakeSource) RelatedArtists(_ context.Context, id string) ([]models.Artist, error) {
	if f.relatedHook != nil {
		f.relatedHook(id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.relatedErr[id]; err != nil {
		return nil, err
	}
	return append([]models.Artist(nil), f.related[id]...), nil
}

func (f *fakeSource) TopTracks(_ context.Context, id string) ([]models.Track, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topCalls[id]++
	if err := f.tracksErr[id]; err != nil {
		return nil, err
	}
	return f.tracks[id], nil
}

func (f *fakeSource) PlaylistSeedArtists(_ context.Context, id string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids, ok := f.playlists[id]
	if !ok {
		return nil, errTransport
	}
	return ids, nil
}

func (f *fakeSource) topTrackCalls(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.topCalls[id]
}

// setRelated registers neighbors for seed, each with an image and a
// previewable top track.
func (f *fakeSource) setRelated(seed string, neighborIDs ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []models.Artist
	for _, id := range neighborIDs {
		list = append(list, artist(id))
		if _, ok := f.tracks[id]; !ok {
			f.tracks[id] = []models.Track{track(id+"-t1", "https://p/"+id)}
		}
	}
	f.related[seed] = list
}

func artist(id string) models.Artist {
	return models.Artist{ID: id, Name: "Artist " + id, Images: []models.Image{{URL: "https://img/" + id}}}
}

func artists(ids ...string) []models.Artist {
	out := make([]models.Artist, len(ids))
	for i, id := range ids {
		out[i] = artist(id)
	}
	return out
}

func track(id, preview string) models.Track {
	t := models.Track{ID: id, Name: "Track " + id}
	if preview != "" {
		t.PreviewURL = models.StringPtr(preview)
	}
	return t
}

// recordingSink captures sink calls in order.
type recordingSink struct {
	mu     sync.Mutex
	events []string
	decks  []models.DeckUpdate
	leaves []models.LeaveUpdate
	likes  []string
}

func (r *recordingSink) DeckChanged(u models.DeckUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "deck")
	r.decks = append(r.decks, u)
}

func (r *recordingSink) CardRemoved(u models.LeaveUpdate) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "removed")
	r.leaves = append(r.leaves, u)
}

func (r *recordingSink) ArtistLiked(m models.LikedMarker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "liked")
	r.likes = append(r.likes, m.ArtistID)
}

func (r *recordingSink) eventLog() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return strings.Join(r.events, ",")
}

// recordingPublisher captures like events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []models.LikeEvent
}

func (p *recordingPublisher) PublishLike(_ context.Context, e models.LikeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

func idsOf(list []models.Artist) string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return strings.Join(out, ",")
}

func checkIDs(t *testing.T, field string, got []models.Artist, want string) {
	t.Helper()
	if g := idsOf(got); g != want {
		t.Errorf("%s = [%s], want [%s]", field, g, want)
	}
}

func checkStrings(t *testing.T, field string, got []string, want string) {
	t.Helper()
	if g := strings.Join(got, ","); g != want {
		t.Errorf("%s = [%s], want [%s]", field, g, want)
	}
}

func checkNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func checkNoDuplicates(t *testing.T, deck []models.Artist) {
	t.Helper()
	seen := make(map[string]bool, len(deck))
	for _, a := range deck {
		if seen[a.ID] {
			t.Fatalf("duplicate id %s in deck [%s]", a.ID, idsOf(deck))
		}
		seen[a.ID] = true
	}
}

var testLogger = logging.Nop()
