// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/discodeck/internal/config"
	"github.com/tomtom215/discodeck/internal/deck"
	"github.com/tomtom215/discodeck/internal/logging"
	"github.com/tomtom215/discodeck/internal/models"
	"github.com/tomtom215/discodeck/internal/store"
)

var errUpstream = errors.New("upstream unavailable")

type fakeUpstream struct {
	mu      sync.Mutex
	related map[string][]models.Artist
	failing map[string]bool
	tokens  []string
}

func (f *fakeUpstream) RelatedArtists(_ context.Context, id string) ([]models.Artist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing[id] {
		return nil, errUpstream
	}
	return append([]models.Artist(nil), f.related[id]...), nil
}

func (f *fakeUpstream) TopTracks(context.Context, string) ([]models.Track, error) {
	return nil, nil
}

func (f *fakeUpstream) PlaylistSeedArtists(context.Context, string) ([]string, error) {
	return []string{"S1"}, nil
}

func testArtist(id string) models.Artist {
	return models.Artist{ID: id, Name: "Artist " + id, Images: []models.Image{{URL: "https://img/" + id}}}
}

type testServer struct {
	*httptest.Server
	upstream *fakeUpstream
	remote   *store.MemoryStore
	manager  *deck.Manager
}

func newTestServer(t *testing.T, checks ...ReadinessCheck) *testServer {
	t.Helper()

	up := &fakeUpstream{
		related: map[string][]models.Artist{
			"S1": {testArtist("A1"), testArtist("A2"), testArtist("A3")},
		},
		failing: map[string]bool{"BAD": true},
	}
	remote := store.NewMemoryStore()
	manager := deck.NewManager(deck.ManagerDeps{
		Upstream: func(token string) deck.Upstream {
			up.mu.Lock()
			up.tokens = append(up.tokens, token)
			up.mu.Unlock()
			return up
		},
		Remote: remote,
		Deck: config.DeckConfig{
			RefillThreshold:   deck.DefaultRefillThreshold,
			EnrichConcurrency: 2,
		},
		Store:  config.StoreConfig{WriteTimeout: time.Second},
		Logger: logging.Nop(),
	})

	mw := NewChiMiddleware(&ChiMiddlewareConfig{RateLimitDisabled: true})
	handler := NewHandler(manager, "memory", "test", checks...)
	srv := httptest.NewServer(NewRouter(handler, mw).SetupChi())

	t.Cleanup(func() {
		srv.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = manager.Shutdown(ctx)
	})
	return &testServer{Server: srv, upstream: up, remote: remote, manager: manager}
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *models.APIError `json:"error"`
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func checkStatus(t *testing.T, got, want int, env envelope) {
	t.Helper()
	if got != want {
		t.Fatalf("status = %d, want %d (error: %+v)", got, want, env.Error)
	}
}

func checkErrorCode(t *testing.T, env envelope, want string) {
	t.Helper()
	if env.Error == nil {
		t.Fatalf("error = nil, want code %s", want)
	}
	if env.Error.Code != want {
		t.Fatalf("error code = %s, want %s", env.Error.Code, want)
	}
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data %s: %v", env.Data, err)
	}
}

func deckIDs(view models.DeckView) []string {
	ids := make([]string, len(view.Artists))
	for i, a := range view.Artists {
		ids[i] = a.ID
	}
	return ids
}

func checkIDs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("ids = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ids = %v, want %v", got, want)
		}
	}
}

func firstTimeBody(seeds ...string) models.BootstrapRequest {
	return models.BootstrapRequest{
		UserID:       "u1",
		CategoryName: "indie",
		FirstTime:    true,
		SeedBuffer:   seeds,
	}
}
