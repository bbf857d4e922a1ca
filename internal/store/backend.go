// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package store

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/discodeck/internal/models"
)

// backendEnvelope is the response shape of every backend endpoint.
type backendEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// BackendStore talks to the category service of the original backend.
//
//	GET  /category/{user}/{category}
//	POST /category/{user}                              (form: category_name, buffer)
//	POST /patch-category/{user}/{category}             {artists, used, child_refs, liked_count}
//	POST /patch-category-liked/{user}/{category}       {artist_id}
//	POST /patch-category-leave-screen/{user}/{category} {visited, artists}
type BackendStore struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendStore creates a client for the backend at baseURL.
func NewBackendStore(baseURL string, timeout time.Duration) *BackendStore {
	return &BackendStore{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (b *BackendStore) categoryPath(prefix string, key models.SessionKey) string {
	return fmt.Sprintf("%s/%s/%s/%s", b.baseURL, prefix, url.PathEscape(key.UserID), url.PathEscape(key.Category))
}

// ReadSnapshot implements SnapshotStore.
func (b *BackendStore) ReadSnapshot(ctx context.Context, key models.SessionKey) (*models.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.categoryPath("category", key), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	env, status, err := b.do(req)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound || (env.Success && isNullData(env.Data)) {
		return nil, ErrSnapshotNotFound
	}
	if !env.Success {
		return nil, envelopeError("read category", status, env)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(env.Data, &snap); err != nil {
		return nil, fmt.Errorf("decode category: %w", err)
	}
	return &snap, nil
}

// CreateSnapshot implements SnapshotStore. The backend takes a form post
// with the buffer joined by commas.
func (b *BackendStore) CreateSnapshot(ctx context.Context, key models.SessionKey, buffer []string) error {
	form := url.Values{}
	form.Set("category_name", key.Category)
	form.Set("buffer", strings.Join(buffer, ","))

	endpoint := fmt.Sprintf("%s/category/%s", b.baseURL, url.PathEscape(key.UserID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return b.expectSuccess("create category", req)
}

// WriteDeckAndUsed implements SnapshotStore.
func (b *BackendStore) WriteDeckAndUsed(ctx context.Context, key models.SessionKey, u models.DeckUpdate) error {
	return b.postJSON(ctx, "patch category", b.categoryPath("patch-category", key), u)
}

// WriteOnRemoval implements SnapshotStore.
func (b *BackendStore) WriteOnRemoval(ctx context.Context, key models.SessionKey, u models.LeaveUpdate) error {
	return b.postJSON(ctx, "patch leave screen", b.categoryPath("patch-category-leave-screen", key), u)
}

// WriteLikedMarker implements SnapshotStore.
func (b *BackendStore) WriteLikedMarker(ctx context.Context, key models.SessionKey, m models.LikedMarker) error {
	return b.postJSON(ctx, "patch liked", b.categoryPath("patch-category-liked", key), m)
}

// Name implements SnapshotStore.
func (b *BackendStore) Name() string { return "backend" }

// Close releases idle connections.
func (b *BackendStore) Close() error {
	b.httpClient.CloseIdleConnections()
	return nil
}

func (b *BackendStore) postJSON(ctx context.Context, op, endpoint string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return b.expectSuccess(op, req)
}

func (b *BackendStore) expectSuccess(op string, req *http.Request) error {
	env, status, err := b.do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if status >= 300 || !env.Success {
		return envelopeError(op, status, env)
	}
	return nil
}

func (b *BackendStore) do(req *http.Request) (*backendEnvelope, int, error) {
	req.Header.Set("Accept", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("backend request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read backend response: %w", err)
	}

	var env backendEnvelope
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, resp.StatusCode, fmt.Errorf("decode backend response (status %d): %w", resp.StatusCode, err)
		}
	}
	return &env, resp.StatusCode, nil
}

func isNullData(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func envelopeError(op string, status int, env *backendEnvelope) error {
	msg := env.Error
	if msg == "" {
		msg = env.Message
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return fmt.Errorf("%s: backend returned %d: %s", op, status, msg)
}
