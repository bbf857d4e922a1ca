// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package spotify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/discodeck/internal/config"
	"github.com/tomtom215/discodeck/internal/metrics"
	"github.com/tomtom215/discodeck/internal/models"
)

// maxPlaylistPages bounds seed buffer construction for very long playlists.
const maxPlaylistPages = 10

// API is the set of recommendation source operations used by the service.
type API interface {
	RelatedArtists(ctx context.Context, artistID string) ([]models.Artist, error)
	TopTracks(ctx context.Context, artistID string) ([]models.Track, error)
	PlaylistSeedArtists(ctx context.Context, playlistID string) ([]string, error)
	FollowArtist(ctx context.Context, artistID string) error
	SaveTrack(ctx context.Context, trackID string) error
	AddToPlaylist(ctx context.Context, playlistID, trackID string) error
}

var _ API = (*Client)(nil)

// Client provides access to the Spotify Web API for one bearer token.
type Client struct {
	baseURL    string
	market     string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *Breaker
}

// New creates a token-less root client. Use WithToken to derive per-user clients.
func New(cfg config.SpotifyConfig) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.APIURL, "/"),
		market:  cfg.Market,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		breaker: NewBreaker("spotify-api", cfg.Breaker),
	}
}

// WithToken returns a client bound to token that shares transport, rate
// limiter and circuit breaker with c.
func (c *Client) WithToken(token string) *Client {
	clone := *c
	clone.token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	return &clone
}

// BreakerState exposes the circuit breaker state for health reporting.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

type relatedArtistsResponse struct {
	Artists []models.Artist `json:"artists"`
}

// RelatedArtists returns the neighbors of artistID in source order.
func (c *Client) RelatedArtists(ctx context.Context, artistID string) ([]models.Artist, error) {
	var out relatedArtistsResponse
	path := "/artists/" + url.PathEscape(artistID) + "/related-artists"
	if err := c.call(ctx, "related_artists", http.MethodGet, c.baseURL+path, &out); err != nil {
		return nil, err
	}
	return out.Artists, nil
}

type topTracksResponse struct {
	Tracks []models.Track `json:"tracks"`
}

// TopTracks returns artistID's top tracks in the configured market.
func (c *Client) TopTracks(ctx context.Context, artistID string) ([]models.Track, error) {
	var out topTracksResponse
	q := url.Values{"market": {c.market}}
	path := "/artists/" + url.PathEscape(artistID) + "/top-tracks?" + q.Encode()
	if err := c.call(ctx, "top_tracks", http.MethodGet, c.baseURL+path, &out); err != nil {
		return nil, err
	}
	return out.Tracks, nil
}

type playlistTracksResponse struct {
	Items []struct {
		Track *models.Track `json:"track"`
	} `json:"items"`
	Next *string `json:"next"`
}

// PlaylistSeedArtists returns the lead artist of every track in a playlist,
// in playlist order and without duplicates. Tracks without artists (local
// files, removed tracks) are skipped.
func (c *Client) PlaylistSeedArtists(ctx context.Context, playlistID string) ([]string, error) {
	q := url.Values{"market": {c.market}}
	next := c.baseURL + "/playlists/" + url.PathEscape(playlistID) + "/tracks?" + q.Encode()

	seen := make(map[string]struct{})
	var seeds []string
	for page := 0; next != "" && page < maxPlaylistPages; page++ {
		var out playlistTracksResponse
		if err := c.call(ctx, "playlist_tracks", http.MethodGet, next, &out); err != nil {
			return nil, err
		}
		for _, item := range out.Items {
			if item.Track == nil || len(item.Track.Artists) == 0 {
				continue
			}
			id := item.Track.Artists[0].ID
			if id == "" {
				continue
			}
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			seeds = append(seeds, id)
		}
		next = ""
		if out.Next != nil {
			next = *out.Next
		}
	}
	return seeds, nil
}

// FollowArtist makes the user follow artistID.
func (c *Client) FollowArtist(ctx context.Context, artistID string) error {
	q := url.Values{"type": {"artist"}, "ids": {artistID}}
	return c.call(ctx, "follow", http.MethodPut, c.baseURL+"/me/following?"+q.Encode(), nil)
}

// SaveTrack adds trackID to the user's saved tracks.
func (c *Client) SaveTrack(ctx context.Context, trackID string) error {
	q := url.Values{"ids": {trackID}}
	return c.call(ctx, "save_track", http.MethodPut, c.baseURL+"/me/tracks?"+q.Encode(), nil)
}

// AddToPlaylist appends trackID to playlistID.
func (c *Client) AddToPlaylist(ctx context.Context, playlistID, trackID string) error {
	q := url.Values{"uris": {"spotify:track:" + trackID}}
	path := "/playlists/" + url.PathEscape(playlistID) + "/tracks?" + q.Encode()
	return c.call(ctx, "add_to_playlist", http.MethodPost, c.baseURL+path, nil)
}

// call rate-limits, runs the request through the breaker and records metrics.
// When out is nil the response body is discarded.
func (c *Client) call(ctx context.Context, op, method, reqURL string, out any) error {
	if c.token == "" {
		return ErrMissingToken
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("spotify %s: rate limiter: %w", op, err)
	}

	start := time.Now()
	_, err := c.breaker.execute(func() (any, error) {
		return nil, c.doRequest(ctx, op, method, reqURL, out)
	})
	metrics.RecordUpstreamCall(op, time.Since(start), err)
	return err
}

func (c *Client) doRequest(ctx context.Context, op, method, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, reqURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("spotify %s: create request failed: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("spotify %s request failed: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Operation: op, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode spotify %s response: %w", op, err)
	}
	return nil
}
