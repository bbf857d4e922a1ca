// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package deck

import (
	"context"

	"github.com/tomtom215/discodeck/internal/models"
)

// Source is the recommendation graph.
type Source interface {
	RelatedArtists(ctx context.Context, artistID string) ([]models.Artist, error)
	TopTracks(ctx context.Context, artistID string) ([]models.Track, error)
}

// Upstream is a Source that can also expand a playlist into seed artists.
type Upstream interface {
	Source
	PlaylistSeedArtists(ctx context.Context, playlistID string) ([]string, error)
}

// UpstreamFactory returns an Upstream authorized with the user's token.
type UpstreamFactory func(token string) Upstream

// LikePublisher receives engagement events for accepted cards.
type LikePublisher interface {
	PublishLike(ctx context.Context, event models.LikeEvent) error
}
