// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package deck

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/discodeck/internal/cache"
	"github.com/tomtom215/discodeck/internal/metrics"
	"github.com/tomtom215/discodeck/internal/models"
)

// PreviewCache memoizes preview records by artist id. Shared by all
// sessions; previews do not depend on the user.
type PreviewCache = cache.Cache[models.PreviewRecord]

// Enricher looks up a preview track for a candidate.
type Enricher struct {
	source Source
	cache  *PreviewCache
	logger zerolog.Logger
}

// NewEnricher creates an Enricher. previews may be nil.
func NewEnricher(source Source, previews *PreviewCache, logger zerolog.Logger) *Enricher {
	return &Enricher{source: source, cache: previews, logger: logger}
}

// Enrich returns the preview record for artistID. It never fails: a
// transport error yields the all-null record.
func (e *Enricher) Enrich(ctx context.Context, artistID string) models.PreviewRecord {
	if e.cache != nil {
		if rec, ok := e.cache.Get(artistID); ok {
			metrics.RecordEnrichmentCache(true)
			return rec
		}
		metrics.RecordEnrichmentCache(false)
	}

	tracks, err := e.source.TopTracks(ctx, artistID)
	if err != nil {
		metrics.RecordEnrichment("error")
		e.logger.Warn().Err(err).Str("artist_id", artistID).Msg("top tracks lookup failed")
		return models.PreviewRecord{}
	}

	rec := selectPreview(tracks)
	if rec.IsEmpty() {
		metrics.RecordEnrichment("empty")
	} else {
		metrics.RecordEnrichment("ok")
	}
	if e.cache != nil {
		e.cache.Set(artistID, rec)
	}
	return rec
}

// EnrichAll returns copies of artists with preview records attached, in
// input order. At most limit lookups run at once.
func (e *Enricher) EnrichAll(ctx context.Context, artists []models.Artist, limit int) []models.Artist {
	out := make([]models.Artist, len(artists))
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i := range artists {
		g.Go(func() error {
			out[i] = artists[i].WithPreview(e.Enrich(ctx, artists[i].ID))
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// selectPreview picks the first track with a preview URL, scanning in
// source order, or the last track when none has one.
func selectPreview(tracks []models.Track) models.PreviewRecord {
	if len(tracks) == 0 {
		return models.PreviewRecord{}
	}

	chosen := tracks[len(tracks)-1]
	for _, t := range tracks {
		if t.PreviewURL != nil && *t.PreviewURL != "" {
			chosen = t
			break
		}
	}

	rec := models.PreviewRecord{
		PreviewURL: chosen.PreviewURL,
		TrackID:    models.StringPtr(chosen.ID),
		TrackName:  models.StringPtr(chosen.Name),
	}
	if len(chosen.Album.Images) > 0 {
		rec.TrackThumbnail = models.StringPtr(chosen.Album.Images[0].URL)
	}
	return rec
}
