// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package deck

import (
	"context"
	"testing"
	"time"

	"github.com/tomtom215/discodeck/internal/cache"
	"github.com/tomtom215/discodeck/internal/models"
)

func strOrNil(p *string) string {
	if p == nil {
		return "<nil>"
	}
	return *p
}

func TestSelectPreview(t *testing.T) {
	t.Parallel()

	withCover := track("t2", "https://p/2")
	withCover.Album.Images = []models.Image{{URL: "cover-2"}, {URL: "cover-2-small"}}

	tests := []struct {
		name      string
		tracks    []models.Track
		preview   string
		trackID   string
		thumbnail string
	}{
		{"empty list is all null", nil, "<nil>", "<nil>", "<nil>"},
		{"first with preview wins", []models.Track{track("t1", ""), withCover, track("t3", "https://p/3")}, "https://p/2", "t2", "cover-2"},
		{"all preview-less falls back to last", []models.Track{track("t1", ""), track("t2", ""), track("t3", "")}, "<nil>", "t3", "<nil>"},
		{"single track", []models.Track{track("t1", "https://p/1")}, "https://p/1", "t1", "<nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := selectPreview(tt.tracks)
			if got := strOrNil(rec.PreviewURL); got != tt.preview {
				t.Errorf("preview = %s, want %s", got, tt.preview)
			}
			if got := strOrNil(rec.TrackID); got != tt.trackID {
				t.Errorf("track_id = %s, want %s", got, tt.trackID)
			}
			if got := strOrNil(rec.TrackThumbnail); got != tt.thumbnail {
				t.Errorf("thumbnail = %s, want %s", got, tt.thumbnail)
			}
		})
	}
}

func TestEnrichTransportFailureIsAllNull(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	src.tracksErr["A"] = errTransport
	e := NewEnricher(src, nil, testLogger)

	rec := e.Enrich(context.Background(), "A")
	if !rec.IsEmpty() || rec.TrackName != nil || rec.TrackThumbnail != nil {
		t.Errorf("expected all-null record, got %+v", rec)
	}
}

func TestEnrichUsesCacheButNeverCachesFailures(t *testing.T) {
	t.Parallel()

	previews := cache.New[models.PreviewRecord](time.Minute)
	t.Cleanup(previews.Close)

	src := newFakeSource()
	src.tracks["A"] = []models.Track{track("a1", "https://p/a")}
	src.tracksErr["B"] = errTransport
	e := NewEnricher(src, previews, testLogger)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		e.Enrich(ctx, "A")
		e.Enrich(ctx, "B")
	}
	if got := src.topTrackCalls("A"); got != 1 {
		t.Errorf("A lookups = %d, want 1", got)
	}
	if got := src.topTrackCalls("B"); got != 3 {
		t.Errorf("B lookups = %d, want 3", got)
	}
}

func TestEnrichAllKeepsOrder(t *testing.T) {
	t.Parallel()

	src := newFakeSource()
	ids := []string{"A", "B", "C", "D", "E", "F"}
	for _, id := range ids {
		src.tracks[id] = []models.Track{track(id+"-t", "https://p/"+id)}
	}
	e := NewEnricher(src, nil, testLogger)

	out := e.EnrichAll(context.Background(), artists(ids...), 3)
	checkIDs(t, "enriched", out, "A,B,C,D,E,F")
	for _, a := range out {
		if strOrNil(a.TrackPreview) != "https://p/"+a.ID {
			t.Errorf("%s got preview %s", a.ID, strOrNil(a.TrackPreview))
		}
	}
}
