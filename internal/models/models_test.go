// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestArtistWithPreview(t *testing.T) {
	t.Parallel()

	a := Artist{ID: "A", Name: "Alpha", Images: []Image{{URL: "img"}}}
	if a.HasPreview() {
		t.Fatal("fresh artist should not have a preview")
	}

	b := a.WithPreview(PreviewRecord{
		PreviewURL: StringPtr("http://p"),
		TrackID:    StringPtr("t1"),
		TrackName:  StringPtr("Song"),
	})
	if !b.HasPreview() {
		t.Error("expected preview after WithPreview")
	}
	if a.TrackID != nil {
		t.Error("WithPreview must not mutate the receiver")
	}
	if b.TrackThumbnail != nil {
		t.Error("expected nil thumbnail")
	}
}

func TestPreviewRecordIsEmpty(t *testing.T) {
	t.Parallel()

	if !(PreviewRecord{}).IsEmpty() {
		t.Error("zero record should be empty")
	}
	if (PreviewRecord{TrackID: StringPtr("t")}).IsEmpty() {
		t.Error("record with track id should not be empty")
	}
}

func TestArtistJSONKeepsNullTrackFields(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Artist{ID: "A", Images: []Image{{URL: "u"}}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"track_preview":null`, `"track_id":null`, `"track_name":null`, `"track_thumbnail":null`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("expected %s in %s", key, data)
		}
	}
}

func TestCardHandlesSerializeAsEmptyRefs(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(CardHandles(2))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `[{"current":null},{"current":null}]` {
		t.Errorf("unexpected handles encoding: %s", data)
	}
}

func TestBootstrapRequestHasSeedSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  BootstrapRequest
		want bool
	}{
		{"none", BootstrapRequest{}, false},
		{"buffer", BootstrapRequest{SeedBuffer: []string{"S1"}}, true},
		{"playlist", BootstrapRequest{PlaylistID: "pl"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.req.HasSeedSource(); got != tt.want {
				t.Errorf("HasSeedSource() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSessionKeyString(t *testing.T) {
	t.Parallel()

	k := SessionKey{UserID: "u1", Category: "jazz"}
	if k.String() != "u1/jazz" {
		t.Errorf("unexpected key string %q", k.String())
	}
}
