// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/deck", "200"))
	RecordAPIRequest("GET", "/deck", "200", 10*time.Millisecond)
	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/deck", "200"))

	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("expected %v active requests, got %v", before+1, got)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("expected %v active requests, got %v", before, got)
	}
}

func TestRecordUpstreamCall(t *testing.T) {
	before := testutil.ToFloat64(UpstreamRequestErrors.WithLabelValues("top_tracks"))
	RecordUpstreamCall("top_tracks", time.Millisecond, nil)
	RecordUpstreamCall("top_tracks", time.Millisecond, errors.New("timeout"))
	after := testutil.ToFloat64(UpstreamRequestErrors.WithLabelValues("top_tracks"))

	if after-before != 1 {
		t.Errorf("expected exactly one error recorded, got %v", after-before)
	}
}

func TestRecordRefill(t *testing.T) {
	tests := []struct {
		name    string
		outcome string
		merged  int
	}{
		{"done with candidates", "done", 3},
		{"empty neighborhood", "empty", 0},
		{"transport failure", "error", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			passesBefore := testutil.ToFloat64(DeckRefillPasses.WithLabelValues(tt.outcome))
			mergedBefore := testutil.ToFloat64(DeckCandidatesMerged)

			RecordRefill(tt.outcome, tt.merged)

			if got := testutil.ToFloat64(DeckRefillPasses.WithLabelValues(tt.outcome)) - passesBefore; got != 1 {
				t.Errorf("passes delta = %v, want 1", got)
			}
			if got := testutil.ToFloat64(DeckCandidatesMerged) - mergedBefore; got != float64(tt.merged) {
				t.Errorf("merged delta = %v, want %d", got, tt.merged)
			}
		})
	}
}

func TestRecordStoreWrite(t *testing.T) {
	okBefore := testutil.ToFloat64(StoreWrites.WithLabelValues("memory", "leave", "success"))
	failBefore := testutil.ToFloat64(StoreWrites.WithLabelValues("memory", "leave", "failure"))

	RecordStoreWrite("memory", "leave", time.Millisecond, nil)
	RecordStoreWrite("memory", "leave", time.Millisecond, errors.New("boom"))

	if testutil.ToFloat64(StoreWrites.WithLabelValues("memory", "leave", "success"))-okBefore != 1 {
		t.Error("expected one successful write")
	}
	if testutil.ToFloat64(StoreWrites.WithLabelValues("memory", "leave", "failure"))-failBefore != 1 {
		t.Error("expected one failed write")
	}
}

func TestRecordEnrichmentCache(t *testing.T) {
	hits := testutil.ToFloat64(DeckEnrichmentCache.WithLabelValues("hit"))
	misses := testutil.ToFloat64(DeckEnrichmentCache.WithLabelValues("miss"))

	RecordEnrichmentCache(true)
	RecordEnrichmentCache(false)
	RecordEnrichmentCache(false)

	if testutil.ToFloat64(DeckEnrichmentCache.WithLabelValues("hit"))-hits != 1 {
		t.Error("expected one hit")
	}
	if testutil.ToFloat64(DeckEnrichmentCache.WithLabelValues("miss"))-misses != 2 {
		t.Error("expected two misses")
	}
}

func TestSetActiveSessions(t *testing.T) {
	SetActiveSessions(4)
	if got := testutil.ToFloat64(DeckActiveSessions); got != 4 {
		t.Errorf("active sessions = %v, want 4", got)
	}
}
