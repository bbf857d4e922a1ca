// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package deck

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/discodeck/internal/metrics"
	"github.com/tomtom215/discodeck/internal/models"
)

// Outcome is the result of a successful fetch.
type Outcome int

const (
	// OutcomeEmpty means the seed had no neighbors; nothing was merged.
	OutcomeEmpty Outcome = iota
	// OutcomeDone means the neighbors were merged and the seed recorded.
	OutcomeDone
)

func (o Outcome) String() string {
	if o == OutcomeDone {
		return "done"
	}
	return "empty"
}

// NoHint asks FetchNeighbors to keep the whole deck below new candidates.
const NoHint = -1

// Fetcher walks one step of the related-artists graph into a Store.
type Fetcher struct {
	source      Source
	enricher    *Enricher
	store       *Store
	concurrency int
	logger      zerolog.Logger
}

// NewFetcher creates a Fetcher. concurrency bounds parallel enrichment.
func NewFetcher(source Source, enricher *Enricher, store *Store, concurrency int, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		source:      source,
		enricher:    enricher,
		store:       store,
		concurrency: concurrency,
		logger:      logger,
	}
}

// FetchNeighbors merges the unseen, illustrated neighbors of seedID into
// the store. remaining is the number of current cards to keep under the
// new ones; NoHint keeps all of them.
//
// A failed related-artists request returns ErrReauthenticate and merges
// nothing. A merge attempted after the session closed returns
// ErrSessionClosed.
func (f *Fetcher) FetchNeighbors(ctx context.Context, seedID string, remaining int) (Outcome, error) {
	related, err := f.source.RelatedArtists(ctx, seedID)
	if err != nil {
		metrics.RecordRefill("error", 0)
		return OutcomeEmpty, fmt.Errorf("related artists of %s: %w: %w", seedID, ErrReauthenticate, err)
	}
	if len(related) == 0 {
		metrics.RecordRefill("empty", 0)
		return OutcomeEmpty, nil
	}

	candidates := f.filter(related)
	enriched := f.enricher.EnrichAll(ctx, candidates, f.concurrency)

	deck, err := f.store.Merge(seedID, enriched, remaining)
	if err != nil {
		f.logger.Info().Str("seed", seedID).Int("candidates", len(enriched)).Msg("session closed before merge, dropping candidates")
		return OutcomeEmpty, err
	}

	metrics.RecordRefill("done", len(enriched))
	f.logger.Debug().
		Str("seed", seedID).
		Int("neighbors", len(related)).
		Int("candidates", len(enriched)).
		Int("remaining", remaining).
		Int("deck_len", len(deck)).
		Msg("merged neighbors")
	return OutcomeDone, nil
}

// filter drops repeated ids (first occurrence wins), visited ids, and
// artists without images.
func (f *Fetcher) filter(related []models.Artist) []models.Artist {
	seen := make(map[string]struct{}, len(related))
	out := make([]models.Artist, 0, len(related))
	for _, a := range related {
		if _, dup := seen[a.ID]; dup {
			continue
		}
		seen[a.ID] = struct{}{}
		if !a.HasImages() || f.store.IsVisited(a.ID) {
			continue
		}
		out = append(out, a)
	}
	return out
}
