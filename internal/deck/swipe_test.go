// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package deck

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/tomtom215/discodeck/internal/models"
)

var swipeKey = models.SessionKey{UserID: "u1", Category: "dream pop"}

func newTestConsumer(snap *models.Snapshot, pub LikePublisher, toggles models.EngagementToggles) (*SwipeConsumer, *Store, *fetchRecorder, *sync.WaitGroup) {
	rec := newFetchRecorder()
	wg := &sync.WaitGroup{}
	store := NewStore(&recordingSink{}, snap)
	policy := NewRefillPolicy(store, rec.fetch, DefaultRefillThreshold, wg, nil, testLogger)
	c := NewSwipeConsumer(swipeKey, store, policy, pub, Engagement{Toggles: toggles, PlaylistID: "PL", Token: "tok"}, testLogger)
	return c, store, rec, wg
}

func TestSwipeRightLikesAndPublishes(t *testing.T) {
	t.Parallel()

	a := artist("A")
	a.TrackID = models.StringPtr("tA")
	pub := &recordingPublisher{}
	c, store, _, _ := newTestConsumer(&models.Snapshot{Artists: []models.Artist{a}}, pub, models.EngagementToggles{FollowOnLike: true})

	state, err := c.Swipe(context.Background(), "A", DirectionRight)
	checkNoError(t, err)
	if state != StateAccepted {
		t.Errorf("state = %s, want accepted", state)
	}
	checkStrings(t, "liked", store.Snapshot().Liked, "A")

	if pub.count() != 1 {
		t.Fatalf("published %d events, want 1", pub.count())
	}
	e := pub.events[0]
	if e.ArtistID != "A" || strOrNil(e.TrackID) != "tA" || e.PlaylistID != "PL" || e.Token != "tok" || e.UserID != "u1" {
		t.Errorf("unexpected event: %+v", e)
	}
}

func TestSwipeRightWithoutTogglesDoesNotPublish(t *testing.T) {
	t.Parallel()

	pub := &recordingPublisher{}
	c, _, _, _ := newTestConsumer(&models.Snapshot{Artists: artists("A")}, pub, models.EngagementToggles{})

	_, err := c.Swipe(context.Background(), "A", DirectionRight)
	checkNoError(t, err)
	if pub.count() != 0 {
		t.Error("no toggle enabled, nothing should be published")
	}
}

func TestSwipeStateMachine(t *testing.T) {
	t.Parallel()

	c, store, _, _ := newTestConsumer(&models.Snapshot{Artists: artists("A", "B")}, nil, models.EngagementToggles{})
	ctx := context.Background()

	state, err := c.Swipe(ctx, "B", DirectionLeft)
	checkNoError(t, err)
	if state != StateDiscarded {
		t.Errorf("state = %s, want discarded", state)
	}

	// A second gesture on the same card is a no-op.
	state, err = c.Swipe(ctx, "B", DirectionRight)
	checkNoError(t, err)
	if state != StateDiscarded || len(store.Snapshot().Liked) != 0 {
		t.Errorf("second swipe changed state to %s", state)
	}

	if !c.Leave(ctx, "B", FixedDepth(20)) {
		t.Fatal("leave should remove B")
	}
	if c.State("B") != StateRemoved {
		t.Errorf("state = %s, want removed", c.State("B"))
	}
	if c.Leave(ctx, "B", FixedDepth(20)) {
		t.Error("second leave must be a no-op")
	}

	if _, err := c.Swipe(ctx, "Z", DirectionLeft); !errors.Is(err, ErrCardNotFound) {
		t.Errorf("expected ErrCardNotFound, got %v", err)
	}
	if _, err := c.Swipe(ctx, "A", "up"); err == nil {
		t.Error("expected invalid direction error")
	}
}

func TestDiscardGuard(t *testing.T) {
	t.Parallel()

	c, _, _, _ := newTestConsumer(&models.Snapshot{Artists: artists("A", "B", "C")}, nil, models.EngagementToggles{})
	ctx := context.Background()

	// C is on top but already swiped; the discard control takes B.
	_, err := c.Swipe(ctx, "C", DirectionRight)
	checkNoError(t, err)

	id, err := c.Discard(ctx)
	checkNoError(t, err)
	if id != "B" {
		t.Errorf("discarded %q, want B", id)
	}

	if _, err := c.Discard(ctx); !errors.Is(err, ErrDiscardPending) {
		t.Fatalf("expected ErrDiscardPending, got %v", err)
	}

	c.Leave(ctx, "B", FixedDepth(30))
	id, err = c.Discard(ctx)
	checkNoError(t, err)
	if id != "A" {
		t.Errorf("discarded %q, want A", id)
	}
}

func TestLeaveTriggersRefillWithSampledDepth(t *testing.T) {
	t.Parallel()

	c, store, rec, wg := newTestConsumer(&models.Snapshot{
		Artists: artists("A", "B"),
		Liked:   []string{"L"},
	}, nil, models.EngagementToggles{})

	c.Leave(context.Background(), "B", LogicalDepth{Store: store})
	wg.Wait()

	checkStrings(t, "seeds", rec.seeds(), "L")
	if rec.hints[0] != 1 {
		t.Errorf("hint = %d, want pre-removal depth 2 minus one", rec.hints[0])
	}
}
