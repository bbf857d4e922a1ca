// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package deck

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/discodeck/internal/metrics"
	"github.com/tomtom215/discodeck/internal/models"
)

// CardState is the lifecycle of one card.
type CardState int

const (
	StatePresented CardState = iota
	StateAccepted
	StateDiscarded
	StateRemoved
)

func (s CardState) String() string {
	switch s {
	case StateAccepted:
		return "accepted"
	case StateDiscarded:
		return "discarded"
	case StateRemoved:
		return "removed"
	default:
		return "presented"
	}
}

// Swipe directions.
const (
	DirectionLeft  = "left"
	DirectionRight = "right"
)

// Engagement is the per-session configuration for like side effects.
type Engagement struct {
	Toggles    models.EngagementToggles
	PlaylistID string
	Token      string
}

// SwipeConsumer applies swipe gestures to a Store.
type SwipeConsumer struct {
	key        models.SessionKey
	store      *Store
	refill     *RefillPolicy
	publisher  LikePublisher
	engagement Engagement
	logger     zerolog.Logger

	mu             sync.Mutex
	states         map[string]CardState
	discardPending string
}

// NewSwipeConsumer creates a consumer. publisher may be nil.
func NewSwipeConsumer(key models.SessionKey, store *Store, refill *RefillPolicy, publisher LikePublisher, engagement Engagement, logger zerolog.Logger) *SwipeConsumer {
	return &SwipeConsumer{
		key:        key,
		store:      store,
		refill:     refill,
		publisher:  publisher,
		engagement: engagement,
		logger:     logger,
		states:     make(map[string]CardState),
	}
}

// State returns the state of id. Unknown ids on the deck are Presented.
func (c *SwipeConsumer) State(id string) CardState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stateLocked(id)
}

func (c *SwipeConsumer) stateLocked(id string) CardState {
	if st, ok := c.states[id]; ok {
		return st
	}
	if c.store.IsVisited(id) {
		return StateRemoved
	}
	return StatePresented
}

// Swipe records a gesture on a Presented card. A right swipe likes the
// artist and publishes engagement actions. Swiping a card in any other
// state changes nothing and returns that state.
func (c *SwipeConsumer) Swipe(ctx context.Context, id, direction string) (CardState, error) {
	if direction != DirectionLeft && direction != DirectionRight {
		return StatePresented, fmt.Errorf("invalid direction %q", direction)
	}

	c.mu.Lock()
	current := c.stateLocked(id)
	if current != StatePresented {
		c.mu.Unlock()
		return current, nil
	}
	card, ok := c.store.Find(id)
	if !ok {
		c.mu.Unlock()
		return current, ErrCardNotFound
	}

	next := StateDiscarded
	if direction == DirectionRight {
		next = StateAccepted
	}
	c.states[id] = next
	c.mu.Unlock()

	metrics.RecordSwipe(direction)
	if next == StateAccepted {
		c.store.Like(id)
		c.publishLike(ctx, card)
	}
	return next, nil
}

// Discard marks the top-most Presented card Discarded and blocks further
// discards until a card leaves the screen.
func (c *SwipeConsumer) Discard(_ context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.discardPending != "" {
		return "", ErrDiscardPending
	}

	deck := c.store.Deck()
	for i := len(deck) - 1; i >= 0; i-- {
		id := deck[i].ID
		if c.stateLocked(id) == StatePresented {
			c.states[id] = StateDiscarded
			c.discardPending = id
			metrics.RecordSwipe(DirectionLeft)
			return id, nil
		}
	}
	return "", ErrCardNotFound
}

// Leave confirms that id left the screen, in any direction. It clears the
// discard guard, removes the card, and lets the refill policy react using
// the depth probe sampled before removal. Returns false when id was not on
// the deck, including when it was already removed.
func (c *SwipeConsumer) Leave(ctx context.Context, id string, probe DepthProbe) bool {
	depth := probe.CurrentStackDepth()

	c.mu.Lock()
	c.discardPending = ""
	if c.stateLocked(id) == StateRemoved {
		c.mu.Unlock()
		return false
	}
	c.mu.Unlock()

	if _, _, removed := c.store.Remove(id); !removed {
		return false
	}

	c.mu.Lock()
	c.states[id] = StateRemoved
	c.mu.Unlock()

	if seed := c.refill.OnRemoval(ctx, depth); seed != "" {
		c.logger.Debug().Str("artist_id", id).Int("depth", depth).Str("seed", seed).Msg("refill launched")
	}
	return true
}

func (c *SwipeConsumer) publishLike(ctx context.Context, card models.Artist) {
	if c.publisher == nil || !c.engagement.Toggles.Any() {
		return
	}

	event := models.LikeEvent{
		UserID:     c.key.UserID,
		Category:   c.key.Category,
		ArtistID:   card.ID,
		TrackID:    card.TrackID,
		PlaylistID: c.engagement.PlaylistID,
		Toggles:    c.engagement.Toggles,
		Token:      c.engagement.Token,
		LikedAt:    time.Now().UTC(),
	}
	if err := c.publisher.PublishLike(ctx, event); err != nil {
		c.logger.Warn().Err(err).Str("artist_id", card.ID).Msg("publish like failed")
	}
}
