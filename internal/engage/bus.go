// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package engage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"

	"github.com/tomtom215/discodeck/internal/config"
	"github.com/tomtom215/discodeck/internal/logging"
	"github.com/tomtom215/discodeck/internal/metrics"
	"github.com/tomtom215/discodeck/internal/models"
	"github.com/tomtom215/discodeck/internal/spotify"
)

// TopicAction carries one Action per message.
const TopicAction = "engage.action"

// Action names.
const (
	ActionFollow        = "follow"
	ActionSaveTrack     = "save_track"
	ActionAddToPlaylist = "add_to_playlist"
)

// Engager performs engagement writes for one user.
type Engager interface {
	FollowArtist(ctx context.Context, artistID string) error
	SaveTrack(ctx context.Context, trackID string) error
	AddToPlaylist(ctx context.Context, playlistID, trackID string) error
}

// EngagerFactory returns an Engager authorized with token.
type EngagerFactory func(token string) Engager

// Action is a single engagement write.
type Action struct {
	Name       string `json:"name"`
	UserID     string `json:"user_id"`
	ArtistID   string `json:"artist_id"`
	TrackID    string `json:"track_id,omitempty"`
	PlaylistID string `json:"playlist_id,omitempty"`
	Token      string `json:"token"`
}

// Bus publishes likes and executes the resulting actions.
//
// The pub/sub outlives any single router, so Run may be called again
// after it returns, as a supervisor does on restart. Likes published while
// no router is subscribed are dropped.
type Bus struct {
	cfg     config.EngageConfig
	pubsub  *gochannel.GoChannel
	engager EngagerFactory
	logger  watermill.LoggerAdapter

	// IsPermanent classifies action errors that are dropped without retry.
	IsPermanent func(error) bool

	mu        sync.Mutex
	router    *message.Router
	ready     chan struct{}
	readyOnce sync.Once
}

// NewBus creates a bus. Run must be called to start processing.
func NewBus(cfg config.EngageConfig, engager EngagerFactory, logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = logging.NewWatermillLogger()
	}
	return &Bus{
		cfg:         cfg,
		pubsub:      gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 256}, logger),
		engager:     engager,
		logger:      logger,
		IsPermanent: spotify.IsPermanent,
		ready:       make(chan struct{}),
	}
}

func (b *Bus) newRouter() (*message.Router, error) {
	router, err := message.NewRouter(message.RouterConfig{CloseTimeout: b.cfg.CloseTimeout}, b.logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	// Outermost first: give up after retries, recover panics, retry.
	router.AddMiddleware(b.dropAfterRetries)
	router.AddMiddleware(middleware.Recoverer)
	retry := middleware.Retry{
		MaxRetries:      b.cfg.RetryMaxRetries,
		InitialInterval: b.cfg.RetryInitialInterval,
		MaxInterval:     10 * b.cfg.RetryInitialInterval,
		Multiplier:      2.0,
		Logger:          b.logger,
	}
	router.AddMiddleware(retry.Middleware)

	router.AddHandler("fan_out_like", models.TopicArtistLiked, b.pubsub, TopicAction, b.pubsub, b.fanOut)
	router.AddConsumerHandler("run_action", TopicAction, b.pubsub, b.runAction)
	return router, nil
}

// PublishLike implements deck.LikePublisher. The event is queued; actions
// run later on the router.
func (b *Bus) PublishLike(_ context.Context, event models.LikeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal like event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("artist_id", event.ArtistID)
	return b.pubsub.Publish(models.TopicArtistLiked, msg)
}

// Run processes messages until ctx is cancelled or Close is called.
func (b *Bus) Run(ctx context.Context) error {
	router, err := b.newRouter()
	if err != nil {
		return err
	}

	b.mu.Lock()
	b.router = router
	b.mu.Unlock()
	defer func() {
		b.mu.Lock()
		if b.router == router {
			b.router = nil
		}
		b.mu.Unlock()
	}()

	go func() {
		select {
		case <-router.Running():
			b.readyOnce.Do(func() { close(b.ready) })
		case <-ctx.Done():
		}
	}()

	return router.Run(ctx)
}

// Running returns a channel closed once the first router has subscribed.
func (b *Bus) Running() <-chan struct{} {
	return b.ready
}

// IsRunning reports whether a router is active.
func (b *Bus) IsRunning() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.router != nil && b.router.IsRunning()
}

// Close stops the active router and the pub/sub.
func (b *Bus) Close() error {
	b.mu.Lock()
	router := b.router
	b.mu.Unlock()

	var errs []error
	if router != nil {
		errs = append(errs, router.Close())
	}
	errs = append(errs, b.pubsub.Close())
	return errors.Join(errs...)
}

// fanOut turns a like into one message per enabled action.
func (b *Bus) fanOut(msg *message.Message) ([]*message.Message, error) {
	var event models.LikeEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		b.logger.Error("dropping malformed like event", err, watermill.LogFields{"message_uuid": msg.UUID})
		return nil, nil
	}

	actions := ActionsFor(event)
	out := make([]*message.Message, 0, len(actions))
	for _, a := range actions {
		payload, err := json.Marshal(a)
		if err != nil {
			return nil, fmt.Errorf("marshal action: %w", err)
		}
		out = append(out, message.NewMessage(watermill.NewUUID(), payload))
	}
	return out, nil
}

// ActionsFor lists the actions enabled for event. Track actions are
// skipped when the card has no track, and playlist adds when no target
// playlist was configured.
func ActionsFor(event models.LikeEvent) []Action {
	base := Action{UserID: event.UserID, ArtistID: event.ArtistID, Token: event.Token}
	trackID := ""
	if event.TrackID != nil {
		trackID = *event.TrackID
	}

	var actions []Action
	if event.Toggles.AddToPlaylistOnLike && trackID != "" && event.PlaylistID != "" {
		a := base
		a.Name, a.TrackID, a.PlaylistID = ActionAddToPlaylist, trackID, event.PlaylistID
		actions = append(actions, a)
	}
	if event.Toggles.FavOnLike && trackID != "" {
		a := base
		a.Name, a.TrackID = ActionSaveTrack, trackID
		actions = append(actions, a)
	}
	if event.Toggles.FollowOnLike {
		a := base
		a.Name = ActionFollow
		actions = append(actions, a)
	}
	return actions
}

func (b *Bus) runAction(msg *message.Message) error {
	var a Action
	if err := json.Unmarshal(msg.Payload, &a); err != nil {
		b.logger.Error("dropping malformed action", err, watermill.LogFields{"message_uuid": msg.UUID})
		return nil
	}

	ctx, cancel := context.WithTimeout(msg.Context(), 30*time.Second)
	defer cancel()

	engager := b.engager(a.Token)
	var err error
	switch a.Name {
	case ActionFollow:
		err = engager.FollowArtist(ctx, a.ArtistID)
	case ActionSaveTrack:
		err = engager.SaveTrack(ctx, a.TrackID)
	case ActionAddToPlaylist:
		err = engager.AddToPlaylist(ctx, a.PlaylistID, a.TrackID)
	default:
		b.logger.Error("dropping unknown action", nil, watermill.LogFields{"action": a.Name})
		return nil
	}

	metrics.RecordEngageAction(a.Name, err)
	if err == nil {
		return nil
	}
	if b.IsPermanent(err) {
		b.logger.Error("engagement action rejected", err, watermill.LogFields{
			"action":    a.Name,
			"artist_id": a.ArtistID,
		})
		return nil
	}
	return fmt.Errorf("%s for artist %s: %w", a.Name, a.ArtistID, err)
}

// dropAfterRetries acks messages whose handler still fails, so the
// GoChannel does not redeliver them forever.
func (b *Bus) dropAfterRetries(h message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		produced, err := h(msg)
		if err != nil {
			b.logger.Error("engagement action dropped", err, watermill.LogFields{
				"message_uuid": msg.UUID,
				"handler":      message.HandlerNameFromCtx(msg.Context()),
			})
			return nil, nil
		}
		return produced, nil
	}
}
