// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package deck

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
)

// DefaultRefillThreshold is the stack depth at or below which a removal
// triggers a refill.
const DefaultRefillThreshold = 11

// DepthProbe reports how many cards the presentation layer shows.
type DepthProbe interface {
	CurrentStackDepth() int
}

// FixedDepth is a depth reported by the client.
type FixedDepth int

// CurrentStackDepth implements DepthProbe.
func (d FixedDepth) CurrentStackDepth() int { return int(d) }

// LogicalDepth reads the store's current length.
type LogicalDepth struct {
	Store *Store
}

// CurrentStackDepth implements DepthProbe.
func (d LogicalDepth) CurrentStackDepth() int { return d.Store.Len() }

// fetchFunc runs one refill pass.
type fetchFunc func(ctx context.Context, seed string, remaining int) (Outcome, error)

// RefillPolicy decides after each removal whether and from which seed to
// refill, and runs the passes.
type RefillPolicy struct {
	store     *Store
	fetch     fetchFunc
	threshold int
	wg        *sync.WaitGroup
	onError   func(error)
	logger    zerolog.Logger

	// mu is taken before store.mu, never after.
	mu        sync.Mutex
	pending   map[string]struct{}
	exhausted map[string]struct{}
}

// NewRefillPolicy creates a policy. Passes are tracked on wg; onError
// receives every pass error except ErrSessionClosed.
func NewRefillPolicy(store *Store, fetch fetchFunc, threshold int, wg *sync.WaitGroup, onError func(error), logger zerolog.Logger) *RefillPolicy {
	if threshold <= 0 {
		threshold = DefaultRefillThreshold
	}
	return &RefillPolicy{
		store:     store,
		fetch:     fetch,
		threshold: threshold,
		wg:        wg,
		onError:   onError,
		logger:    logger,
		pending:   make(map[string]struct{}),
		exhausted: make(map[string]struct{}),
	}
}

// OnRemoval runs after a card was removed. depth is the stack depth
// sampled before the removal. Returns the seed of the launched pass, or
// "" when none was launched.
func (p *RefillPolicy) OnRemoval(ctx context.Context, depth int) string {
	if depth > p.threshold {
		return ""
	}

	seed, fromLiked := p.reserveSeed()
	if seed == "" {
		p.logger.Debug().Int("depth", depth).Msg("no seed left, deck will run dry")
		return ""
	}

	remaining := NoHint
	if fromLiked {
		remaining = depth - 1
	}

	passCtx := context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.run(passCtx, seed, remaining)
	}()
	return seed
}

// reserveSeed picks the next seed and marks it pending.
func (p *RefillPolicy) reserveSeed() (seed string, fromLiked bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	seed, fromLiked = p.store.NextSeed(p.skipLocked)
	if seed != "" {
		p.pending[seed] = struct{}{}
	}
	return seed, fromLiked
}

func (p *RefillPolicy) peekSeed() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	seed, _ := p.store.NextSeed(p.skipLocked)
	return seed
}

// Prime fills an empty deck synchronously from the first seed that has
// neighbors. Seeds without neighbors are skipped.
func (p *RefillPolicy) Prime(ctx context.Context) error {
	for {
		seed := p.peekSeed()
		if seed == "" {
			p.logger.Warn().Msg("no seed produced any neighbors")
			return nil
		}

		outcome, err := p.fetch(ctx, seed, NoHint)
		if err != nil {
			return err
		}
		if outcome == OutcomeDone {
			return nil
		}
		p.markExhausted(seed)
	}
}

func (p *RefillPolicy) run(ctx context.Context, seed string, remaining int) {
	outcome, err := p.fetch(ctx, seed, remaining)

	p.mu.Lock()
	delete(p.pending, seed)
	p.mu.Unlock()

	switch {
	case errors.Is(err, ErrSessionClosed):
		return
	case err != nil:
		p.logger.Warn().Err(err).Str("seed", seed).Msg("refill pass failed")
		if p.onError != nil {
			p.onError(err)
		}
	case outcome == OutcomeEmpty:
		p.markExhausted(seed)
		p.logger.Debug().Str("seed", seed).Msg("seed has no neighbors")
	}
}

func (p *RefillPolicy) markExhausted(seed string) {
	p.mu.Lock()
	p.exhausted[seed] = struct{}{}
	p.mu.Unlock()
}

// skipLocked must be called with mu held.
func (p *RefillPolicy) skipLocked(id string) bool {
	if _, ok := p.pending[id]; ok {
		return true
	}
	_, ok := p.exhausted[id]
	return ok
}

// Wait blocks until all launched passes finished.
func (p *RefillPolicy) Wait() {
	p.wg.Wait()
}
