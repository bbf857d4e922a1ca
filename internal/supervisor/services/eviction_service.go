// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SessionEvictor closes sessions idle for longer than maxIdle and returns
// how many it closed.
type SessionEvictor interface {
	EvictIdle(maxIdle time.Duration) int
}

// EvictionService periodically closes idle deck sessions. Their state is
// already persisted, so a later bootstrap resumes them.
type EvictionService struct {
	evictor  SessionEvictor
	maxIdle  time.Duration
	interval time.Duration
	logger   zerolog.Logger
}

// NewEvictionService checks every maxIdle/4, but at least once a minute.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewEvictionService(evictor SessionEvictor, maxIdle time.Duration, logger zerolog.Logger) *EvictionService {
	interval := maxIdle / 4
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	return &EvictionService{
		evictor:  evictor,
		maxIdle:  maxIdle,
		interval: interval,
		logger:   logger.With().Str("service", "session-eviction").Logger(),
	}
}

// Serve implements suture.Service.
func (s *EvictionService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().Dur("max_idle", s.maxIdle).Dur("interval", s.interval).Msg("session eviction running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if n := s.evictor.EvictIdle(s.maxIdle); n > 0 {
				s.logger.Debug().Int("evicted", n).Msg("idle sessions closed")
			}
		}
	}
}

func (s *EvictionService) String() string {
	return "session-eviction"
}
