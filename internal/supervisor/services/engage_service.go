// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package services

import (
	"context"
	"fmt"
)

// Runner is a component that processes until ctx is cancelled, such as
// the engagement bus.
type Runner interface {
	Run(ctx context.Context) error
}

// EngageService supervises the engagement message router. A router that
// stops on its own is reported as a failure so suture restarts it.
type EngageService struct {
	runner Runner
}

// NewEngageService wraps runner.
func NewEngageService(runner Runner) *EngageService {
	return &EngageService{runner: runner}
}

// Serve implements suture.Service.
func (s *EngageService) Serve(ctx context.Context) error {
	err := s.runner.Run(ctx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("engage router: %w", err)
	}
	return fmt.Errorf("engage router stopped unexpectedly")
}

func (s *EngageService) String() string {
	return "engage-router"
}
