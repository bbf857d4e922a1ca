// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tomtom215/discodeck/internal/logging"
)

type runnerFunc func(ctx context.Context) error

func (f runnerFunc) Run(ctx context.Context) error { return f(ctx) }

func TestEngageServiceServe(t *testing.T) {
	t.Run("cancel returns context error", func(t *testing.T) {
		svc := NewEngageService(runnerFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		}))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := svc.Serve(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() error = %v, want context.Canceled", err)
		}
	})

	t.Run("router error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		svc := NewEngageService(runnerFunc(func(context.Context) error { return boom }))
		if err := svc.Serve(context.Background()); !errors.Is(err, boom) {
			t.Errorf("Serve() error = %v, want boom", err)
		}
	})

	t.Run("early stop is a failure", func(t *testing.T) {
		svc := NewEngageService(runnerFunc(func(context.Context) error { return nil }))
		err := svc.Serve(context.Background())
		if err == nil || !strings.Contains(err.Error(), "unexpectedly") {
			t.Errorf("Serve() error = %v, want unexpected stop", err)
		}
	})
}

type countingEvictor struct {
	calls   atomic.Int32
	maxIdle atomic.Int64
}

func (c *countingEvictor) EvictIdle(maxIdle time.Duration) int {
	c.maxIdle.Store(int64(maxIdle))
	c.calls.Add(1)
	return 1
}

func TestEvictionService(t *testing.T) {
	if got := NewEvictionService(&countingEvictor{}, 2*time.Hour, logging.Nop()).interval; got != time.Minute {
		t.Errorf("interval for 2h = %v, want 1m", got)
	}

	evictor := &countingEvictor{}
	svc := NewEvictionService(evictor, 40*time.Millisecond, logging.Nop())
	if svc.interval != 10*time.Millisecond {
		t.Fatalf("interval = %v, want 10ms", svc.interval)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	deadline := time.Now().Add(5 * time.Second)
	for evictor.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
	if evictor.calls.Load() < 2 {
		t.Errorf("EvictIdle called %d times, want at least 2", evictor.calls.Load())
	}
	if time.Duration(evictor.maxIdle.Load()) != 40*time.Millisecond {
		t.Errorf("maxIdle = %v, want 40ms", time.Duration(evictor.maxIdle.Load()))
	}
}
