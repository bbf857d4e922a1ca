// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/discodeck/internal/config"
	"github.com/tomtom215/discodeck/internal/metrics"
	"github.com/tomtom215/discodeck/internal/models"
)

// New opens the backend selected by cfg.Backend and wraps it with metrics.
func New(ctx context.Context, cfg config.StoreConfig) (SnapshotStore, error) {
	var (
		inner SnapshotStore
		err   error
	)

	switch cfg.Backend {
	case config.StoreMemory, "":
		inner = NewMemoryStore()
	case config.StoreBadger:
		inner, err = OpenBadgerStore(cfg.BadgerPath)
	case config.StoreBackend:
		inner = NewBackendStore(cfg.BackendURL, cfg.WriteTimeout)
	case config.StoreDynamoDB:
		inner, err = OpenDynamoStore(ctx, cfg.DynamoDBTable, cfg.DynamoDBRegion, cfg.DynamoDBEndpoint)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(inner), nil
}

// Instrument records duration and outcome of every call on s.
func Instrument(s SnapshotStore) SnapshotStore {
	if _, ok := s.(*instrumented); ok {
		return s
	}
	return &instrumented{inner: s}
}

type instrumented struct {
	inner SnapshotStore
}

func (i *instrumented) observe(op string, start time.Time, err error) {
	// A missing snapshot is an expected answer, not a failure.
	if errors.Is(err, ErrSnapshotNotFound) {
		err = nil
	}
	metrics.RecordStoreWrite(i.inner.Name(), op, time.Since(start), err)
}

func (i *instrumented) ReadSnapshot(ctx context.Context, key models.SessionKey) (snap *models.Snapshot, err error) {
	defer func(start time.Time) { i.observe("read", start, err) }(time.Now())
	return i.inner.ReadSnapshot(ctx, key)
}

func (i *instrumented) CreateSnapshot(ctx context.Context, key models.SessionKey, buffer []string) (err error) {
	defer func(start time.Time) { i.observe("create", start, err) }(time.Now())
	return i.inner.CreateSnapshot(ctx, key, buffer)
}

func (i *instrumented) WriteDeckAndUsed(ctx context.Context, key models.SessionKey, u models.DeckUpdate) (err error) {
	defer func(start time.Time) { i.observe("deck", start, err) }(time.Now())
	return i.inner.WriteDeckAndUsed(ctx, key, u)
}

func (i *instrumented) WriteOnRemoval(ctx context.Context, key models.SessionKey, u models.LeaveUpdate) (err error) {
	defer func(start time.Time) { i.observe("removal", start, err) }(time.Now())
	return i.inner.WriteOnRemoval(ctx, key, u)
}

func (i *instrumented) WriteLikedMarker(ctx context.Context, key models.SessionKey, m models.LikedMarker) (err error) {
	defer func(start time.Time) { i.observe("liked", start, err) }(time.Now())
	return i.inner.WriteLikedMarker(ctx, key, m)
}

func (i *instrumented) Name() string { return i.inner.Name() }

func (i *instrumented) Close() error { return i.inner.Close() }
