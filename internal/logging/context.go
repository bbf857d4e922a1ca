// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// traceFields is stored by value under a single context key. Every setter
// copies it, so parent contexts are never mutated.
type traceFields struct {
	correlationID string
	requestID     string
	category      string
}

type traceKey struct{}

func fieldsFrom(ctx context.Context) traceFields {
	f, _ := ctx.Value(traceKey{}).(traceFields)
	return f
}

func withFields(ctx context.Context, edit func(*traceFields)) context.Context {
	f := fieldsFrom(ctx)
	edit(&f)
	return context.WithValue(ctx, traceKey{}, f)
}

// GenerateCorrelationID returns a short (8 character) id for following one
// refill pass or bootstrap through the logs.
func GenerateCorrelationID() string {
	return uuid.NewString()[:8]
}

// GenerateRequestID returns a full UUID.
func GenerateRequestID() string {
	return uuid.NewString()
}

// ContextWithCorrelationID returns a copy of ctx carrying id.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return withFields(ctx, func(f *traceFields) { f.correlationID = id })
}

// ContextWithNewCorrelationID tags ctx with a freshly generated id.
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// CorrelationIDFromContext returns the correlation id, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return fieldsFrom(ctx).correlationID
}

// ContextWithRequestID returns a copy of ctx carrying the HTTP request id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return withFields(ctx, func(f *traceFields) { f.requestID = id })
}

// RequestIDFromContext returns the request id, or "".
func RequestIDFromContext(ctx context.Context) string {
	return fieldsFrom(ctx).requestID
}

// ContextWithCategory records the deck category a request or pass works on.
func ContextWithCategory(ctx context.Context, category string) context.Context {
	return withFields(ctx, func(f *traceFields) { f.category = category })
}

// Ctx returns the global logger carrying whatever trace fields ctx holds.
//
//	logging.Ctx(ctx).Warn().Err(err).Msg("bootstrap failed")
func Ctx(ctx context.Context) *zerolog.Logger {
	l := CtxWith(ctx).Logger()
	return &l
}

// CtxWith is Ctx for callers that want to add more fields first.
func CtxWith(ctx context.Context) zerolog.Context {
	c := With()
	f := fieldsFrom(ctx)
	for _, kv := range [...]struct{ key, val string }{
		{"correlation_id", f.correlationID},
		{"request_id", f.requestID},
		{"category", f.category},
	} {
		if kv.val != "" {
			c = c.Str(kv.key, kv.val)
		}
	}
	return c
}
