// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// HTTPServer is the part of *http.Server the service drives.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService runs an HTTP server until its context is cancelled,
// then shuts it down gracefully.
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
}

// NewHTTPServerService wraps server. A non-positive timeout means 10s.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}
	return &HTTPServerService{server: server, shutdownTimeout: shutdownTimeout}
}

// Serve implements suture.Service. Cancelling ctx triggers Shutdown with
// its own deadline; a clean stop returns ctx.Err() so suture does not
// restart the listener.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	shutdownDone := make(chan error, 1)
	stopWatch := context.AfterFunc(ctx, func() {
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.shutdownTimeout)
		defer cancel()
		shutdownDone <- h.server.Shutdown(sctx)
	})

	listenErr := h.server.ListenAndServe()
	if stopWatch() {
		// Listener ended before ctx was cancelled.
		if errors.Is(listenErr, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", listenErr)
	}

	if err := <-shutdownDone; err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return ctx.Err()
}

func (h *HTTPServerService) String() string {
	return "http-server"
}
