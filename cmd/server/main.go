// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/discodeck/internal/api"
	"github.com/tomtom215/discodeck/internal/cache"
	"github.com/tomtom215/discodeck/internal/config"
	"github.com/tomtom215/discodeck/internal/deck"
	"github.com/tomtom215/discodeck/internal/engage"
	"github.com/tomtom215/discodeck/internal/logging"
	"github.com/tomtom215/discodeck/internal/models"
	"github.com/tomtom215/discodeck/internal/spotify"
	"github.com/tomtom215/discodeck/internal/store"
	"github.com/tomtom215/discodeck/internal/supervisor"
	"github.com/tomtom215/discodeck/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Service:   "discodeck",
		Version:   version,
	})

	logging.Info().
		Str("store_backend", cfg.Store.Backend).
		Bool("engage_enabled", cfg.Engage.Enabled).
		Msg("Starting discodeck")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx, cancel, cfg); err != nil {
		logging.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocritic // cfg is read once at startup
func run(ctx context.Context, cancel context.CancelFunc, cfg *config.Config) error {
	snapshots, err := store.New(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("open snapshot store: %w", err)
	}
	snapshots = store.Instrument(snapshots)
	defer func() {
		if err := snapshots.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing snapshot store")
		}
	}()

	source := spotify.New(cfg.Spotify)

	var previews *deck.PreviewCache
	if cfg.Deck.PreviewCacheTTL > 0 {
		previews = cache.New[models.PreviewRecord](cfg.Deck.PreviewCacheTTL)
		defer previews.Close()
	}

	var (
		publisher deck.LikePublisher
		bus       *engage.Bus
	)
	if cfg.Engage.Enabled {
		bus = engage.NewBus(cfg.Engage, func(token string) engage.Engager {
			return source.WithToken(token)
		}, logging.NewWatermillLogger())
		publisher = bus
		defer func() {
			if err := bus.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing engagement bus")
			}
		}()
	}

	manager := deck.NewManager(deck.ManagerDeps{
		Upstream:  func(token string) deck.Upstream { return source.WithToken(token) },
		Remote:    snapshots,
		Publisher: publisher,
		Previews:  previews,
		Deck:      cfg.Deck,
		Store:     cfg.Store,
		Logger:    logging.WithComponent("deck"),
	})
	defer func() {
		shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer stop()
		if err := manager.Shutdown(shutdownCtx); err != nil {
			logging.Warn().Err(err).Msg("Sessions did not finish before shutdown timeout")
		}
	}()

	checks := []api.ReadinessCheck{{
		Name: "spotify",
		Check: func(context.Context) error {
			if source.BreakerState() == "open" {
				return errors.New("circuit breaker open")
			}
			return nil
		},
	}}
	if bus != nil {
		checks = append(checks, api.ReadinessCheck{
			Name: "engage",
			Check: func(context.Context) error {
				if !bus.IsRunning() {
					return errors.New("engagement router not running")
				}
				return nil
			},
		})
	}

	handler := api.NewHandler(manager, snapshots.Name(), version, checks...)
	router := api.NewRouter(handler, api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(cfg.Security)))

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       2 * cfg.Server.Timeout,
	}

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if cfg.Deck.SessionIdleTimeout > 0 {
		tree.AddSessionService(services.NewEvictionService(manager, cfg.Deck.SessionIdleTimeout, logging.WithComponent("supervisor")))
	}
	if bus != nil {
		tree.AddEngageService(services.NewEngageService(bus))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case sig := <-sigCh:
			logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	treeErr := <-tree.ServeBackground(ctx)
	if errors.Is(treeErr, context.Canceled) {
		treeErr = nil
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
	}
	return treeErr
}
