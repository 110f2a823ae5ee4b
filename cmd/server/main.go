// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Command server runs the CineRec HTTP service: it loads the movie
// catalog, opens the watch history store, and serves the recommendation
// API under a supervision tree until SIGINT or SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cinerec/cinerec/internal/api"
	"github.com/cinerec/cinerec/internal/catalog"
	"github.com/cinerec/cinerec/internal/config"
	"github.com/cinerec/cinerec/internal/enrich"
	"github.com/cinerec/cinerec/internal/history"
	"github.com/cinerec/cinerec/internal/logging"
	"github.com/cinerec/cinerec/internal/recommend"
	"github.com/cinerec/cinerec/internal/supervisor"
	"github.com/cinerec/cinerec/internal/supervisor/services"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// config not available yet, use the default logger
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging)
	logging.Info().
		Str("version", version).
		Str("catalog_path", cfg.Catalog.Path).
		Str("history_path", cfg.History.Path).
		Str("scorer", cfg.Recommend.Scorer).
		Bool("enrichment", cfg.TMDB.APIKey != "").
		Msg("Starting CineRec")

	// catalog must load before traffic is accepted; a missing source is
	// fatal, malformed rows are not
	catalogStore := catalog.NewFileStore(cfg.Catalog.Path)
	if err := catalogStore.Load(); err != nil {
		logging.Fatal().Err(err).Msg("Failed to load movie catalog")
	}

	historyStore, db, err := history.Open(cfg.History.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open watch history store")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing history store")
		}
	}()

	engine := recommend.NewEngine(cfg.Recommend.BuildScorer(), cfg.Recommend.Options())
	enricher := enrich.NewClient(cfg.TMDB)
	if !enricher.Enabled() {
		logging.Warn().Msg("No TMDB API key configured, responses will not be enriched")
	}

	handler := api.NewHandler(catalogStore, engine, historyStore, enricher, version)
	router := api.NewRouter(handler, cfg.Security)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)

	if cfg.History.Path != "" {
		tree.AddDataService(services.NewHistoryGCService(historyStore, cfg.History.GCInterval, cfg.History.GCRatio))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// drain until the supervisor closes the channel
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("CineRec stopped gracefully")
}
