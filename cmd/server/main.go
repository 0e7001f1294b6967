// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

// Package main is the entry point for the Stedsans curation server.
//
// Stedsans turns raw nearby-places data into curated location content for
// venue listings: it scores points of interest for relevance, allocates them
// into themed capacity budgets per venue type, and derives composite
// category scores with templated narrative quotes.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered load from defaults, config.yaml, and
//     STEDSANS_* environment variables (Koanf v2)
//  2. Logging: zerolog global logger per the logging config
//  3. Curation engine: theme registry, venue profiles, scoring and quote
//     configuration
//  4. Candidate source: static JSON file when configured, else an empty
//     in-memory source
//  5. HTTP server: chi REST API under /api/v1 plus /health and /metrics
//  6. Supervision: the HTTP server runs under a suture tree with restart
//     backoff
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables with the STEDSANS_ prefix
//   - Config file (config.yaml, /etc/stedsans/config.yaml, or the path in
//     STEDSANS_CONFIG)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits for in-flight requests up to the
// configured shutdown timeout, then exits.
//
// # Example Usage
//
// Development with the bundled defaults and a candidate fixture:
//
//	export STEDSANS_PLACES_CANDIDATES_PATH=./testdata/candidates.json
//	export STEDSANS_LOGGING_FORMAT=console
//	./stedsans
//
// Production:
//
//	export STEDSANS_SERVER_PORT=8642
//	export STEDSANS_API_CORS_ORIGINS=https://app.stedsans.no
//	./stedsans
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/stedsans/stedsans/internal/api"
	"github.com/stedsans/stedsans/internal/config"
	"github.com/stedsans/stedsans/internal/curation"
	"github.com/stedsans/stedsans/internal/logging"
	"github.com/stedsans/stedsans/internal/places"
	"github.com/stedsans/stedsans/internal/supervisor"
)

// version is stamped by the build via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logging config is not available yet, so this uses defaults.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("addr", cfg.Server.Addr()).
		Int("global_cap", cfg.Curation.GlobalCap).
		Float64("trust_threshold", cfg.Curation.TrustThreshold).
		Msg("Starting Stedsans")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Shutdown complete")
}

func run(cfg *config.Config) error {
	registry, err := cfg.Curation.ThemeRegistry()
	if err != nil {
		return err
	}
	profiles, err := cfg.Curation.ProfileSet()
	if err != nil {
		return err
	}

	engine, err := curation.NewEngine(cfg.Curation.EngineConfig(), registry, profiles, nil, logging.Logger())
	if err != nil {
		return err
	}

	source, err := buildSource(cfg)
	if err != nil {
		return err
	}

	// Trust reports ride in on the candidate source until the scoring
	// service client lands, so no provider is wired here.
	handler := api.NewHandler(engine, source, nil, version)
	router := api.NewRouter(handler, api.RouterConfig{
		CORSOrigins:     cfg.API.CORSOrigins,
		RateLimitReqs:   cfg.API.RateLimitReqs,
		RateLimitWindow: cfg.API.RateLimitWindow,
		RequestTimeout:  cfg.API.RequestTimeout,
	})

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	treeCfg := supervisor.DefaultTreeConfig()
	treeCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
	tree := supervisor.NewTree(logging.NewSlogLogger(), treeCfg)
	tree.AddAPIService(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("HTTP server listening")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service missed shutdown timeout")
		}
	}
	return nil
}

func buildSource(cfg *config.Config) (places.Source, error) {
	if cfg.Places.CandidatesPath == "" {
		logging.Warn().Msg("No candidates path configured, serving an empty source")
		return places.NewStaticSource(nil), nil
	}

	source, err := places.LoadStaticSource(cfg.Places.CandidatesPath)
	if err != nil {
		return nil, err
	}

	areas, err := source.Areas(context.Background())
	if err != nil {
		return nil, err
	}
	logging.Info().
		Str("path", cfg.Places.CandidatesPath).
		Int("areas", len(areas)).
		Msg("Candidate source loaded")
	return source, nil
}
