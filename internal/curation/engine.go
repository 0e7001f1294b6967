// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package curation

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Engine is the wired facade over the curation core: one immutable
// configuration, one theme registry, one venue profile set, and one quote
// book, shared by every request.
//
// The engine holds no mutable state between calls. Every operation is a pure
// function of its inputs and the construction-time configuration, so the
// engine is safe for concurrent use without locking.
type Engine struct {
	config    *Config
	registry  *ThemeRegistry
	profiles  *ProfileSet
	scorer    *Scorer
	composite *CompositeScorer
	quotes    *QuoteBook
	allocator *Allocator
	logger    zerolog.Logger
}

// NewEngine creates an engine. The configuration is validated here, once;
// the scoring and allocation paths assume it is consistent.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, registry *ThemeRegistry, profiles *ProfileSet, quotes *QuoteBook, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if registry == nil {
		return nil, fmt.Errorf("theme registry is required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("venue profiles are required")
	}
	if quotes == nil {
		quotes = DefaultQuoteBook(cfg.Buckets)
	}

	scorer := NewScorer(cfg.Scoring)
	return &Engine{
		config:    cfg.Clone(),
		registry:  registry,
		profiles:  profiles,
		scorer:    scorer,
		composite: NewCompositeScorer(cfg.Composite),
		quotes:    quotes,
		allocator: NewAllocator(registry, scorer),
		logger:    logger.With().Str("component", "curation").Logger(),
	}, nil
}

// Config returns a copy of the engine's configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Registry returns the engine's theme registry.
func (e *Engine) Registry() *ThemeRegistry {
	return e.registry
}

// Profiles returns the engine's venue profile set.
func (e *Engine) Profiles() *ProfileSet {
	return e.profiles
}

// Allocate runs the allocation pipeline for a venue type over the candidate
// pool, using the engine's trust threshold and global cap.
func (e *Engine) Allocate(candidates []Candidate, venueType VenueType) AllocationResult {
	start := time.Now()
	profile := e.profiles.ProfileFor(venueType)
	result := e.allocator.Allocate(candidates, profile, e.config.TrustThreshold, e.config.GlobalCap)

	e.logger.Debug().
		Str("venue_type", string(profile.VenueType)).
		Int("candidates", len(candidates)).
		Int("selected", len(result.Candidates)).
		Int("dropped_trust", result.Dropped.Trust).
		Int("dropped_blacklist", result.Dropped.Blacklist).
		Dur("elapsed", time.Since(start)).
		Msg("allocation complete")

	return result
}

// CompositeScore computes the 0-100 composite score for a category summary.
func (e *Engine) CompositeScore(sum CategorySummary) CompositeScore {
	return e.composite.Score(sum)
}

// Quote returns the narrative sentence for a theme and composite score. The
// seed makes selection reproducible across renders; pass an empty seed to
// use the variety heuristic instead.
func (e *Engine) Quote(themeID string, score, variety int, seed string) string {
	return e.quotes.Select(themeID, score, variety, seed)
}

// QuoteLevel buckets a composite score using the engine's thresholds.
func (e *Engine) QuoteLevel(score int) QuoteLevel {
	return e.quotes.LevelFor(score)
}
