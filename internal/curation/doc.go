// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

// Package curation implements the point-of-interest curation core: relevance
// scoring, capacity-constrained allocation, composite category scoring, and
// templated narrative selection.
//
// # Architecture
//
// Two independent pipelines share one data model:
//
//   - Allocation: trust gate -> blacklist gate -> scoring -> per-category
//     caps -> per-theme budgets -> catch-all -> global cap. Decides which
//     POIs are shown for a venue and in what order.
//   - Summary: composite category scoring (four weighted 0-100 sub-scores)
//     plus deterministic narrative quote selection. Summarizes an area's
//     offering in one number and one sentence.
//
// # Design Principles
//
//   - Deterministic: no randomness anywhere; quote "variation" is a stable
//     string hash of a caller-supplied seed, and every sort carries a total
//     order (score descending, candidate id ascending on ties).
//   - Pure: no I/O, no shared mutable state between calls. The pipelines
//     run once per request over an in-memory candidate list materialized by
//     the caller.
//   - Total: missing ratings, review counts, walk times, trust scores,
//     unmapped categories, and unknown venue types are all valid inputs
//     with defined fallbacks, never errors. Configuration inconsistency is
//     rejected once, at load time.
//
// # Usage
//
//	registry, _ := curation.NewThemeRegistry(curation.DefaultThemes(), curation.DefaultFallbackTheme())
//	profiles, _ := curation.NewProfileSet(curation.DefaultProfiles(), curation.VenueHotel)
//	engine, _ := curation.NewEngine(curation.DefaultConfig(), registry, profiles, nil, logger)
//
//	result := engine.Allocate(candidates, curation.VenueHotel)
//	score := engine.CompositeScore(summary)
//	quote := engine.Quote("mat-drikke", score.Total, summary.UniqueCategories, areaID)
//
// # Thread Safety
//
// The engine is immutable after construction and safe for concurrent use
// without locking.
package curation
