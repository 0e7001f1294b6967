// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package curation

import (
	"fmt"
	"math"
)

// weightSumTolerance is the allowed deviation of the composite weight sum
// from 1.0, accounting for float literal rounding in config files.
const weightSumTolerance = 1e-9

// ScoringConfig holds the named tunable constants of the relevance scorer.
// Product owners retune these without a code change, so they are
// configuration, not inline literals.
type ScoringConfig struct {
	// ReviewSaturation is the review count at which a rating is trusted at
	// full weight (K). Fewer reviews linearly discount the rating term.
	// Default: 50.
	ReviewSaturation int `json:"review_saturation"`

	// WalkCutoffMinutes is the walk time at which the proximity bonus
	// decays to zero (M). Default: 15.
	WalkCutoffMinutes float64 `json:"walk_cutoff_minutes"`

	// ProximityWeight is the maximum proximity bonus (B). Default: 0.5.
	ProximityWeight float64 `json:"proximity_weight"`
}

// CompositeWeights are the relative contributions of the four composite
// sub-scores. Unlike algorithm ensembles, these are a published contract
// and must sum to exactly 1.0; validation rejects anything else.
type CompositeWeights struct {
	Count     float64 `json:"count"`
	Rating    float64 `json:"rating"`
	Proximity float64 `json:"proximity"`
	Variety   float64 `json:"variety"`
}

// Sum returns the total of the four weights.
func (w CompositeWeights) Sum() float64 {
	return w.Count + w.Rating + w.Proximity + w.Variety
}

// CompositeConfig holds the named tunable constants of the composite scorer.
type CompositeConfig struct {
	// Weights are the sub-score weights. Must sum to 1.0.
	// Default: count 0.30, rating 0.25, proximity 0.25, variety 0.20.
	Weights CompositeWeights `json:"weights"`

	// FullCountPOIs is the POI count needed for a full count sub-score (P).
	// Default: 10.
	FullCountPOIs int `json:"full_count_pois"`

	// WalkCeilingMinutes is the walk-time normalization ceiling (W).
	// Default: 15.
	WalkCeilingMinutes float64 `json:"walk_ceiling_minutes"`

	// FullVariety is the category count considered fully varied (V).
	// Default: 5.
	FullVariety int `json:"full_variety"`

	// NeutralSubScore is used for the rating and proximity sub-scores when
	// their inputs are absent. Absence is treated as average, not bad.
	// Default: 50.
	NeutralSubScore int `json:"neutral_sub_score"`
}

// BucketThresholds are the lower bounds of the top four quote buckets, in
// descending order. Scores below Sufficient land in the limited bucket.
type BucketThresholds struct {
	Exceptional int `json:"exceptional"`
	VeryGood    int `json:"very_good"`
	Good        int `json:"good"`
	Sufficient  int `json:"sufficient"`
}

// Config contains all configuration for the curation engine.
type Config struct {
	// TrustThreshold is the minimum trust score a candidate with a present
	// trust score must meet. Candidates with no trust score always pass.
	// Default: 0.5.
	TrustThreshold float64 `json:"trust_threshold"`

	// GlobalCap is the overall ceiling on an allocation. Default: 120.
	GlobalCap int `json:"global_cap"`

	// Scoring holds the relevance scorer constants.
	Scoring ScoringConfig `json:"scoring"`

	// Composite holds the composite scorer constants.
	Composite CompositeConfig `json:"composite"`

	// Buckets holds the quote bucket thresholds. Default: 90/75/60/40.
	Buckets BucketThresholds `json:"buckets"`
}

// DefaultConfig returns a Config with the reference production values.
func DefaultConfig() *Config {
	return &Config{
		TrustThreshold: 0.5,
		GlobalCap:      120,
		Scoring: ScoringConfig{
			ReviewSaturation:  50,
			WalkCutoffMinutes: 15,
			ProximityWeight:   0.5,
		},
		Composite: CompositeConfig{
			Weights: CompositeWeights{
				Count:     0.30,
				Rating:    0.25,
				Proximity: 0.25,
				Variety:   0.20,
			},
			FullCountPOIs:      10,
			WalkCeilingMinutes: 15,
			FullVariety:        5,
			NeutralSubScore:    50,
		},
		Buckets: BucketThresholds{
			Exceptional: 90,
			VeryGood:    75,
			Good:        60,
			Sufficient:  40,
		},
	}
}

// Validate checks the configuration for inconsistencies. It is called once
// at configuration-load time; the scoring and allocation paths do not
// re-check these on every call.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	if c.TrustThreshold < 0 || c.TrustThreshold > 1 {
		return fmt.Errorf("trust_threshold must be in [0, 1], got %f", c.TrustThreshold)
	}
	if c.GlobalCap < 0 {
		return fmt.Errorf("global_cap must be non-negative, got %d", c.GlobalCap)
	}

	if c.Scoring.ReviewSaturation < 1 {
		return fmt.Errorf("scoring.review_saturation must be positive, got %d", c.Scoring.ReviewSaturation)
	}
	if c.Scoring.WalkCutoffMinutes <= 0 {
		return fmt.Errorf("scoring.walk_cutoff_minutes must be positive, got %f", c.Scoring.WalkCutoffMinutes)
	}
	if c.Scoring.ProximityWeight < 0 {
		return fmt.Errorf("scoring.proximity_weight must be non-negative, got %f", c.Scoring.ProximityWeight)
	}

	if sum := c.Composite.Weights.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("composite.weights must sum to 1.0, got %f", sum)
	}
	if c.Composite.Weights.Count < 0 || c.Composite.Weights.Rating < 0 ||
		c.Composite.Weights.Proximity < 0 || c.Composite.Weights.Variety < 0 {
		return fmt.Errorf("composite.weights must be non-negative")
	}
	if c.Composite.FullCountPOIs < 1 {
		return fmt.Errorf("composite.full_count_pois must be positive, got %d", c.Composite.FullCountPOIs)
	}
	if c.Composite.WalkCeilingMinutes <= 0 {
		return fmt.Errorf("composite.walk_ceiling_minutes must be positive, got %f", c.Composite.WalkCeilingMinutes)
	}
	if c.Composite.FullVariety < 2 {
		return fmt.Errorf("composite.full_variety must be at least 2, got %d", c.Composite.FullVariety)
	}
	if c.Composite.NeutralSubScore < 0 || c.Composite.NeutralSubScore > 100 {
		return fmt.Errorf("composite.neutral_sub_score must be in [0, 100], got %d", c.Composite.NeutralSubScore)
	}

	b := c.Buckets
	if !(b.Exceptional > b.VeryGood && b.VeryGood > b.Good && b.Good > b.Sufficient) {
		return fmt.Errorf("buckets must be strictly descending, got %d/%d/%d/%d",
			b.Exceptional, b.VeryGood, b.Good, b.Sufficient)
	}
	if b.Sufficient < 0 || b.Exceptional > 100 {
		return fmt.Errorf("buckets must lie in [0, 100], got %d/%d/%d/%d",
			b.Exceptional, b.VeryGood, b.Good, b.Sufficient)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	cp := *c
	return &cp
}
