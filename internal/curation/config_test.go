// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package curation

import "testing"

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults pass",
			mutate: func(c *Config) {},
		},
		{
			name:    "trust threshold above one",
			mutate:  func(c *Config) { c.TrustThreshold = 1.5 },
			wantErr: true,
		},
		{
			name:    "negative global cap",
			mutate:  func(c *Config) { c.GlobalCap = -1 },
			wantErr: true,
		},
		{
			name:   "zero global cap is allowed",
			mutate: func(c *Config) { c.GlobalCap = 0 },
		},
		{
			name:    "zero review saturation",
			mutate:  func(c *Config) { c.Scoring.ReviewSaturation = 0 },
			wantErr: true,
		},
		{
			name:    "zero walk cutoff",
			mutate:  func(c *Config) { c.Scoring.WalkCutoffMinutes = 0 },
			wantErr: true,
		},
		{
			name:    "negative proximity weight",
			mutate:  func(c *Config) { c.Scoring.ProximityWeight = -0.1 },
			wantErr: true,
		},
		{
			name:    "composite weights not summing to one",
			mutate:  func(c *Config) { c.Composite.Weights.Count = 0.5 },
			wantErr: true,
		},
		{
			name: "negative composite weight",
			mutate: func(c *Config) {
				c.Composite.Weights = CompositeWeights{Count: 1.2, Rating: -0.2, Proximity: 0, Variety: 0}
			},
			wantErr: true,
		},
		{
			name:    "full variety below two",
			mutate:  func(c *Config) { c.Composite.FullVariety = 1 },
			wantErr: true,
		},
		{
			name:    "neutral sub-score out of range",
			mutate:  func(c *Config) { c.Composite.NeutralSubScore = 101 },
			wantErr: true,
		},
		{
			name:    "buckets not descending",
			mutate:  func(c *Config) { c.Buckets.Good = 80 },
			wantErr: true,
		},
		{
			name:    "bucket above hundred",
			mutate:  func(c *Config) { c.Buckets.Exceptional = 120 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()

	clone.TrustThreshold = 0.9
	clone.Composite.Weights.Count = 0.5

	if cfg.TrustThreshold == clone.TrustThreshold {
		t.Error("Clone() shares trust threshold with original")
	}
	if cfg.Composite.Weights.Count == clone.Composite.Weights.Count {
		t.Error("Clone() shares composite weights with original")
	}
}
