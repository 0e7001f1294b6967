// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package config

import (
	"fmt"
	"time"

	"github.com/stedsans/stedsans/internal/curation"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	API      APIConfig      `koanf:"api"`
	Places   PlacesConfig   `koanf:"places"`
	Curation CurationConfig `koanf:"curation"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// APIConfig holds API surface settings.
type APIConfig struct {
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
}

// PlacesConfig holds the candidate data source settings.
type PlacesConfig struct {
	// CandidatesPath is an optional JSON file with per-area candidate
	// lists, used by the static source. Empty means no static data.
	CandidatesPath string `koanf:"candidates_path"`
}

// CurationConfig mirrors the curation engine configuration in a
// koanf-friendly shape. Themes and venue profiles declared here replace the
// built-in reference data wholesale when non-empty.
type CurationConfig struct {
	TrustThreshold float64         `koanf:"trust_threshold"`
	GlobalCap      int             `koanf:"global_cap"`
	Scoring        ScoringConfig   `koanf:"scoring"`
	Composite      CompositeConfig `koanf:"composite"`
	Buckets        BucketsConfig   `koanf:"buckets"`

	BaselineVenue string          `koanf:"baseline_venue"`
	Themes        []ThemeConfig   `koanf:"themes"`
	FallbackTheme ThemeConfig     `koanf:"fallback_theme"`
	VenueProfiles []ProfileConfig `koanf:"venue_profiles"`
}

// ScoringConfig holds the relevance scorer constants.
type ScoringConfig struct {
	ReviewSaturation  int     `koanf:"review_saturation"`
	WalkCutoffMinutes float64 `koanf:"walk_cutoff_minutes"`
	ProximityWeight   float64 `koanf:"proximity_weight"`
}

// CompositeConfig holds the composite scorer constants.
type CompositeConfig struct {
	WeightCount        float64 `koanf:"weight_count"`
	WeightRating       float64 `koanf:"weight_rating"`
	WeightProximity    float64 `koanf:"weight_proximity"`
	WeightVariety      float64 `koanf:"weight_variety"`
	FullCountPOIs      int     `koanf:"full_count_pois"`
	WalkCeilingMinutes float64 `koanf:"walk_ceiling_minutes"`
	FullVariety        int     `koanf:"full_variety"`
	NeutralSubScore    int     `koanf:"neutral_sub_score"`
}

// BucketsConfig holds the quote bucket thresholds.
type BucketsConfig struct {
	Exceptional int `koanf:"exceptional"`
	VeryGood    int `koanf:"very_good"`
	Good        int `koanf:"good"`
	Sufficient  int `koanf:"sufficient"`
}

// ThemeConfig declares one display theme.
type ThemeConfig struct {
	ID         string   `koanf:"id"`
	Name       string   `koanf:"name"`
	Color      string   `koanf:"color"`
	Cap        int      `koanf:"cap"`
	Categories []string `koanf:"categories"`
}

// ProfileConfig declares one venue profile.
type ProfileConfig struct {
	VenueType     string             `koanf:"venue_type"`
	Blacklist     []string           `koanf:"blacklist"`
	Weights       map[string]float64 `koanf:"weights"`
	TransportCaps map[string]int     `koanf:"transport_caps"`
}

// EngineConfig converts the curation section into the engine's config type.
func (c CurationConfig) EngineConfig() *curation.Config {
	return &curation.Config{
		TrustThreshold: c.TrustThreshold,
		GlobalCap:      c.GlobalCap,
		Scoring: curation.ScoringConfig{
			ReviewSaturation:  c.Scoring.ReviewSaturation,
			WalkCutoffMinutes: c.Scoring.WalkCutoffMinutes,
			ProximityWeight:   c.Scoring.ProximityWeight,
		},
		Composite: curation.CompositeConfig{
			Weights: curation.CompositeWeights{
				Count:     c.Composite.WeightCount,
				Rating:    c.Composite.WeightRating,
				Proximity: c.Composite.WeightProximity,
				Variety:   c.Composite.WeightVariety,
			},
			FullCountPOIs:      c.Composite.FullCountPOIs,
			WalkCeilingMinutes: c.Composite.WalkCeilingMinutes,
			FullVariety:        c.Composite.FullVariety,
			NeutralSubScore:    c.Composite.NeutralSubScore,
		},
		Buckets: curation.BucketThresholds{
			Exceptional: c.Buckets.Exceptional,
			VeryGood:    c.Buckets.VeryGood,
			Good:        c.Buckets.Good,
			Sufficient:  c.Buckets.Sufficient,
		},
	}
}

// ThemeRegistry builds the theme registry declared by this configuration.
func (c CurationConfig) ThemeRegistry() (*curation.ThemeRegistry, error) {
	themes := make([]curation.Theme, 0, len(c.Themes))
	for _, tc := range c.Themes {
		themes = append(themes, tc.toTheme())
	}
	return curation.NewThemeRegistry(themes, c.FallbackTheme.toTheme())
}

// ProfileSet builds the venue profile set declared by this configuration.
func (c CurationConfig) ProfileSet() (*curation.ProfileSet, error) {
	profiles := make([]curation.VenueProfile, 0, len(c.VenueProfiles))
	for _, pc := range c.VenueProfiles {
		profiles = append(profiles, curation.VenueProfile{
			VenueType:     curation.VenueType(pc.VenueType),
			Blacklist:     pc.Blacklist,
			Weights:       pc.Weights,
			TransportCaps: pc.TransportCaps,
		})
	}
	return curation.NewProfileSet(profiles, curation.VenueType(c.BaselineVenue))
}

func (t ThemeConfig) toTheme() curation.Theme {
	return curation.Theme{
		ID:         t.ID,
		Name:       t.Name,
		Color:      t.Color,
		Cap:        t.Cap,
		Categories: t.Categories,
	}
}

// Validate checks the whole configuration once, at load time.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be positive, got %v", c.Server.ShutdownTimeout)
	}
	if c.API.RateLimitReqs < 1 {
		return fmt.Errorf("api.rate_limit_reqs must be positive, got %d", c.API.RateLimitReqs)
	}
	if c.API.RateLimitWindow <= 0 {
		return fmt.Errorf("api.rate_limit_window must be positive, got %v", c.API.RateLimitWindow)
	}
	if c.API.RequestTimeout <= 0 {
		return fmt.Errorf("api.request_timeout must be positive, got %v", c.API.RequestTimeout)
	}

	if err := c.Curation.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("curation: %w", err)
	}
	if _, err := c.Curation.ThemeRegistry(); err != nil {
		return fmt.Errorf("curation.themes: %w", err)
	}
	if _, err := c.Curation.ProfileSet(); err != nil {
		return fmt.Errorf("curation.venue_profiles: %w", err)
	}
	return nil
}
