// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/stedsans/stedsans/internal/curation"
)

// DefaultConfigPaths lists where config files are searched, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/stedsans/config.yaml",
	"/etc/stedsans/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "STEDSANS_CONFIG"

// envPrefix namespaces environment overrides: STEDSANS_SERVER_PORT sets
// server.port.
const envPrefix = "STEDSANS_"

// defaultConfig returns the built-in defaults: the curation reference data
// plus development-friendly server settings.
func defaultConfig() *Config {
	cur := curation.DefaultConfig()

	themes := make([]ThemeConfig, 0)
	for _, th := range curation.DefaultThemes() {
		themes = append(themes, fromTheme(th))
	}

	profiles := make([]ProfileConfig, 0)
	for _, p := range curation.DefaultProfiles() {
		profiles = append(profiles, ProfileConfig{
			VenueType:     string(p.VenueType),
			Blacklist:     p.Blacklist,
			Weights:       p.Weights,
			TransportCaps: p.TransportCaps,
		})
	}

	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8642,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		API: APIConfig{
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			RequestTimeout:  10 * time.Second,
		},
		Places: PlacesConfig{},
		Curation: CurationConfig{
			TrustThreshold: cur.TrustThreshold,
			GlobalCap:      cur.GlobalCap,
			Scoring: ScoringConfig{
				ReviewSaturation:  cur.Scoring.ReviewSaturation,
				WalkCutoffMinutes: cur.Scoring.WalkCutoffMinutes,
				ProximityWeight:   cur.Scoring.ProximityWeight,
			},
			Composite: CompositeConfig{
				WeightCount:        cur.Composite.Weights.Count,
				WeightRating:       cur.Composite.Weights.Rating,
				WeightProximity:    cur.Composite.Weights.Proximity,
				WeightVariety:      cur.Composite.Weights.Variety,
				FullCountPOIs:      cur.Composite.FullCountPOIs,
				WalkCeilingMinutes: cur.Composite.WalkCeilingMinutes,
				FullVariety:        cur.Composite.FullVariety,
				NeutralSubScore:    cur.Composite.NeutralSubScore,
			},
			Buckets: BucketsConfig{
				Exceptional: cur.Buckets.Exceptional,
				VeryGood:    cur.Buckets.VeryGood,
				Good:        cur.Buckets.Good,
				Sufficient:  cur.Buckets.Sufficient,
			},
			BaselineVenue: string(curation.VenueHotel),
			Themes:        themes,
			FallbackTheme: fromTheme(curation.DefaultFallbackTheme()),
			VenueProfiles: profiles,
		},
	}
}

func fromTheme(th curation.Theme) ThemeConfig {
	return ThemeConfig{
		ID:         th.ID,
		Name:       th.Name,
		Color:      th.Color,
		Cap:        th.Cap,
		Categories: th.Categories,
	}
}

// Load builds the configuration from layered sources, lowest priority
// first: built-in defaults, an optional YAML file, then STEDSANS_*
// environment variables. The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.Replace(
			strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".", 1)
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
