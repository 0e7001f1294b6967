// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package curation

import "fmt"

// ThemeRegistry maps category ids to display themes.
//
// The mapping is total: categories not listed in any theme resolve to the
// fallback theme. Clients add ad-hoc categories, so an unmapped category is
// an expected input, never a failure. Theme declaration order is preserved
// and drives the allocator's per-theme iteration order, which is part of the
// allocation contract.
type ThemeRegistry struct {
	themes     []Theme
	fallback   Theme
	byCategory map[string]string
}

// NewThemeRegistry builds a registry from the declared themes and a fallback
// theme. It rejects duplicate theme ids, duplicate category assignments,
// non-positive theme caps, and an empty fallback id.
func NewThemeRegistry(themes []Theme, fallback Theme) (*ThemeRegistry, error) {
	if fallback.ID == "" {
		return nil, fmt.Errorf("fallback theme must have an id")
	}

	byCategory := make(map[string]string)
	seen := make(map[string]struct{}, len(themes))

	for _, th := range themes {
		if th.ID == "" {
			return nil, fmt.Errorf("theme with empty id")
		}
		if th.ID == fallback.ID {
			return nil, fmt.Errorf("theme %q collides with the fallback theme", th.ID)
		}
		if _, dup := seen[th.ID]; dup {
			return nil, fmt.Errorf("duplicate theme id %q", th.ID)
		}
		seen[th.ID] = struct{}{}

		if th.Cap < 1 {
			return nil, fmt.Errorf("theme %q has non-positive cap %d", th.ID, th.Cap)
		}

		for _, cat := range th.Categories {
			if owner, dup := byCategory[cat]; dup {
				return nil, fmt.Errorf("category %q assigned to both %q and %q", cat, owner, th.ID)
			}
			byCategory[cat] = th.ID
		}
	}

	return &ThemeRegistry{
		themes:     append([]Theme(nil), themes...),
		fallback:   fallback,
		byCategory: byCategory,
	}, nil
}

// ThemeOf resolves a category id to its theme id. The second return value is
// false when the fallback theme absorbed an unmapped category, so callers can
// distinguish Mapped from Fallback without a sentinel id.
func (r *ThemeRegistry) ThemeOf(categoryID string) (string, bool) {
	if id, ok := r.byCategory[categoryID]; ok {
		return id, true
	}
	return r.fallback.ID, false
}

// Themes returns the declared themes in declaration order.
func (r *ThemeRegistry) Themes() []Theme {
	return append([]Theme(nil), r.themes...)
}

// Fallback returns the fallback theme.
func (r *ThemeRegistry) Fallback() Theme {
	return r.fallback
}

// ProfileSet holds the venue profiles and resolves venue types to profiles.
// Resolution is total: an unknown or empty venue type yields the baseline
// profile, never an error.
type ProfileSet struct {
	profiles map[VenueType]VenueProfile
	baseline VenueType
}

// NewProfileSet builds a profile set. The baseline venue type must be among
// the given profiles; profile weights must be non-negative and caps positive.
func NewProfileSet(profiles []VenueProfile, baseline VenueType) (*ProfileSet, error) {
	byType := make(map[VenueType]VenueProfile, len(profiles))
	for _, p := range profiles {
		if p.VenueType == "" {
			return nil, fmt.Errorf("venue profile with empty venue type")
		}
		if _, dup := byType[p.VenueType]; dup {
			return nil, fmt.Errorf("duplicate venue profile %q", p.VenueType)
		}
		for cat, w := range p.Weights {
			if w < 0 {
				return nil, fmt.Errorf("profile %q: negative weight %f for category %q", p.VenueType, w, cat)
			}
		}
		for cat, n := range p.TransportCaps {
			if n < 1 {
				return nil, fmt.Errorf("profile %q: non-positive cap %d for category %q", p.VenueType, n, cat)
			}
		}
		byType[p.VenueType] = p
	}

	if _, ok := byType[baseline]; !ok {
		return nil, fmt.Errorf("baseline venue type %q has no profile", baseline)
	}

	return &ProfileSet{profiles: byType, baseline: baseline}, nil
}

// ProfileFor resolves a venue type to its profile, defaulting to the
// baseline profile for unknown or empty venue types.
func (s *ProfileSet) ProfileFor(vt VenueType) VenueProfile {
	if p, ok := s.profiles[vt]; ok {
		return p
	}
	return s.profiles[s.baseline]
}

// Baseline returns the baseline venue type.
func (s *ProfileSet) Baseline() VenueType {
	return s.baseline
}

// DefaultThemes returns the reference theme declarations, in the order the
// allocator iterates them. The food and drink theme carries materially more
// budget than the fitness theme.
func DefaultThemes() []Theme {
	return []Theme{
		{
			ID: "mat-drikke", Name: "Mat og drikke", Color: "#e8590c", Cap: 60,
			Categories: []string{"restaurant", "cafe", "bar", "bakery", "pub", "fast_food"},
		},
		{
			ID: "handel", Name: "Handel", Color: "#1971c2", Cap: 30,
			Categories: []string{"supermarket", "convenience", "mall", "clothing_store", "pharmacy"},
		},
		{
			ID: "kultur", Name: "Kultur", Color: "#9c36b5", Cap: 25,
			Categories: []string{"museum", "gallery", "cinema", "theater", "library", "music_venue"},
		},
		{
			ID: "natur", Name: "Natur og uteliv", Color: "#2f9e44", Cap: 20,
			Categories: []string{"park", "playground", "viewpoint", "beach", "garden"},
		},
		{
			ID: "transport", Name: "Transport", Color: "#868e96", Cap: 15,
			Categories: []string{"bus_stop", "tram_stop", "metro_station", "train_station", "bike_share", "taxi_stand"},
		},
		{
			ID: "trening", Name: "Trening", Color: "#e03131", Cap: 10,
			Categories: []string{"gym", "sports_centre", "swimming_pool", "yoga_studio"},
		},
	}
}

// DefaultFallbackTheme returns the reference fallback theme. Its cap is not
// used: catch-all candidates fill the remaining global capacity instead of a
// fixed quota.
func DefaultFallbackTheme() Theme {
	return Theme{ID: "annet", Name: "Annet", Color: "#adb5bd", Cap: 1}
}

// DefaultProfiles returns the reference venue profiles. Hotel is the
// baseline: guests care about transit links and nightlife, so transport is
// capped rather than blacklisted. Residential buyers see no taxi stands or
// fast food, and commercial tenants get lunch-weighted scoring.
func DefaultProfiles() []VenueProfile {
	return []VenueProfile{
		{
			VenueType: VenueHotel,
			Weights: map[string]float64{
				"bar":        1.2,
				"restaurant": 1.2,
				"taxi_stand": 1.1,
			},
			TransportCaps: map[string]int{
				"bus_stop":   3,
				"tram_stop":  3,
				"bike_share": 2,
			},
		},
		{
			VenueType: VenueResidential,
			Blacklist: []string{"taxi_stand", "fast_food"},
			Weights: map[string]float64{
				"supermarket": 1.3,
				"playground":  1.2,
				"park":        1.2,
				"bar":         0.7,
			},
			TransportCaps: map[string]int{
				"bus_stop":   2,
				"tram_stop":  2,
				"bike_share": 2,
			},
		},
		{
			VenueType: VenueCommercial,
			Blacklist: []string{"playground"},
			Weights: map[string]float64{
				"cafe":       1.3,
				"fast_food":  1.2,
				"restaurant": 1.1,
				"gym":        1.1,
			},
			TransportCaps: map[string]int{
				"bus_stop":      4,
				"tram_stop":     4,
				"metro_station": 2,
				"bike_share":    3,
			},
		},
	}
}
