// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package curation

// VenueType identifies the venue context a candidate set is curated for.
// The enumeration is closed; unknown values fall back to the baseline
// profile (see ProfileSet.ProfileFor).
type VenueType string

const (
	// VenueHotel is the baseline venue type.
	VenueHotel VenueType = "hotel"
	// VenueResidential is a residential building or development.
	VenueResidential VenueType = "residential"
	// VenueCommercial is an office or commercial venue.
	VenueCommercial VenueType = "commercial"
)

// Category is immutable reference data describing one POI category.
type Category struct {
	// ID is the stable string key (e.g. "restaurant", "bus_stop").
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Icon is the display icon identifier.
	Icon string `json:"icon,omitempty"`

	// Color is the display color.
	Color string `json:"color,omitempty"`
}

// Theme is a display grouping of categories with its own selection budget.
// Themes partition the category space; the registry's fallback theme
// absorbs any category not listed here.
type Theme struct {
	// ID is the stable theme key (e.g. "mat-drikke").
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Color is the display color.
	Color string `json:"color,omitempty"`

	// Cap is the maximum number of POIs from this theme in a final
	// allocation. Must be positive.
	Cap int `json:"cap"`

	// Categories lists the category ids this theme contains.
	Categories []string `json:"categories"`
}

// VenueProfile is venue-type-specific scoring and filtering configuration.
type VenueProfile struct {
	// VenueType is the venue type this profile applies to.
	VenueType VenueType `json:"venue_type"`

	// Blacklist lists category ids excluded entirely for this venue type.
	Blacklist []string `json:"blacklist,omitempty"`

	// Weights maps category id to a relevance multiplier. Categories
	// without an entry use weight 1.0.
	Weights map[string]float64 `json:"weights,omitempty"`

	// TransportCaps maps category id to the maximum number of instances
	// admitted, independent of theme caps. Used chiefly for transport
	// categories such as bus stops or bike-share docks.
	TransportCaps map[string]int `json:"transport_caps,omitempty"`
}

// IsBlacklisted reports whether the category is excluded for this venue type.
func (p VenueProfile) IsBlacklisted(categoryID string) bool {
	for _, id := range p.Blacklist {
		if id == categoryID {
			return true
		}
	}
	return false
}

// WeightFor returns the relevance multiplier for a category, 1.0 when unset.
func (p VenueProfile) WeightFor(categoryID string) float64 {
	if w, ok := p.Weights[categoryID]; ok {
		return w
	}
	return 1.0
}

// CapFor returns the per-category instance cap and whether one is configured.
func (p VenueProfile) CapFor(categoryID string) (int, bool) {
	n, ok := p.TransportCaps[categoryID]
	return n, ok
}

// Candidate is the scored unit: one point of interest eligible for display.
//
// Optional attributes use pointers; absence is a valid, handled state, never
// an error. An absent trust score passes the trust gate (unknown is not
// untrusted), an absent walk time earns no proximity bonus, and an absent
// rating or review count zeroes the rating term.
type Candidate struct {
	// ID uniquely identifies the POI. Required; a candidate without an ID
	// is a caller bug.
	ID string `json:"id"`

	// CategoryID references the candidate's category. Required.
	CategoryID string `json:"category_id"`

	// Name is the display name, carried through for the caller.
	Name string `json:"name,omitempty"`

	// Rating is the average user rating in [0.0, 5.0], or nil when unknown.
	Rating *float64 `json:"rating,omitempty"`

	// ReviewCount is the non-negative review count, or nil when unknown.
	ReviewCount *int `json:"review_count,omitempty"`

	// WalkMinutes is the walking time from the venue, or nil when unknown.
	WalkMinutes *float64 `json:"walk_minutes,omitempty"`

	// TrustScore is the external trust score in [0.0, 1.0], or nil when the
	// trust collaborator produced none.
	TrustScore *float64 `json:"trust_score,omitempty"`

	// TrustFlags carries the trust collaborator's flags verbatim. Surfaced
	// upstream, never consumed here.
	TrustFlags []string `json:"trust_flags,omitempty"`

	// NeedsManualReview is the trust collaborator's review marker.
	// Surfaced upstream, never consumed here.
	NeedsManualReview bool `json:"needs_manual_review,omitempty"`
}

// ScoredCandidate pairs a candidate with its computed relevance score.
// Ephemeral; recomputed on every allocation and never persisted.
type ScoredCandidate struct {
	Candidate Candidate `json:"candidate"`

	// Score is the venue-weighted relevance score, >= 0 with no fixed
	// upper bound.
	Score float64 `json:"score"`

	// ThemeID is the theme the candidate's category resolved to.
	ThemeID string `json:"theme_id"`

	// ThemeMapped is false when the fallback theme absorbed an unmapped
	// category.
	ThemeMapped bool `json:"theme_mapped"`
}

// ThemeAllocation is the slice of an allocation belonging to one theme.
type ThemeAllocation struct {
	ThemeID      string   `json:"theme_id"`
	CandidateIDs []string `json:"candidate_ids"`
}

// StageDrops counts candidates removed at each allocation stage.
type StageDrops struct {
	Trust       int `json:"trust"`
	Blacklist   int `json:"blacklist"`
	CategoryCap int `json:"category_cap"`
	ThemeCap    int `json:"theme_cap"`
	GlobalCap   int `json:"global_cap"`
}

// AllocationResult is the ordered POI selection for one request, partitioned
// by theme. Ephemeral output, never persisted by this subsystem.
type AllocationResult struct {
	// Candidates is the final merged list: theme order first, catch-all
	// last, at most the global cap in total.
	Candidates []ScoredCandidate `json:"candidates"`

	// Themes partitions the selection by theme, in theme declaration
	// order, with the fallback theme last when it contributed.
	Themes []ThemeAllocation `json:"themes"`

	// Dropped counts removals per stage, for metrics and editorial
	// debugging.
	Dropped StageDrops `json:"dropped"`
}

// CandidateIDs returns the ordered ids of the final selection.
func (r AllocationResult) CandidateIDs() []string {
	ids := make([]string, len(r.Candidates))
	for i := range r.Candidates {
		ids[i] = r.Candidates[i].Candidate.ID
	}
	return ids
}

// CategorySummary aggregates one category's offering within an area.
// Derived on demand from the underlying POI set; not persisted.
type CategorySummary struct {
	// TotalPOIs is the number of POIs in the category.
	TotalPOIs int `json:"total_pois"`

	// AvgRating is the mean rating across rated POIs, or nil when none
	// carry a rating.
	AvgRating *float64 `json:"avg_rating,omitempty"`

	// AvgWalkMinutes is the mean walk time, or nil when unknown.
	AvgWalkMinutes *float64 `json:"avg_walk_minutes,omitempty"`

	// UniqueCategories is the variety count across the related grouping,
	// e.g. sibling categories in the same theme.
	UniqueCategories int `json:"unique_categories"`
}

// ScoreBreakdown holds the four rounded composite sub-scores. Each is an
// integer in [0, 100] so the breakdown shown to a caller is internally
// consistent with the weighted total.
type ScoreBreakdown struct {
	Count     int `json:"count"`
	Rating    int `json:"rating"`
	Proximity int `json:"proximity"`
	Variety   int `json:"variety"`
}

// CompositeScore is the 0-100 summary quality score for a category within
// an area, with its sub-score breakdown.
type CompositeScore struct {
	Total     int            `json:"total"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}
