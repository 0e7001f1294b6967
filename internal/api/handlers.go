// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/stedsans/stedsans/internal/curation"
	"github.com/stedsans/stedsans/internal/logging"
	"github.com/stedsans/stedsans/internal/metrics"
	"github.com/stedsans/stedsans/internal/places"
	"github.com/stedsans/stedsans/internal/trust"
)

// Handler holds the dependencies for all curation API endpoints.
type Handler struct {
	engine  *curation.Engine
	source  places.Source
	trust   trust.Provider
	version string
	started time.Time
}

// NewHandler creates the API handler. The trust provider may be nil, in
// which case candidates keep whatever trust data the source supplied.
func NewHandler(engine *curation.Engine, source places.Source, trustProvider trust.Provider, version string) *Handler {
	return &Handler{
		engine:  engine,
		source:  source,
		trust:   trustProvider,
		version: version,
		started: time.Now(),
	}
}

// loadCandidates fetches the area's candidate pool and merges in trust
// reports. A trust provider failure degrades to the source's own trust
// data: a candidate without a trust score still passes the trust gate, so
// serving without reports is safer than serving nothing.
func (h *Handler) loadCandidates(r *http.Request, areaID string) ([]curation.Candidate, error) {
	candidates, err := h.source.Candidates(r.Context(), areaID)
	if err != nil {
		return nil, err
	}

	if h.trust != nil {
		ids := make([]string, len(candidates))
		for i, c := range candidates {
			ids[i] = c.ID
		}
		reports, err := h.trust.Reports(r.Context(), ids)
		if err != nil {
			l := logging.Ctx(r.Context())
			l.Warn().Err(err).Str("area_id", areaID).Msg("trust provider unavailable, continuing without reports")
		} else {
			trust.Apply(candidates, reports)
		}
	}

	return candidates, nil
}

// AllocateResponse is the payload of POST /api/v1/allocations.
type AllocateResponse struct {
	AreaID    string                    `json:"area_id"`
	VenueType string                    `json:"venue_type"`
	Result    curation.AllocationResult `json:"result"`
}

// Allocate handles POST /api/v1/allocations.
func (h *Handler) Allocate(w http.ResponseWriter, r *http.Request) {
	var req AllocateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid JSON body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if req.AreaID == "" && len(req.Candidates) == 0 {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Either area_id or candidates is required", nil)
		return
	}

	candidates := req.Candidates
	if len(candidates) == 0 {
		var err error
		candidates, err = h.loadCandidates(r, req.AreaID)
		if err != nil {
			h.respondSourceError(w, err, req.AreaID)
			return
		}
	}

	venueType := curation.VenueType(req.VenueType)
	start := time.Now()
	result := h.engine.Allocate(candidates, venueType)
	h.recordAllocation(result, string(venueType), len(candidates), time.Since(start))

	respondSuccess(w, http.StatusOK, AllocateResponse{
		AreaID:    req.AreaID,
		VenueType: string(h.engine.Profiles().ProfileFor(venueType).VenueType),
		Result:    result,
	})
}

// AreaPOIs handles GET /api/v1/areas/{areaID}/pois.
func (h *Handler) AreaPOIs(w http.ResponseWriter, r *http.Request) {
	areaID := chi.URLParam(r, "areaID")
	venueType := curation.VenueType(getStringParam(r, "venue_type", ""))

	candidates, err := h.loadCandidates(r, areaID)
	if err != nil {
		h.respondSourceError(w, err, areaID)
		return
	}

	start := time.Now()
	result := h.engine.Allocate(candidates, venueType)
	h.recordAllocation(result, string(venueType), len(candidates), time.Since(start))

	respondSuccess(w, http.StatusOK, AllocateResponse{
		AreaID:    areaID,
		VenueType: string(h.engine.Profiles().ProfileFor(venueType).VenueType),
		Result:    result,
	})
}

// CategorySummaryResponse is the payload of the category summary endpoint.
type CategorySummaryResponse struct {
	AreaID      string                   `json:"area_id"`
	CategoryID  string                   `json:"category_id"`
	ThemeID     string                   `json:"theme_id"`
	ThemeMapped bool                     `json:"theme_mapped"`
	Summary     curation.CategorySummary `json:"summary"`
	Score       curation.CompositeScore  `json:"score"`
	Level       string                   `json:"level"`
	Quote       string                   `json:"quote"`
}

// CategorySummary handles GET /api/v1/areas/{areaID}/categories/{categoryID}/summary.
// The quote seed is areaID:categoryID so a given area renders the same
// sentence on every request.
func (h *Handler) CategorySummary(w http.ResponseWriter, r *http.Request) {
	areaID := chi.URLParam(r, "areaID")
	categoryID := chi.URLParam(r, "categoryID")

	candidates, err := h.loadCandidates(r, areaID)
	if err != nil {
		h.respondSourceError(w, err, areaID)
		return
	}

	summary, ok := summarizeCategory(candidates, categoryID, h.engine.Registry())
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "No POIs in category "+categoryID+" for area "+areaID, nil)
		return
	}

	score := h.engine.CompositeScore(summary)
	metrics.RecordCompositeScore(categoryID, score.Total)

	themeID, mapped := h.engine.Registry().ThemeOf(categoryID)
	seed := areaID + ":" + categoryID
	quote := h.engine.Quote(themeID, score.Total, summary.UniqueCategories, seed)
	level := h.engine.QuoteLevel(score.Total)
	metrics.RecordQuoteSelection(strings.ToLower(level.String()), themeID)

	respondSuccess(w, http.StatusOK, CategorySummaryResponse{
		AreaID:      areaID,
		CategoryID:  categoryID,
		ThemeID:     themeID,
		ThemeMapped: mapped,
		Summary:     summary,
		Score:       score,
		Level:       level.String(),
		Quote:       quote,
	})
}

// summarizeCategory aggregates the area's candidates for one category.
// UniqueCategories counts the distinct categories present in the area that
// share the category's theme, which feeds the variety sub-score.
func summarizeCategory(candidates []curation.Candidate, categoryID string, registry *curation.ThemeRegistry) (curation.CategorySummary, bool) {
	themeID, _ := registry.ThemeOf(categoryID)

	var (
		total       int
		ratingSum   float64
		ratingCount int
		walkSum     float64
		walkCount   int
	)
	siblings := map[string]struct{}{}

	for _, c := range candidates {
		if ct, _ := registry.ThemeOf(c.CategoryID); ct == themeID {
			siblings[c.CategoryID] = struct{}{}
		}
		if c.CategoryID != categoryID {
			continue
		}
		total++
		if c.Rating != nil {
			ratingSum += *c.Rating
			ratingCount++
		}
		if c.WalkMinutes != nil {
			walkSum += *c.WalkMinutes
			walkCount++
		}
	}

	if total == 0 {
		return curation.CategorySummary{}, false
	}

	summary := curation.CategorySummary{
		TotalPOIs:        total,
		UniqueCategories: len(siblings),
	}
	if ratingCount > 0 {
		avg := ratingSum / float64(ratingCount)
		summary.AvgRating = &avg
	}
	if walkCount > 0 {
		avg := walkSum / float64(walkCount)
		summary.AvgWalkMinutes = &avg
	}
	return summary, true
}

// ThemesResponse is the payload of GET /api/v1/themes.
type ThemesResponse struct {
	Themes   []curation.Theme `json:"themes"`
	Fallback curation.Theme   `json:"fallback"`
}

// Themes handles GET /api/v1/themes.
func (h *Handler) Themes(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, ThemesResponse{
		Themes:   h.engine.Registry().Themes(),
		Fallback: h.engine.Registry().Fallback(),
	})
}

// VenueProfileResponse is the payload of GET /api/v1/venue-profiles/{venueType}.
type VenueProfileResponse struct {
	Requested string                `json:"requested"`
	Resolved  string                `json:"resolved"`
	Profile   curation.VenueProfile `json:"profile"`
}

// VenueProfile handles GET /api/v1/venue-profiles/{venueType}. Unknown venue
// types resolve to the baseline profile; the response names both so callers
// can tell when the fallback was taken.
func (h *Handler) VenueProfile(w http.ResponseWriter, r *http.Request) {
	requested := chi.URLParam(r, "venueType")
	profile := h.engine.Profiles().ProfileFor(curation.VenueType(requested))

	respondSuccess(w, http.StatusOK, VenueProfileResponse{
		Requested: requested,
		Resolved:  string(profile.VenueType),
		Profile:   profile,
	})
}

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status        string  `json:"status"`
	Version       string  `json:"version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// Health handles GET /health and GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	metrics.AppUptime.Set(time.Since(h.started).Seconds())
	respondSuccess(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Version:       h.version,
		UptimeSeconds: time.Since(h.started).Seconds(),
	})
}

// Live handles GET /health/live. Process up means live.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]string{"status": "live"})
}

// Ready handles GET /health/ready. Readiness requires the candidate source
// to answer, since every data endpoint depends on it.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if _, err := h.source.Areas(r.Context()); err != nil {
		respondError(w, http.StatusServiceUnavailable, "SOURCE_ERROR", "Candidate source not ready", err)
		return
	}
	respondSuccess(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) respondSourceError(w http.ResponseWriter, err error, areaID string) {
	if errors.Is(err, places.ErrAreaNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Unknown area "+areaID, nil)
		return
	}
	respondError(w, http.StatusBadGateway, "SOURCE_ERROR", "Candidate source unavailable", err)
}

func (h *Handler) recordAllocation(result curation.AllocationResult, venueType string, in int, elapsed time.Duration) {
	resolved := string(h.engine.Profiles().ProfileFor(curation.VenueType(venueType)).VenueType)
	metrics.RecordAllocation(resolved, elapsed, in, len(result.Candidates), map[string]int{
		"trust":        result.Dropped.Trust,
		"blacklist":    result.Dropped.Blacklist,
		"category_cap": result.Dropped.CategoryCap,
		"theme_cap":    result.Dropped.ThemeCap,
		"global_cap":   result.Dropped.GlobalCap,
	})

	for _, sc := range result.Candidates {
		if sc.Candidate.NeedsManualReview {
			metrics.AllocationManualReviewFlagged.Inc()
		}
	}
}
