// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package curation

import "sort"

// Allocator selects which candidates are shown for a venue and in what
// order, under trust, blacklist, per-category, per-theme, and global
// constraints.
//
// The stage order is a contract, not an implementation detail: it decides
// which candidates survive the caps. Stages, in order:
//
//  1. Trust gate: drop candidates whose trust score is present and below
//     the threshold. Absent trust always passes.
//  2. Blacklist gate: drop candidates in the venue profile's blacklist.
//  3. Scoring, with the profile's category weight applied once.
//  4. Per-category cap: keep the top N per capped category.
//  5. Per-theme allocation in theme declaration order, top themeCap each.
//  6. Catch-all: unmapped categories fill the remaining global capacity.
//  7. Global cap on the merged list.
//
// Every sort is totally ordered (score descending, candidate id ascending on
// ties), so allocation is deterministic and idempotent: identical inputs
// yield an identical ordered list. The pipeline has no error states
// reachable from valid inputs; an empty pool or a fully blacklisted pool
// degrades to an empty result.
type Allocator struct {
	registry *ThemeRegistry
	scorer   *Scorer
}

// NewAllocator creates an allocator over the given registry and scorer.
func NewAllocator(registry *ThemeRegistry, scorer *Scorer) *Allocator {
	return &Allocator{registry: registry, scorer: scorer}
}

// Allocate runs the pipeline over the candidate pool.
func (a *Allocator) Allocate(candidates []Candidate, profile VenueProfile, trustThreshold float64, globalCap int) AllocationResult {
	result := AllocationResult{
		Candidates: []ScoredCandidate{},
		Themes:     []ThemeAllocation{},
	}
	if globalCap < 0 {
		globalCap = 0
	}

	// Stages 1-3: trust gate, blacklist gate, scoring.
	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.TrustScore != nil && *c.TrustScore < trustThreshold {
			result.Dropped.Trust++
			continue
		}
		if profile.IsBlacklisted(c.CategoryID) {
			result.Dropped.Blacklist++
			continue
		}

		themeID, mapped := a.registry.ThemeOf(c.CategoryID)
		scored = append(scored, ScoredCandidate{
			Candidate:   c,
			Score:       a.scorer.Score(c, profile.WeightFor(c.CategoryID)),
			ThemeID:     themeID,
			ThemeMapped: mapped,
		})
	}

	// Stage 4: per-category caps.
	scored = a.applyCategoryCaps(scored, profile, &result.Dropped)

	// Stage 5: per-theme allocation in declaration order.
	byTheme := make(map[string][]ScoredCandidate)
	var unmapped []ScoredCandidate
	for _, sc := range scored {
		if !sc.ThemeMapped {
			unmapped = append(unmapped, sc)
			continue
		}
		byTheme[sc.ThemeID] = append(byTheme[sc.ThemeID], sc)
	}

	selected := make(map[string]struct{})
	for _, th := range a.registry.Themes() {
		pool := byTheme[th.ID]
		if len(pool) == 0 {
			continue
		}
		sortByScore(pool)

		alloc := ThemeAllocation{ThemeID: th.ID}
		for _, sc := range pool {
			if len(alloc.CandidateIDs) >= th.Cap {
				result.Dropped.ThemeCap++
				continue
			}
			if _, dup := selected[sc.Candidate.ID]; dup {
				continue
			}
			selected[sc.Candidate.ID] = struct{}{}
			alloc.CandidateIDs = append(alloc.CandidateIDs, sc.Candidate.ID)
			result.Candidates = append(result.Candidates, sc)
		}
		result.Themes = append(result.Themes, alloc)
	}

	// Stage 6: catch-all for unmapped categories, filling the remaining
	// global capacity rather than a fixed quota.
	if len(unmapped) > 0 {
		sortByScore(unmapped)
		remaining := globalCap - len(result.Candidates)
		alloc := ThemeAllocation{ThemeID: a.registry.Fallback().ID}
		for _, sc := range unmapped {
			if remaining <= 0 {
				result.Dropped.GlobalCap++
				continue
			}
			if _, dup := selected[sc.Candidate.ID]; dup {
				continue
			}
			selected[sc.Candidate.ID] = struct{}{}
			alloc.CandidateIDs = append(alloc.CandidateIDs, sc.Candidate.ID)
			result.Candidates = append(result.Candidates, sc)
			remaining--
		}
		if len(alloc.CandidateIDs) > 0 {
			result.Themes = append(result.Themes, alloc)
		}
	}

	// Stage 7: global cap on the merged list.
	if len(result.Candidates) > globalCap {
		result.Dropped.GlobalCap += len(result.Candidates) - globalCap
		result.Candidates = result.Candidates[:globalCap]
		result.Themes = truncateThemes(result.Themes, globalCap)
	}

	return result
}

// applyCategoryCaps keeps the top N candidates per capped category, by score
// with candidate id breaking ties at the cap boundary. Categories without an
// explicit cap pass through untouched, in their incoming order.
func (a *Allocator) applyCategoryCaps(scored []ScoredCandidate, profile VenueProfile, drops *StageDrops) []ScoredCandidate {
	if len(profile.TransportCaps) == 0 {
		return scored
	}

	kept := make(map[string]struct{}, len(scored))
	byCategory := make(map[string][]ScoredCandidate)
	for _, sc := range scored {
		cat := sc.Candidate.CategoryID
		if _, capped := profile.CapFor(cat); !capped {
			kept[sc.Candidate.ID] = struct{}{}
			continue
		}
		byCategory[cat] = append(byCategory[cat], sc)
	}

	for cat, pool := range byCategory {
		limit, _ := profile.CapFor(cat)
		sortByScore(pool)
		if len(pool) > limit {
			drops.CategoryCap += len(pool) - limit
			pool = pool[:limit]
		}
		for _, sc := range pool {
			kept[sc.Candidate.ID] = struct{}{}
		}
	}

	out := scored[:0]
	for _, sc := range scored {
		if _, ok := kept[sc.Candidate.ID]; ok {
			out = append(out, sc)
		}
	}
	return out
}

// sortByScore orders candidates by score descending, candidate id ascending
// on ties. The ordering is total, so repeated runs agree regardless of the
// incoming order.
func sortByScore(pool []ScoredCandidate) {
	sort.Slice(pool, func(i, j int) bool {
		if pool[i].Score != pool[j].Score {
			return pool[i].Score > pool[j].Score
		}
		return pool[i].Candidate.ID < pool[j].Candidate.ID
	})
}

// truncateThemes trims the per-theme partition to match a truncated merged
// list of length capacity.
func truncateThemes(themes []ThemeAllocation, capacity int) []ThemeAllocation {
	out := make([]ThemeAllocation, 0, len(themes))
	remaining := capacity
	for _, ta := range themes {
		if remaining <= 0 {
			break
		}
		if len(ta.CandidateIDs) > remaining {
			ta.CandidateIDs = ta.CandidateIDs[:remaining]
		}
		remaining -= len(ta.CandidateIDs)
		out = append(out, ta)
	}
	return out
}
