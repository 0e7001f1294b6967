// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package curation

// Scorer computes the scalar relevance score for one candidate.
//
// The score is a pure function of the candidate and the venue weight:
//
//	score = (rating × reviewWeight + proximityBonus) × venueWeight
//
// where reviewWeight saturates at ReviewSaturation reviews and the proximity
// bonus decays linearly to zero at WalkCutoffMinutes. An un-reviewed place
// scores as unknown quality, not average quality: a missing rating or a zero
// review count zeroes the rating term entirely.
type Scorer struct {
	cfg ScoringConfig
}

// NewScorer creates a scorer with the given constants.
func NewScorer(cfg ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score returns the relevance score for the candidate, weighted by the venue
// profile's category multiplier. The venue weight is applied here exactly
// once; callers must not re-apply it.
func (s *Scorer) Score(c Candidate, venueWeight float64) float64 {
	var rating float64
	if c.Rating != nil {
		rating = *c.Rating
	}

	var reviews float64
	if c.ReviewCount != nil {
		reviews = float64(*c.ReviewCount)
	}

	reviewWeight := reviews / float64(s.cfg.ReviewSaturation)
	if reviewWeight > 1 {
		reviewWeight = 1
	}

	// Unknown walk time is treated as exactly at the cutoff: no bonus.
	walk := s.cfg.WalkCutoffMinutes
	if c.WalkMinutes != nil {
		walk = *c.WalkMinutes
	}

	proximity := (s.cfg.WalkCutoffMinutes - walk) / s.cfg.WalkCutoffMinutes
	if proximity < 0 {
		proximity = 0
	}
	bonus := proximity * s.cfg.ProximityWeight

	score := (rating*reviewWeight + bonus) * venueWeight
	if score < 0 {
		score = 0
	}
	return score
}
