// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package curation

import "math"

// CompositeScorer summarizes how good a category is within an area as a
// single 0-100 number with a per-dimension breakdown.
//
// Each of the four sub-scores is normalized to 0-100 and rounded to an
// integer before weighting, so the breakdown a caller renders agrees with
// the weighted total. Absent rating or walk-time averages score as neutral,
// not as bad; a single category scores zero variety because variety rewards
// breadth, not depth.
type CompositeScorer struct {
	cfg CompositeConfig
}

// NewCompositeScorer creates a composite scorer with the given constants.
func NewCompositeScorer(cfg CompositeConfig) *CompositeScorer {
	return &CompositeScorer{cfg: cfg}
}

// Score computes the composite score for one category summary.
func (s *CompositeScorer) Score(sum CategorySummary) CompositeScore {
	breakdown := ScoreBreakdown{
		Count:     s.countScore(sum.TotalPOIs),
		Rating:    s.ratingScore(sum.AvgRating),
		Proximity: s.proximityScore(sum.AvgWalkMinutes),
		Variety:   s.varietyScore(sum.UniqueCategories),
	}

	w := s.cfg.Weights
	total := w.Count*float64(breakdown.Count) +
		w.Rating*float64(breakdown.Rating) +
		w.Proximity*float64(breakdown.Proximity) +
		w.Variety*float64(breakdown.Variety)

	return CompositeScore{
		Total:     int(math.Round(total)),
		Breakdown: breakdown,
	}
}

func (s *CompositeScorer) countScore(totalPOIs int) int {
	if totalPOIs < 0 {
		totalPOIs = 0
	}
	score := float64(totalPOIs) / float64(s.cfg.FullCountPOIs) * 100
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

func (s *CompositeScorer) ratingScore(avgRating *float64) int {
	if avgRating == nil {
		return s.cfg.NeutralSubScore
	}
	score := *avgRating / 5 * 100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

func (s *CompositeScorer) proximityScore(avgWalkMinutes *float64) int {
	if avgWalkMinutes == nil {
		return s.cfg.NeutralSubScore
	}
	score := 100 - *avgWalkMinutes/s.cfg.WalkCeilingMinutes*100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

func (s *CompositeScorer) varietyScore(uniqueCategories int) int {
	spread := uniqueCategories - 1
	if spread < 0 {
		spread = 0
	}
	score := float64(spread) / float64(s.cfg.FullVariety-1) * 100
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}
