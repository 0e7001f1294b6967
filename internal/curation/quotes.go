// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package curation

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// QuoteLevel buckets a composite score into one of five tones of narrative.
type QuoteLevel int

const (
	// LevelLimited is the bucket below the sufficient threshold.
	LevelLimited QuoteLevel = iota
	// LevelSufficient covers scores at or above the sufficient threshold.
	LevelSufficient
	// LevelGood covers scores at or above the good threshold.
	LevelGood
	// LevelVeryGood covers scores at or above the very-good threshold.
	LevelVeryGood
	// LevelExceptional covers scores at or above the exceptional threshold.
	LevelExceptional
)

// String returns the level's stable identifier.
func (l QuoteLevel) String() string {
	switch l {
	case LevelExceptional:
		return "exceptional"
	case LevelVeryGood:
		return "very_good"
	case LevelGood:
		return "good"
	case LevelSufficient:
		return "sufficient"
	default:
		return "limited"
	}
}

// QuoteBook maps (theme, level) pairs to template sentences and selects one
// deterministically.
//
// Selection never fails: a theme without specific templates uses the
// per-level defaults, which are guaranteed non-empty at construction. With a
// seed, the index is a stable xxhash of the seed modulo the list length, so
// server-rendered output and tests reproduce the same sentence. Without a
// seed, the variety value picks the index; there is no true randomness
// anywhere in the selection.
type QuoteBook struct {
	buckets  BucketThresholds
	themes   map[string]map[QuoteLevel][]string
	defaults map[QuoteLevel][]string
}

// NewQuoteBook builds a quote book. The defaults must carry at least one
// sentence for every level; per-theme lists may be sparse.
func NewQuoteBook(buckets BucketThresholds, themes map[string]map[QuoteLevel][]string, defaults map[QuoteLevel][]string) (*QuoteBook, error) {
	for _, level := range []QuoteLevel{LevelLimited, LevelSufficient, LevelGood, LevelVeryGood, LevelExceptional} {
		if len(defaults[level]) == 0 {
			return nil, fmt.Errorf("default quotes missing for level %q", level)
		}
	}
	return &QuoteBook{buckets: buckets, themes: themes, defaults: defaults}, nil
}

// LevelFor buckets a composite score.
func (b *QuoteBook) LevelFor(score int) QuoteLevel {
	switch {
	case score >= b.buckets.Exceptional:
		return LevelExceptional
	case score >= b.buckets.VeryGood:
		return LevelVeryGood
	case score >= b.buckets.Good:
		return LevelGood
	case score >= b.buckets.Sufficient:
		return LevelSufficient
	default:
		return LevelLimited
	}
}

// Select returns the narrative sentence for a theme and composite score.
// An empty seed falls back to the variety-based heuristic.
func (b *QuoteBook) Select(themeID string, score, variety int, seed string) string {
	level := b.LevelFor(score)

	templates := b.themes[themeID][level]
	if len(templates) == 0 {
		templates = b.defaults[level]
	}

	var idx int
	if seed != "" {
		idx = int(xxhash.Sum64String(seed) % uint64(len(templates)))
	} else {
		if variety < 0 {
			variety = 0
		}
		idx = variety % len(templates)
	}
	return templates[idx]
}

// DefaultQuoteBook returns the reference templates. Theme-specific lists
// exist for the high-budget themes; everything else uses the per-level
// defaults.
func DefaultQuoteBook(buckets BucketThresholds) *QuoteBook {
	defaults := map[QuoteLevel][]string{
		LevelExceptional: {
			"An exceptional selection right on the doorstep.",
			"Few places in the city offer more within walking distance.",
		},
		LevelVeryGood: {
			"A very strong offering within easy reach.",
			"Plenty of good options a short walk away.",
		},
		LevelGood: {
			"A good selection in the immediate area.",
			"Solid everyday options close by.",
		},
		LevelSufficient: {
			"The essentials are covered nearby.",
			"A modest but workable selection in the area.",
		},
		LevelLimited: {
			"Limited options in the immediate area.",
			"You may need to travel a little further for this.",
		},
	}

	themes := map[string]map[QuoteLevel][]string{
		"mat-drikke": {
			LevelExceptional: {
				"A food and drink scene that rivals the city centre.",
				"Restaurants, cafes and bars for every taste, minutes away.",
			},
			LevelVeryGood: {
				"A lively mix of restaurants and cafes close by.",
				"Eating out is easy here, with plenty to choose from.",
			},
			LevelGood: {
				"A decent spread of places to eat and drink nearby.",
			},
			LevelSufficient: {
				"A handful of places to eat within walking distance.",
			},
			LevelLimited: {
				"Few dining options nearby; expect a short trip for dinner.",
			},
		},
		"handel": {
			LevelExceptional: {
				"Everything from groceries to boutiques at your feet.",
			},
			LevelVeryGood: {
				"Daily shopping and more, all within a short walk.",
			},
			LevelGood: {
				"Good everyday shopping coverage in the area.",
			},
		},
		"kultur": {
			LevelExceptional: {
				"A cultural cluster most neighbourhoods can only envy.",
			},
			LevelVeryGood: {
				"Museums, stages and screens within easy reach.",
			},
		},
		"transport": {
			LevelVeryGood: {
				"Excellent transit links in every direction.",
			},
			LevelGood: {
				"Well connected by public transport.",
			},
			LevelLimited: {
				"Public transport is sparse; plan for longer walks.",
			},
		},
	}

	// Defaults are statically complete, so construction cannot fail.
	book, err := NewQuoteBook(buckets, themes, defaults)
	if err != nil {
		panic(err)
	}
	return book
}
