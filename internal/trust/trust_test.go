// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package trust

import (
	"context"
	"testing"

	"github.com/stedsans/stedsans/internal/curation"
)

func floatPtr(v float64) *float64 { return &v }

func TestStaticProvider_Reports(t *testing.T) {
	p := NewStaticProvider([]Report{
		{CandidateID: "a", Score: floatPtr(0.9)},
		{CandidateID: "b", Score: floatPtr(0.2), Flags: []string{"suspect_reviews"}, NeedsManualReview: true},
	})

	got, err := p.Reports(context.Background(), []string{"a", "b", "missing"})
	if err != nil {
		t.Fatalf("Reports() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len(reports) = %d, want 2", len(got))
	}
	if *got["a"].Score != 0.9 {
		t.Errorf("a.Score = %f, want 0.9", *got["a"].Score)
	}
	if !got["b"].NeedsManualReview {
		t.Error("b.NeedsManualReview = false, want true")
	}
	if _, ok := got["missing"]; ok {
		t.Error("report present for unknown candidate")
	}
}

func TestApply(t *testing.T) {
	candidates := []curation.Candidate{
		{ID: "a", CategoryID: "restaurant"},
		{ID: "b", CategoryID: "cafe"},
	}
	reports := map[string]Report{
		"a": {CandidateID: "a", Score: floatPtr(0.7), Flags: []string{"new_listing"}},
	}

	Apply(candidates, reports)

	if candidates[0].TrustScore == nil || *candidates[0].TrustScore != 0.7 {
		t.Errorf("a.TrustScore = %v, want 0.7", candidates[0].TrustScore)
	}
	if len(candidates[0].TrustFlags) != 1 || candidates[0].TrustFlags[0] != "new_listing" {
		t.Errorf("a.TrustFlags = %v", candidates[0].TrustFlags)
	}

	// Candidate without a report keeps its absent trust state.
	if candidates[1].TrustScore != nil {
		t.Errorf("b.TrustScore = %v, want nil", candidates[1].TrustScore)
	}
}
