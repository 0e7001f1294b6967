// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

// Package trust defines the contract with the externally owned trust-scoring
// collaborator.
//
// The rule engine that produces trust scores is a separate system; this
// package only carries its output onto candidates. An absent score is a
// valid, passing state: the curation trust gate treats unknown as trusted,
// never as untrusted. Flags and the manual-review marker are surfaced
// upstream verbatim and are not acted on anywhere in this codebase.
package trust

import (
	"context"

	"github.com/stedsans/stedsans/internal/curation"
)

// Report is the trust collaborator's verdict for one candidate.
type Report struct {
	// CandidateID identifies the candidate the report applies to.
	CandidateID string `json:"candidate_id"`

	// Score is the trust score in [0.0, 1.0], or nil when the collaborator
	// produced none.
	Score *float64 `json:"score,omitempty"`

	// Flags carries the collaborator's rule flags verbatim.
	Flags []string `json:"flags,omitempty"`

	// NeedsManualReview marks candidates the collaborator wants a human to
	// look at. Surfaced upstream, not consumed here.
	NeedsManualReview bool `json:"needs_manual_review,omitempty"`
}

// Provider fetches trust reports for a batch of candidate ids. Implemented
// by the external trust-scoring client; candidates missing from the result
// simply have no trust data.
type Provider interface {
	Reports(ctx context.Context, candidateIDs []string) (map[string]Report, error)
}

// Apply copies trust reports onto the matching candidates, in place.
// Candidates without a report are left untouched.
func Apply(candidates []curation.Candidate, reports map[string]Report) {
	for i := range candidates {
		r, ok := reports[candidates[i].ID]
		if !ok {
			continue
		}
		candidates[i].TrustScore = r.Score
		candidates[i].TrustFlags = r.Flags
		candidates[i].NeedsManualReview = r.NeedsManualReview
	}
}

// StaticProvider serves a fixed set of reports. Used in development and
// tests; production wires the real trust client here.
type StaticProvider struct {
	reports map[string]Report
}

// NewStaticProvider creates a provider over a fixed report set.
func NewStaticProvider(reports []Report) *StaticProvider {
	byID := make(map[string]Report, len(reports))
	for _, r := range reports {
		byID[r.CandidateID] = r
	}
	return &StaticProvider{reports: byID}
}

// Reports implements Provider.
func (p *StaticProvider) Reports(_ context.Context, candidateIDs []string) (map[string]Report, error) {
	out := make(map[string]Report)
	for _, id := range candidateIDs {
		if r, ok := p.reports[id]; ok {
			out[id] = r
		}
	}
	return out, nil
}

var _ Provider = (*StaticProvider)(nil)
