// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package api

import (
	"net/http"
	"strconv"

	"github.com/stedsans/stedsans/internal/curation"
)

// AllocateRequest is the body of POST /api/v1/allocations. Either an area id
// (resolved through the places source) or an inline candidate list must be
// given; inline candidates win when both are present.
//
// VenueType is not restricted to the known profiles: unknown types resolve
// to the baseline profile, so a new venue type deployed ahead of its profile
// still allocates sensibly.
type AllocateRequest struct {
	AreaID     string               `json:"area_id" validate:"omitempty,max=128"`
	VenueType  string               `json:"venue_type" validate:"omitempty,max=64"`
	Candidates []curation.Candidate `json:"candidates" validate:"omitempty,dive"`
}

// getStringParam extracts a query parameter with a default value.
func getStringParam(r *http.Request, name, def string) string {
	if v := r.URL.Query().Get(name); v != "" {
		return v
	}
	return def
}

// getIntParam extracts an integer query parameter with a default value.
// Malformed values fall back to the default rather than erroring.
func getIntParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
