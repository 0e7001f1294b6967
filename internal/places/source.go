// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

// Package places defines the contract with the candidate data source.
//
// The curation core does not fetch, cache, or paginate: it expects the full
// candidate set for an area to be materialized in memory before allocation.
// Production implementations sit over the platform's database and places
// API clients; the static source here serves fixture data for development
// and tests.
package places

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"

	"github.com/stedsans/stedsans/internal/curation"
)

// ErrAreaNotFound is returned when a source has no data for an area.
var ErrAreaNotFound = fmt.Errorf("area not found")

// Source supplies the full candidate list for an area.
type Source interface {
	// Candidates returns every known candidate for the area. The slice is
	// owned by the caller; sources must not retain or mutate it.
	Candidates(ctx context.Context, areaID string) ([]curation.Candidate, error)

	// Areas lists the area ids the source has data for.
	Areas(ctx context.Context) ([]string, error)
}

// StaticSource serves candidates from an in-memory map, optionally loaded
// from a JSON file of the form {"areaID": [candidate, ...]}.
type StaticSource struct {
	byArea map[string][]curation.Candidate
}

// NewStaticSource creates a source over the given per-area candidates.
func NewStaticSource(byArea map[string][]curation.Candidate) *StaticSource {
	if byArea == nil {
		byArea = map[string][]curation.Candidate{}
	}
	return &StaticSource{byArea: byArea}
}

// LoadStaticSource reads a per-area candidate file.
func LoadStaticSource(path string) (*StaticSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidates file: %w", err)
	}

	byArea := map[string][]curation.Candidate{}
	if err := json.Unmarshal(data, &byArea); err != nil {
		return nil, fmt.Errorf("parse candidates file %s: %w", path, err)
	}
	return NewStaticSource(byArea), nil
}

// Candidates implements Source.
func (s *StaticSource) Candidates(_ context.Context, areaID string) ([]curation.Candidate, error) {
	candidates, ok := s.byArea[areaID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAreaNotFound, areaID)
	}
	return append([]curation.Candidate(nil), candidates...), nil
}

// Areas implements Source.
func (s *StaticSource) Areas(_ context.Context) ([]string, error) {
	areas := make([]string, 0, len(s.byArea))
	for id := range s.byArea {
		areas = append(areas, id)
	}
	sort.Strings(areas)
	return areas, nil
}

var _ Source = (*StaticSource)(nil)
