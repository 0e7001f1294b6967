// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package curation

import (
	"reflect"
	"testing"
)

func testAllocator(t *testing.T) *Allocator {
	t.Helper()
	registry, err := NewThemeRegistry(DefaultThemes(), DefaultFallbackTheme())
	if err != nil {
		t.Fatalf("NewThemeRegistry() error = %v", err)
	}
	return NewAllocator(registry, testScorer())
}

// rated builds a candidate whose score is roughly its rating (full review
// saturation, walk time at the cutoff so no proximity bonus).
func rated(id, category string, rating float64) Candidate {
	return Candidate{
		ID:          id,
		CategoryID:  category,
		Rating:      floatPtr(rating),
		ReviewCount: intPtr(50),
		WalkMinutes: floatPtr(15),
	}
}

func allocatedIDs(r AllocationResult) []string {
	return r.CandidateIDs()
}

func TestAllocator_EmptyPool(t *testing.T) {
	a := testAllocator(t)
	result := a.Allocate(nil, VenueProfile{VenueType: VenueHotel}, 0.5, 100)
	if len(result.Candidates) != 0 {
		t.Errorf("len(Candidates) = %d, want 0", len(result.Candidates))
	}
}

func TestAllocator_TrustGate(t *testing.T) {
	a := testAllocator(t)

	candidates := []Candidate{
		func() Candidate { c := rated("low", "restaurant", 5); c.TrustScore = floatPtr(0.4); return c }(),
		func() Candidate { c := rated("at", "restaurant", 4); c.TrustScore = floatPtr(0.5); return c }(),
		func() Candidate { c := rated("high", "restaurant", 3); c.TrustScore = floatPtr(0.9); return c }(),
		rated("absent", "restaurant", 2), // no trust score always passes
	}

	result := a.Allocate(candidates, VenueProfile{VenueType: VenueHotel}, 0.5, 100)

	want := []string{"at", "high", "absent"}
	if got := allocatedIDs(result); !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
	if result.Dropped.Trust != 1 {
		t.Errorf("Dropped.Trust = %d, want 1", result.Dropped.Trust)
	}
}

func TestAllocator_TrustGateMonotonic(t *testing.T) {
	a := testAllocator(t)

	candidates := []Candidate{}
	for i, trust := range []float64{0.1, 0.3, 0.5, 0.7, 0.9} {
		c := rated(string(rune('a'+i)), "restaurant", float64(i+1))
		c.TrustScore = floatPtr(trust)
		candidates = append(candidates, c)
	}

	strict := a.Allocate(candidates, VenueProfile{VenueType: VenueHotel}, 0.5, 100)
	open := a.Allocate(candidates, VenueProfile{VenueType: VenueHotel}, 0, 100)

	openSet := make(map[string]struct{})
	for _, id := range allocatedIDs(open) {
		openSet[id] = struct{}{}
	}
	for _, id := range allocatedIDs(strict) {
		if _, ok := openSet[id]; !ok {
			t.Errorf("candidate %q passed threshold 0.5 but not threshold 0", id)
		}
	}
	if len(open.Candidates) < len(strict.Candidates) {
		t.Errorf("threshold 0 selected %d < %d at threshold 0.5", len(open.Candidates), len(strict.Candidates))
	}
}

func TestAllocator_BlacklistGate(t *testing.T) {
	a := testAllocator(t)

	profile := VenueProfile{
		VenueType: VenueResidential,
		Blacklist: []string{"taxi_stand", "fast_food"},
	}
	candidates := []Candidate{
		rated("r1", "restaurant", 4),
		rated("t1", "taxi_stand", 5),
		rated("f1", "fast_food", 5),
	}

	result := a.Allocate(candidates, profile, 0.5, 100)

	if got := allocatedIDs(result); !reflect.DeepEqual(got, []string{"r1"}) {
		t.Errorf("ids = %v, want [r1]", got)
	}
	if result.Dropped.Blacklist != 2 {
		t.Errorf("Dropped.Blacklist = %d, want 2", result.Dropped.Blacklist)
	}
}

func TestAllocator_VenueWeightAffectsOrder(t *testing.T) {
	a := testAllocator(t)

	// The bar outranks the cafe only because the profile boosts bars.
	profile := VenueProfile{
		VenueType: VenueHotel,
		Weights:   map[string]float64{"bar": 2.0},
	}
	candidates := []Candidate{
		rated("cafe1", "cafe", 4),
		rated("bar1", "bar", 3),
	}

	result := a.Allocate(candidates, profile, 0.5, 100)
	if got := allocatedIDs(result); !reflect.DeepEqual(got, []string{"bar1", "cafe1"}) {
		t.Errorf("ids = %v, want [bar1 cafe1]", got)
	}
}

func TestAllocator_CategoryCap(t *testing.T) {
	a := testAllocator(t)

	profile := VenueProfile{
		VenueType:     VenueHotel,
		TransportCaps: map[string]int{"bus_stop": 2},
	}
	candidates := []Candidate{
		rated("b1", "bus_stop", 5),
		rated("b2", "bus_stop", 4),
		rated("b3", "bus_stop", 3),
		rated("r1", "restaurant", 1),
	}

	result := a.Allocate(candidates, profile, 0.5, 100)

	counts := map[string]int{}
	for _, sc := range result.Candidates {
		counts[sc.Candidate.CategoryID]++
	}
	if counts["bus_stop"] != 2 {
		t.Errorf("bus_stop count = %d, want 2", counts["bus_stop"])
	}
	if counts["restaurant"] != 1 {
		t.Errorf("restaurant survived = %d, want 1", counts["restaurant"])
	}
	if result.Dropped.CategoryCap != 1 {
		t.Errorf("Dropped.CategoryCap = %d, want 1", result.Dropped.CategoryCap)
	}
	for _, sc := range result.Candidates {
		if sc.Candidate.ID == "b3" {
			t.Error("lowest-scored bus stop b3 survived the cap")
		}
	}
}

func TestAllocator_CategoryCapTieBreakByID(t *testing.T) {
	a := testAllocator(t)

	profile := VenueProfile{
		VenueType:     VenueHotel,
		TransportCaps: map[string]int{"bike_share": 1},
	}
	// Identical scores at the cap boundary: the lower id wins.
	candidates := []Candidate{
		rated("z-dock", "bike_share", 3),
		rated("a-dock", "bike_share", 3),
	}

	result := a.Allocate(candidates, profile, 0.5, 100)
	if got := allocatedIDs(result); !reflect.DeepEqual(got, []string{"a-dock"}) {
		t.Errorf("ids = %v, want [a-dock]", got)
	}
}

func TestAllocator_ThemeCap(t *testing.T) {
	themes := []Theme{
		{ID: "mat-drikke", Name: "Mat og drikke", Cap: 2, Categories: []string{"restaurant", "cafe"}},
	}
	registry, err := NewThemeRegistry(themes, DefaultFallbackTheme())
	if err != nil {
		t.Fatalf("NewThemeRegistry() error = %v", err)
	}
	a := NewAllocator(registry, testScorer())

	candidates := []Candidate{
		rated("r1", "restaurant", 5),
		rated("r2", "restaurant", 4),
		rated("c1", "cafe", 3),
	}

	result := a.Allocate(candidates, VenueProfile{VenueType: VenueHotel}, 0.5, 100)

	if got := allocatedIDs(result); !reflect.DeepEqual(got, []string{"r1", "r2"}) {
		t.Errorf("ids = %v, want [r1 r2]", got)
	}
	if result.Dropped.ThemeCap != 1 {
		t.Errorf("Dropped.ThemeCap = %d, want 1", result.Dropped.ThemeCap)
	}
}

func TestAllocator_ThemeOrderBeforeScore(t *testing.T) {
	a := testAllocator(t)

	// A top-scored gym still lists after food and transport picks because
	// themes are merged in declaration order.
	candidates := []Candidate{
		rated("gym1", "gym", 5),
		rated("r1", "restaurant", 1),
		rated("b1", "bus_stop", 3),
	}

	result := a.Allocate(candidates, VenueProfile{VenueType: VenueHotel}, 0.5, 100)
	want := []string{"r1", "b1", "gym1"}
	if got := allocatedIDs(result); !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
}

func TestAllocator_CatchAllFillsRemainingCapacity(t *testing.T) {
	a := testAllocator(t)

	candidates := []Candidate{
		rated("r1", "restaurant", 5),
		rated("r2", "restaurant", 4),
		rated("x1", "escape_room", 3),
		rated("x2", "climbing_wall", 2),
		rated("x3", "petting_zoo", 1),
	}

	// Global cap 4: two mapped picks leave room for exactly two of the
	// three custom-category candidates.
	result := a.Allocate(candidates, VenueProfile{VenueType: VenueHotel}, 0.5, 4)

	want := []string{"r1", "r2", "x1", "x2"}
	if got := allocatedIDs(result); !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}

	last := result.Themes[len(result.Themes)-1]
	if last.ThemeID != "annet" {
		t.Errorf("last partition theme = %q, want annet", last.ThemeID)
	}
	if !reflect.DeepEqual(last.CandidateIDs, []string{"x1", "x2"}) {
		t.Errorf("catch-all ids = %v, want [x1 x2]", last.CandidateIDs)
	}
}

func TestAllocator_GlobalCap(t *testing.T) {
	a := testAllocator(t)

	var candidates []Candidate
	for i := 0; i < 10; i++ {
		candidates = append(candidates, rated(string(rune('a'+i)), "restaurant", float64(10-i)))
	}

	result := a.Allocate(candidates, VenueProfile{VenueType: VenueHotel}, 0.5, 3)

	if len(result.Candidates) != 3 {
		t.Fatalf("len(Candidates) = %d, want 3", len(result.Candidates))
	}
	if got := allocatedIDs(result); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("ids = %v, want [a b c]", got)
	}

	total := 0
	for _, ta := range result.Themes {
		total += len(ta.CandidateIDs)
	}
	if total != 3 {
		t.Errorf("partition total = %d, want 3", total)
	}
}

func TestAllocator_Idempotent(t *testing.T) {
	a := testAllocator(t)

	candidates := []Candidate{
		rated("r1", "restaurant", 4),
		rated("b1", "bus_stop", 3),
		rated("x1", "escape_room", 2),
		rated("c1", "cafe", 4),
	}
	profile := VenueProfile{
		VenueType:     VenueHotel,
		TransportCaps: map[string]int{"bus_stop": 1},
	}

	first := a.Allocate(candidates, profile, 0.5, 10)
	second := a.Allocate(candidates, profile, 0.5, 10)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated allocation with identical inputs differed")
	}
}

func TestAllocator_EndToEnd(t *testing.T) {
	a := testAllocator(t)

	profile := VenueProfile{
		VenueType: VenueResidential,
		Blacklist: []string{"taxi_stand"},
	}

	// Three restaurants with clearly ordered scores plus one blacklisted
	// candidate for this venue profile.
	candidates := []Candidate{
		rated("mid", "restaurant", 3),
		rated("best", "restaurant", 5),
		rated("worst", "restaurant", 1),
		rated("cab", "taxi_stand", 5),
	}

	globalCap := 120
	result := a.Allocate(candidates, profile, 0.5, globalCap)

	want := []string{"best", "mid", "worst"}
	if got := allocatedIDs(result); !reflect.DeepEqual(got, want) {
		t.Errorf("ids = %v, want %v", got, want)
	}
	if len(result.Candidates) > globalCap {
		t.Errorf("len(Candidates) = %d exceeds global cap %d", len(result.Candidates), globalCap)
	}
	for _, sc := range result.Candidates {
		if profile.IsBlacklisted(sc.Candidate.CategoryID) {
			t.Errorf("blacklisted candidate %q allocated", sc.Candidate.ID)
		}
		if sc.ThemeID != "mat-drikke" {
			t.Errorf("candidate %q theme = %q, want mat-drikke", sc.Candidate.ID, sc.ThemeID)
		}
	}
}

func TestAllocator_InvariantsHoldOnMixedPool(t *testing.T) {
	a := testAllocator(t)
	profile := DefaultProfiles()[0] // hotel: transport caps, no blacklist

	var candidates []Candidate
	mk := func(id, cat string, rating float64, trust *float64) {
		c := rated(id, cat, rating)
		c.TrustScore = trust
		candidates = append(candidates, c)
	}
	mk("r1", "restaurant", 5, nil)
	mk("r2", "restaurant", 2, floatPtr(0.2))
	mk("b1", "bus_stop", 4, nil)
	mk("b2", "bus_stop", 3, nil)
	mk("b3", "bus_stop", 3.5, nil)
	mk("b4", "bus_stop", 1, nil)
	mk("g1", "gym", 4, floatPtr(0.8))
	mk("x1", "escape_room", 3, nil)

	registry, _ := NewThemeRegistry(DefaultThemes(), DefaultFallbackTheme())
	themeCaps := map[string]int{}
	for _, th := range registry.Themes() {
		themeCaps[th.ID] = th.Cap
	}

	result := a.Allocate(candidates, profile, 0.5, 5)

	if len(result.Candidates) > 5 {
		t.Fatalf("global cap violated: %d", len(result.Candidates))
	}

	perTheme := map[string]int{}
	perCategory := map[string]int{}
	for _, sc := range result.Candidates {
		perTheme[sc.ThemeID]++
		perCategory[sc.Candidate.CategoryID]++
	}
	for id, n := range perTheme {
		if cap, ok := themeCaps[id]; ok && n > cap {
			t.Errorf("theme %q cap violated: %d > %d", id, n, cap)
		}
	}
	for cat, n := range perCategory {
		if limit, ok := profile.CapFor(cat); ok && n > limit {
			t.Errorf("category %q cap violated: %d > %d", cat, n, limit)
		}
	}
	for _, sc := range result.Candidates {
		if sc.Candidate.ID == "r2" {
			t.Error("low-trust candidate r2 allocated")
		}
	}
}
