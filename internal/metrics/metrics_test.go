// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAllocation(t *testing.T) {
	before := testutil.ToFloat64(AllocationDrops.WithLabelValues("trust"))

	RecordAllocation("hotel", 2*time.Millisecond, 40, 25, map[string]int{
		"trust":      3,
		"blacklist":  2,
		"global_cap": 0,
	})

	after := testutil.ToFloat64(AllocationDrops.WithLabelValues("trust"))
	if after-before != 3 {
		t.Errorf("trust drops delta = %v, want 3", after-before)
	}

	// Zero-count stages must not create label series churn.
	if got := testutil.ToFloat64(AllocationsTotal.WithLabelValues("hotel")); got < 1 {
		t.Errorf("allocations_total = %v, want >= 1", got)
	}
}

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/themes", "200"))

	RecordAPIRequest("GET", "/api/v1/themes", 200, 15*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/v1/themes", "200"))
	if after-before != 1 {
		t.Errorf("api_requests_total delta = %v, want 1", after-before)
	}
}

func TestRecordQuoteSelection(t *testing.T) {
	before := testutil.ToFloat64(QuoteSelections.WithLabelValues("exceptional", "mat-drikke"))

	RecordQuoteSelection("exceptional", "mat-drikke")
	RecordQuoteSelection("exceptional", "mat-drikke")

	after := testutil.ToFloat64(QuoteSelections.WithLabelValues("exceptional", "mat-drikke"))
	if after-before != 2 {
		t.Errorf("quote_selections_total delta = %v, want 2", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	base := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+2 {
		t.Errorf("active requests = %v, want %v", got, base+2)
	}

	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != base+1 {
		t.Errorf("active requests = %v, want %v", got, base+1)
	}
	TrackActiveRequest(false)
}

func TestRecordCompositeScoreDoesNotPanic(t *testing.T) {
	for _, total := range []int{0, 25, 50, 100} {
		RecordCompositeScore("restaurant", total)
	}
}
