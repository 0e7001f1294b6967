// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

package validation

import (
	"strings"
	"testing"
)

type allocateFixture struct {
	AreaID    string `validate:"required"`
	VenueType string `validate:"required,oneof=hotel residential commercial"`
	Limit     int    `validate:"omitempty,min=1,max=500"`
}

func TestValidateStructPasses(t *testing.T) {
	req := allocateFixture{AreaID: "oslo-sentrum", VenueType: "hotel", Limit: 50}
	if verr := ValidateStruct(&req); verr != nil {
		t.Errorf("ValidateStruct() = %v, want nil", verr)
	}
}

func TestValidateStructRequired(t *testing.T) {
	req := allocateFixture{VenueType: "hotel"}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}

	errs := verr.Errors()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), verr)
	}
	if errs[0].Field() != "AreaID" || errs[0].Tag() != "required" {
		t.Errorf("error = %s/%s, want AreaID/required", errs[0].Field(), errs[0].Tag())
	}
	if !strings.Contains(errs[0].Error(), "is required") {
		t.Errorf("message %q lacks 'is required'", errs[0].Error())
	}
}

func TestValidateStructOneOf(t *testing.T) {
	req := allocateFixture{AreaID: "a", VenueType: "houseboat"}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if !strings.Contains(verr.Error(), "must be one of") {
		t.Errorf("message %q lacks oneof translation", verr.Error())
	}
}

func TestValidateStructMax(t *testing.T) {
	req := allocateFixture{AreaID: "a", VenueType: "hotel", Limit: 9000}
	verr := ValidateStruct(&req)
	if verr == nil {
		t.Fatal("ValidateStruct() = nil, want error")
	}
	if !strings.Contains(verr.Error(), "must be at most 500") {
		t.Errorf("message %q lacks max translation", verr.Error())
	}
}

func TestToAPIErrorSingle(t *testing.T) {
	verr := ValidateStruct(&allocateFixture{VenueType: "hotel"})
	if verr == nil {
		t.Fatal("expected validation error")
	}

	apiErr := verr.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "AreaID" {
		t.Errorf("Details[field] = %v, want AreaID", apiErr.Details["field"])
	}
}

func TestToAPIErrorMultiple(t *testing.T) {
	verr := ValidateStruct(&allocateFixture{})
	if verr == nil {
		t.Fatal("expected validation error")
	}
	if len(verr.Errors()) < 2 {
		t.Fatalf("got %d errors, want >= 2", len(verr.Errors()))
	}

	apiErr := verr.ToAPIError()
	fields, ok := apiErr.Details["fields"].([]map[string]interface{})
	if !ok {
		t.Fatalf("Details[fields] has type %T", apiErr.Details["fields"])
	}
	if len(fields) != len(verr.Errors()) {
		t.Errorf("fields = %d, want %d", len(fields), len(verr.Errors()))
	}
}
