// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

// Package validation checks API request structs with go-playground/validator
// v10 and translates field failures into the VALIDATION_ERROR payload the API
// envelope expects. A single lazily built validator instance is shared across
// requests; it caches struct metadata, so construction cost is paid once.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// GetValidator returns the shared validator. Safe for concurrent use.
func GetValidator() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
	})
	return instance
}

// ValidationError describes one failed field constraint.
type ValidationError struct {
	field   string
	tag     string
	param   string
	value   interface{}
	message string
}

func (e *ValidationError) Field() string      { return e.field }
func (e *ValidationError) Tag() string        { return e.tag }
func (e *ValidationError) Param() string      { return e.param }
func (e *ValidationError) Value() interface{} { return e.value }
func (e *ValidationError) Error() string      { return e.message }

// RequestValidationError bundles every failed constraint for one request.
type RequestValidationError struct {
	errors []ValidationError
}

// Errors returns the individual field errors in declaration order.
func (ve *RequestValidationError) Errors() []ValidationError { return ve.errors }

func (ve *RequestValidationError) Error() string {
	if len(ve.errors) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(ve.errors))
	for i := range ve.errors {
		msgs[i] = ve.errors[i].message
	}
	return strings.Join(msgs, "; ")
}

// APIError mirrors the api package's error payload so the two packages do not
// import each other.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError flattens the field errors into a VALIDATION_ERROR payload. A
// single failure keeps its field, tag and offending value in Details; multiple
// failures are listed under a "fields" key with a combined message.
func (ve *RequestValidationError) ToAPIError() *APIError {
	switch len(ve.errors) {
	case 0:
		return &APIError{Code: "VALIDATION_ERROR", Message: "Validation failed"}
	case 1:
		fe := ve.errors[0]
		return &APIError{
			Code:    "VALIDATION_ERROR",
			Message: fe.message,
			Details: map[string]interface{}{
				"field": fe.field,
				"tag":   fe.tag,
				"value": fe.value,
			},
		}
	}

	fields := make([]map[string]interface{}, 0, len(ve.errors))
	msgs := make([]string, 0, len(ve.errors))
	for _, fe := range ve.errors {
		fields = append(fields, map[string]interface{}{
			"field":   fe.field,
			"tag":     fe.tag,
			"message": fe.message,
		})
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.field, fe.message))
	}
	return &APIError{
		Code:    "VALIDATION_ERROR",
		Message: strings.Join(msgs, "; "),
		Details: map[string]interface{}{"fields": fields},
	}
}

// ValidateStruct runs the shared validator over s. It returns nil when every
// constraint holds, otherwise a RequestValidationError with one entry per
// failed field.
func ValidateStruct(s interface{}) *RequestValidationError {
	err := GetValidator().Struct(s)
	if err == nil {
		return nil
	}

	var ferrs validator.ValidationErrors
	if !errors.As(err, &ferrs) {
		// InvalidValidationError: s was not a struct. Surface it rather than
		// panic, the handler turns it into a 400.
		return &RequestValidationError{errors: []ValidationError{{
			field:   "unknown",
			tag:     "unknown",
			message: err.Error(),
		}}}
	}

	out := make([]ValidationError, 0, len(ferrs))
	for _, fe := range ferrs {
		out = append(out, ValidationError{
			field:   fe.Field(),
			tag:     fe.Tag(),
			param:   fe.Param(),
			value:   fe.Value(),
			message: describe(fe),
		})
	}
	return &RequestValidationError{errors: out}
}

// describe renders a field error as a human-readable sentence. Only the tags
// the API request structs actually use get bespoke wording; anything else
// falls back to a generic form.
func describe(fe validator.FieldError) string {
	field, param := fe.Field(), fe.Param()
	sized := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, param)
	case "min":
		if sized {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if sized {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
