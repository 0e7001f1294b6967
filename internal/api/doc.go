// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

/*
Package api provides the HTTP surface over the curation engine.

Endpoints:

  - POST /api/v1/allocations: run the allocation pipeline for an area and
    venue type
  - GET  /api/v1/areas/{areaID}/pois: allocated POIs for an area
  - GET  /api/v1/areas/{areaID}/categories/{categoryID}/summary: composite
    category score with its narrative quote
  - GET  /api/v1/themes: the configured theme registry
  - GET  /api/v1/venue-profiles/{venueType}: resolved venue profile
  - GET  /health, GET /metrics: liveness and Prometheus scrape

All endpoints respond with the APIResponse envelope: a status discriminator,
the data payload, response metadata, and a structured error when status is
"error". Request bodies are validated with go-playground/validator before
any work happens.

Routing uses chi v5 with go-chi/cors and go-chi/httprate for the transport
concerns, and JSON marshaling uses goccy/go-json throughout.
*/
package api
