// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

// Package metrics exposes Prometheus collectors for the curation pipeline
// and the HTTP API. Collectors are registered on the default registry via
// promauto at package init; the /metrics endpoint serves them through
// promhttp.
package metrics
