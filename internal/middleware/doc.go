// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

/*
Package middleware provides HTTP middleware components for the application.

Key Components:

  - Request ID: UUID-based request tracking, propagated into the zerolog
    context so every log line for a request carries its request_id
  - Prometheus Metrics: HTTP request/response instrumentation keyed by the
    chi route pattern

Both middlewares are plain func(http.Handler) http.Handler and are mounted
globally via chi's r.Use in internal/api.

Thread Safety:

Both components are safe for concurrent use: request IDs live in the
immutable request context and Prometheus collectors are internally
synchronized.
*/
package middleware
