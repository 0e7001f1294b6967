// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

// Package config loads the application configuration with koanf v2.
//
// Sources layer lowest priority first: built-in defaults (the curation
// reference data plus development server settings), an optional YAML file
// (./config.yaml or /etc/stedsans/, overridable via STEDSANS_CONFIG), then
// STEDSANS_* environment variables.
//
// Themes, venue profiles, scoring constants, caps, and bucket thresholds are
// all declared here: product owners retune them without a code change, and
// the allocator's logic never needs to know where its numbers came from. The
// whole configuration is validated once at load; the curation engine assumes
// a consistent configuration afterwards.
package config
