// Stedsans - Location Discovery Content Platform
// Copyright 2026 Stedsans Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stedsans/stedsans

/*
Package supervisor provides suture-based process supervision.

The tree has a single API layer child supervisor holding the HTTP server.
Suture restarts a crashed service with exponential backoff once the failure
threshold is exceeded, and supervision events are logged through slog via
sutureslog, bridged onto the zerolog global logger.

Usage:

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddAPIService(supervisor.NewHTTPServerService(server, 10*time.Second))
	if err := tree.Serve(ctx); err != nil {
	    ...
	}
*/
package supervisor
