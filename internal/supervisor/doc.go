// Discodeck - Artist Discovery Deck Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/discodeck

/*
Package supervisor runs the long-lived parts of discodeck under a suture v4
supervisor tree.

The tree has three layers, each its own supervisor so a crash loop in one
does not stop the others:

	discodeck
	├── session-layer   idle session eviction
	├── engage-layer    engagement message router
	└── api-layer       HTTP server

Supervisor events are logged through sutureslog and the slog adapter in
internal/logging. Service wrappers live in the services subpackage.
*/
package supervisor
