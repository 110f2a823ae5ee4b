// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package supervisor arranges the long-running components into a suture
// supervision tree with per-layer failure isolation and slog-routed
// restart events.
package supervisor
