// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package catalog loads the movie catalog from a CSV source and serves it
// as an immutable in-memory snapshot.
//
// The loader tolerates the pseudo-JSON list encoding found in common movie
// dataset exports (single-quoted Python-style lists, stray backslashes) and
// drops malformed rows individually instead of failing the load. The Store
// wraps the snapshot in a lifecycle state machine (unloaded, loading, ready,
// failed) with atomic pointer swaps so reloads never block request traffic.
package catalog
