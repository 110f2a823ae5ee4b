// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package history stores per-user watch history documents in BadgerDB.
// Each user maps to one JSON document holding their watched and watchlist
// movie id lists; absent documents read back as empty history.
package history
