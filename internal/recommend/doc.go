// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package recommend implements the candidate scoring and ranking pipeline:
// preference aggregation from watch history, per-candidate feature
// extraction, scoring, and top-K selection.
//
// The pipeline is deterministic: for a fixed catalog snapshot, watch
// history and scorer, the same ranked list is always produced. Candidates
// present in the user's watched or watchlist sets are never returned.
// Two scoring backends are provided, a weighted linear combination (the
// default) and a small dense network, both mapping the same binary feature
// vector to a score in [0,1].
package recommend
