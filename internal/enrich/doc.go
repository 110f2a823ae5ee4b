// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package enrich decorates ranked recommendations with poster, rating and
// release data from the TMDB API.
//
// The backend is treated as best-effort: lookups go through a rate limiter
// and a circuit breaker, and any per-item failure falls back to the bare
// id/title/score tuple so a slow or absent movie-info service never breaks
// the recommendation response.
package enrich
