// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package models defines the shared response types used by the HTTP layer.
package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP endpoints.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError contains structured error details for failed requests.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Recommendation is one entry in the ordered recommendation list returned to
// clients. Poster, rating and release date are present only when enrichment
// succeeded; on enrichment failure the entry degrades to id and title.
type Recommendation struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Score       float64 `json:"score"`
	PosterPath  string  `json:"poster_path,omitempty"`
	VoteAverage float64 `json:"vote_average,omitempty"`
	ReleaseDate string  `json:"release_date,omitempty"`
}

// RecommendResponse is the payload for recommendation endpoints.
type RecommendResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
	TotalCandidates int              `json:"total_candidates"`
}

// HealthStatus reports overall service health.
type HealthStatus struct {
	Status         string  `json:"status"`
	Version        string  `json:"version"`
	CatalogState   string  `json:"catalog_state"`
	CatalogMovies  int     `json:"catalog_movies"`
	HistoryStoreOK bool    `json:"history_store_ok"`
	Uptime         float64 `json:"uptime_seconds"`
}
