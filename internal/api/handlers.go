// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package api

import (
	"net/http"
	"time"

	"github.com/cinerec/cinerec/internal/catalog"
	"github.com/cinerec/cinerec/internal/enrich"
	"github.com/cinerec/cinerec/internal/history"
	"github.com/cinerec/cinerec/internal/models"
	"github.com/cinerec/cinerec/internal/recommend"
)

// Handler carries the service dependencies for all HTTP endpoints.
type Handler struct {
	catalog  *catalog.Store
	engine   *recommend.Engine
	history  *history.Store
	enricher *enrich.Client
	version  string
	started  time.Time
}

// NewHandler wires the endpoint dependencies together.
func NewHandler(cs *catalog.Store, eng *recommend.Engine, hs *history.Store, ec *enrich.Client, version string) *Handler {
	return &Handler{
		catalog:  cs,
		engine:   eng,
		history:  hs,
		enricher: ec,
		version:  version,
		started:  time.Now(),
	}
}

// RecommendRequest is the inline-history recommendation request body.
type RecommendRequest struct {
	Watchlist []int `json:"watchlist"`
	Watched   []int `json:"watched"`
	K         int   `json:"k" validate:"min=0"`
}

// Recommend handles POST /api/v1/recommend: score the catalog against the
// watch history supplied in the request body.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	c, err := h.catalog.Snapshot()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Service not ready", nil)
		return
	}

	var req RecommendRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Request body must be a JSON object with integer array fields", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	h.respondRecommendations(w, r, c, req, started)
}

// RecommendRandom handles GET /api/v1/recommend: one uniformly random
// catalog movie, a quick smoke-test endpoint.
func (h *Handler) RecommendRandom(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	c, err := h.catalog.Snapshot()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Service not ready", nil)
		return
	}

	m, ok := h.engine.Random(c)
	if !ok {
		respondError(w, http.StatusNotFound, "EMPTY_CATALOG", "Catalog has no movies", nil)
		return
	}
	respondData(w, http.StatusOK, models.Recommendation{ID: m.ID, Title: m.Title}, started)
}

// respondRecommendations runs the scoring pipeline and enrichment and
// writes the ranked response.
func (h *Handler) respondRecommendations(w http.ResponseWriter, r *http.Request, c *catalog.Catalog, req RecommendRequest, started time.Time) {
	recs := h.engine.Recommend(c, req.Watched, req.Watchlist, req.K)

	candidates := c.Len()
	seen := make(map[int]struct{}, len(req.Watched)+len(req.Watchlist))
	for _, id := range append(append([]int{}, req.Watched...), req.Watchlist...) {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := c.Lookup(id); ok {
			candidates--
		}
	}

	enriched := h.enricher.Enrich(r.Context(), recs)
	respondData(w, http.StatusOK, models.RecommendResponse{
		Recommendations: enriched,
		TotalCandidates: candidates,
	}, started)
}
