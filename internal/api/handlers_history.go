// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cinerec/cinerec/internal/history"
)

// userIDFromRequest extracts and validates the userID route parameter,
// writing the error response itself when the id is unusable.
func userIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := chi.URLParam(r, "userID")
	if userID == "" || len(userID) > 128 {
		respondError(w, http.StatusBadRequest, "INVALID_USER_ID", "userID must be 1-128 characters", nil)
		return "", false
	}
	return userID, true
}

// GetHistory handles GET /api/v1/users/{userID}/history. Unknown users
// get empty lists, not a 404, so clients need no signup step.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	wh, err := h.history.Get(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "HISTORY_STORE_ERROR", "Failed to read watch history", err)
		return
	}
	respondData(w, http.StatusOK, wh, started)
}

// PutHistory handles PUT /api/v1/users/{userID}/history, replacing the
// stored document.
func (h *Handler) PutHistory(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	var wh history.WatchHistory
	if err := decodeJSONBody(w, r, &wh); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Request body must be {watchlist: []int, watched: []int}", err)
		return
	}
	if wh.Watchlist == nil {
		wh.Watchlist = []int{}
	}
	if wh.Watched == nil {
		wh.Watched = []int{}
	}

	if err := h.history.Put(userID, wh); err != nil {
		respondError(w, http.StatusInternalServerError, "HISTORY_STORE_ERROR", "Failed to store watch history", err)
		return
	}
	respondData(w, http.StatusOK, wh, started)
}

// RecommendForUser handles POST /api/v1/users/{userID}/recommend, scoring
// against the stored watch history instead of an inline one.
func (h *Handler) RecommendForUser(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	c, err := h.catalog.Snapshot()
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY", "Service not ready", nil)
		return
	}

	userID, ok := userIDFromRequest(w, r)
	if !ok {
		return
	}

	wh, err := h.history.Get(userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "HISTORY_STORE_ERROR", "Failed to read watch history", err)
		return
	}

	var req struct {
		K int `json:"k" validate:"min=0"`
	}
	if r.ContentLength != 0 {
		if err := decodeJSONBody(w, r, &req); err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "Request body must be a JSON object", err)
			return
		}
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	h.respondRecommendations(w, r, c, RecommendRequest{
		Watchlist: wh.Watchlist,
		Watched:   wh.Watched,
		K:         req.K,
	}, started)
}
