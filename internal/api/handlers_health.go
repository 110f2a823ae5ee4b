// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package api

import (
	"net/http"
	"time"

	"github.com/cinerec/cinerec/internal/catalog"
	"github.com/cinerec/cinerec/internal/models"
)

// Health handles GET /api/v1/health with the full component report.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	historyOK := h.history.Healthy()
	state := h.catalog.State()

	status := "ok"
	httpStatus := http.StatusOK
	if state != catalog.StateReady || !historyOK {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	respondData(w, httpStatus, models.HealthStatus{
		Status:         status,
		Version:        h.version,
		CatalogState:   state.String(),
		CatalogMovies:  h.catalog.Len(),
		HistoryStoreOK: historyOK,
		Uptime:         time.Since(h.started).Seconds(),
	}, started)
}

// HealthLive handles GET /api/v1/health/live: process is up, nothing else.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, map[string]string{"status": "alive"}, time.Now())
}

// HealthReady handles GET /api/v1/health/ready: the catalog must be Ready
// and the history store reachable before traffic is routed here.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	if !h.catalog.Ready() {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY",
			"Catalog is "+h.catalog.State().String(), nil)
		return
	}
	if !h.history.Healthy() {
		respondError(w, http.StatusServiceUnavailable, "NOT_READY",
			"History store unavailable", nil)
		return
	}
	respondData(w, http.StatusOK, map[string]string{"status": "ready"}, started)
}
