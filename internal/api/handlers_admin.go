// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package api

import (
	"net/http"
	"time"
)

// ReloadCatalog handles POST /api/v1/admin/catalog/reload. The swap is
// atomic: in-flight requests keep the snapshot they started with, and a
// failed reload leaves the previous snapshot serving.
func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	if err := h.catalog.Load(); err != nil {
		respondError(w, http.StatusBadGateway, "RELOAD_FAILED", "Catalog reload failed", err)
		return
	}

	respondData(w, http.StatusOK, map[string]interface{}{
		"catalog_state":  h.catalog.State().String(),
		"catalog_movies": h.catalog.Len(),
	}, started)
}
