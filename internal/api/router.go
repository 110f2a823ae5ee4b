// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cinerec/cinerec/internal/config"
	"github.com/cinerec/cinerec/internal/middleware"
)

// NewRouter assembles the chi router with the global middleware stack and
// all service routes.
func NewRouter(handler *Handler, secCfg config.SecurityConfig) http.Handler {
	mw := NewChiMiddleware(secCfg)

	r := chi.NewRouter()

	// global stack, applied to every route in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(mw.CORS()) // CORS must be global to handle OPTIONS preflight

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(mw.RateLimitHealth())
		r.Get("/", handler.Health)
		r.Get("/live", handler.HealthLive)
		r.Get("/ready", handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())

		r.Post("/recommend", handler.Recommend)
		r.Get("/recommend", handler.RecommendRandom)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Get("/history", handler.GetHistory)
			r.Put("/history", handler.PutHistory)
			r.Post("/recommend", handler.RecommendForUser)
		})

		r.Post("/admin/catalog/reload", handler.ReloadCatalog)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
