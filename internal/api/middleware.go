// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/cinerec/cinerec/internal/config"
)

// healthRateLimit is permissive so monitoring probes are never throttled
// with the API traffic.
const healthRateLimit = 1000

// ChiMiddleware provides the configured middleware factories for the
// router.
type ChiMiddleware struct {
	cfg  config.SecurityConfig
	cors func(http.Handler) http.Handler
}

// NewChiMiddleware builds the middleware factory from security config.
func NewChiMiddleware(cfg config.SecurityConfig) *ChiMiddleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	})

	return &ChiMiddleware{cfg: cfg, cors: corsHandler}
}

// CORS returns the global CORS middleware; it must wrap all routes so
// OPTIONS preflight requests are answered.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit returns IP-based rate limiting for API routes, or a no-op
// when disabled in config.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if !m.cfg.RateLimitEnabled {
		return func(next http.Handler) http.Handler { return next }
	}

	window := m.cfg.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}
	return httprate.Limit(
		m.cfg.RateLimit,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, http.StatusTooManyRequests, "RATE_LIMITED",
				"Too many requests, slow down", nil)
		}),
	)
}

// RateLimitHealth returns the permissive limiter for health probes.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	return httprate.Limit(
		healthRateLimit,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}
