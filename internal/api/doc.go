// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package api exposes the recommendation service over HTTP: the scoring
// endpoints, per-user watch history, health probes, Prometheus metrics and
// the admin catalog reload. Routing is chi v5 with CORS, rate limiting and
// panic recovery from the chi ecosystem; every response is wrapped in the
// standard APIResponse envelope.
package api
