// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package middleware holds the service-specific HTTP middleware: request
// id propagation and Prometheus instrumentation. Generic concerns (CORS,
// rate limiting, panic recovery) come from the chi ecosystem and are wired
// in the api package.
package middleware
