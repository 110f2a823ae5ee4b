// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

// Package config loads the service configuration with koanf, layering
// struct defaults, an optional YAML file, and CINEREC_-prefixed
// environment variables, then validates the result before handing it to
// the rest of the service.
package config
