// CineRec - Movie Recommendation Service
// Copyright 2026 CineRec Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinerec/cinerec

package config

import (
	"fmt"
	"time"

	"github.com/cinerec/cinerec/internal/enrich"
	"github.com/cinerec/cinerec/internal/logging"
	"github.com/cinerec/cinerec/internal/recommend"
)

// Config is the full service configuration, assembled from defaults, an
// optional YAML file, and environment variables in that order.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   logging.Config  `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	History   HistoryConfig   `koanf:"history"`
	TMDB      enrich.Config   `koanf:"tmdb"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// CatalogConfig points at the movie catalog source.
type CatalogConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// HistoryConfig holds watch history store settings. An empty path selects
// an in-memory store.
type HistoryConfig struct {
	Path       string        `koanf:"path"`
	GCInterval time.Duration `koanf:"gc_interval"`
	GCRatio    float64       `koanf:"gc_ratio"`
}

// RecommendConfig tunes the scoring pipeline.
type RecommendConfig struct {
	Scorer        string            `koanf:"scorer" validate:"oneof=linear neural"`
	Weights       recommend.Weights `koanf:"weights"`
	DefaultK      int               `koanf:"default_k" validate:"min=1"`
	MaxK          int               `koanf:"max_k" validate:"min=1"`
	MinKeywordLen int               `koanf:"min_keyword_len" validate:"min=1"`
}

// SecurityConfig holds CORS and rate limit settings for the HTTP surface.
type SecurityConfig struct {
	CORSOrigins      []string      `koanf:"cors_origins"`
	RateLimitEnabled bool          `koanf:"rate_limit_enabled"`
	RateLimit        int           `koanf:"rate_limit" validate:"min=1"`
	RateLimitWindow  time.Duration `koanf:"rate_limit_window"`
}

// defaultConfig returns the full default configuration. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	recOpts := recommend.DefaultOptions()
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: logging.DefaultConfig(),
		Catalog: CatalogConfig{
			Path: "/data/movies.csv",
		},
		History: HistoryConfig{
			Path:       "/data/history",
			GCInterval: 5 * time.Minute,
			GCRatio:    0.5,
		},
		TMDB: enrich.DefaultConfig(),
		Recommend: RecommendConfig{
			Scorer:        "linear",
			Weights:       recommend.DefaultWeights(),
			DefaultK:      recOpts.DefaultK,
			MaxK:          recOpts.MaxK,
			MinKeywordLen: recOpts.MinKeywordLen,
		},
		Security: SecurityConfig{
			CORSOrigins:      []string{"*"},
			RateLimitEnabled: true,
			RateLimit:        100,
			RateLimitWindow:  time.Minute,
		},
	}
}

// Validate checks cross-field constraints the struct tags cannot express.
func (c *Config) Validate() error {
	if err := validateStruct(c); err != nil {
		return err
	}
	if err := c.Recommend.Weights.Validate(); err != nil {
		return fmt.Errorf("recommend.weights: %w", err)
	}
	if c.Recommend.MaxK < c.Recommend.DefaultK {
		return fmt.Errorf("recommend.max_k (%d) must be >= recommend.default_k (%d)",
			c.Recommend.MaxK, c.Recommend.DefaultK)
	}
	if c.History.GCRatio <= 0 || c.History.GCRatio >= 1 {
		return fmt.Errorf("history.gc_ratio must be in (0,1), got %v", c.History.GCRatio)
	}
	return nil
}

// BuildScorer builds the configured scoring backend.
func (c *RecommendConfig) BuildScorer() recommend.Scorer {
	if c.Scorer == "neural" {
		return recommend.NewNeuralScorer()
	}
	return recommend.NewLinearScorer(c.Weights)
}

// Options converts the config into pipeline options.
func (c *RecommendConfig) Options() recommend.Options {
	return recommend.Options{
		DefaultK:      c.DefaultK,
		MaxK:          c.MaxK,
		MinKeywordLen: c.MinKeywordLen,
	}
}
